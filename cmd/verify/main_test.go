package main

import (
	"strings"
	"testing"

	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/matcher"
)

func TestUnreachableEntries(t *testing.T) {
	// "pie" is b's only keyword, but a also has it and a larger content bias.
	table := knowledge.MustNewTable([]knowledge.Entry{
		{ID: "a", Keywords: []string{"apple", "pie"}, Content: "apple pie"},
		{ID: "b", Keywords: []string{"pie"}, Content: "bakery"},
	})

	warnings := unreachableEntries(table, matcher.New(table))
	if len(warnings) != 1 || warnings[0] != "entry b: no single keyword selects it" {
		t.Errorf("unreachableEntries() = %q", warnings)
	}

	results := verifyTable(table)
	for _, r := range results {
		if !r.passed {
			t.Errorf("check %s failed: %s", r.name, r.message)
		}
	}
}

func TestDescribeRetrieval(t *testing.T) {
	m := matcher.New(knowledge.Default())

	if got := describeRetrieval(m.Retrieve("zzz")); got != "no match" {
		t.Errorf("describeRetrieval(no results) = %q", got)
	}
	if got := describeRetrieval(m.Retrieve("등록금 납부 기간은?")); !strings.HasPrefix(got, "enrollment_period (1.00)") {
		t.Errorf("describeRetrieval() = %q", got)
	}
}
