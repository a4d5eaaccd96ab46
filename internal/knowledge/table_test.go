package knowledge

import (
	"errors"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	table := Default()
	if table.Len() != 7 {
		t.Fatalf("Default().Len() = %d, want 7", table.Len())
	}

	wantOrder := []string{
		"enrollment_period",
		"english_test",
		"health_check",
		"entrance_ceremony",
		"orientation",
		"dormitory",
		"english_exemption",
	}
	for i, e := range table.Entries() {
		if e.ID != wantOrder[i] {
			t.Errorf("entry %d ID = %q, want %q", i, e.ID, wantOrder[i])
		}
	}
}

func TestTable_EntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	table := MustNewTable([]Entry{{ID: "a", Keywords: []string{"x"}, Content: "c"}})

	entries := table.Entries()
	entries[0].ID = "mutated"
	entries[0].Keywords[0] = "mutated"

	got, ok := table.Get("a")
	if !ok {
		t.Fatal("Get(a) not found after mutating copy")
	}
	if got.Keywords[0] != "x" {
		t.Errorf("keyword changed through copy: %q", got.Keywords[0])
	}
}

func TestNewTable_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []Entry{{ID: "a", Keywords: []string{"x"}, Content: "c"}}
	table := MustNewTable(in)
	in[0].Keywords[0] = "changed"

	if got, _ := table.Get("a"); got.Keywords[0] != "x" {
		t.Errorf("table shares keyword slice with caller: %q", got.Keywords[0])
	}
}

func TestNewTable_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty table", nil},
		{"empty id", []Entry{{ID: " ", Keywords: []string{"k"}, Content: "c"}}},
		{"duplicate id", []Entry{
			{ID: "a", Keywords: []string{"k"}, Content: "c"},
			{ID: "a", Keywords: []string{"k"}, Content: "c"},
		}},
		{"no keywords", []Entry{{ID: "a", Content: "c"}}},
		{"blank keyword", []Entry{{ID: "a", Keywords: []string{"k", ""}, Content: "c"}}},
		{"empty content", []Entry{{ID: "a", Keywords: []string{"k"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTable(tt.entries)
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("NewTable() error = %v, want ErrInvalidEntry", err)
			}
		})
	}
}

func TestEntry_DisplayTitle(t *testing.T) {
	t.Parallel()

	if got := (Entry{ID: "dormitory", Title: "학생생활관"}).DisplayTitle(); got != "학생생활관" {
		t.Errorf("DisplayTitle() = %q, want title", got)
	}
	if got := (Entry{ID: "dormitory"}).DisplayTitle(); got != "dormitory" {
		t.Errorf("DisplayTitle() = %q, want id fallback", got)
	}
}

func TestIsInformative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		context string
		want    bool
	}{
		{"", false},
		{NotFoundContext, false},
		{NoRelevantContext, false},
		{"기숙사 안내", true},
	}
	for _, tt := range tests {
		if got := IsInformative(tt.context); got != tt.want {
			t.Errorf("IsInformative(%q) = %v, want %v", tt.context, got, tt.want)
		}
	}
}
