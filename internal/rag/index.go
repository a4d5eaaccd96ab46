// Package rag retrieves the knowledge entries that share the most terms with
// a question and assembles them into one context block for the model.
//
// Unlike the matcher, which picks a single entry, retrieval returns up to
// DefaultTopK entries ranked by term overlap.
package rag

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
)

const (
	// DefaultTopK is the number of entries considered for a context.
	DefaultTopK = 3

	// DefaultMaxContextChars bounds the assembled context, in characters.
	DefaultMaxContextChars = 1000

	// ExactTermScore is added when a query term occurs in the entry content.
	ExactTermScore = 1.0
	// PartialTermScore is added when a query term only overlaps one content word.
	PartialTermScore = 0.5

	blockSeparator = "\n\n"
)

// Result is one retrieved entry.
type Result struct {
	Entry knowledge.Entry
	// Similarity is the term score divided by the number of query terms.
	Similarity float64
	Rank       int // 1-indexed
}

type document struct {
	entry   knowledge.Entry
	content string   // normalized
	words   []string // content split on whitespace
}

// Index holds the normalized entries of a table. It is immutable and safe
// for concurrent use.
type Index struct {
	docs []document
}

// NewIndex normalizes every entry of table once.
func NewIndex(table *knowledge.Table) *Index {
	src := table.Entries()
	docs := make([]document, 0, len(src))
	for _, e := range src {
		content := normalize(e.Content)
		docs = append(docs, document{
			entry:   e,
			content: content,
			words:   strings.Fields(content),
		})
	}
	return &Index{docs: docs}
}

// normalize drops NUL bytes, turns every rune that is neither a word
// character nor whitespace into a space, collapses whitespace and folds case.
func normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == 0:
			return -1
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, s)
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(mapped), " "))
}

// score is the overlap score of terms against d. A term found anywhere in
// the content counts ExactTermScore. Otherwise the first content word that
// contains the term, or is contained by it, counts PartialTermScore.
func (d *document) score(terms []string) float64 {
	var total float64
	for _, term := range terms {
		if strings.Contains(d.content, term) {
			total += ExactTermScore
			continue
		}
		for _, w := range d.words {
			if strings.Contains(w, term) || strings.Contains(term, w) {
				total += PartialTermScore
				break
			}
		}
	}
	return total
}

// Search returns at most topK entries with a positive score, best first.
// Entries with equal similarity keep table order.
func (idx *Index) Search(query string, topK int) []Result {
	terms := strings.Fields(normalize(query))
	if len(terms) == 0 || topK <= 0 {
		return nil
	}

	var results []Result
	for i := range idx.docs {
		if s := idx.docs[i].score(terms); s > 0 {
			results = append(results, Result{
				Entry:      idx.docs[i].entry,
				Similarity: s / float64(len(terms)),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// Context assembles the DefaultTopK results for query as "[title] content"
// blocks separated by a blank line. Blocks are added in rank order until the
// next one would exceed maxChars. knowledge.NoRelevantContext is returned
// when nothing is retrieved or not even the first block fits.
func (idx *Index) Context(query string, maxChars int) string {
	results := idx.Search(query, DefaultTopK)

	var blocks []string
	used := 0
	for _, r := range results {
		block := "[" + r.Entry.DisplayTitle() + "] " + r.Entry.Content
		n := utf8.RuneCountInString(block)
		if used+n > maxChars {
			break
		}
		blocks = append(blocks, block)
		used += n
	}

	if len(blocks) == 0 {
		return knowledge.NoRelevantContext
	}
	return strings.Join(blocks, blockSeparator)
}
