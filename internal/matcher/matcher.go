// Package matcher selects the knowledge entry most relevant to a question.
//
// Three strategies exist:
//   - Scored (Match, Context): every entry is scored and the best one wins.
//   - Simple (FindContext): the first entry with any keyword in the query wins.
//   - RAG (RAGContext): the top entries by term overlap are concatenated.
//
// All are pure functions of the query and the immutable table.
package matcher

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/rag"
)

// Scoring weights.
const (
	// QueryHitWeight is added for each keyword contained in the query.
	QueryHitWeight = 2
	// ContentHitWeight is added for each keyword contained in the entry's own content.
	// It does not depend on the query.
	ContentHitWeight = 1
)

// Strategy names a context resolution strategy.
type Strategy string

const (
	StrategyScored Strategy = "scored"
	StrategySimple Strategy = "simple"
	StrategyRAG    Strategy = "rag"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyScored:
		return StrategyScored, nil
	case StrategySimple:
		return StrategySimple, nil
	case StrategyRAG:
		return StrategyRAG, nil
	default:
		return "", fmt.Errorf("unknown match strategy %q", s)
	}
}

// Result is the outcome of Match. Matched is false for NoMatch.
type Result struct {
	Entry   knowledge.Entry
	Score   int
	Matched bool
}

type indexedEntry struct {
	entry    knowledge.Entry
	keywords []string // case-folded
	bias     int      // ContentHitWeight * keywords found in own content
}

// Matcher scores queries against a knowledge table.
// It is safe for concurrent use.
type Matcher struct {
	entries []indexedEntry
	index   *rag.Index
}

// New builds a Matcher over table, pre-folding keywords and computing the
// query-independent content bias of every entry.
func New(table *knowledge.Table) *Matcher {
	src := table.Entries()
	entries := make([]indexedEntry, 0, len(src))
	for _, e := range src {
		content := fold(e.Content)
		ie := indexedEntry{entry: e, keywords: make([]string, len(e.Keywords))}
		for i, kw := range e.Keywords {
			ie.keywords[i] = fold(kw)
			if strings.Contains(content, ie.keywords[i]) {
				ie.bias += ContentHitWeight
			}
		}
		entries = append(entries, ie)
	}
	return &Matcher{entries: entries, index: rag.NewIndex(table)}
}

// fold lowercases s without language-specific rules.
// A Caser is stateful, so one is created per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (ie *indexedEntry) queryHits(query string) int {
	hits := 0
	for _, kw := range ie.keywords {
		if strings.Contains(query, kw) {
			hits++
		}
	}
	return hits
}

// Match returns the highest scoring entry for query.
//
// Score = QueryHitWeight per keyword in the query + the entry's content bias.
// Ties keep the earlier entry. NoMatch is returned when no keyword of any entry
// occurs in the query, or when every score is zero. Once some keyword occurs in
// the query, all entries compete on full score, so an entry without query hits
// but with a large content bias can still win.
func (m *Matcher) Match(query string) Result {
	q := fold(query)

	anyHit := false
	bestIdx, bestScore := -1, 0
	for i := range m.entries {
		hits := m.entries[i].queryHits(q)
		if hits > 0 {
			anyHit = true
		}
		score := hits*QueryHitWeight + m.entries[i].bias
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	if !anyHit || bestIdx < 0 {
		return Result{}
	}
	return Result{
		Entry:   m.entries[bestIdx].entry,
		Score:   bestScore,
		Matched: true,
	}
}

// Context renders Match as a context string: the entry content, or
// knowledge.NotFoundContext on NoMatch.
func (m *Matcher) Context(query string) string {
	if r := m.Match(query); r.Matched {
		return r.Entry.Content
	}
	return knowledge.NotFoundContext
}

// First returns the first entry in table order with any keyword contained
// in query. Score is the entry's query hit count times QueryHitWeight.
func (m *Matcher) First(query string) Result {
	q := fold(query)
	for i := range m.entries {
		if hits := m.entries[i].queryHits(q); hits > 0 {
			return Result{Entry: m.entries[i].entry, Score: hits * QueryHitWeight, Matched: true}
		}
	}
	return Result{}
}

// FindContext returns the content of First, or knowledge.NotFoundContext.
func (m *Matcher) FindContext(query string) string {
	if r := m.First(query); r.Matched {
		return r.Entry.Content
	}
	return knowledge.NotFoundContext
}

// RAGContext returns the top rag.DefaultTopK entries for query as titled
// blocks within rag.DefaultMaxContextChars, or knowledge.NoRelevantContext.
func (m *Matcher) RAGContext(query string) string {
	return m.index.Context(query, rag.DefaultMaxContextChars)
}

// Retrieve returns the ranked entries RAGContext draws from.
func (m *Matcher) Retrieve(query string) []rag.Result {
	return m.index.Search(query, rag.DefaultTopK)
}

// Resolve returns the context string for query using strategy.
// Unknown strategies fall back to StrategyScored.
func (m *Matcher) Resolve(strategy Strategy, query string) string {
	switch strategy {
	case StrategySimple:
		return m.FindContext(query)
	case StrategyRAG:
		return m.RAGContext(query)
	default:
		return m.Context(query)
	}
}
