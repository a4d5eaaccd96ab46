// Package knowledge provides the read-only FAQ knowledge table that the
// chatbot matches questions against.
//
// A Table is built once at startup and never changes afterwards. It has no
// mutation methods and hands out copies of its entries, so it is safe for
// unsynchronized concurrent reads from every request handler.
package knowledge

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// NotFoundContext is the sentinel context used when no entry matches a question.
const NotFoundContext = "관련 정보를 찾을 수 없습니다. 더 구체적인 질문을 해주세요."

// NoRelevantContext is the sentinel of the retrieval strategy when no entry
// shares a term with the question.
const NoRelevantContext = "관련 정보를 찾을 수 없습니다."

// IsInformative reports whether a context string carries knowledge, i.e. it is
// neither empty nor one of the not-found sentinels.
func IsInformative(context string) bool {
	return context != "" && context != NotFoundContext && context != NoRelevantContext
}

// Entry is one keyword→answer record.
type Entry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Keywords []string `json:"keywords"`
	Content  string   `json:"content"`
}

// DisplayTitle returns Title, or ID when the entry has no title.
func (e Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

func (e Entry) clone() Entry {
	e.Keywords = slices.Clone(e.Keywords)
	return e
}

// Table is an immutable, ordered list of entries.
type Table struct {
	entries []Entry
}

// ErrInvalidEntry is returned (wrapped) by NewTable for malformed entries.
var ErrInvalidEntry = errors.New("invalid knowledge entry")

// NewTable validates entries and builds a Table preserving their order.
// Every entry needs a unique non-empty ID, at least one non-blank keyword and
// non-empty content. All problems are reported together.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: table has no entries", ErrInvalidEntry)
	}

	var errs []error
	seen := make(map[string]int, len(entries))
	copied := make([]Entry, 0, len(entries))

	for i, e := range entries {
		switch {
		case strings.TrimSpace(e.ID) == "":
			errs = append(errs, fmt.Errorf("%w: entry %d has empty id", ErrInvalidEntry, i))
		default:
			if prev, dup := seen[e.ID]; dup {
				errs = append(errs, fmt.Errorf("%w: entry %d duplicates id %q of entry %d", ErrInvalidEntry, i, e.ID, prev))
			}
			seen[e.ID] = i
		}
		if len(e.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("%w: entry %q has no keywords", ErrInvalidEntry, e.ID))
		}
		for _, kw := range e.Keywords {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Errorf("%w: entry %q has a blank keyword", ErrInvalidEntry, e.ID))
				break
			}
		}
		if strings.TrimSpace(e.Content) == "" {
			errs = append(errs, fmt.Errorf("%w: entry %q has empty content", ErrInvalidEntry, e.ID))
		}
		copied = append(copied, e.clone())
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Table{entries: copied}, nil
}

// MustNewTable is like NewTable but panics on error.
// Intended for tables compiled into the binary.
func MustNewTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Get returns the entry with the given ID.
func (t *Table) Get(id string) (Entry, bool) {
	for _, e := range t.entries {
		if e.ID == id {
			return e.clone(), true
		}
	}
	return Entry{}, false
}
