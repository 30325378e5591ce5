package filter

import (
	"fmt"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/scanner"
	"github.com/Geun-Oh/sift/internal/trie"
)

// ExcludeFilter is a negative filter: Match returns true if the line should
// PASS, i.e. the scanner finds none of the excluded keywords in it.
type ExcludeFilter struct {
	count   int
	scanner *scanner.Scanner
}

// NewExcludeFilter creates a filter that rejects lines containing any of the
// keywords.
func NewExcludeFilter(keywords ...string) *ExcludeFilter {
	t := trie.Build(keywords)
	return &ExcludeFilter{count: t.Len(), scanner: scanner.New(t)}
}

// Match returns true if the line does NOT contain any excluded keyword.
func (f *ExcludeFilter) Match(l *entry.Line) bool {
	return !f.scanner.Contains(l.Text)
}

// Name returns the filter description.
func (f *ExcludeFilter) Name() string {
	return fmt.Sprintf("exclude:%d", f.count)
}
