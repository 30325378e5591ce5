package filter

import (
	"fmt"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/scanner"
	"github.com/Geun-Oh/sift/internal/trie"
)

// KeywordFilter passes lines that contain at least one keyword of its trie and
// records the hits on the line.
type KeywordFilter struct {
	trie    *trie.Trie
	scanner *scanner.Scanner
}

// NewKeywordFilter builds a trie from keywords. The trie is not modified
// afterwards, so the filter can be shared.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	return NewTrieFilter(trie.Build(keywords))
}

// NewTrieFilter wraps an already built trie.
func NewTrieFilter(t *trie.Trie) *KeywordFilter {
	return &KeywordFilter{trie: t, scanner: scanner.New(t)}
}

// Match scans the line text and stores the hits in l.Hits.
func (f *KeywordFilter) Match(l *entry.Line) bool {
	l.Hits = f.scanner.Find(l.Text)
	return len(l.Hits) > 0
}

// Name returns the filter description.
func (f *KeywordFilter) Name() string {
	return fmt.Sprintf("keywords:%d", f.trie.Len())
}
