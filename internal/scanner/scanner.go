// Package scanner finds keywords from a trie in text with one left-to-right
// pass.
//
// Each attempt walks down from the root and stops at the first terminal node
// it reaches, so when "ab" and "abc" are both keywords only "ab" is reported.
// After an attempt the cursor moves past every rune the attempt read, plus one
// more. Occurrences that start inside that span are never attempted.
package scanner

import (
	"github.com/Geun-Oh/sift/internal/trie"
)

// Match is one reported keyword and its rune span [Start, End) in the text.
type Match struct {
	Keyword string `json:"keyword"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Scanner matches text against a built trie. It keeps no state between calls,
// so one Scanner may be shared by goroutines once the trie is no longer
// mutated.
type Scanner struct {
	trie *trie.Trie
}

// New returns a Scanner over t.
func New(t *trie.Trie) *Scanner {
	return &Scanner{trie: t}
}

// Scan runs t over text and returns the matched keywords in order.
func Scan(t *trie.Trie, text string) []string {
	return New(t).Scan(text)
}

// Scan returns the matched keywords in text, in the order they were found.
func (s *Scanner) Scan(text string) []string {
	return s.Match(trie.Units(text))
}

// Match is Scan on already segmented text.
func (s *Scanner) Match(text []rune) []string {
	found := s.FindUnits(text)
	if len(found) == 0 {
		return nil
	}
	out := make([]string, len(found))
	for i, m := range found {
		out[i] = m.Keyword
	}
	return out
}

// Find returns the matches in text with their rune offsets.
func (s *Scanner) Find(text string) []Match {
	return s.FindUnits(trie.Units(text))
}

// FindUnits is Find on already segmented text.
func (s *Scanner) FindUnits(text []rune) []Match {
	var out []Match
	for pos := 0; pos < len(text); {
		n, ok := s.descend(text[pos:])
		if ok {
			out = append(out, Match{
				Keyword: string(text[pos : pos+n]),
				Start:   pos,
				End:     pos + n,
			})
		}
		pos += n + 1
	}
	return out
}

// Contains reports whether Find would return at least one match.
func (s *Scanner) Contains(text string) bool {
	units := trie.Units(text)
	for pos := 0; pos < len(units); {
		n, ok := s.descend(units[pos:])
		if ok {
			return true
		}
		pos += n + 1
	}
	return false
}

// Mask replaces every rune of every match in text with mask.
func (s *Scanner) Mask(text string, mask rune) string {
	units := trie.Units(text)
	found := s.FindUnits(units)
	if len(found) == 0 {
		return text
	}
	for _, m := range found {
		for i := m.Start; i < m.End; i++ {
			units[i] = mask
		}
	}
	return string(units)
}

// descend walks from the root over rest. It returns how many runes it read and
// whether it stopped on a terminal node; on success the matched keyword is
// rest[:consumed].
func (s *Scanner) descend(rest []rune) (consumed int, ok bool) {
	cur := s.trie.Root()
	for consumed < len(rest) {
		r := rest[consumed]
		consumed++

		next, found := cur.Child(r)
		if !found {
			return consumed, false
		}
		if next.Terminal() {
			return consumed, true
		}
		cur = next
	}
	return consumed, false
}
