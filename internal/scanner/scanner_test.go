package scanner

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/sift/internal/trie"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     []string
	}{
		{"single match", []string{"cat"}, "a cat sat", []string{"cat"}},
		{"no match", []string{"zzz"}, "hello world", nil},
		{"disjoint matches", []string{"cat", "dog"}, "cat dog", []string{"cat", "dog"}},
		// The failed attempt at the first 'd' reads "d " and the extra step
		// skips the second 'd', so "dog" is never attempted at its start.
		{"skipped after failed attempt", []string{"cat", "dog"}, "cat and dog", []string{"cat"}},
		{"shortest prefix wins", []string{"ab", "abc"}, "abcabc", []string{"ab", "ab"}},
		{"no overlapping matches", []string{"aa"}, "aaaa", []string{"aa"}},
		{"failed attempt skips ahead", []string{"ab"}, "aab", nil},
		{"duplicates reported", []string{"go"}, "go go go", []string{"go", "go", "go"}},
		{"keyword at end", []string{"end"}, "x end", []string{"end"}},
		{"partial keyword at end", []string{"ending"}, "x end", nil},
		{"empty text", []string{"cat"}, "", nil},
		{"empty trie", nil, "cat", nil},
		{"only empty keywords", []string{""}, "cat", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(trie.Build(tt.keywords), tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanIdempotentInsert(t *testing.T) {
	once := trie.Build([]string{"ab", "ba"})
	twice := trie.Build([]string{"ab", "ba", "ab", "ba"})

	for _, text := range []string{"", "ab", "abba", "babab", "xxabyyba", "aabbaabb"} {
		assert.Equal(t, Scan(once, text), Scan(twice, text), "text %q", text)
	}
}

func TestScanUnicode(t *testing.T) {
	cjk := Scan(trie.Build([]string{"敏感词"}), "这是敏感词测试")
	ascii := Scan(trie.Build([]string{"abc"}), "xyabcdz")

	assert.Equal(t, []string{"敏感词"}, cjk)
	assert.Equal(t, []string{"abc"}, ascii)

	s := New(trie.Build([]string{"敏感词"}))
	a := New(trie.Build([]string{"abc"}))
	cm := s.Find("这是敏感词测试")
	am := a.Find("xyabcdz")
	require.Len(t, cm, 1)
	require.Len(t, am, 1)
	assert.Equal(t, am[0].Start, cm[0].Start)
	assert.Equal(t, am[0].End, cm[0].End)
}

func TestFindOffsets(t *testing.T) {
	s := New(trie.Build([]string{"cat", "dog"}))

	got := s.Find("cat dog")
	assert.Equal(t, []Match{
		{Keyword: "cat", Start: 0, End: 3},
		{Keyword: "dog", Start: 4, End: 7},
	}, got)

	got = s.Find("héé cat")
	assert.Equal(t, []Match{{Keyword: "cat", Start: 4, End: 7}}, got)
}

func TestMatchOnUnits(t *testing.T) {
	s := New(trie.Build([]string{"ab"}))
	assert.Equal(t, []string{"ab"}, s.Match([]rune("x ab")))
	assert.Nil(t, s.Match(nil))
}

func TestContains(t *testing.T) {
	s := New(trie.Build([]string{"cat", "dog"}))

	assert.True(t, s.Contains("a cat"))
	assert.True(t, s.Contains("cat dog"))
	assert.False(t, s.Contains("and dog"))
	assert.False(t, s.Contains(""))
	assert.False(t, New(trie.New()).Contains("cat"))
}

func TestMask(t *testing.T) {
	s := New(trie.Build([]string{"cat", "敏感"}))

	assert.Equal(t, "a *** sat", s.Mask("a cat sat", '*'))
	assert.Equal(t, "**词", s.Mask("敏感词", '*'))
	assert.Equal(t, "nothing", s.Mask("nothing", '*'))
}

func TestConcurrentScans(t *testing.T) {
	s := New(trie.Build([]string{"cat", "dog"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, []string{"cat", "dog"}, s.Scan("cat dog"))
			}
		}()
	}
	wg.Wait()
}
