package monitor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// KeywordCount is one row of a HitCounter report.
type KeywordCount struct {
	Keyword string
	Count   int
}

// HitCounter counts hits per keyword. It is safe for concurrent use.
type HitCounter struct {
	mu     sync.Mutex
	counts map[string]int
	order  []string // first-seen order, for stable ties
}

// NewHitCounter creates an empty counter.
func NewHitCounter() *HitCounter {
	return &HitCounter{counts: make(map[string]int)}
}

// Add counts every keyword in kws.
func (c *HitCounter) Add(kws ...string) {
	if len(kws) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, kw := range kws {
		if _, ok := c.counts[kw]; !ok {
			c.order = append(c.order, kw)
		}
		c.counts[kw]++
	}
}

// Count returns the hits recorded for kw.
func (c *HitCounter) Count(kw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kw]
}

// Total returns the number of hits over all keywords.
func (c *HitCounter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Top returns the n most frequent keywords, most frequent first. Ties keep the
// order in which keywords were first seen. n <= 0 returns all of them.
func (c *HitCounter) Top(n int) []KeywordCount {
	c.mu.Lock()
	out := make([]KeywordCount, 0, len(c.order))
	for _, kw := range c.order {
		out = append(out, KeywordCount{Keyword: kw, Count: c.counts[kw]})
	}
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Summary returns a formatted table of hit counts.
func (c *HitCounter) Summary() string {
	rows := c.Top(0)
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("── Keywords ──\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-30s %d hits\n", r.Keyword, r.Count))
	}
	sb.WriteString("──────────────")
	return sb.String()
}
