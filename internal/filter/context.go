package filter

import (
	"github.com/Geun-Oh/sift/internal/entry"
)

// ContextBuffer provides grep-like --before / --after context lines.
// It wraps a primary filter and buffers lines to emit context around matches.
type ContextBuffer struct {
	filter     Filter
	beforeN    int
	afterN     int
	ring       []entry.Line // circular buffer of recent lines
	ringPos    int
	lastOut    int // ringPos of the last emitted line, so context is not repeated
	afterCount int // remaining "after" lines to emit
}

// NewContextBuffer creates a context-aware filter wrapper.
// before is the number of lines before a match to include.
// after is the number of lines after a match to include.
func NewContextBuffer(f Filter, before, after int) *ContextBuffer {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}
	return &ContextBuffer{
		filter:  f,
		beforeN: before,
		afterN:  after,
		ring:    make([]entry.Line, before+1),
	}
}

// Process evaluates a line and returns the lines to emit, including context.
// Context lines have Context set. Returns nil if nothing should be emitted.
func (cb *ContextBuffer) Process(l *entry.Line) []entry.Line {
	isMatch := cb.filter.Match(l)

	cb.ring[cb.ringPos%len(cb.ring)] = *l
	cb.ringPos++

	if isMatch {
		var result []entry.Line

		// Emit "before" context lines that were not already emitted.
		start := cb.ringPos - cb.beforeN - 1
		if start < cb.lastOut {
			start = cb.lastOut
		}
		for i := start; i < cb.ringPos-1; i++ {
			ctx := cb.ring[i%len(cb.ring)]
			ctx.Context = true
			ctx.Hits = nil
			result = append(result, ctx)
		}

		result = append(result, *l)
		cb.lastOut = cb.ringPos
		cb.afterCount = cb.afterN
		return result
	}

	if cb.afterCount > 0 {
		cb.afterCount--
		cb.lastOut = cb.ringPos
		ctx := *l
		ctx.Context = true
		ctx.Hits = nil
		return []entry.Line{ctx}
	}

	return nil
}

// Name returns the filter description.
func (cb *ContextBuffer) Name() string {
	return "context(" + cb.filter.Name() + ")"
}
