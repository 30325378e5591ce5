// Package monitor tracks how much text a run scanned and which keywords it
// reported. Counters are safe to update from the pipeline goroutine while the
// dashboard reads them.
package monitor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Stats counts scanned lines, lines with hits and reported keyword hits.
type Stats struct {
	lines   atomic.Uint64
	matched atomic.Uint64
	hits    atomic.Uint64
	started time.Time
}

// NewStats starts the clock for a run.
func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// RecordLine counts one scanned line.
func (s *Stats) RecordLine() { s.lines.Add(1) }

// RecordMatch counts a line that had n hits.
func (s *Stats) RecordMatch(n int) {
	s.matched.Add(1)
	s.hits.Add(uint64(n))
}

func (s *Stats) Total() uint64   { return s.lines.Load() }
func (s *Stats) Matched() uint64 { return s.matched.Load() }
func (s *Stats) Hits() uint64    { return s.hits.Load() }

// Elapsed is the time since NewStats.
func (s *Stats) Elapsed() time.Duration { return time.Since(s.started) }

// Rate is scanned lines per second.
func (s *Stats) Rate() float64 {
	return perSecond(s.Total(), s.Elapsed())
}

func perSecond(n uint64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// Summary renders the counters for the end-of-run report.
func (s *Stats) Summary() string {
	lines, matched, elapsed := s.Total(), s.Matched(), s.Elapsed()

	var pct float64
	if lines > 0 {
		pct = 100 * float64(matched) / float64(lines)
	}

	var b strings.Builder
	b.WriteString("── Scan ──\n")
	fmt.Fprintf(&b, "  lines    %d\n", lines)
	fmt.Fprintf(&b, "  matched  %d (%.1f%%)\n", matched, pct)
	fmt.Fprintf(&b, "  hits     %d\n", s.Hits())
	fmt.Fprintf(&b, "  elapsed  %s, %.0f lines/s", elapsed.Round(time.Millisecond), perSecond(lines, elapsed))
	return b.String()
}
