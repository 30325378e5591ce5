// Package sink defines the Sink interface for pipeline output.
package sink

import (
	"fmt"

	"github.com/Geun-Oh/sift/internal/entry"
)

// Sink receives selected lines and writes them to an output destination.
type Sink interface {
	// Write outputs a single line.
	Write(l *entry.Line) error

	// Flush ensures all buffered output is written.
	Flush() error

	// Close releases resources held by the sink.
	Close() error

	// Name returns a human-readable identifier for this sink.
	Name() string
}

// Mode selects what a text sink prints for each line.
type Mode int

const (
	// ModeHits prints every matched keyword on its own line.
	ModeHits Mode = iota
	// ModeLines prints the whole line with its hits highlighted.
	ModeLines
)

// ParseMode converts "hits" or "lines" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "hits":
		return ModeHits, nil
	case "lines":
		return ModeLines, nil
	default:
		return 0, fmt.Errorf("unknown print mode %q (want hits or lines)", s)
	}
}
