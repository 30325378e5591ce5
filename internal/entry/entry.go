// Package entry defines the Line type that flows through the sift pipeline.
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/Geun-Oh/sift/internal/scanner"
)

// Line is one unit of streamed text together with the keywords found in it.
type Line struct {
	Timestamp time.Time
	Stream    string          // stdout, stderr, file, stdin, docker
	Source    string          // source identifier (filename, command, container)
	Text      string          // decoded line text, always valid UTF-8
	Seq       uint64          // monotonic sequence number within the source
	Hits      []scanner.Match // set by the keyword filter
	Context   bool            // emitted as before/after context, not as a hit
}

// Keywords returns the matched keywords in order.
func (l *Line) Keywords() []string {
	if len(l.Hits) == 0 {
		return nil
	}
	out := make([]string, len(l.Hits))
	for i, h := range l.Hits {
		out[i] = h.Keyword
	}
	return out
}

// Format returns a plain one-line representation of the entry.
func (l *Line) Format() string {
	ts := l.Timestamp.Format(time.RFC3339)
	if len(l.Hits) > 0 {
		return fmt.Sprintf("[%s][%s][%s]: %s", ts, l.Stream, strings.Join(l.Keywords(), ","), l.Text)
	}
	return fmt.Sprintf("[%s][%s]: %s", ts, l.Stream, l.Text)
}
