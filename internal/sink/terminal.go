package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/scanner"
)

var (
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// TerminalSink writes hits or highlighted lines to a writer.
type TerminalSink struct {
	w     *bufio.Writer
	mode  Mode
	color bool
	meta  bool
}

// NewTerminalSink creates a sink that writes to the given writer.
// If color is true, hits are highlighted with ANSI styles. If meta is true,
// ModeLines output is prefixed with the timestamp and stream.
func NewTerminalSink(w io.Writer, mode Mode, color, meta bool) *TerminalSink {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalSink{w: bufio.NewWriter(w), mode: mode, color: color, meta: meta}
}

// Write outputs a line according to the sink mode.
func (s *TerminalSink) Write(l *entry.Line) error {
	if s.mode == ModeHits {
		if l.Context {
			return nil
		}
		for _, h := range l.Hits {
			if _, err := fmt.Fprintln(s.w, h.Keyword); err != nil {
				return err
			}
		}
		return nil
	}

	var sb strings.Builder
	if s.meta {
		prefix := fmt.Sprintf("[%s][%s] ", l.Timestamp.Format(time.RFC3339), l.Stream)
		if s.color {
			prefix = metaStyle.Render(prefix)
		}
		sb.WriteString(prefix)
	}

	switch {
	case l.Context && s.color:
		sb.WriteString(contextStyle.Render(l.Text))
	case s.color:
		sb.WriteString(Highlight(l.Text, l.Hits, hitStyle.Render))
	default:
		sb.WriteString(l.Text)
	}

	_, err := fmt.Fprintln(s.w, sb.String())
	return err
}

// Flush writes buffered output.
func (s *TerminalSink) Flush() error { return s.w.Flush() }

// Close flushes the sink; the underlying writer is owned by the caller.
func (s *TerminalSink) Close() error { return s.Flush() }

// Name returns the sink identifier.
func (s *TerminalSink) Name() string { return "terminal" }

// Highlight wraps every hit span of text with render. Spans are rune offsets
// in order and never overlap.
func Highlight(text string, hits []scanner.Match, render func(...string) string) string {
	if len(hits) == 0 {
		return text
	}

	units := []rune(text)
	var sb strings.Builder
	pos := 0
	for _, h := range hits {
		if h.Start < pos || h.End > len(units) {
			continue
		}
		sb.WriteString(string(units[pos:h.Start]))
		sb.WriteString(render(string(units[h.Start:h.End])))
		pos = h.End
	}
	sb.WriteString(string(units[pos:]))
	return sb.String()
}
