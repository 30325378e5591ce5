package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/scanner"
)

// jsonLine is the serialization format for JSON Lines output.
type jsonLine struct {
	Timestamp string          `json:"timestamp"`
	Stream    string          `json:"stream"`
	Source    string          `json:"source,omitempty"`
	Seq       uint64          `json:"seq"`
	Text      string          `json:"text"`
	Context   bool            `json:"context,omitempty"`
	Hits      []scanner.Match `json:"hits,omitempty"`
}

// JSONSink writes lines as JSON Lines (one JSON object per line).
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSON Lines sink writing to the given writer.
func NewJSONSink(w io.Writer) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONSink{enc: enc}
}

// Write serializes a line as a single JSON object.
func (s *JSONSink) Write(l *entry.Line) error {
	return s.enc.Encode(jsonLine{
		Timestamp: l.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		Stream:    l.Stream,
		Source:    l.Source,
		Seq:       l.Seq,
		Text:      l.Text,
		Context:   l.Context,
		Hits:      l.Hits,
	})
}

// Flush is a no-op for JSON sink.
func (s *JSONSink) Flush() error { return nil }

// Close is a no-op for JSON sink.
func (s *JSONSink) Close() error { return nil }

// Name returns the sink identifier.
func (s *JSONSink) Name() string { return "json" }

// FileSink writes lines to a file.
type FileSink struct {
	inner Sink
	file  *os.File
}

// NewFileSink creates a sink that appends to the given file path.
// The format parameter selects the inner formatter: "json" or "text" (default).
func NewFileSink(path string, format string, mode Mode) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}

	var inner Sink
	switch format {
	case "json":
		inner = NewJSONSink(f)
	default:
		inner = NewTerminalSink(f, mode, false, mode == ModeLines)
	}

	return &FileSink{inner: inner, file: f}, nil
}

// Write delegates to the inner sink.
func (s *FileSink) Write(l *entry.Line) error {
	return s.inner.Write(l)
}

// Flush flushes the inner sink and syncs the file to disk.
func (s *FileSink) Flush() error {
	if err := s.inner.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	if err := s.Flush(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// Name returns the sink identifier.
func (s *FileSink) Name() string {
	return "file:" + s.file.Name()
}
