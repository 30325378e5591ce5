package source

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/Geun-Oh/sift/internal/entry"
)

// StdinSource reads lines from a reader, os.Stdin by default (pipe mode).
type StdinSource struct {
	r   io.Reader
	seq atomic.Uint64
}

// NewStdinSource creates a source that reads from stdin.
func NewStdinSource() *StdinSource {
	return NewReaderSource(os.Stdin)
}

// NewReaderSource creates a stdin-style source over any reader. If r is an
// io.Closer it is closed when the context passed to Start is cancelled, so a
// read blocked on an idle terminal or pipe returns.
func NewReaderSource(r io.Reader) *StdinSource {
	return &StdinSource{r: r}
}

// Name returns the source identifier.
func (s *StdinSource) Name() string {
	return "stdin"
}

// Start reads from the reader and returns a channel of lines.
func (s *StdinSource) Start(ctx context.Context) (<-chan entry.Line, error) {
	ch := make(chan entry.Line, 256)
	lr := lineReader{stream: "stdin", source: s.Name(), seq: &s.seq}

	stop := func() bool { return false }
	if c, ok := s.r.(io.Closer); ok {
		stop = context.AfterFunc(ctx, func() { _ = c.Close() })
	}

	go func() {
		defer close(ch)
		defer stop()
		lr.drain(ctx, newScanner(s.r), ch)
	}()

	return ch, nil
}
