package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Geun-Oh/sift/internal/entry"
)

// FileSource reads lines from a file, optionally following new writes (tail -f).
type FileSource struct {
	path     string
	follow   bool
	interval time.Duration
	seq      atomic.Uint64
}

// NewFileSource creates a source that reads from a file.
// If follow is true, it continues reading as new lines are appended.
func NewFileSource(path string, follow bool) *FileSource {
	return &FileSource{
		path:     path,
		follow:   follow,
		interval: 100 * time.Millisecond,
	}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Start opens the file and returns a channel of lines.
func (s *FileSource) Start(ctx context.Context) (<-chan entry.Line, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", s.path, err)
	}

	ch := make(chan entry.Line, 256)
	lr := lineReader{stream: "file", source: s.Name(), seq: &s.seq}

	go func() {
		defer close(ch)
		defer f.Close()

		if !s.follow {
			lr.drain(ctx, newScanner(f), ch)
			return
		}
		s.tail(ctx, bufio.NewReaderSize(f, 64*1024), lr, ch)
	}()

	return ch, nil
}

// tail emits complete lines only. Text after the last newline is held until
// the writer finishes the line, so a line written in several appends is
// scanned as one.
func (s *FileSource) tail(ctx context.Context, r *bufio.Reader, lr lineReader, ch chan<- entry.Line) {
	var partial strings.Builder
	for {
		chunk, err := r.ReadString('\n')
		partial.WriteString(chunk)

		switch {
		case err == nil:
			line := strings.TrimSuffix(strings.TrimSuffix(partial.String(), "\n"), "\r")
			partial.Reset()
			if !lr.emit(ctx, line, ch) {
				return
			}
			continue
		case !errors.Is(err, io.EOF):
			slog.Warn("follow stopped", "source", s.Name(), "err", err)
			return
		}

		// Poll for appended data.
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}
