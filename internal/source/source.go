// Package source defines the Source interface and the text inputs sift reads.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Geun-Oh/sift/internal/entry"
)

// ErrInvalidUTF8 is returned when a whole-text input cannot be decoded.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// Source reads text and emits it line by line on a channel.
// Implementations must close the returned channel when the source is exhausted
// or the context is cancelled.
type Source interface {
	// Start begins reading from the source. The returned channel will receive
	// lines until the source is exhausted or ctx is cancelled.
	Start(ctx context.Context) (<-chan entry.Line, error)

	// Name returns a human-readable identifier for this source.
	Name() string
}

// ReadText reads the whole file at path, or stdin when path is "-" or empty.
// Text that is not valid UTF-8 is rejected instead of being scanned.
func ReadText(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
		path = "stdin"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read text %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read text %s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

// lineReader turns the lines of r into entries. It is shared by every
// line-oriented source.
type lineReader struct {
	stream string
	source string
	seq    *atomic.Uint64
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Increase buffer size to 1MB for long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

// drain reads lines until EOF or cancellation. It returns false when ctx was
// cancelled.
func (lr lineReader) drain(ctx context.Context, scanner *bufio.Scanner, ch chan<- entry.Line) bool {
	for scanner.Scan() {
		if !lr.emit(ctx, scanner.Text(), ch) {
			return false
		}
	}
	return true
}

// emit sends one line. It returns false when ctx was cancelled first.
func (lr lineReader) emit(ctx context.Context, text string, ch chan<- entry.Line) bool {
	l := entry.Line{
		Timestamp: time.Now(),
		Stream:    lr.stream,
		Source:    lr.source,
		Text:      decode(text),
		Seq:       lr.seq.Add(1),
	}
	select {
	case <-ctx.Done():
		return false
	case ch <- l:
		return true
	}
}

// decode replaces invalid UTF-8 sequences so the scanner only sees code points.
func decode(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
