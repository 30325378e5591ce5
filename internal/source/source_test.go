package source

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/sift/internal/entry"
)

func collect(t *testing.T, ch <-chan entry.Line) []entry.Line {
	t.Helper()
	var out []entry.Line
	timeout := time.After(5 * time.Second)
	for {
		select {
		case l, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, l)
		case <-timeout:
			t.Fatal("source did not close its channel")
		}
	}
}

func texts(lines []entry.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(good, []byte("这是敏感词\nline two"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("ok \xff\xfe"), 0o644))

	text, err := ReadText(good)
	require.NoError(t, err)
	assert.Equal(t, "这是敏感词\nline two", text)

	_, err = ReadText(bad)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = ReadText(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond \xff\nthird\n"), 0o644))

	s := NewFileSource(path, false)
	assert.Equal(t, "file:"+path, s.Name())

	ch, err := s.Start(context.Background())
	require.NoError(t, err)

	lines := collect(t, ch)
	assert.Equal(t, []string{"first", "second \uFFFD", "third"}, texts(lines))
	for i, l := range lines {
		assert.Equal(t, uint64(i+1), l.Seq)
		assert.Equal(t, "file", l.Stream)
		assert.Equal(t, s.Name(), l.Source)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope"), false).Start(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	s := NewFileSource(path, true)
	s.interval = 10 * time.Millisecond

	ch, err := s.Start(ctx)
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, "one", first.Text)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case l := <-ch:
		assert.Equal(t, "two", l.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("appended line not picked up")
	}

	cancel()
	collect(t, ch)
}

func TestFileSourceFollowJoinsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("pass"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewFileSource(path, true)
	s.interval = 10 * time.Millisecond

	ch, err := s.Start(ctx)
	require.NoError(t, err)

	// Let the reader hit EOF on the unterminated tail at least once.
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("word\r\nnext\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var got []string
	for len(got) < 2 {
		select {
		case l := <-ch:
			got = append(got, l.Text)
		case <-time.After(5 * time.Second):
			t.Fatalf("lines not picked up, got %q", got)
		}
	}
	assert.Equal(t, []string{"password", "next"}, got)
}

func TestReaderSourceStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := NewReaderSource(pr).Start(ctx)
	require.NoError(t, err)

	cancel()
	assert.Empty(t, collect(t, ch))
}

func TestReaderSource(t *testing.T) {
	s := NewReaderSource(strings.NewReader("a cat\nno match\n"))
	assert.Equal(t, "stdin", s.Name())

	ch, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a cat", "no match"}, texts(collect(t, ch)))
}

func TestExecSource(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	s := NewExecSource(sh, []string{"-c", "echo out; echo err 1>&2"})
	ch, err := s.Start(context.Background())
	require.NoError(t, err)

	lines := collect(t, ch)
	require.Len(t, lines, 2)

	streams := map[string]string{}
	for _, l := range lines {
		streams[l.Stream] = l.Text
	}
	assert.Equal(t, map[string]string{"stdout": "out", "stderr": "err"}, streams)
}

func TestDockerSourceName(t *testing.T) {
	s := NewDockerSource("web", true)
	assert.Equal(t, "docker:web", s.Name())
	assert.Equal(t, "docker", s.command)
	assert.Equal(t, []string{"logs", "--follow", "web"}, s.args)
}
