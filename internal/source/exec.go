package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Geun-Oh/sift/internal/entry"
)

// ExecSource executes a command and streams its stdout/stderr as lines.
type ExecSource struct {
	name    string
	command string
	args    []string
	seq     atomic.Uint64
}

// NewExecSource creates a source that runs the given command with arguments.
func NewExecSource(command string, args []string) *ExecSource {
	return &ExecSource{
		name:    fmt.Sprintf("exec:%s", command),
		command: command,
		args:    args,
	}
}

// NewDockerSource reads a container's logs through `docker logs`.
func NewDockerSource(container string, follow bool) *ExecSource {
	args := []string{"logs"}
	if follow {
		args = append(args, "--follow")
	}
	args = append(args, container)

	s := NewExecSource("docker", args)
	s.name = fmt.Sprintf("docker:%s", container)
	return s
}

// Name returns the source identifier.
func (s *ExecSource) Name() string {
	return s.name
}

// Start executes the command and returns a channel of lines.
// The channel is closed when the command exits or ctx is cancelled.
func (s *ExecSource) Start(ctx context.Context) (<-chan entry.Line, error) {
	cmd := exec.CommandContext(ctx, s.command, s.args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s %s: %w", s.command, strings.Join(s.args, " "), err)
	}

	ch := make(chan entry.Line, 256)
	var wg sync.WaitGroup
	wg.Add(2)

	go s.readStream(ctx, "stdout", stdoutPipe, ch, &wg)
	go s.readStream(ctx, "stderr", stderrPipe, ch, &wg)

	go func() {
		wg.Wait()
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			slog.Warn("command exited", "source", s.Name(), "err", err)
		}
		close(ch)
	}()

	return ch, nil
}

func (s *ExecSource) readStream(ctx context.Context, stream string, r io.ReadCloser, ch chan<- entry.Line, wg *sync.WaitGroup) {
	defer wg.Done()

	lr := lineReader{stream: stream, source: s.Name(), seq: &s.seq}
	if !lr.drain(ctx, newScanner(r), ch) {
		// Keep the pipe drained so the child does not block on a full buffer.
		_, _ = io.Copy(io.Discard, r)
	}
}
