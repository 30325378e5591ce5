package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/pipeline"
)

// RunConfig holds configuration for the TUI pipeline. Sinks in Pipeline are
// written alongside the dashboard and may be empty.
type RunConfig struct {
	Pipeline *pipeline.Config
}

// Run starts the dashboard fed by the pipeline source.
// This function blocks until the user quits.
func Run(ctx context.Context, cfg *RunConfig) error {
	// Cancel the source when the TUI exits.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pc := cfg.Pipeline
	if pc.Stats == nil {
		pc.Stats = monitor.NewStats()
	}
	if pc.Hits == nil {
		pc.Hits = monitor.NewHitCounter()
	}

	model := NewModel(pc.Stats, pc.Hits, pc.Source.Name())
	program := tea.NewProgram(model, tea.WithAltScreen())

	ch, err := pc.Source.Start(ctx)
	if err != nil {
		return fmt.Errorf("tui: start source: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		feed(ctx, ch, pc, program.Send)
	}()

	_, err = program.Run()

	// Ensure source is stopped and consumer finishes.
	cancel()
	wg.Wait()
	for _, s := range pc.Sinks {
		_ = s.Close()
	}

	return err
}

// feed runs each source line through the pipeline selection, records hits,
// writes to the extra sinks and hands the result to the dashboard. It sends
// DoneMsg when the source closes and returns early when ctx is done.
func feed(ctx context.Context, ch <-chan entry.Line, pc *pipeline.Config, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case l, ok := <-ch:
			if !ok {
				send(DoneMsg{})
				return
			}
			for _, out := range pipeline.Select(&l, pc) {
				if !out.Context && len(out.Hits) > 0 {
					pc.Stats.RecordMatch(len(out.Hits))
					pc.Hits.Add(out.Keywords()...)
				}
				for _, s := range pc.Sinks {
					if err := s.Write(&out); err != nil {
						slog.Debug("tui: sink write failed", "sink", s.Name(), "err", err)
					}
				}
				send(LineMsg(out))
			}
		}
	}
}
