// Package pipeline orchestrates Source → Filter → Sink processing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/filter"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/sink"
	"github.com/Geun-Oh/sift/internal/source"
)

// Config holds pipeline configuration.
type Config struct {
	Source  source.Source
	Filters *filter.Chain         // must include a keyword filter to record hits
	Context *filter.ContextBuffer // optional context lines; wraps Filters
	Sinks   []sink.Sink
	Stats   *monitor.Stats
	Hits    *monitor.HitCounter // optional per-keyword counts

	ShowStats bool
	StatsOut  io.Writer // summary destination when ShowStats is set
}

// Run executes the pipeline: reads from source, filters, and writes to sinks.
// Blocks until the source is exhausted or ctx is cancelled.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Source == nil {
		return fmt.Errorf("pipeline: source is required")
	}
	if len(cfg.Sinks) == 0 {
		return fmt.Errorf("pipeline: at least one sink is required")
	}
	if cfg.Stats == nil {
		cfg.Stats = monitor.NewStats()
	}

	srcCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := cfg.Source.Start(srcCtx)
	if err != nil {
		return fmt.Errorf("pipeline: start source: %w", err)
	}
	slog.Debug("pipeline started", "source", cfg.Source.Name())

	runErr := consume(ctx, ch, cfg)
	cancel()

	// Flush and close sinks even when a write failed.
	var closeErrs []error
	for _, s := range cfg.Sinks {
		if err := s.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("pipeline: close %s: %w", s.Name(), err))
		}
	}
	if runErr != nil {
		return runErr
	}
	if err := errors.Join(closeErrs...); err != nil {
		return err
	}

	if cfg.ShowStats && cfg.StatsOut != nil {
		fmt.Fprintln(cfg.StatsOut)
		fmt.Fprintln(cfg.StatsOut, cfg.Stats.Summary())
		if cfg.Hits != nil {
			if sum := cfg.Hits.Summary(); sum != "" {
				fmt.Fprintln(cfg.StatsOut, sum)
			}
		}
	}

	slog.Debug("pipeline finished", "lines", cfg.Stats.Total(), "hits", cfg.Stats.Hits())
	return ctx.Err()
}

// consume reads ch until it is closed or ctx is done. A source blocked on
// input does not hold up cancellation; Run's deferred cancel stops it.
func consume(ctx context.Context, ch <-chan entry.Line, cfg *Config) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-ch:
			if !ok {
				return nil
			}
			for _, out := range Select(&l, cfg) {
				if err := write(cfg, &out); err != nil {
					return err
				}
			}
		}
	}
}

// Select applies the context buffer or the filter chain to one line and
// returns the lines to emit. Stats and hit counts are updated as a side
// effect.
func Select(l *entry.Line, cfg *Config) []entry.Line {
	cfg.Stats.RecordLine()

	if cfg.Context != nil {
		return cfg.Context.Process(l)
	}
	if cfg.Filters != nil && cfg.Filters.Len() > 0 && !cfg.Filters.Match(l) {
		return nil
	}
	return []entry.Line{*l}
}

func write(cfg *Config, l *entry.Line) error {
	if !l.Context && len(l.Hits) > 0 {
		cfg.Stats.RecordMatch(len(l.Hits))
		if cfg.Hits != nil {
			cfg.Hits.Add(l.Keywords()...)
		}
	}

	for _, s := range cfg.Sinks {
		if err := s.Write(l); err != nil {
			return fmt.Errorf("pipeline: write to %s: %w", s.Name(), err)
		}
	}
	return nil
}
