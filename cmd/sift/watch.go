package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/sift/internal/config"
	"github.com/Geun-Oh/sift/internal/filter"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/pipeline"
	"github.com/Geun-Oh/sift/internal/sink"
	"github.com/Geun-Oh/sift/internal/source"
	"github.com/Geun-Oh/sift/internal/tui"
)

type watchOptions struct {
	file   string
	follow bool
	docker string
	tui    bool
}

func newWatchCmd(a *app) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch [flags] [-- command [args...]]",
		Short: "Scan streaming input line by line",
		Long: `Watch scans input line by line and prints the keywords found in each line.
Input is a file (--file, optionally followed with -f), a docker container
(--docker), the output of a command given after '--', or stdin.`,
		Example: `  sift watch -k words.csv --file app.log -f
  sift watch -k words.txt --print lines -B 2 -A 2 -- kubectl logs -f web
  tail -f app.log | sift watch -w password -w token --tui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd, cfg, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "read lines from this file")
	f.BoolVarP(&opts.follow, "follow", "f", false, "keep reading as the file or container log grows")
	f.StringVar(&opts.docker, "docker", "", "read the logs of this docker container")
	f.BoolVar(&opts.tui, "tui", false, "show a live dashboard instead of printing")
	f.StringP("output", "o", "text", "output format: text or json")
	f.String("print", "hits", "text output: hits (one keyword per line) or lines (whole lines)")
	f.StringSlice("exclude", nil, "drop lines containing any of these keywords")
	f.IntP("before", "B", 0, "lines of context before each matching line")
	f.IntP("after", "A", 0, "lines of context after each matching line")
	f.Bool("stats", false, "print a summary when the input ends")
	f.String("out-file", "", "also append the output to this file")
	return cmd
}

func selectSource(opts watchOptions, args []string) (source.Source, error) {
	set := 0
	for _, on := range []bool{opts.file != "", opts.docker != "", len(args) > 0} {
		if on {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("watch: use only one of --file, --docker or a command")
	}

	switch {
	case opts.file != "":
		return source.NewFileSource(opts.file, opts.follow), nil
	case opts.docker != "":
		return source.NewDockerSource(opts.docker, opts.follow), nil
	case len(args) > 0:
		return source.NewExecSource(args[0], args[1:]), nil
	default:
		return source.NewStdinSource(), nil
	}
}

func runWatch(cmd *cobra.Command, cfg *config.Config, opts watchOptions, args []string) error {
	src, err := selectSource(opts, args)
	if err != nil {
		return err
	}
	t, err := buildTrie(cfg)
	if err != nil {
		return err
	}

	chain := filter.NewChain(filter.MatchAll, filter.NewTrieFilter(t))
	if len(cfg.Exclude) > 0 {
		chain.Add(filter.NewExcludeFilter(cfg.Exclude...))
	}

	pc := &pipeline.Config{
		Source:    src,
		Filters:   chain,
		Stats:     monitor.NewStats(),
		Hits:      monitor.NewHitCounter(),
		ShowStats: cfg.Stats,
		StatsOut:  cmd.ErrOrStderr(),
	}
	if cfg.Before > 0 || cfg.After > 0 {
		pc.Context = filter.NewContextBuffer(chain, cfg.Before, cfg.After)
	}

	if cfg.OutFile != "" {
		fs, err := sink.NewFileSink(cfg.OutFile, cfg.Output, cfg.Print)
		if err != nil {
			return err
		}
		pc.Sinks = append(pc.Sinks, fs)
	}

	slog.Debug("watch", "source", src.Name(), "filters", chain.Name())

	if opts.tui {
		return ignoreCanceled(tui.Run(cmd.Context(), &tui.RunConfig{Pipeline: pc}))
	}

	out := cmd.OutOrStdout()
	if cfg.Output == config.OutputJSON {
		pc.Sinks = append(pc.Sinks, sink.NewJSONSink(out))
	} else {
		pc.Sinks = append(pc.Sinks, sink.NewTerminalSink(out, cfg.Print, cfg.Color, cfg.Print == sink.ModeLines))
	}

	if err := ignoreCanceled(pipeline.Run(cmd.Context(), pc)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// ignoreCanceled treats an interrupt as a normal end of input.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
