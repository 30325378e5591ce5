package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Geun-Oh/sift/internal/config"
	"github.com/Geun-Oh/sift/internal/trie"
)

// flagKeys maps flag names to config keys. Flags are bound when a command
// runs, so commands may share a key without overriding each other.
var flagKeys = map[string]string{
	"keywords": config.KeyKeywords,
	"format":   config.KeyFormat,
	"column":   config.KeyColumn,
	"word":     config.KeyWords,
	"verbose":  config.KeyVerbose,
	"output":   config.KeyOutput,
	"print":    config.KeyPrint,
	"mask":     config.KeyMask,
	"exclude":  config.KeyExclude,
	"before":   config.KeyBefore,
	"after":    config.KeyAfter,
	"stats":    config.KeyStats,
	"out-file": config.KeyOutFile,
}

type app struct {
	v       *viper.Viper
	cfgFile string
	noColor bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "sift",
		Short: "sift finds keywords from a keyword list in text",
		Long: `sift builds a prefix tree from a keyword list (CSV, plain lines or YAML)
and scans text for those keywords in a single left-to-right pass.

Use 'sift scan' for a file, 'sift watch' for streaming input such as log files,
commands or docker containers, and 'sift lookup' to query the keyword list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default .sift.yaml in . or $HOME)")
	pf.StringP("keywords", "k", "", "keyword file (.csv, .yaml/.yml, or one keyword per line)")
	pf.String("format", "auto", "keyword file format: auto, csv, lines, yaml")
	pf.String("column", "keyword", "CSV column holding the keywords")
	pf.StringSliceP("word", "w", nil, "inline keyword, may be repeated")
	pf.BoolVarP(&a.noColor, "no-color", "", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(newScanCmd(a), newWatchCmd(a), newLookupCmd(a))
	return rootCmd
}

// load binds the flags of the running command, reads the config file and
// returns the resolved configuration.
func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags: %w", bindErr)
	}

	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	if a.noColor {
		cfg.Color = false
	}

	setupLogging(cmd.ErrOrStderr(), cfg.Verbose)
	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("config loaded", "file", used)
	}
	return cfg, nil
}

// buildTrie loads the configured keywords and inserts them.
func buildTrie(cfg *config.Config) (*trie.Trie, error) {
	kws, err := cfg.Keywords()
	if err != nil {
		return nil, err
	}
	t := trie.Build(kws)
	slog.Debug("trie built", "keywords", len(kws), "distinct", t.Len(), "nodes", t.Nodes())
	return t, nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command and exits 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sift:", err)
		stop()
		os.Exit(1)
	}
}
