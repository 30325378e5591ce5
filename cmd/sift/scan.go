package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Geun-Oh/sift/internal/config"
	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/scanner"
	"github.com/Geun-Oh/sift/internal/sink"
	"github.com/Geun-Oh/sift/internal/source"
)

func newScanCmd(a *app) *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "scan [text-file|-]",
		Short: "Scan a whole text file and print each matched keyword",
		Long: `Scan reads the whole text (stdin when the file is '-' or omitted), scans it
once and prints every matched keyword on its own line, in the order found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runScan(cmd, cfg, path, count)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "text", "output format: text or json")
	f.String("mask", "", "print the text with every match replaced by this character")
	f.BoolVarP(&count, "count", "c", false, "print per-keyword hit counts after the matches")
	return cmd
}

func runScan(cmd *cobra.Command, cfg *config.Config, path string, count bool) error {
	t, err := buildTrie(cfg)
	if err != nil {
		return err
	}
	text, err := source.ReadText(path)
	if err != nil {
		return err
	}

	s := scanner.New(t)
	out := cmd.OutOrStdout()

	if cfg.Mask != 0 {
		_, err := fmt.Fprint(out, s.Mask(text, cfg.Mask))
		return err
	}

	matches := s.Find(text)

	switch cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		for _, m := range matches {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
	default:
		name := "stdin"
		if path != "-" {
			name = filepath.Base(path)
		}
		ts := sink.NewTerminalSink(out, sink.ModeHits, false, false)
		if err := ts.Write(&entry.Line{Source: name, Text: text, Hits: matches}); err != nil {
			return err
		}
		if err := ts.Close(); err != nil {
			return err
		}
	}

	if count {
		hc := monitor.NewHitCounter()
		for _, m := range matches {
			hc.Add(m.Keyword)
		}
		if sum := hc.Summary(); sum != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), sum)
		}
	}
	return nil
}
