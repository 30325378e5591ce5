package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotFound = errors.New("keyword not found")

func newLookupCmd(a *app) *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "lookup <prefix>",
		Short: "List keywords that start with a prefix",
		Long: `Lookup lists the loaded keywords starting with the prefix, sorted.
With --exact it only reports whether the keyword itself is in the list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			t, err := buildTrie(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exact {
				if !t.Contains(args[0]) {
					return fmt.Errorf("%w: %q", errNotFound, args[0])
				}
				fmt.Fprintln(out, args[0])
				return nil
			}

			found := t.WithPrefix(args[0])
			if len(found) == 0 {
				return fmt.Errorf("%w: no keyword starts with %q", errNotFound, args[0])
			}
			for _, kw := range found {
				fmt.Fprintln(out, kw)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "match the whole keyword instead of a prefix")
	return cmd
}
