package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/pkg/htmlx"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

func renderCmd(a *app) *cobra.Command {
	var showJournal bool

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Apply documents in sequence and print the final HTML",
		Long: `Render each FILE in order into the same tree, applying the journal
of every step, and print the HTML of the final tree.

Examples:
  vrecon render step1.html step2.html step3.html
  vrecon render step1.html step2.html --journal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd.Context(), args, showJournal)
		},
	}

	cmd.Flags().BoolVarP(&showJournal, "journal", "j", false, "Print the journal of every step")

	return cmd
}

func (a *app) runRender(ctx context.Context, paths []string, showJournal bool) error {
	root := reconcile.NewRoot(a.engine())

	for _, path := range paths {
		desc, err := readDocument(path)
		if err != nil {
			return err
		}
		stats, err := root.Render(ctx, desc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		a.logger.Info("rendered", "file", path, "entries", stats.Entries, "renders", stats.Renders)

		if showJournal {
			fmt.Fprintln(a.stdout, dimColor.Sprintf("# %s", path))
			if err := printJournal(a.stdout, a.cfg.Output.Format, stats); err != nil {
				return err
			}
		}
	}

	html, err := htmlx.String(root.Node())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, html)
	return nil
}
