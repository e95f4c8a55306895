package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/pkg/htmlx"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func diffCmd(a *app) *cobra.Command {
	var showHTML bool

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the journal that turns OLD into NEW",
		Long: `Render OLD into an empty tree, then diff NEW against it and print
the journal of mutations.

Elements with a "key" attribute are matched by key, so reordered
siblings produce Move entries instead of replacements.

Examples:
  vrecon diff old.html new.html
  vrecon diff old.html new.html --format json
  vrecon diff old.html new.html --html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiff(cmd.Context(), args[0], args[1], showHTML)
		},
	}

	cmd.Flags().BoolVar(&showHTML, "html", false, "Also print a line diff of the rendered HTML")

	return cmd
}

func (a *app) runDiff(ctx context.Context, oldPath, newPath string, showHTML bool) error {
	oldDesc, err := readDocument(oldPath)
	if err != nil {
		return err
	}
	newDesc, err := readDocument(newPath)
	if err != nil {
		return err
	}

	root := reconcile.NewRoot(a.engine())
	if _, err := root.Render(ctx, oldDesc); err != nil {
		return err
	}
	before, err := htmlx.String(root.Node())
	if err != nil {
		return err
	}

	stats, err := root.Render(ctx, newDesc)
	if err != nil {
		return err
	}
	a.logger.Debug("diff complete", "entries", stats.Entries, "renders", stats.Renders)
	if err := printJournal(a.stdout, a.cfg.Output.Format, stats); err != nil {
		return err
	}

	if showHTML {
		after, err := htmlx.String(root.Node())
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout)
		fmt.Fprint(a.stdout, htmlDiff(before, after))
	}
	return nil
}

// readDocument parses an HTML file into a descriptor tree.
func readDocument(path string) (*vdom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	desc, err := htmlx.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}
