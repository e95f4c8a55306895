// Command vrecon diffs and applies HTML documents with the reconcile engine.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by subcommands once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "vrecon",
		Short: "Incremental tree reconciliation",
		Long: `vrecon reconciles HTML documents against a persistent tree.

Each document is parsed into a descriptor tree and diffed against the
tree built from the previous one. The resulting journal of mutations is
printed or applied.

Examples:
  vrecon diff old.html new.html
  vrecon diff old.html new.html --format yaml --html
  vrecon render step1.html step2.html
  vrecon serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "Config file (default: ./vrecon.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.StringP("format", "f", "", "Journal output format: text, json, yaml")
	pf.Bool("color", false, "Colorize text output (default true)")

	root.AddCommand(
		diffCmd(a),
		renderCmd(a),
		serveCmd(a),
		versionCmd(a),
	)
	return root
}

// load reads configuration with flags taking precedence and sets up logging.
func (a *app) load(flags *pflag.FlagSet) error {
	cfg, err := config.Load(config.Options{File: a.configFile, Flags: flags})
	if err != nil {
		return err
	}
	a.cfg = cfg

	color.NoColor = !cfg.Output.Color
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Log.Level}))
	if cfg.Path() != "" {
		a.logger.Debug("config loaded", "path", cfg.Path())
	}
	return nil
}

func (a *app) engine() *reconcile.Engine {
	return reconcile.New(reconcile.WithLogger(a.logger))
}

// printError writes err for the terminal, using the long form for coded errors.
func printError(w io.Writer, err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
}
