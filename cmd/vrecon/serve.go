package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/reconcile/pkg/live"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live reconciliation server",
		Long: `Run an HTTP server with live reconciliation sessions.

Routes:
  GET  /live     websocket session; each render message is diffed
                 against the session's tree
  POST /diff     one-shot diff of {"old": ..., "new": ...}
  GET  /healthz  liveness probe
  GET  /metrics  Prometheus metrics (when enabled)

Examples:
  vrecon serve
  vrecon serve --addr :9000 --metrics=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return err
			}
			return a.serve(ctx, ln)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default localhost:8080)")
	cmd.Flags().Int64("read-limit", 0, "Maximum websocket message size in bytes")
	cmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics (default true)")

	return cmd
}

// serve runs the live server on ln until ctx is done.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	cfg := a.cfg

	serverConfig := live.ServerConfig{
		Logger:    a.logger,
		ReadLimit: cfg.Server.ReadLimit,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		serverConfig.Metrics = reconcile.NewMetrics(
			reconcile.WithNamespace(cfg.Metrics.Namespace),
			reconcile.WithRegistry(reg),
		)
		serverConfig.Gatherer = reg
	}
	srv := live.NewServer(serverConfig)

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("server starting", "addr", ln.Addr().String(), "metrics", cfg.Metrics.Enabled)
	fmt.Fprintf(a.stdout, "%s Listening on http://%s\n", color.GreenString("✓"), ln.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("server shutting down", "sessions", srv.SessionCount())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown.
		srv.Close()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
