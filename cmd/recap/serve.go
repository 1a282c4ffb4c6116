package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/watcher"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Watch the inbox and process new recordings",
		Long: `Watch paths.input for new recordings. Each one is transcribed, stored and, when
auto_generate_summary is enabled in the preferences, summarized. Recordings already in
the inbox are processed on start. Serves /metrics when metrics.addr is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}

			proc := processor.New(a.cfg, executor.New(), a.meetings, a.log)
			handler := func(ctx context.Context, path string) error {
				_, err := proc.Process(ctx, path)
				return err
			}

			w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			if a.cfg.Metrics.Addr != "" {
				stop := a.serveMetrics(ctx)
				defer stop()
			}

			a.log.Info(ctx, "========================================")
			a.log.Info(ctx, "recap is ready!")
			a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
			a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
			a.log.Info(ctx, "LLM: %s (%s)", a.cfg.LLM.Provider, a.cfg.LLM.Model)
			a.log.Info(ctx, "Whisper: %s, %d threads", a.cfg.Whisper.ModelName, a.cfg.Whisper.Threads)
			a.log.Info(ctx, "Press Ctrl+C to stop")
			a.log.Info(ctx, "========================================")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Info(ctx, "recap stopped")
			return nil
		},
	}
}

// serveMetrics exposes the registry over HTTP and returns a shutdown func.
func (a *app) serveMetrics(ctx context.Context) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.log.Info(ctx, "Metrics listening on %s/metrics", a.cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "Metrics server: %v", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}
}
