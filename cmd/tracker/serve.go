package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/feyloom/attunement-tracker/internal/attunement"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/metrics"
	"github.com/feyloom/attunement-tracker/internal/triggers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tracker",
	Long:  `Connect to storage, register the attunement triggers on the event bus, and serve Prometheus metrics until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	registry := prometheus.NewRegistry()
	collectors := metrics.New(&metrics.Config{Registry: registry})

	directory, err := attunement.NewDirectory(&attunement.DirectoryConfig{
		Repository: store.Repository,
		Flags:      store.Flags,
		Metrics:    collectors,
	})
	if err != nil {
		return err
	}

	bus := events.NewBus()
	handlers, err := triggers.New(&triggers.Config{
		Directory: directory,
		Bus:       bus,
	})
	if err != nil {
		return err
	}
	handlers.Register()
	defer handlers.Unregister()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("metrics listener starting", "addr", cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- errors.Wrap(err, "metrics listener failed")
		}
	}()

	slog.Info("tracker running",
		"flag_backend", cfg.FlagBackend,
		"redis_addr", cfg.RedisAddr,
	)

	select {
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics listener did not stop cleanly", "error", err)
		}
		return nil
	case err := <-errChan:
		return err
	}
}
