// Command dashboard serves the Wai Ola water-quality dashboard. It loads and
// cleans the dataset in the background, optionally reverse-geocodes and
// publishes per-site summaries, and serves the interactive page, chart API,
// health probes, and metrics over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/waiola-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/waiola-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/waiola-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/waiola-dashboard/internal/config"
	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
	"github.com/couchcryptid/waiola-dashboard/internal/pipeline"
)

type flags struct {
	host  string
	port  int
	debug bool
	data  string
}

func main() {
	if err := newCommand().Execute(); err != nil {
		slog.Error("dashboard failed", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Serve the Hawai'i Wai Ola water quality dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.host, "host", "", "listen host (overrides HOST)")
	cmd.Flags().IntVar(&f.port, "port", 0, "listen port (overrides PORT)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging (overrides DEBUG)")
	cmd.Flags().StringVar(&f.data, "data", "", "dataset file (overrides DATA_PATH)")
	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg, f)

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Reverse geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var publisher pipeline.SitePublisher
	var kafkaPublisher *kafkaadapter.SitePublisher
	if cfg.PublishEnabled() {
		kafkaPublisher = kafkaadapter.NewSitePublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("site publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSiteTopic)
	}

	src := pipeline.FileSource{Path: cfg.DataPath, Options: dataset.ReadOptions{Sheet: cfg.DataSheet}}
	p := pipeline.New(src, geocoder, publisher, logger, metrics)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The dataset is loaded before listening so a bad file stops startup.
	if err := p.Run(ctx); err != nil {
		closePublisher(kafkaPublisher, logger)
		return fmt.Errorf("pipeline: %w", err)
	}

	srv := httpadapter.NewServer(cfg.Addr(), p, cfg.MapboxToken, logger, metrics)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Addr())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errCh:
		logger.Error("shutting down after failure", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closePublisher(kafkaPublisher, logger)

	logger.Info("shutdown complete")
	return runErr
}

func closePublisher(p *kafkaadapter.SitePublisher, logger *slog.Logger) {
	if p == nil {
		return
	}
	if err := p.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}
}

// applyFlags lets explicitly set command-line flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	fs := cmd.Flags()
	if fs.Changed("host") {
		cfg.Host = f.host
	}
	if fs.Changed("port") {
		cfg.Port = f.port
	}
	if fs.Changed("debug") {
		cfg.Debug = f.debug
	}
	if fs.Changed("data") {
		cfg.DataPath = f.data
	}
}
