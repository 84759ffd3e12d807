package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/adapters/http/api"
	app "github.com/meridianlab/meridian/internal/app"
	"github.com/meridianlab/meridian/internal/config"
	"github.com/meridianlab/meridian/internal/domain/dedupe"
	"github.com/meridianlab/meridian/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// The custom registry carries only our metrics; drop the default
	// Go and process collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	provider := buildProvider(cfg)
	svc := app.New(
		app.WithLogger(log),
		app.WithProvider(provider),
		app.WithEntryRegistry(buildRegistry(cfg)),
		app.WithMaxTransitEvents(cfg.MaxTransitEvents),
		app.WithApplyingLookahead(time.Duration(cfg.ApplyingLookaheadMin)*time.Minute),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	mux := http.NewServeMux()
	server := api.NewServer(svc, svc)
	server.Register(ctx, mux)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "http server listening",
			logger.String("addr", cfg.Addr),
			logger.String("ephemeris_strategy", cfg.EphemerisStrategy))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "http server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "http shutdown failed", logger.Error(err))
	}
}

// buildRegistry sizes the calendar-entry registry from configuration.
func buildRegistry(cfg *config.Config) dedupe.Registry {
	return dedupe.NewInMemoryRegistry(dedupe.WithMaxSize(cfg.EntryRegistrySize))
}

// buildProvider selects the ephemeris strategy from configuration.
func buildProvider(cfg *config.Config) ephemeris.Provider {
	if cfg.EphemerisStrategy == config.StrategyMeanLongitude {
		return ephemeris.NewMeanLongitudeProvider()
	}
	return ephemeris.NewMeeusProvider(
		ephemeris.WithDataDir(cfg.VSOP87Path),
		ephemeris.WithInitTimeout(time.Duration(cfg.EphemerisTimeoutMS)*time.Millisecond),
	)
}
