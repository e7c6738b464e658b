package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crowdshield/config"
	"crowdshield/pkg/alert"
	"crowdshield/pkg/graph"
	"crowdshield/pkg/gps"
	"crowdshield/pkg/kv"
	"crowdshield/pkg/observability"
	"crowdshield/pkg/routing"
	"crowdshield/router"
	"crowdshield/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	var cache service.GraphStore
	if cfg.CacheEnabled {
		graphCache, err := kv.Open(cfg.CacheDir, logger)
		if err != nil {
			logger.Error("failed to open graph cache", "dir", cfg.CacheDir, "error", err)
			os.Exit(1)
		}
		defer graphCache.Close()
		cache = graphCache
		logger.Info("graph cache enabled", "dir", cfg.CacheDir)
	}

	var alerts service.AdvisoryPublisher
	var alertWriter *alert.Writer
	if cfg.AlertsEnabled {
		alertWriter = alert.NewWriter(cfg.KafkaBrokers, cfg.KafkaAlertTopic, logger)
		alerts = alertWriter
		logger.Info("advisory publishing enabled", "topic", cfg.KafkaAlertTopic)
	}

	provider := graph.NewProvider(cfg.OverpassURL, cfg.GraphFetchTimeout, logger)
	if cfg.OSMPBFPath != "" {
		provider.UsePBF(cfg.OSMPBFPath)
		logger.Info("walking networks sourced from pbf extract", "path", cfg.OSMPBFPath)
	}
	planner := routing.NewPlanner()
	sim := gps.NewSimulator(cfg.GPSSeed)

	var shelters []service.Shelter
	if cfg.SheltersPath != "" {
		shelters, err = service.LoadShelters(cfg.SheltersPath)
		if err != nil {
			logger.Warn("shelter list load failed, using fallback", "path", cfg.SheltersPath, "error", err)
		}
	}

	svc := service.NewEvacuationService(provider, planner, cache, alerts, metrics, logger,
		sim, shelters, cfg.Thresholds, cfg.WalkSpeedKmh, cfg.DispatchSpeedKmh)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(router.PromeHTTPMiddleware(metrics))

	router.EvacuationRouter(r, svc)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
