// Command server runs the fire impact HTTP service: it loads the county
// dataset, exposes the impact computation API, and optionally fans computed
// results out to Kafka and Postgres.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/emberwatch/fire-impact-service/internal/adapter/http"
	kafkaadapter "github.com/emberwatch/fire-impact-service/internal/adapter/kafka"
	"github.com/emberwatch/fire-impact-service/internal/adapter/postgres"
	"github.com/emberwatch/fire-impact-service/internal/config"
	"github.com/emberwatch/fire-impact-service/internal/county"
	"github.com/emberwatch/fire-impact-service/internal/geo"
	"github.com/emberwatch/fire-impact-service/internal/impact"
	"github.com/emberwatch/fire-impact-service/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	proj, err := geo.NewConusProjection()
	if err != nil {
		logger.Error("failed to initialize projection", "error", err)
		os.Exit(1)
	}
	engine := geo.NewSpreadEngine(proj)

	loader := county.NewLoader(proj, cfg.ExcludedTerritories, logger)
	store := county.NewStore(func(ctx context.Context) (*county.Set, error) {
		set, err := loader.Load(ctx, cfg.CountiesFile, cfg.PopulationFile)
		if err != nil {
			return nil, err
		}
		metrics.DatasetLoaded.Set(1)
		metrics.DatasetCounties.Set(float64(set.Len()))
		metrics.GeometrySkips.Add(float64(set.Skipped()))
		return set, nil
	})

	aggregator := impact.NewAggregator(proj, engine, store, logger, metrics)

	var publisher httpadapter.ImpactPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	var recorder httpadapter.ImpactRecorder
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		recorder = postgres.NewRecorder(db, logger)
		logger.Info("postgres recording enabled")
	} else {
		logger.Info("postgres recording disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, aggregator, store,
		publisher, recorder,
		httpadapter.Options{
			MatchStrategy: county.MatchStrategy{
				RadiusKm:  cfg.MatchRadiusKm,
				FallbackK: cfg.MatchFallbackK,
			},
			WindGridSize:    cfg.WindGridSize,
			WindGridSpanDeg: cfg.WindGridSpanDeg,
		},
		logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the county cache so the first request doesn't pay the load.
	go func() {
		if err := store.CheckReadiness(ctx); err != nil {
			logger.Error("county dataset warm-up failed", "error", err)
		}
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
