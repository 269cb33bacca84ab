package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/config"
	dbRedis "github.com/cmarsiglia/habitai/internal/db/redis"
	logpkg "github.com/cmarsiglia/habitai/internal/logger"
	"github.com/cmarsiglia/habitai/internal/metrics"
	"github.com/cmarsiglia/habitai/internal/ml/forest"
	datasetrepo "github.com/cmarsiglia/habitai/internal/repository/dataset"
	feedbackrepo "github.com/cmarsiglia/habitai/internal/repository/feedback"
	chiTransport "github.com/cmarsiglia/habitai/internal/transport/chi"
	healthuc "github.com/cmarsiglia/habitai/internal/usecase/health"
	recommenduc "github.com/cmarsiglia/habitai/internal/usecase/recommend"
	"github.com/cmarsiglia/habitai/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting habitai API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset_driver", cfg.Dataset.Driver),
		zap.String("feedback_source", cfg.Feedback.Source),
	)

	// Dataset source: CSV file or Redis hashes
	var (
		dataset recommenduc.DatasetSource
		pinger  healthuc.DBPinger
	)
	switch cfg.Dataset.Driver {
	case config.DriverCSV:
		dataset = datasetrepo.NewCSV(cfg.Dataset.Path)
	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("db_driver", cfg.Database.Driver),
			zap.Strings("db_addrs", cfg.Database.Addrs),
		)
		dataset = datasetrepo.NewRedis(store, cfg.Dataset.KeyPrefix)
		pinger = store
	default:
		logger.Fatal("Unknown dataset driver", zap.String("driver", cfg.Dataset.Driver))
	}
	dataset = recommenduc.NewInstrumentedDataset(dataset, cfg.Dataset.Driver, logger)

	feedback, err := feedbackrepo.New(cfg.Feedback.Source)
	if err != nil {
		logger.Fatal("Failed to create feedback source", zap.Error(err))
	}

	metrics.RegisterRecommendationMetrics()

	recommendSvc := recommenduc.New(dataset, feedback, recommenduc.Config{
		TopN:        cfg.Scoring.TopN,
		MinFeedback: cfg.Scoring.MinFeedback,
		Epsilon:     cfg.Scoring.Epsilon,
		Forest: forest.Config{
			Trees:    cfg.Scoring.Trees,
			MaxDepth: cfg.Scoring.MaxDepth,
			Seed:     cfg.Scoring.Seed,
		},
	})
	healthSvc := healthuc.New(dataset, pinger)

	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if cfg.HTTP.RateLimitPerMinute > 0 {
		r.Use(rateLimiter(cfg.HTTP.RateLimitPerMinute))
	}
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
