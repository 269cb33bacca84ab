// Command barrios-import loads a CSV neighborhood dataset into Redis.
//
// Usage:
//
//	ENV=local barrios-import -csv assets/dataset-barrios.csv -replace
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/config"
	dbRedis "github.com/cmarsiglia/habitai/internal/db/redis"
	logpkg "github.com/cmarsiglia/habitai/internal/logger"
	datasetrepo "github.com/cmarsiglia/habitai/internal/repository/dataset"
)

func main() {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	csvPath := flag.String("csv", cfg.Dataset.Path, "dataset CSV file")
	replace := flag.Bool("replace", false, "delete existing neighborhoods under the key prefix first")
	flag.Parse()

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, *csvPath, *replace, logger); err != nil {
		logger.Error("Import failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, csvPath string, replace bool, logger *zap.Logger) error {
	rows, err := datasetrepo.NewCSV(csvPath).Load(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	if err := datasetrepo.NewRedis(store, cfg.Dataset.KeyPrefix).Save(ctx, rows, replace); err != nil {
		return err
	}

	logger.Info("Dataset imported",
		zap.String("csv", csvPath),
		zap.Int("rows", len(rows)),
		zap.Bool("replace", replace),
		zap.String("key_prefix", cfg.Dataset.KeyPrefix),
	)
	return nil
}
