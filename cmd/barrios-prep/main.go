// Command barrios-prep builds the neighborhood dataset CSV from a GeoJSON file
// of barrio polygons and OpenStreetMap amenities.
//
// Usage:
//
//	barrios-prep -geojson medellin.geojson -city Medellín -name-property NOMBRE -out assets/dataset-barrios.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/config"
	logpkg "github.com/cmarsiglia/habitai/internal/logger"
	"github.com/cmarsiglia/habitai/internal/prep"
	datasetrepo "github.com/cmarsiglia/habitai/internal/repository/dataset"
)

type options struct {
	geojsonPath  string
	city         string
	nameProperty string
	buffer       float64
	endpoint     string
	timeout      time.Duration
	out          string
}

func main() {
	var opts options
	flag.StringVar(&opts.geojsonPath, "geojson", "", "FeatureCollection of barrio polygons")
	flag.StringVar(&opts.city, "city", "", "city name written to every row")
	flag.StringVar(&opts.nameProperty, "name-property", "name", "feature property holding the barrio name")
	flag.Float64Var(&opts.buffer, "buffer", 0.02, "search area padding in degrees")
	flag.StringVar(&opts.endpoint, "overpass", prep.DefaultOverpassEndpoint, "Overpass API endpoint")
	flag.DurationVar(&opts.timeout, "timeout", 90*time.Second, "timeout of one Overpass request")
	flag.StringVar(&opts.out, "out", "", "output CSV (default stdout)")
	flag.Parse()

	logger, err := logpkg.NewLogger(config.GetEnv())
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("Dataset preparation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	if opts.geojsonPath == "" || opts.city == "" {
		return fmt.Errorf("-geojson and -city are required")
	}

	data, err := os.ReadFile(filepath.Clean(opts.geojsonPath))
	if err != nil {
		return fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("parse geojson: %w", err)
	}
	areas, err := prep.Areas(fc, opts.nameProperty)
	if err != nil {
		return err
	}
	logger.Info("Loaded barrio polygons", zap.String("city", opts.city), zap.Int("areas", len(areas)))

	fetcher := prep.NewOverpassFetcher(opts.endpoint, opts.timeout)
	rows, err := prep.NewBuilder(fetcher, logger).Build(ctx, opts.city, areas, opts.buffer)
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.out != "" {
		f, err := os.Create(filepath.Clean(opts.out))
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := datasetrepo.WriteCSV(out, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	logger.Info("Dataset written", zap.Int("rows", len(rows)), zap.String("out", opts.out))
	return nil
}
