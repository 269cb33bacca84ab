package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
	"github.com/cmarsiglia/habitai/internal/metrics"
)

// InstrumentedDataset wraps a DatasetSource with load timing and logging.
type InstrumentedDataset struct {
	inner  DatasetSource
	driver string
	logger *zap.Logger
}

// NewInstrumentedDataset wraps a dataset source labelled by driver name.
func NewInstrumentedDataset(inner DatasetSource, driver string, logger *zap.Logger) *InstrumentedDataset {
	return &InstrumentedDataset{inner: inner, driver: driver, logger: logger}
}

// Load delegates to the inner source and records duration and row count.
// Errors are returned unchanged so callers can match them.
func (d *InstrumentedDataset) Load(ctx context.Context) ([]neighborhood.Neighborhood, error) {
	start := time.Now()
	rows, err := d.inner.Load(ctx)
	duration := time.Since(start)

	if err != nil {
		metrics.DatasetLoadDuration.WithLabelValues(d.driver, "error").Observe(duration.Seconds())
		d.logger.Error("Dataset load failed",
			zap.String("driver", d.driver),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err //nolint:wrapcheck // decorator keeps the source error intact
	}

	metrics.DatasetLoadDuration.WithLabelValues(d.driver, "ok").Observe(duration.Seconds())
	metrics.DatasetRows.WithLabelValues(d.driver).Set(float64(len(rows)))
	d.logger.Debug("Dataset loaded",
		zap.String("driver", d.driver),
		zap.Duration("duration", duration),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}
