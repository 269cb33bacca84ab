package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
	"github.com/cmarsiglia/habitai/internal/metrics"
)

func TestInstrumentedDataset_Success(t *testing.T) {
	inner := &mockDataset{rows: []neighborhood.Neighborhood{
		row("a", "Cali", 1, 1, 1, 1),
		row("b", "Cali", 1, 1, 1, 1),
	}}
	d := NewInstrumentedDataset(inner, "test-ok", zap.NewNop())

	rows, err := d.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := testutil.ToFloat64(metrics.DatasetRows.WithLabelValues("test-ok")); got != 2 {
		t.Errorf("expected dataset_rows 2, got %f", got)
	}
}

func TestInstrumentedDataset_ErrorPassesThrough(t *testing.T) {
	integrity := domain.NewDataIntegrity("x.csv", 0, "lat", "missing column")
	d := NewInstrumentedDataset(&mockDataset{err: integrity}, "test-err", zap.NewNop())

	_, err := d.Load(context.Background())
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
	if testutil.CollectAndCount(metrics.DatasetLoadDuration) == 0 {
		t.Error("expected dataset_load_duration_seconds observations")
	}
}
