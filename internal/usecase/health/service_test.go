package health

import (
	"context"
	"errors"
	"testing"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockDataset struct {
	rows []neighborhood.Neighborhood
	err  error
}

func (m *mockDataset) Load(_ context.Context) ([]neighborhood.Neighborhood, error) {
	return m.rows, m.err
}

func loadedDataset() *mockDataset {
	return &mockDataset{rows: []neighborhood.Neighborhood{
		neighborhood.Reconstruct("Laureles", "Medellín", neighborhood.Distances{1, 1, 1, 1}, 6.24, -75.59),
	}}
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(loadedDataset(), &mockDBPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["dataset"] != CheckOK {
		t.Errorf("expected dataset %q, got %q", CheckOK, r.Checks["dataset"])
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(loadedDataset(), &mockDBPinger{err: errors.New("conn refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["dataset"] != CheckOK {
		t.Errorf("expected dataset %q, got %q", CheckOK, r.Checks["dataset"])
	}
}

func TestCheck_DatasetIntegrityError(t *testing.T) {
	ds := &mockDataset{err: domain.NewDataIntegrity("barrios.csv", 4, "lat", "not a number")}
	svc := New(ds, &mockDBPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["dataset"] != CheckError {
		t.Error("expected dataset error")
	}
}

func TestCheck_EmptyDataset(t *testing.T) {
	svc := New(&mockDataset{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(&mockDataset{err: errors.New("scan failed")}, &mockDBPinger{err: errors.New("db down")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError || r.Checks["dataset"] != CheckError {
		t.Errorf("expected both checks to fail: %v", r.Checks)
	}
}

func TestCheck_NoDatabase(t *testing.T) {
	svc := New(loadedDataset(), nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("database check should be absent without a database")
	}
}
