package health

import (
	"context"

	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DatasetLoader loads the neighborhood dataset.
type DatasetLoader interface {
	Load(ctx context.Context) ([]neighborhood.Neighborhood, error)
}
