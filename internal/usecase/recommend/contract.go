package recommend

import (
	"context"

	"github.com/cmarsiglia/habitai/internal/domain/feedback"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// DatasetSource loads the full neighborhood dataset. Implementations read
// storage on every call and return *domain.DataIntegrityError on bad rows.
type DatasetSource interface {
	Load(ctx context.Context) ([]neighborhood.Neighborhood, error)
}

// FeedbackSource provides the rating examples used to train the regressor.
type FeedbackSource interface {
	Records(ctx context.Context) ([]feedback.Record, error)
}
