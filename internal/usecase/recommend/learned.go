package recommend

import (
	"context"
	"fmt"

	"github.com/cmarsiglia/habitai/internal/domain/criteria"
	"github.com/cmarsiglia/habitai/internal/domain/feedback"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
	"github.com/cmarsiglia/habitai/internal/domain/ranking"
	"github.com/cmarsiglia/habitai/internal/ml/forest"
)

// predict trains a fresh forest on records and rates every row with its own
// distances and the request flags. Ratings are rounded to 2 decimals.
func predict(
	ctx context.Context, rows []neighborhood.Neighborhood, flags criteria.Flags,
	records []feedback.Record, cfg forest.Config,
) ([]ranking.Result, error) {
	x := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		x[i] = rec.Features()
		y[i] = rec.Rating
	}

	model, err := forest.Train(ctx, x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("train forest: %w", err)
	}

	out := make([]ranking.Result, 0, len(rows))
	for _, n := range rows {
		rating, err := model.Predict(feedback.Features(n.Distances(), flags))
		if err != nil {
			return nil, fmt.Errorf("predict %q: %w", n.Name(), err)
		}
		out = append(out, ranking.NewPredicted(n, round2(rating)))
	}
	return out, nil
}
