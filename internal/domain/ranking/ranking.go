// Package ranking holds the ranked recommendation results. A result is either
// a heuristic score or a predicted rating; the two carry different meaning and
// are never compared across kinds.
package ranking

import (
	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// Kind tags which strategy produced a result.
type Kind string

// Result kinds.
const (
	// Heuristic results carry a distance-weighted score.
	Heuristic Kind = "heuristic"
	// Predicted results carry a regressor rating on the feedback scale.
	Predicted Kind = "predicted"
)

// Polarity says whether a criterion sought proximity or distance.
type Polarity string

// Polarity constants.
const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// Contribution is the share of a heuristic score coming from one criterion.
type Contribution struct {
	Keyword  string
	Category amenity.Category
	Polarity Polarity
	Value    float64
}

// Result is one ranked neighborhood.
type Result struct {
	kind          Kind
	neighborhood  neighborhood.Neighborhood
	value         float64
	contributions []Contribution
}

// NewHeuristic creates a heuristic-score result.
func NewHeuristic(n neighborhood.Neighborhood, score float64, contributions []Contribution) Result {
	return Result{kind: Heuristic, neighborhood: n, value: score, contributions: contributions}
}

// NewPredicted creates a predicted-rating result.
func NewPredicted(n neighborhood.Neighborhood, rating float64) Result {
	return Result{kind: Predicted, neighborhood: n, value: rating}
}

// Kind returns the strategy tag.
func (r Result) Kind() Kind { return r.kind }

// Neighborhood returns the ranked neighborhood.
func (r Result) Neighborhood() neighborhood.Neighborhood { return r.neighborhood }

// Value returns the ranking key regardless of kind.
func (r Result) Value() float64 { return r.value }

// Score returns the heuristic score; ok is false for predicted results.
func (r Result) Score() (score float64, ok bool) {
	if r.kind != Heuristic {
		return 0, false
	}
	return r.value, true
}

// PredictedRating returns the predicted rating; ok is false for heuristic results.
func (r Result) PredictedRating() (rating float64, ok bool) {
	if r.kind != Predicted {
		return 0, false
	}
	return r.value, true
}

// Contributions returns the per-criterion breakdown of a heuristic score.
func (r Result) Contributions() []Contribution { return r.contributions }
