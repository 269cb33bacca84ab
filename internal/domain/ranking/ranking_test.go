package ranking

import (
	"testing"

	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

func TestNewHeuristic(t *testing.T) {
	n := neighborhood.Reconstruct("Laureles", "Medellín", neighborhood.Distances{0.5, 1, 1, 1}, 6.24, -75.59)
	contrib := []Contribution{{Keyword: "parques", Category: amenity.Parks, Polarity: Positive, Value: 1.996}}

	r := NewHeuristic(n, 1.996, contrib)

	if r.Kind() != Heuristic {
		t.Errorf("Kind() = %q", r.Kind())
	}
	if s, ok := r.Score(); !ok || s != 1.996 {
		t.Errorf("Score() = %v, %v", s, ok)
	}
	if _, ok := r.PredictedRating(); ok {
		t.Error("heuristic result must not expose a predicted rating")
	}
	if r.Neighborhood().Name() != "Laureles" {
		t.Errorf("Neighborhood() = %q", r.Neighborhood().Name())
	}
	if len(r.Contributions()) != 1 {
		t.Errorf("Contributions() = %v", r.Contributions())
	}
}

func TestNewPredicted(t *testing.T) {
	n := neighborhood.Reconstruct("Belén", "Medellín", neighborhood.Distances{}, 6.23, -75.6)

	r := NewPredicted(n, 4.27)

	if r.Kind() != Predicted {
		t.Errorf("Kind() = %q", r.Kind())
	}
	if v, ok := r.PredictedRating(); !ok || v != 4.27 {
		t.Errorf("PredictedRating() = %v, %v", v, ok)
	}
	if _, ok := r.Score(); ok {
		t.Error("predicted result must not expose a heuristic score")
	}
	if r.Value() != 4.27 {
		t.Errorf("Value() = %v", r.Value())
	}
	if r.Contributions() != nil {
		t.Errorf("Contributions() = %v, want nil", r.Contributions())
	}
}
