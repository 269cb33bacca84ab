package neighborhood

import (
	"math"
	"strings"
	"testing"

	"github.com/cmarsiglia/habitai/internal/domain/amenity"
)

func TestNew_Valid(t *testing.T) {
	n, err := New("El Poblado", "Medellín", Distances{0.2, 0.8, 1.1, 0.5}, 6.2087, -75.5671)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Name() != "El Poblado" {
		t.Errorf("Name() = %q", n.Name())
	}
	if n.City() != "Medellín" {
		t.Errorf("City() = %q", n.City())
	}
	if n.Distance(amenity.Parks) != 0.2 || n.Distance(amenity.Malls) != 0.5 {
		t.Errorf("Distances() = %v", n.Distances())
	}
	if n.Lat() != 6.2087 || n.Lon() != -75.5671 {
		t.Errorf("centroid = (%f, %f)", n.Lat(), n.Lon())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		barrio    string
		city      string
		distances Distances
		lat, lon  float64
		errSubstr string
	}{
		{"empty name", " ", "Medellín", Distances{}, 0, 0, "name is required"},
		{"empty city", "Laureles", "", Distances{}, 0, 0, "city is required"},
		{"nan distance", "Laureles", "Medellín", Distances{math.NaN(), 0, 0, 0}, 0, 0, "dist_parques_km"},
		{"inf distance", "Laureles", "Medellín", Distances{0, 0, math.Inf(1), 0}, 0, 0, "dist_clinicas_km"},
		{"negative distance", "Laureles", "Medellín", Distances{0, -1, 0, 0}, 0, 0, "non-negative"},
		{"bad latitude", "Laureles", "Medellín", Distances{}, 91, 0, "coordinates"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.barrio, tc.city, tc.distances, tc.lat, tc.lon)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errSubstr) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.errSubstr)
			}
		})
	}
}

func TestFilterByCity_CaseInsensitive(t *testing.T) {
	all := []Neighborhood{
		Reconstruct("A", "Medellín", Distances{}, 0, 0),
		Reconstruct("B", "Montería", Distances{}, 0, 0),
		Reconstruct("C", "MEDELLÍN", Distances{}, 0, 0),
		Reconstruct("D", "medellín", Distances{}, 0, 0),
	}

	got := FilterByCity(all, "medellín")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for i, want := range []string{"A", "C", "D"} {
		if got[i].Name() != want {
			t.Errorf("got[%d] = %q, want %q (dataset order)", i, got[i].Name(), want)
		}
	}

	if len(FilterByCity(all, "Atlantis")) != 0 {
		t.Error("expected no matches for unknown city")
	}
}
