package neighborhood

import (
	"fmt"
	"math"
	"strings"

	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/geo"
)

// Distances holds the distance in km to the nearest amenity of each category,
// indexed by amenity.Category.
type Distances [amenity.Count]float64

// Neighborhood is one barrio of the dataset (immutable value object).
type Neighborhood struct {
	name      string
	city      string
	distances Distances
	lat       float64
	lon       float64
}

// New validates and creates a Neighborhood.
// Name and city must be non-empty, distances finite and non-negative,
// coordinates within WGS84 bounds.
func New(name, city string, distances Distances, lat, lon float64) (Neighborhood, error) {
	if strings.TrimSpace(name) == "" {
		return Neighborhood{}, fmt.Errorf("neighborhood name is required")
	}
	if strings.TrimSpace(city) == "" {
		return Neighborhood{}, fmt.Errorf("city is required")
	}
	for _, c := range amenity.All() {
		d := distances[c]
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return Neighborhood{}, fmt.Errorf("%s is not a finite number", c.Column())
		}
		if d < 0 {
			return Neighborhood{}, fmt.Errorf("%s must be non-negative, got %g", c.Column(), d)
		}
	}
	if !geo.ValidateCoordinates(lat, lon) {
		return Neighborhood{}, fmt.Errorf("coordinates out of range: lat=%g lon=%g", lat, lon)
	}
	return Neighborhood{name: name, city: city, distances: distances, lat: lat, lon: lon}, nil
}

// Reconstruct creates a Neighborhood without validation (test fixtures).
func Reconstruct(name, city string, distances Distances, lat, lon float64) Neighborhood {
	return Neighborhood{name: name, city: city, distances: distances, lat: lat, lon: lon}
}

// Name returns the barrio name.
func (n Neighborhood) Name() string { return n.name }

// City returns the city as written in the dataset.
func (n Neighborhood) City() string { return n.city }

// Distance returns the distance in km to the nearest amenity of category c.
func (n Neighborhood) Distance(c amenity.Category) float64 { return n.distances[c] }

// Distances returns all four distances.
func (n Neighborhood) Distances() Distances { return n.distances }

// Lat returns the centroid latitude.
func (n Neighborhood) Lat() float64 { return n.lat }

// Lon returns the centroid longitude.
func (n Neighborhood) Lon() float64 { return n.lon }

// InCity reports whether the neighborhood belongs to city, ignoring case.
func (n Neighborhood) InCity(city string) bool {
	return strings.EqualFold(n.city, city)
}

// FilterByCity returns the neighborhoods of city, preserving dataset order.
func FilterByCity(all []Neighborhood, city string) []Neighborhood {
	var out []Neighborhood
	for _, n := range all {
		if n.InCity(city) {
			out = append(out, n)
		}
	}
	return out
}
