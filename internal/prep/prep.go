// Package prep builds the neighborhood dataset offline: barrio centroids from
// a GeoJSON file, nearest amenity per category from OpenStreetMap, distances
// in kilometers.
package prep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// ErrNoPOIs is returned when a category has no amenity inside the search area.
var ErrNoPOIs = errors.New("no points of interest")

// Area is one barrio polygon reduced to its centroid.
type Area struct {
	Name     string
	Centroid orb.Point // lon, lat
}

// POIFetcher returns amenity locations of one category inside a bound.
type POIFetcher interface {
	Fetch(ctx context.Context, c amenity.Category, b orb.Bound) ([]orb.Point, error)
}

// Areas reads barrio centroids from a FeatureCollection. nameProperty names the
// feature property holding the barrio name.
func Areas(fc *geojson.FeatureCollection, nameProperty string) ([]Area, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, errors.New("feature collection is empty")
	}
	areas := make([]Area, 0, len(fc.Features))
	for i, f := range fc.Features {
		name := strings.TrimSpace(f.Properties.MustString(nameProperty, ""))
		if name == "" {
			return nil, fmt.Errorf("feature %d: property %q is missing", i, nameProperty)
		}
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature %d (%s): no geometry", i, name)
		}
		c, _ := planar.CentroidArea(f.Geometry)
		if math.IsNaN(c.Lon()) || math.IsNaN(c.Lat()) {
			return nil, fmt.Errorf("feature %d (%s): degenerate geometry", i, name)
		}
		areas = append(areas, Area{Name: name, Centroid: c})
	}
	return areas, nil
}

// SearchBound is the bound of every centroid padded by buffer degrees.
func SearchBound(areas []Area, buffer float64) orb.Bound {
	b := areas[0].Centroid.Bound()
	for _, a := range areas[1:] {
		b = b.Extend(a.Centroid)
	}
	return b.Pad(buffer)
}

// Nearest returns the great-circle distance in km from p to the closest poi.
func Nearest(p orb.Point, pois []orb.Point) float64 {
	best := math.Inf(1)
	for _, q := range pois {
		if d := geo.DistanceHaversine(p, q); d < best {
			best = d
		}
	}
	return best / 1000
}

// Builder assembles dataset rows for one city.
type Builder struct {
	fetcher POIFetcher
	logger  *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(fetcher POIFetcher, logger *zap.Logger) *Builder {
	return &Builder{fetcher: fetcher, logger: logger}
}

// Build fetches every category once for the padded area and computes the
// distances of each barrio. Rows keep the order of areas.
func (b *Builder) Build(ctx context.Context, city string, areas []Area, buffer float64) ([]neighborhood.Neighborhood, error) {
	if len(areas) == 0 {
		return nil, errors.New("no areas")
	}
	bound := SearchBound(areas, buffer)

	var pois [amenity.Count][]orb.Point
	for _, c := range amenity.All() {
		pts, err := b.fetcher.Fetch(ctx, c, bound)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", c, err)
		}
		if len(pts) == 0 {
			return nil, fmt.Errorf("%s in %s: %w", c, city, ErrNoPOIs)
		}
		b.logger.Info("Fetched points of interest",
			zap.String("city", city),
			zap.String("category", c.String()),
			zap.Int("count", len(pts)),
		)
		pois[c] = pts
	}

	rows := make([]neighborhood.Neighborhood, 0, len(areas))
	for _, a := range areas {
		var d neighborhood.Distances
		for _, c := range amenity.All() {
			d[c] = round3(Nearest(a.Centroid, pois[c]))
		}
		n, err := neighborhood.New(a.Name, city, d, a.Centroid.Lat(), a.Centroid.Lon())
		if err != nil {
			return nil, fmt.Errorf("barrio %s: %w", a.Name, err)
		}
		rows = append(rows, n)
	}
	return rows, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
