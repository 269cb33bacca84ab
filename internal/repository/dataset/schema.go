// Package dataset loads the neighborhood dataset from a CSV file or from
// Redis hashes. Both sources share one column layout and one set of
// validation rules.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/geo"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// Dataset column names.
const (
	ColCity = "ciudad"
	ColName = "barrio"
	ColLat  = "lat"
	ColLon  = "lon"

	// colRow is stored with every Redis hash to keep the dataset order.
	colRow = "row"
)

// Columns returns the dataset header in file order.
func Columns() []string {
	cols := []string{ColCity, ColName}
	for _, c := range amenity.All() {
		cols = append(cols, c.Column())
	}
	return append(cols, ColLat, ColLon)
}

// fieldGetter returns the raw value of a column and whether it is present.
type fieldGetter func(col string) (string, bool)

// parseRow validates one raw row. row is the 1-based line number for
// diagnostics.
func parseRow(source string, row int, get fieldGetter) (neighborhood.Neighborhood, error) {
	text := func(col string) (string, error) {
		v, ok := get(col)
		if !ok {
			return "", domain.NewDataIntegrity(source, row, col, "missing value")
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return "", domain.NewDataIntegrity(source, row, col, "empty value")
		}
		return v, nil
	}
	number := func(col string) (float64, error) {
		v, err := text(col)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, domain.NewDataIntegrity(source, row, col, fmt.Sprintf("not a number: %q", v))
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, domain.NewDataIntegrity(source, row, col, "not finite")
		}
		return f, nil
	}

	city, err := text(ColCity)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}
	name, err := text(ColName)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}

	var d neighborhood.Distances
	for _, c := range amenity.All() {
		v, err := number(c.Column())
		if err != nil {
			return neighborhood.Neighborhood{}, err
		}
		if v < 0 {
			return neighborhood.Neighborhood{}, domain.NewDataIntegrity(source, row, c.Column(), "negative distance")
		}
		d[c] = v
	}

	lat, err := number(ColLat)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}
	lon, err := number(ColLon)
	if err != nil {
		return neighborhood.Neighborhood{}, err
	}
	if !geo.ValidateCoordinates(lat, lon) {
		return neighborhood.Neighborhood{}, domain.NewDataIntegrity(source, row, "",
			fmt.Sprintf("coordinates out of range: %g,%g", lat, lon))
	}

	n, err := neighborhood.New(name, city, d, lat, lon)
	if err != nil {
		return neighborhood.Neighborhood{}, domain.NewDataIntegrity(source, row, "", err.Error())
	}
	return n, nil
}

// toFields converts a neighborhood to dataset column values.
func toFields(n neighborhood.Neighborhood) map[string]string {
	m := map[string]string{
		ColCity: n.City(),
		ColName: n.Name(),
		ColLat:  formatFloat(n.Lat()),
		ColLon:  formatFloat(n.Lon()),
	}
	for _, c := range amenity.All() {
		m[c.Column()] = formatFloat(n.Distance(c))
	}
	return m
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
