// Package amenity defines the fixed vocabulary of amenity categories a
// neighborhood is scored against, and the keyword synonyms users may send.
package amenity

import "sort"

// Category is a canonical amenity category.
type Category int

// Category constants. The order is the feature order used by the regressor.
const (
	Parks Category = iota
	Schools
	Clinics
	Malls
)

// Count is the number of canonical categories.
const Count = 4

var all = [Count]Category{Parks, Schools, Clinics, Malls}

// keywords maps user-facing keywords (case-sensitive) to categories.
var keywords = map[string]Category{
	"parques":             Parks,
	"colegios":            Schools,
	"clinicas":            Clinics,
	"hospitales":          Clinics,
	"centros comerciales": Malls,
	"malls":               Malls,
}

// All returns every category in feature order.
func All() []Category {
	out := make([]Category, Count)
	copy(out, all[:])
	return out
}

// Lookup resolves a keyword to its category.
func Lookup(keyword string) (Category, bool) {
	c, ok := keywords[keyword]
	return c, ok
}

// Keywords returns the accepted keywords, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsValid reports whether c is one of the canonical categories.
func (c Category) IsValid() bool {
	return c >= Parks && c <= Malls
}

// String returns the short category name.
func (c Category) String() string {
	switch c {
	case Parks:
		return "parques"
	case Schools:
		return "colegios"
	case Clinics:
		return "clinicas"
	case Malls:
		return "centroscom"
	default:
		return "unknown"
	}
}

// Column returns the dataset column holding the distance in km to the
// nearest amenity of this category.
func (c Category) Column() string {
	return "dist_" + c.String() + "_km"
}

// PreferenceKey returns the feature name of the preference flag.
func (c Category) PreferenceKey() string {
	return "pref_" + c.String()
}
