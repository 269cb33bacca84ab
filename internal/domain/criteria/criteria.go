// Package criteria models the amenity preferences a user sends with a
// recommendation request.
package criteria

import "github.com/cmarsiglia/habitai/internal/domain/amenity"

// Criteria is the positive (seek proximity) and negative (seek distance)
// keyword sets of one request. Duplicates are dropped, first occurrence wins.
type Criteria struct {
	positives []string
	negatives []string
}

// New creates Criteria from raw keyword lists.
func New(positives, negatives []string) Criteria {
	return Criteria{positives: dedupe(positives), negatives: dedupe(negatives)}
}

// Positives returns the positive keywords in request order.
func (c Criteria) Positives() []string { return c.positives }

// Negatives returns the negative keywords in request order.
func (c Criteria) Negatives() []string { return c.negatives }

// Term is a keyword resolved to its category.
type Term struct {
	Keyword  string
	Category amenity.Category
}

// Resolved is Criteria mapped onto the amenity vocabulary.
// Unknown keywords are kept aside, per polarity, so callers can report them.
type Resolved struct {
	Positive        []Term
	Negative        []Term
	UnknownPositive []string
	UnknownNegative []string
}

// Resolve maps every keyword onto its category. Synonyms stay separate terms,
// so "clinicas" and "hospitales" together contribute twice.
func (c Criteria) Resolve() Resolved {
	var r Resolved
	r.Positive, r.UnknownPositive = resolve(c.positives)
	r.Negative, r.UnknownNegative = resolve(c.negatives)
	return r
}

// Flags derives the preference indicator of every category: 1 when any
// keyword of that category is among the positives, else 0.
func (c Criteria) Flags() Flags {
	var f Flags
	for _, kw := range c.positives {
		if cat, ok := amenity.Lookup(kw); ok {
			f[cat] = 1
		}
	}
	return f
}

// Flags holds one preference value per category, indexed by amenity.Category.
type Flags [amenity.Count]float64

// Get returns the flag of a category.
func (f Flags) Get(c amenity.Category) float64 { return f[c] }

func resolve(keywords []string) (terms []Term, unknown []string) {
	terms = make([]Term, 0, len(keywords))
	for _, kw := range keywords {
		cat, ok := amenity.Lookup(kw)
		if !ok {
			unknown = append(unknown, kw)
			continue
		}
		terms = append(terms, Term{Keyword: kw, Category: cat})
	}
	return terms, unknown
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
