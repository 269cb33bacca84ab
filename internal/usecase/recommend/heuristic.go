package recommend

import (
	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/criteria"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
	"github.com/cmarsiglia/habitai/internal/domain/ranking"
)

// scoreHeuristic scores every row without a model.
// Positive term: 1/(d+eps), closer is better.
// Negative term: d/max(d over rows), farther is better; a zero max adds 0.
// Results keep input order; ranking happens later.
func scoreHeuristic(rows []neighborhood.Neighborhood, r criteria.Resolved, eps float64) []ranking.Result {
	maxDist := cityMax(rows)

	out := make([]ranking.Result, 0, len(rows))
	for _, n := range rows {
		var score float64
		contribs := make([]ranking.Contribution, 0, len(r.Positive)+len(r.Negative))

		for _, t := range r.Positive {
			v := 1 / (n.Distance(t.Category) + eps)
			score += v
			contribs = append(contribs, ranking.Contribution{
				Keyword: t.Keyword, Category: t.Category, Polarity: ranking.Positive, Value: v,
			})
		}
		for _, t := range r.Negative {
			var v float64
			if m := maxDist[t.Category]; m > 0 {
				v = n.Distance(t.Category) / m
			}
			score += v
			contribs = append(contribs, ranking.Contribution{
				Keyword: t.Keyword, Category: t.Category, Polarity: ranking.Negative, Value: v,
			})
		}

		out = append(out, ranking.NewHeuristic(n, score, contribs))
	}
	return out
}

// cityMax returns the largest distance per category over rows.
func cityMax(rows []neighborhood.Neighborhood) neighborhood.Distances {
	var m neighborhood.Distances
	for _, n := range rows {
		for _, c := range amenity.All() {
			if d := n.Distance(c); d > m[c] {
				m[c] = d
			}
		}
	}
	return m
}
