package recommend

import (
	"math"
	"sort"

	"github.com/cmarsiglia/habitai/internal/domain/ranking"
)

// rank sorts results by value, highest first, and keeps at most topN.
// Ties keep dataset order.
func rank(results []ranking.Result, topN int) []ranking.Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Value() > results[j].Value()
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
