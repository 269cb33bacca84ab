// Package feedback holds historical rating examples used to train the
// rating regressor.
package feedback

import (
	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/criteria"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// FeatureCount is the width of a training row: four distances then four flags.
const FeatureCount = 2 * amenity.Count

// Record is one rated example.
type Record struct {
	Distances   neighborhood.Distances
	Preferences criteria.Flags
	Rating      float64
}

// Features returns the regressor input of the record.
func (r Record) Features() []float64 {
	return Features(r.Distances, r.Preferences)
}

// Features lays distances and flags out in regressor feature order.
func Features(d neighborhood.Distances, f criteria.Flags) []float64 {
	out := make([]float64, 0, FeatureCount)
	out = append(out, d[:]...)
	out = append(out, f[:]...)
	return out
}

// Sample returns the seven seed records collected during the pilot.
// Preference values are fractional in the pilot survey.
func Sample() []Record {
	return []Record{
		{Distances: neighborhood.Distances{0.6, 1.2, 1.8, 0.7}, Preferences: criteria.Flags{1, 1, 0, 0}, Rating: 5},
		{Distances: neighborhood.Distances{0.9, 0.8, 2.0, 0.5}, Preferences: criteria.Flags{0.9, 1, 0.7, 0.7}, Rating: 2},
		{Distances: neighborhood.Distances{0.9, 0.8, 1.0, 0.8}, Preferences: criteria.Flags{0.9, 1, 0.8, 0.8}, Rating: 4},
		{Distances: neighborhood.Distances{0.5, 1.8, 1.1, 0.9}, Preferences: criteria.Flags{0.5, 1, 0.5, 0.5}, Rating: 3},
		{Distances: neighborhood.Distances{0.2, 1.2, 1.6, 0.5}, Preferences: criteria.Flags{0.2, 1, 0.2, 0.2}, Rating: 5},
		{Distances: neighborhood.Distances{0.3, 1.1, 1.9, 0.1}, Preferences: criteria.Flags{1, 1, 0.3, 0.3}, Rating: 4},
		{Distances: neighborhood.Distances{0.7, 2.8, 2.4, 1.5}, Preferences: criteria.Flags{0.7, 1, 0.7, 0.7}, Rating: 5},
	}
}
