package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habitai",
			Name:      "recommendations_total",
			Help:      "Total recommendations served by scoring strategy",
		},
		[]string{"strategy"}, // "heuristic" / "predicted"
	)

	RecommendationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "habitai",
			Name:      "recommendation_duration_seconds",
			Help:      "Scoring engine duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	UnknownCriteriaTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habitai",
			Name:      "unknown_criteria_total",
			Help:      "Criteria keywords outside the amenity vocabulary",
		},
		[]string{"polarity"},
	)

	EmptyCityTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "habitai",
			Name:      "empty_city_total",
			Help:      "Requests for cities without neighborhoods",
		},
	)

	DatasetLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "habitai",
			Name:      "dataset_load_duration_seconds",
			Help:      "Dataset load duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"driver", "status"},
	)

	DatasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "habitai",
			Name:      "dataset_rows",
			Help:      "Rows returned by the last dataset load",
		},
		[]string{"driver"},
	)
)

var recMetricsRegistered bool

// RegisterRecommendationMetrics registers the scoring engine metrics. Must be called once from main.
func RegisterRecommendationMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationDuration)
	prometheus.MustRegister(UnknownCriteriaTotal)
	prometheus.MustRegister(EmptyCityTotal)
	prometheus.MustRegister(DatasetLoadDuration)
	prometheus.MustRegister(DatasetRows)
	recMetricsRegistered = true
}
