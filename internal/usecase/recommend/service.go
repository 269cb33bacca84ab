package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/criteria"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
	"github.com/cmarsiglia/habitai/internal/domain/ranking"
	"github.com/cmarsiglia/habitai/internal/logger"
	"github.com/cmarsiglia/habitai/internal/metrics"
	"github.com/cmarsiglia/habitai/internal/ml/forest"
)

// Defaults of the scoring engine.
const (
	DefaultTopN        = 8
	DefaultMinFeedback = 5
	DefaultEpsilon     = 0.001
)

// Config tunes the scoring engine.
type Config struct {
	TopN        int
	MinFeedback int
	Epsilon     float64
	Forest      forest.Config
}

// DefaultConfig returns top 8, feedback threshold 5, epsilon 0.001 and the
// default forest.
func DefaultConfig() Config {
	return Config{
		TopN:        DefaultTopN,
		MinFeedback: DefaultMinFeedback,
		Epsilon:     DefaultEpsilon,
		Forest:      forest.DefaultConfig(),
	}
}

// Service ranks the neighborhoods of a city for one set of criteria.
type Service struct {
	dataset  DatasetSource
	feedback FeedbackSource
	cfg      Config
}

// New creates a recommendation service. Zero config fields fall back to defaults.
func New(dataset DatasetSource, feedback FeedbackSource, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.MinFeedback <= 0 {
		cfg.MinFeedback = def.MinFeedback
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.Forest.Trees <= 0 {
		cfg.Forest.Trees = def.Forest.Trees
	}
	if cfg.Forest.MaxDepth <= 0 {
		cfg.Forest.MaxDepth = def.Forest.MaxDepth
	}
	return &Service{dataset: dataset, feedback: feedback, cfg: cfg}
}

// Recommend returns at most TopN neighborhoods of city, best first.
// A city without neighborhoods yields *domain.EmptyCityError.
func (s *Service) Recommend(
	ctx context.Context, city string, c criteria.Criteria,
) ([]ranking.Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	all, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	rows := neighborhood.FilterByCity(all, city)
	if len(rows) == 0 {
		metrics.EmptyCityTotal.Inc()
		return nil, domain.NewEmptyCity(city)
	}

	resolved := c.Resolve()
	reportUnknown(log, resolved)

	records, err := s.feedback.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}

	var results []ranking.Result
	kind := ranking.Heuristic
	if len(records) >= s.cfg.MinFeedback {
		kind = ranking.Predicted
		results, err = predict(ctx, rows, c.Flags(), records, s.cfg.Forest)
		if err != nil {
			return nil, fmt.Errorf("predict ratings: %w", err)
		}
	} else {
		results = scoreHeuristic(rows, resolved, s.cfg.Epsilon)
	}

	results = rank(results, s.cfg.TopN)

	metrics.RecommendationsTotal.WithLabelValues(string(kind)).Inc()
	metrics.RecommendationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	log.Debug("Recommendation ranked",
		zap.String("strategy", string(kind)),
		zap.Int("candidates", len(rows)),
		zap.Int("feedback", len(records)),
		zap.Int("returned", len(results)),
	)
	return results, nil
}

// reportUnknown logs and counts keywords outside the vocabulary. They never
// fail the request.
func reportUnknown(log *zap.Logger, r criteria.Resolved) {
	report := func(keywords []string, polarity ranking.Polarity) {
		for _, kw := range keywords {
			metrics.UnknownCriteriaTotal.WithLabelValues(string(polarity)).Inc()
			log.Warn("Unknown criterion ignored",
				zap.String("keyword", kw),
				zap.String("polarity", string(polarity)),
			)
		}
	}
	report(r.UnknownPositive, ranking.Positive)
	report(r.UnknownNegative, ranking.Negative)
}
