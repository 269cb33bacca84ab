package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	dataset DatasetLoader
	db      DBPinger
}

// New creates a Service. db can be nil when the dataset does not live in a database.
func New(dataset DatasetLoader, db DBPinger) *Service {
	return &Service{dataset: dataset, db: db}
}

// Check runs health checks against all components. An empty dataset is
// reported as an error: no city could be served.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	rows, err := s.dataset.Load(ctx)
	if err != nil || len(rows) == 0 {
		checks["dataset"] = CheckError
	} else {
		checks["dataset"] = CheckOK
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	status := Healthy
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
