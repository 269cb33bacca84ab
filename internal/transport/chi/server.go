package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/criteria"
	"github.com/cmarsiglia/habitai/internal/domain/ranking"
	"github.com/cmarsiglia/habitai/internal/logger"
	healthuc "github.com/cmarsiglia/habitai/internal/usecase/health"
	"github.com/cmarsiglia/habitai/internal/version"
)

const (
	appName        = "Api HabitAI"
	welcomeMessage = "Bienvenido a la API de Recomendación de Zonas HabitAI"
	maxBodyBytes   = 64 << 10
)

// Recommender ranks the neighborhoods of a city.
type Recommender interface {
	Recommend(ctx context.Context, city string, c criteria.Criteria) ([]ranking.Result, error)
}

// HealthChecker reports component readiness.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, r *http.Request, err error) bool

// Server serves the HTTP API.
type Server struct {
	recommender   Recommender
	health        HealthChecker
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommender Recommender, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		recommender: recommender,
		health:      health,
		logger:      logger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	s.errorHandlers = []errorHandler{
		emptyCityHandler,
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ""),
		sentinelHandler(context.DeadlineExceeded, http.StatusServiceUnavailable, "request timed out"),
	}
	return s
}

// Routes registers every API route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/metrics", s.Metrics)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)
		r.Get("/ready", s.Ready)
		r.Post("/zonas", s.Recommend)
		r.Post("/v1/recommendations", s.Recommend)
	})
}

// Recommend handles POST /api/zonas and POST /api/v1/recommendations.
// Pass ?explain=true to include per-criterion contributions.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var body recommendBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: malformed body: %v", domain.ErrInvalidRequest, err))
		return
	}

	in := body.normalize()
	if err := s.validate.Struct(in); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, validationMessage(err)))
		return
	}

	ctx := logger.With(r.Context(), zap.String("city", in.City))
	results, err := s.recommender.Recommend(ctx, in.City, criteria.New(in.Positives, in.Negatives))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	items := make([]resultResponse, len(results))
	for i, res := range results {
		items[i] = resultToResponse(res, explain)
	}
	writeJSON(w, http.StatusOK, items)
}

// Health handles GET /api/health (static liveness).
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "pong!"})
}

// Ready handles GET /api/ready.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, readinessResponse{Status: string(report.Status), Checks: checks})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: welcomeMessage,
		Name:    appName,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "validation failed"
	}
	fe := verrs[0]
	switch fe.Field() {
	case "City":
		return "city is required"
	default:
		return "too many " + fe.Field() + " criteria"
	}
}

// emptyCityHandler answers 200 with an error payload: an unknown city is an
// expected outcome, not a failure.
func emptyCityHandler(w http.ResponseWriter, r *http.Request, err error) bool {
	var ec *domain.EmptyCityError
	if !errors.As(err, &ec) {
		return false
	}
	logger.FromContext(r.Context()).Info("No neighborhoods for city", zap.String("city", ec.City))
	writeError(w, http.StatusOK, ec.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// An empty msg sends the error text.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, _ *http.Request, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		text := msg
		if text == "" {
			text = err.Error()
		}
		writeError(w, status, text)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, r, err) {
			return
		}
	}
	reqID := zap.String("request_id", middleware.GetReqID(r.Context()))
	if errors.Is(err, domain.ErrDataIntegrity) {
		s.logger.Error("dataset integrity error", reqID, zap.Error(err))
	} else {
		s.logger.Error("internal error", reqID, zap.Error(err))
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
