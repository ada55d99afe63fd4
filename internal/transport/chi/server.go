package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/watchrec/internal/db"
	"github.com/kailas-cloud/watchrec/internal/domain"
	"github.com/kailas-cloud/watchrec/internal/loader"
	"github.com/kailas-cloud/watchrec/internal/metrics"
	healthuc "github.com/kailas-cloud/watchrec/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/watchrec/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/watchrec/internal/usecase/recommend"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest         = "bad_request"
	codeMalformedInput     = "malformed_input"
	codeCustomerNotFound   = "customer_not_found"
	codeNoHistory          = "no_history"
	codeMovieNotFound      = "movie_not_found"
	codeBackendUnavailable = "backend_unavailable"
	codeInternalError      = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the engine use cases to HTTP routes.
type Server struct {
	recommend     *recommenduc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		ingest:    ingest,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCustomerNotFound, http.StatusNotFound, codeCustomerNotFound),
		sentinelHandler(domain.ErrNoHistory, http.StatusNotFound, codeNoHistory),
		sentinelHandler(domain.ErrMovieNotFound, http.StatusNotFound, codeMovieNotFound),
		sentinelHandler(domain.ErrMalformedInput, http.StatusBadRequest, codeMalformedInput),
		backendHandler,
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/recommendations/{customerID}", s.handleRecommendations)
	r.Post("/movies", s.handleIngestMovie)
	r.Get("/movies/{movieID}", s.handleGetMovie)
}

// recommendationItem is one resolved recommendation in the response.
type recommendationItem struct {
	MovieID       string `json:"movieId"`
	Title         string `json:"title"`
	YearOfRelease int    `json:"yearOfRelease"`
}

// handleRecommendations serves GET /recommendations/{customerID}.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "customer id is required")
		return
	}

	movies, err := s.recommend.Recommend(r.Context(), customerID)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues(queryOutcome(err)).Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.RecommendationsTotal.WithLabelValues("ok").Inc()

	items := make([]recommendationItem, 0, len(movies))
	for _, m := range movies {
		items = append(items, recommendationItem{
			MovieID:       m.ID,
			Title:         m.Title,
			YearOfRelease: m.Year,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// ingestReportResponse mirrors the per-movie ingestion report.
type ingestReportResponse struct {
	MovieID       string `json:"movieId"`
	Created       bool   `json:"created"`
	AlreadyExists bool   `json:"alreadyExists"`
	Appended      int    `json:"appended"`
	Errors        int    `json:"errors"`
}

// handleIngestMovie serves POST /movies. The body is one movie export
// document, the same schema the loader CLI reads from disk.
func (s *Server) handleIngestMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := loader.DecodeMovie(r.Body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	report, err := s.ingest.Ingest(r.Context(), movie)
	metrics.CountIngest(report.Created, report.AlreadyExists, report.Appended, report.Errors)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if report.AlreadyExists {
		status = http.StatusOK
	}
	writeJSON(w, status, ingestReportResponse{
		MovieID:       report.MovieID,
		Created:       report.Created,
		AlreadyExists: report.AlreadyExists,
		Appended:      report.Appended,
		Errors:        report.Errors,
	})
}

// movieResponse is the movie metadata plus its watcher count.
type movieResponse struct {
	MovieID       string `json:"movieId"`
	Title         string `json:"title"`
	YearOfRelease int    `json:"yearOfRelease"`
	WatcherCount  int64  `json:"watcherCount"`
}

// handleGetMovie serves GET /movies/{movieID}.
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	if movieID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "movie id is required")
		return
	}

	m, count, err := s.ingest.Lookup(r.Context(), movieID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movieResponse{
		MovieID:       m.ID,
		Title:         m.Title,
		YearOfRelease: m.Year,
		WatcherCount:  count,
	})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleDomainError maps a domain error onto an HTTP response.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := err.Error()
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// backendHandler maps store-level failures to 503 without leaking the
// underlying command error to the client.
func backendHandler(w http.ResponseWriter, err error, _ string) bool {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, codeBackendUnavailable, "backend unavailable")
	return true
}

// queryOutcome labels a recommendation failure for metrics.
func queryOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, domain.ErrNoHistory):
		return "no_history"
	default:
		return "error"
	}
}
