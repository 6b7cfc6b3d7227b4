package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"github.com/secmon-lab/odkpulse/pkg/utils/apperr"
	"github.com/secmon-lab/odkpulse/pkg/utils/metrics"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// Server serves the status API next to the scheduler
type Server struct {
	*http.Server
	runner interfaces.ReportRunner
	repo   interfaces.Repository
}

type serverOptions struct {
	apiToken string
}

// Option configures the Server
type Option func(*serverOptions)

// WithAPIToken protects the run trigger with a bearer token
func WithAPIToken(token string) Option {
	return func(o *serverOptions) {
		o.apiToken = token
	}
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, runner interfaces.ReportRunner, repo interfaces.Repository, opts ...Option) *Server {
	var cfg serverOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		runner: runner,
		repo:   repo,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
			r.With(RequireToken(cfg.apiToken)).Post("/", s.handleStartRun)
		})
	})

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}
	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "odkpulse",
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.runner.LastReport()
	if report == nil {
		writeError(w, goerr.New("no report has been built yet"), http.StatusNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, goerr.New("limit must be a positive integer", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.repo.ListRuns(r.Context(), limit)
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to list runs", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.repo.GetRun(r.Context(), types.RunID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err, apperr.Status(err))
		return
	}
	writeJSON(w, r, http.StatusOK, run)
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	id, err := s.runner.Start(r.Context())
	if err != nil {
		apperr.Handle(r.Context(), err)
		writeError(w, err, apperr.Status(err))
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"run_id": id.String()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
