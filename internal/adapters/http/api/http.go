// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/ecoscore/internal/app"
	"github.com/okian/ecoscore/internal/domain/scoring"
	"github.com/okian/ecoscore/pkg/logger"
	"github.com/okian/ecoscore/pkg/metrics"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 30 * time.Second
	corsMaxAge     = 300
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScoreDependencies
	HistoryDependencies
	SummaryDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scoreHandler   *ScoreHandler
	historyHandler *HistoryHandler
	summaryHandler *SummaryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Get()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		scoreHandler:   NewScoreHandler(deps, log),
		historyHandler: NewHistoryHandler(deps, log),
		summaryHandler: NewSummaryHandler(deps, log),
	}
}

// NewRouter returns a chi router with the shared middleware stack. An empty
// origin list allows every origin.
func NewRouter(allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         corsMaxAge,
	}))
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Post("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	r.Get("/history", MetricsMiddleware(s.historyHandler.HandleHistory, "history"))
	r.Get("/score-summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "score_summary"))
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps errors that are not the caller's fault.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	log.Error(ctx, "request failed",
		logger.String("op", op),
		logger.String("requestID", middleware.GetReqID(ctx)),
		logger.Error(err),
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// isValidation reports whether err is the caller's fault.
func isValidation(err error) bool {
	return errors.Is(err, scoring.ErrInvalidNumericFormat)
}
