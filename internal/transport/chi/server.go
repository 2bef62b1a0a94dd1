// Package chi is the HTTP transport: routing, request decoding, and the
// mapping from domain sentinel errors to API status codes.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cavist-cloud/cavist/internal/domain"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
	analyticsuc "github.com/cavist-cloud/cavist/internal/usecase/analytics"
	healthuc "github.com/cavist-cloud/cavist/internal/usecase/health"
	"github.com/cavist-cloud/cavist/internal/usecase/intent"
	rankuc "github.com/cavist-cloud/cavist/internal/usecase/rank"
	summaryuc "github.com/cavist-cloud/cavist/internal/usecase/summary"
)

const dateLayout = "2006-01-02"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	rank          *rankuc.Service
	intent        *intent.Resolver
	summary       *summaryuc.Service
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	rankSvc *rankuc.Service,
	intentResolver *intent.Resolver,
	summarySvc *summaryuc.Service,
	analyticsSvc *analyticsuc.Service,
	healthSvc *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		rank:      rankSvc,
		intent:    intentResolver,
		summary:   summarySvc,
		analytics: analyticsSvc,
		health:    healthSvc,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCatalogNotFound, http.StatusNotFound, CodeCatalogNotFound),
		sentinelHandler(domain.ErrPackNotFound, http.StatusNotFound, CodePackNotFound),
		sentinelHandler(domain.ErrIntentUnresolved, http.StatusUnprocessableEntity, CodeIntentUnresolved),
		sentinelHandler(domain.ErrChatNotConfigured, http.StatusNotImplemented, CodeChatNotConfigured),
		sentinelHandler(domain.ErrAnalyticsDisabled, http.StatusNotImplemented, CodeAnalyticsDisabled),
		sentinelHandler(domain.ErrChatProviderError, http.StatusBadGateway, CodeChatProviderError),
	}
	return s
}

// Routes mounts every API route on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/catalogs/{catalog}/rank", s.RankCatalog)
	r.Post("/v1/intent", s.ResolveIntent)
	r.Get("/v1/catalogs/{catalog}/analytics", s.CatalogAnalytics)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// RankCatalog handles POST /v1/catalogs/{catalog}/rank.
func (s *Server) RankCatalog(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalog")

	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	limit := rank.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	criteria := rank.NewCriteria(req.Filters, req.Budget, limit)

	outcome, err := s.rank.Rank(r.Context(), catalogID, req.Domain, req.Tenant, criteria)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := rankResponseFromOutcome(outcome, req.Debug)

	if req.Summarize && outcome.OK() {
		note, err := s.summary.Summarize(r.Context(), outcome)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		resp.Summary = note
	}

	writeJSON(w, http.StatusOK, resp)
}

// ResolveIntent handles POST /v1/intent.
func (s *Server) ResolveIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return
	}

	parsed, err := s.intent.Resolve(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intentResponseFromDomain(parsed))
}

// CatalogAnalytics handles GET /v1/catalogs/{catalog}/analytics.
func (s *Server) CatalogAnalytics(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalog")

	params, err := bindAnalyticsParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	report, err := s.analytics.Report(
		r.Context(), catalogID,
		params.from, params.to, params.granularity, params.top,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyticsResponseFromReport(report, params.granularity))
}

type analyticsParams struct {
	from        time.Time
	to          time.Time
	granularity analyticsuc.Granularity
	top         int
}

// bindAnalyticsParams decodes the analytics query string. The range defaults
// to the last 30 days.
func bindAnalyticsParams(query url.Values) (analyticsParams, error) {
	var fromRaw, toRaw, granRaw string
	var top int

	if err := runtime.BindQueryParameter("form", true, false, "from", query, &fromRaw); err != nil {
		return analyticsParams{}, fmt.Errorf("bind from: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", query, &toRaw); err != nil {
		return analyticsParams{}, fmt.Errorf("bind to: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "granularity", query, &granRaw); err != nil {
		return analyticsParams{}, fmt.Errorf("bind granularity: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "top", query, &top); err != nil {
		return analyticsParams{}, fmt.Errorf("bind top: %w", err)
	}

	out := analyticsParams{
		to:          time.Now().UTC().Truncate(24 * time.Hour),
		granularity: analyticsuc.Day,
		top:         top,
	}
	out.from = out.to.AddDate(0, 0, -30)

	if toRaw != "" {
		to, err := time.ParseInLocation(dateLayout, toRaw, time.UTC)
		if err != nil {
			return analyticsParams{}, fmt.Errorf("to must be a %s date", dateLayout)
		}
		out.to = to
	}
	if fromRaw != "" {
		from, err := time.ParseInLocation(dateLayout, fromRaw, time.UTC)
		if err != nil {
			return analyticsParams{}, fmt.Errorf("from must be a %s date", dateLayout)
		}
		out.from = from
	}
	if out.to.Before(out.from) {
		return analyticsParams{}, fmt.Errorf("to must not be before from")
	}

	if granRaw != "" {
		gran := analyticsuc.Granularity(granRaw)
		if !gran.IsValid() {
			return analyticsParams{}, fmt.Errorf("granularity must be day, week or month")
		}
		out.granularity = gran
	}

	return out, nil
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
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

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCatalogNotFound,
		domain.ErrPackNotFound,
		domain.ErrIntentUnresolved,
		domain.ErrChatNotConfigured,
		domain.ErrChatProviderError,
		domain.ErrAnalyticsDisabled,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
