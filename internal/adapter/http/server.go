// Package http exposes the district statistics API plus health, readiness,
// and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/rozgarmap/district-stats/internal/catalog"
	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/locate"
	"github.com/rozgarmap/district-stats/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SyncTrigger runs a catalog sync on demand.
type SyncTrigger interface {
	Sync(ctx context.Context) error
}

// Server exposes the district API over HTTP.
type Server struct {
	httpServer *http.Server
	store      catalog.Store
	matcher    *catalog.Matcher
	resolver   *locate.Resolver
	syncer     SyncTrigger
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the API server. The /api routes sit behind a token-bucket
// rate limiter; health, readiness, and metrics do not.
func NewServer(addr string, store catalog.Store, matcher *catalog.Matcher, resolver *locate.Resolver, syncer SyncTrigger, ready ReadinessChecker, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:    store,
		matcher:  matcher,
		resolver: resolver,
		syncer:   syncer,
		limiter:  limiter,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/districts", s.limit(s.handleListDistricts))
	mux.Handle("GET /api/districts/state/{state}", s.limit(s.handleListDistrictsByState))
	mux.Handle("GET /api/districts/{district}", s.limit(s.handleGetDistrict))
	mux.Handle("GET /api/districts/{district}/chart", s.limit(s.handleDistrictChart))
	mux.Handle("GET /api/states", s.limit(s.handleListStates))
	mux.Handle("POST /api/location/detect", s.limit(s.handleDetectLocation))
	mux.Handle("POST /api/sync", s.limit(s.handleSync))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// limit applies the shared token bucket to an API handler.
func (s *Server) limit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.RateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleListDistricts(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListNames(r.Context())
	if err != nil {
		s.serverError(w, "list districts", err)
		return
	}
	if len(names) == 0 {
		writeError(w, http.StatusNotFound, "no districts available; run a sync first")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"districts": names, "count": len(names)})
}

func (s *Server) handleListDistrictsByState(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")
	names, err := s.store.ListNamesByState(r.Context(), state)
	if err != nil {
		s.serverError(w, "list districts by state", err)
		return
	}
	if len(names) == 0 {
		writeError(w, http.StatusNotFound, "no districts found for state "+state)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state, "districts": names, "count": len(names)})
}

func (s *Server) handleListStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.store.ListStates(r.Context())
	if err != nil {
		s.serverError(w, "list states", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"states": states, "count": len(states)})
}

func (s *Server) handleGetDistrict(w http.ResponseWriter, r *http.Request) {
	d, err := s.findDistrict(r)
	if err != nil {
		s.serverError(w, "get district", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "district not found: "+r.PathValue("district"))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDistrictChart(w http.ResponseWriter, r *http.Request) {
	d, err := s.findDistrict(r)
	if err != nil {
		s.serverError(w, "get district chart", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "district not found: "+r.PathValue("district"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"district":    d.Name,
		"state":       d.State,
		"monthlyData": d.MonthlyData,
	})
}

// findDistrict looks the path's district up by exact name, then falls back to
// the tiered matcher so close spellings still land on a record.
func (s *Server) findDistrict(r *http.Request) (*domain.District, error) {
	name := domain.CleanDistrictName(r.PathValue("district"))
	d, err := s.store.FindByName(r.Context(), name)
	if err != nil || d != nil {
		return d, err
	}
	return s.matcher.Match(r.Context(), domain.LocationGuess{District: name})
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type detectRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type detectResponse struct {
	District         string           `json:"district"`
	State            string           `json:"state"`
	FormattedAddress string           `json:"formatted_address,omitempty"`
	Available        bool             `json:"available"`
	Coordinates      coordinates      `json:"coordinates"`
	DetectedDistrict string           `json:"detectedDistrict"`
	MatchedDistrict  *domain.District `json:"matchedDistrict,omitempty"`
}

func (s *Server) handleDetectLocation(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Latitude == 0 || req.Longitude == 0 {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	guess, ok := s.resolver.Resolve(r.Context(), req.Latitude, req.Longitude)
	if !ok {
		writeError(w, http.StatusNotFound, "could not determine district for coordinates")
		return
	}

	matched, err := s.matcher.Match(r.Context(), guess)
	if err != nil {
		s.serverError(w, "match district", err)
		return
	}

	resp := detectResponse{
		District:         guess.District,
		State:            guess.State,
		FormattedAddress: guess.FormattedAddress,
		Available:        matched != nil,
		Coordinates:      coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
		DetectedDistrict: guess.District,
		MatchedDistrict:  matched,
	}
	if matched != nil {
		resp.District = matched.Name
		resp.State = matched.State
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := s.syncer.Sync(r.Context()); err != nil {
		s.logger.Error("manual sync failed", "error", err)
		writeError(w, http.StatusBadGateway, "sync failed: "+err.Error())
		return
	}
	n, err := s.store.Count(r.Context())
	if err != nil {
		s.serverError(w, "count districts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "completed", "districts": n})
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
