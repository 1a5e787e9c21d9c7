// Package http exposes the observation API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/park-conditions/internal/domain"
	"github.com/couchcryptid/park-conditions/internal/recorder"
)

// ObservationRecorder is the slice of the recorder the HTTP layer needs.
type ObservationRecorder interface {
	Submit(ctx context.Context, in domain.Reading) (recorder.Result, error)
	Flush(ctx context.Context) error
	Observations() []domain.Observation
	Latest() (domain.Observation, bool)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the observation API over HTTP.
type Server struct {
	httpServer *http.Server
	recorder   ObservationRecorder
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the observation API, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, rec ObservationRecorder, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		recorder: rec,
		logger:   logger,
	}

	mux.HandleFunc("POST /api/observations", s.handleSubmit)
	mux.HandleFunc("GET /api/observations", s.handleList)
	mux.HandleFunc("GET /api/observations/latest", s.handleLatest)
	mux.HandleFunc("POST /api/observations/flush", s.handleFlush)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(rec))
	mux.Handle("GET /metrics", promhttp.Handler())

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

// submitRequest is the UI collaborator's input: three measurements plus the
// particulate readings recorded alongside the AQI. Pointers distinguish
// missing fields from zero values.
type submitRequest struct {
	RainfallMM *float64 `json:"rainfall_mm"`
	PM25       *float64 `json:"pm25"`
	PM10       *float64 `json:"pm10"`
	AQI        *int     `json:"aqi"`
	PH         *float64 `json:"ph"`
}

// validate enforces the declared numeric ranges, nothing more.
func (req *submitRequest) validate() error {
	switch {
	case req.RainfallMM == nil || req.PM25 == nil || req.PM10 == nil || req.AQI == nil || req.PH == nil:
		return errors.New("rainfall_mm, pm25, pm10, aqi, and ph are all required")
	case *req.RainfallMM < 0 || *req.RainfallMM > 1000:
		return fmt.Errorf("rainfall_mm %g out of range [0, 1000]", *req.RainfallMM)
	case *req.PM25 < 0:
		return fmt.Errorf("pm25 %g must be non-negative", *req.PM25)
	case *req.PM10 < 0:
		return fmt.Errorf("pm10 %g must be non-negative", *req.PM10)
	case *req.AQI < 0 || *req.AQI > 500:
		return fmt.Errorf("aqi %d out of range [0, 500]", *req.AQI)
	case *req.PH < 0 || *req.PH > 14:
		return fmt.Errorf("ph %g out of range [0, 14]", *req.PH)
	}
	return nil
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.recorder.Submit(r.Context(), domain.Reading{
		RainfallMM: *req.RainfallMM,
		PM25:       *req.PM25,
		PM10:       *req.PM10,
		AQI:        *req.AQI,
		PH:         *req.PH,
	})
	if err != nil {
		// Classification succeeded but the write did not: the submission is
		// not durable and the client must be told.
		s.logger.Error("submission not durable", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Errorf("observation not persisted: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	obs := s.recorder.Observations()
	writeJSON(w, http.StatusOK, map[string]any{
		"observations": obs,
		"count":        len(obs),
	})
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	obs, ok := s.recorder.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no observations recorded"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"observation": obs,
		"rainfall":    domain.ClassifyRainfall(obs.RainfallMM),
		"air":         domain.ClassifyAirQuality(obs.AQI),
		"water":       domain.ClassifyRainwater(obs.PH),
	})
}

func (s *Server) handleFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.recorder.Flush(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ObservationRecorder) http.HandlerFunc {
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

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
