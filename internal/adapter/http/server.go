package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunStatus is the view of a batch run the status routes need.
// *pipeline.Pipeline implements it.
type RunStatus interface {
	CheckReadiness(ctx context.Context) error
	Progress() pipeline.Progress
}

// Server exposes liveness, run progress, and metrics while a run is in
// progress.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// readyResponse is the /readyz body: readiness plus how far the run has got.
type readyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	pipeline.Progress
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics routes.
// Metrics are served from g rather than the default registry.
func NewServer(addr string, run RunStatus, g prometheus.Gatherer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(run))
	mux.Handle("GET /metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("status server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReady answers 503 until the run has evaluated its first record. Both
// answers carry the run's counts so far.
func handleReady(run RunStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := readyResponse{Status: "ready", Progress: run.Progress()}
		status := http.StatusOK
		if err := run.CheckReadiness(ctx); err != nil {
			resp.Status, resp.Error = "not ready", err.Error()
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort status response
}
