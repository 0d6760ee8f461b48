// Package httpadapter exposes the site's JSON API. Handlers are thin: they
// parse input, call the aggregation service, and encode the result. Upstream
// failures never become HTTP errors on GET routes; the service hands back
// empty values and the page renders what it has.
package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joeruch23/colorado-weather-network/internal/chat"
	"github.com/joeruch23/colorado-weather-network/internal/service"
)

// ChatResponder answers chat messages.
type ChatResponder interface {
	Reply(ctx context.Context, req chat.Request) string
}

// ClosuresFetcher fetches the raw CDOT closures feed.
type ClosuresFetcher interface {
	Closures(ctx context.Context) (json.RawMessage, error)
}

// Server exposes the API, health, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	svc        *service.Service
	responder  ChatResponder
	closures   ClosuresFetcher
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all API routes registered.
func NewServer(addr string, svc *service.Service, responder ChatResponder, closures ClosuresFetcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:       svc,
		responder: responder,
		closures:  closures,
		logger:    logger,
	}

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/currents", s.handleCurrents)
	mux.HandleFunc("GET /api/forecast", s.handleForecast)
	mux.HandleFunc("GET /api/winter/snow", s.handleSnow)
	mux.HandleFunc("GET /api/winter/resorts", s.handleResorts)
	mux.HandleFunc("GET /api/roads", s.handleRoads)
	mux.HandleFunc("GET /api/cameras", s.handleCameras)
	mux.HandleFunc("GET /api/cdot/closures", s.handleClosures)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
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

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encoding failed", "error", err)
	}
}
