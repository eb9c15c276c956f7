package http

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/waiola-dashboard/internal/dashboard"
	"github.com/couchcryptid/waiola-dashboard/internal/dataset"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
)

//go:embed web
var webFS embed.FS

// Backend supplies the loaded dataset and the service readiness.
type Backend interface {
	sharedobs.ReadinessChecker
	// Dataset returns nil until the dataset has been loaded.
	Dataset() *dataset.Dataset
}

// Server serves the dashboard page, its JSON API, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer  *http.Server
	backend     Backend
	mapboxToken string
	logger      *slog.Logger
	metrics     *observability.Metrics
	bound       atomic.Pointer[binding]
}

// binding is the controller and dispatcher built for one dataset.
type binding struct {
	data       *dataset.Dataset
	controller *dashboard.Controller
	dispatcher *dashboard.Dispatcher
}

// NewServer creates the HTTP server and registers every route.
func NewServer(addr string, backend Backend, mapboxToken string, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		backend:     backend,
		mapboxToken: mapboxToken,
		logger:      logger,
		metrics:     metrics,
	}

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err) // embedded directory is always present
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	})
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("POST /api/callback", s.handleCallback)
	mux.HandleFunc("GET /api/charts/{id}", s.handleChartExport)
	mux.HandleFunc("GET /api/sites", s.handleSites)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(backend))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = s.withRequestLogging(mux)
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
