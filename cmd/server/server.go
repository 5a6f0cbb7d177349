package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/api"
	"github.com/tendant/simple-blog/pkg/simpleblog/config"
)

// HTTPServer wraps the blog service for HTTP access
type HTTPServer struct {
	service simpleblog.Service
	config  *config.ServerConfig
	timeout time.Duration
}

// NewHTTPServer creates a new HTTP server wrapper
func NewHTTPServer(service simpleblog.Service, serverConfig *config.ServerConfig, timeout time.Duration) *HTTPServer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPServer{
		service: service,
		config:  serverConfig,
		timeout: timeout,
	}
}

// Routes sets up the HTTP routes
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(s.requestLogger()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	// CORS for development
	if s.config.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/health", s.handleHealth)

	r.Mount("/api", api.Routes(s.service, s.config.CatalogOptions()...))

	return r
}

func (s *HTTPServer) requestLogger() *httplog.Logger {
	level := slog.LevelDebug
	if s.config.IsProduction() {
		level = slog.LevelInfo
	}
	return httplog.NewLogger("simple-blog", httplog.Options{
		LogLevel:        level,
		JSON:            s.config.IsProduction(),
		Concise:         true,
		QuietDownRoutes: []string{"/health"},
		QuietDownPeriod: 10 * time.Second,
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":      "healthy",
		"environment": s.config.Environment,
		"storage":     s.config.Storage.Type,
	})
}
