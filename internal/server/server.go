// Package server exposes the QRNG core over an HTTP JSON API.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/xtding233/qrng-backend/internal/config"
	"github.com/xtding233/qrng-backend/internal/sim"
)

// Server wires the backend and configuration behind HTTP handlers.
// Config is swappable at runtime for hot reload.
type Server struct {
	log     zerolog.Logger
	backend sim.Backend

	mu  sync.RWMutex
	cfg config.Config
}

// New creates a server around a backend.
func New(cfg config.Config, log zerolog.Logger, backend sim.Backend) *Server {
	return &Server{log: log, backend: backend, cfg: cfg}
}

// SetConfig replaces the active configuration.
func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *Server) config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/bits", s.handleBits)
		r.Get("/int", s.handleInt)
		r.Post("/test/frequency", s.handleFrequency)
		r.Post("/test/pattern", s.handlePattern)
		r.Get("/compare", s.handleCompare)
		r.Get("/calibrate", s.handleCalibrate)
		r.Get("/trials", s.handleTrials)
	})
	return r
}
