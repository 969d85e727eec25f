package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 15 * time.Second

type Server struct {
	mux        *chi.Mux
	ratePerMin int
	timeout    time.Duration
}

type Option func(*Server)

// WithTimeout overrides DefaultTimeout for every handler.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New builds the router. ratePerMin <= 0 disables per-IP rate limiting on /v1.
func New(ratePerMin int, opts ...Option) *Server {
	s := &Server{mux: chi.NewRouter(), ratePerMin: ratePerMin, timeout: DefaultTimeout}
	for _, o := range opts {
		o(s)
	}

	// all middlewares go here (before any routes are added)
	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	// outside Timeout so timed-out requests are recorded with their 503
	s.mux.Use(Instrument(log.Logger))
	s.mux.Use(Timeout(s.timeout))

	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

func (s *Server) rateLimit() func(http.Handler) http.Handler {
	if s.ratePerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(s.ratePerMin, time.Minute)
}
