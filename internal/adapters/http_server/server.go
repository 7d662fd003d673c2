package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// generous enough for multi-file uploads on slow links
const requestTimeout = 30 * time.Second

// Server owns the router. Middleware is attached at construction, before
// any route exists; chi panics on late Use calls.
type Server struct{ mux *chi.Mux }

func New() *Server {
	m := chi.NewRouter()
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(requestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches a handler outside the API surface, e.g. /metrics or the
// static /uploads tree served by the filesystem backend.
func (s *Server) Mount(path string, h http.Handler) { s.mux.Handle(path, h) }
