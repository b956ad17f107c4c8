package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/archive"
	"github.com/omarzayed/supportdesk/internal/assistant"
	"github.com/omarzayed/supportdesk/internal/conversation"
	"github.com/omarzayed/supportdesk/internal/faq"
	"github.com/omarzayed/supportdesk/internal/intent"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server exposes the support desk over HTTP and WebSocket.
type Server struct {
	cfg        Config
	assistant  *assistant.Assistant
	router     chi.Router
	httpServer *http.Server
	log        zerolog.Logger
}

// New creates a server and mounts every feature package's routes.
func New(cfg Config, a *assistant.Assistant, catalog *faq.Catalog,
	classifier *intent.Classifier, archiveStore *archive.Store, log zerolog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		assistant: a,
		log:       log.With().Str("component", "server").Logger(),
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The request timeout covers API routes only; the WebSocket
	// endpoint holds its connection open indefinitely.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		assistant.RegisterRoutes(r, a)
		conversation.RegisterRoutes(r, a.Store())
		faq.RegisterRoutes(r, catalog)
		intent.RegisterRoutes(r, classifier)
		if archiveStore != nil {
			archive.RegisterRoutes(r, archiveStore, a.Store())
		}
	})
	r.Get("/ws/chat", s.handleWebSocket)

	s.router = r
	return s
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("addr", addr).Msg("supportdesk server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
