package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
)

// Server is the HTTP boundary: the Slack webhook plus static serving of
// generated documents.
type Server struct {
	router             *chi.Mux
	webhookHandler     *SlackWebhookHandler
	slackSigningSecret string
	documentDir        string
}

// Options configures the Server
type Options func(*Server)

// WithSlackWebhook wires the Slack events endpoint
func WithSlackWebhook(handler *SlackWebhookHandler, signingSecret string) Options {
	return func(s *Server) {
		s.webhookHandler = handler
		s.slackSigningSecret = signingSecret
	}
}

// WithDocumentDir serves generated PDF documents from dir
func WithDocumentDir(dir string) Options {
	return func(s *Server) {
		s.documentDir = dir
	}
}

// New creates the HTTP server
func New(opts ...Options) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.webhookHandler == nil || s.slackSigningSecret == "" {
		return nil, goerr.New("slack webhook handler and signing secret are required")
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/hooks/slack", func(r chi.Router) {
		r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
		r.Post("/event", s.webhookHandler.ServeHTTP)
	})

	if s.documentDir != "" {
		fileServer := http.StripPrefix("/pdf/generated/", http.FileServer(http.Dir(s.documentDir)))
		r.Get("/pdf/generated/*", fileServer.ServeHTTP)
	}

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
