// Package httpapi exposes the JSON REST surface of the notes server:
// signup/login plus the ownership-gated note endpoints. All protected routes
// pass through the bearer-token middleware before any handler logic runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sparks/noteapp/internal/logging"
	"github.com/sparks/noteapp/internal/server/services"
)

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	notes   *services.NoteService
}

func NewServer(address string, l logging.Logger, us *services.UserService, ns *services.NoteService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		notes:   ns,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("POST /notes", s.requireAuth(s.handleCreateNote))
	mux.HandleFunc("GET /notes", s.requireAuth(s.handleListNotes))
	mux.HandleFunc("PUT /notes/{id}", s.requireAuth(s.handleUpdateNote))
	mux.HandleFunc("DELETE /notes/{id}", s.requireAuth(s.handleDeleteNote))
	mux.HandleFunc("POST /notes/{id}/attachment", s.requireAuth(s.handlePresignUpload))
	mux.HandleFunc("GET /notes/{id}/attachment", s.requireAuth(s.handlePresignDownload))

	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
