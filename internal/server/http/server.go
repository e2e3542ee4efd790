// Package httpserver exposes the task-keeper REST API.
package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/service"
	"github.com/and161185/task-keeper/internal/token"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth   service.AuthService
	tasks  service.TaskService
	tokens *token.Manager
	log    *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, tasks service.TaskService, tokens *token.Manager, log *zap.Logger) *Server {
	return &Server{auth: auth, tasks: tasks, tokens: tokens, log: log}
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	mux.HandleFunc("POST /api/users/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/users/logout", s.handleLogout)

	requireAuth := RequireAuth(s.tokens)
	mux.Handle("GET /api/users/me", requireAuth(http.HandlerFunc(s.handleMe)))

	mux.Handle("POST /api/tasks", requireAuth(http.HandlerFunc(s.handleTaskCreate)))
	mux.Handle("GET /api/tasks", requireAuth(http.HandlerFunc(s.handleTaskList)))
	mux.Handle("GET /api/tasks/{id}", requireAuth(http.HandlerFunc(s.handleTaskGet)))
	mux.Handle("PUT /api/tasks/{id}", requireAuth(http.HandlerFunc(s.handleTaskUpdate)))
	mux.Handle("DELETE /api/tasks/{id}", requireAuth(http.HandlerFunc(s.handleTaskDelete)))

	var h http.Handler = mux
	h = CORS(corsOrigins)(h)
	h = Logging(s.log)(h)
	h = Recover(s.log)(h)
	return h
}

// writeDomainError is the centralized mapping from the error taxonomy to
// HTTP. Anything outside the closed set is logged in full and answered with
// a generic 500 body.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationError(w, ve)
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many attempts, try again later")
	default:
		s.log.Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
