package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/token"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	u, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{User: u.Public()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	sess, u, err := s.auth.Login(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.writeDomainError(w, r, err)
		return
	}
	// The refresh digest is already persisted; only now may the cookie and
	// tokens leave the server.
	http.SetCookie(w, s.tokens.RefreshCookie(sess.RefreshToken))
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: sess.AccessToken, User: u.Public()})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(token.RefreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "Missing refresh token")
		return
	}
	access, err := s.auth.Refresh(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}

// handleLogout always answers 204: a missing or stale cookie is not an error,
// and the cookie is cleared client-side either way.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(token.RefreshCookieName); err == nil && c.Value != "" {
		if err := s.auth.Logout(r.Context(), c.Value); err != nil {
			s.log.Error("logout: clear refresh hash", zap.Error(err))
		}
	}
	http.SetCookie(w, s.tokens.ExpiredRefreshCookie())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := s.auth.Me(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: u.Public()})
}
