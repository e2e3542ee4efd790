package httpserver

import (
	"net/http"

	"github.com/gofrs/uuid/v5"
)

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req taskCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	tmpl, err := req.Validate()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	t, err := s.tasks.Create(r.Context(), userID, tmpl)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, taskResponse{Task: t})
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	f, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	ts, err := s.tasks.List(r.Context(), userID, f)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: ts})
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := s.taskRequestIDs(w, r)
	if !ok {
		return
	}
	t, err := s.tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Task: t})
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := s.taskRequestIDs(w, r)
	if !ok {
		return
	}
	var req taskUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	patch, err := req.Validate()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	t, err := s.tasks.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Task: t})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := s.taskRequestIDs(w, r)
	if !ok {
		return
	}
	if err := s.tasks.Delete(r.Context(), userID, taskID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// taskRequestIDs extracts the authenticated user and the {id} path value.
// A malformed id is a 400; ownership is checked later by the store, where a
// foreign task is indistinguishable from a missing one.
func (s *Server) taskRequestIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, taskID, true
}
