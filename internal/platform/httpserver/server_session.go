package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	sessionerrors "clipcast/contexts/community/session-service/domain/errors"
	sessionhttp "clipcast/contexts/community/session-service/transport/http"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSessionUser(w, r)
	if !ok {
		return
	}

	var req sessionhttp.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Sessions.Handler.CreateSessionHandler(r.Context(), userID, req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSessionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Sessions.Handler.GetSessionHandler(r.Context(), userID, r.PathValue("session_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSessionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Sessions.Handler.ListSessionsHandler(r.Context(), userID)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSessionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Sessions.Handler.AcceptSessionHandler(r.Context(), userID, r.PathValue("session_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeclineSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSessionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Sessions.Handler.DeclineSessionHandler(r.Context(), userID, r.PathValue("session_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireSessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeSessionError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrSessionNotFound):
		writeSessionError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, sessionerrors.ErrForbidden):
		writeSessionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, sessionerrors.ErrInvalidState):
		writeSessionError(w, http.StatusBadRequest, "invalid_state", err.Error())
	case errors.Is(err, sessionerrors.ErrInvalidRequest):
		writeSessionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeSessionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSessionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
