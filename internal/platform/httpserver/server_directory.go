package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	directoryerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	directoryhttp "clipcast/contexts/admin/user-directory-service/transport/http"
)

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Directory.Handler.UpsertProfileHandler(r.Context(), userID, req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Directory.Handler.GetProfileHandler(r.Context(), actorID, r.PathValue("user_id"))
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.modules.Directory.Handler.ListUsersHandler(
		r.Context(),
		actorID,
		query.Get("role"),
		query.Get("country"),
		query.Get("search"),
	)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCreators(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.modules.Directory.Handler.ListCreatorsHandler(
		r.Context(),
		actorID,
		query.Get("country"),
		query.Get("search"),
	)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportCreatorsCSV(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	payload, err := s.modules.Directory.Handler.ExportCreatorsCSVHandler(
		r.Context(),
		actorID,
		query.Get("country"),
		query.Get("search"),
	)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="creators.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleSetSuspended(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.SetSuspendedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.modules.Directory.Handler.SetSuspendedHandler(r.Context(), actorID, r.PathValue("user_id"), req); err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpsertSocialAccount(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.UpsertSocialAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.modules.Directory.Handler.UpsertSocialAccountHandler(r.Context(), actorID, req); err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitDemographics(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.SubmitDemographicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Directory.Handler.SubmitDemographicsHandler(r.Context(), userID, req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPendingDemographics(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Directory.Handler.ListPendingDemographicsHandler(r.Context(), actorID)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewDemographics(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireDirectoryUser(w, r)
	if !ok {
		return
	}

	var req directoryhttp.ReviewDemographicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Directory.Handler.ReviewDemographicsHandler(r.Context(), actorID, r.PathValue("submission_id"), req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireDirectoryUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeDirectoryError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrProfileNotFound):
		writeDirectoryError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrSubmissionNotFound):
		writeDirectoryError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrAlreadyReviewed):
		writeDirectoryError(w, http.StatusConflict, "already_reviewed", err.Error())
	case errors.Is(err, directoryerrors.ErrForbidden):
		writeDirectoryError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, directoryerrors.ErrInvalidRequest):
		writeDirectoryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
