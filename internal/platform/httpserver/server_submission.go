package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	submissionerrors "clipcast/contexts/content/submission-service/domain/errors"
	submissionhttp "clipcast/contexts/content/submission-service/transport/http"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.CreateSubmissionHandler(r.Context(), userID, req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Submissions.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissionsBySource(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Submissions.Handler.ListBySourceHandler(
		r.Context(),
		userID,
		r.PathValue("source_type"),
		r.PathValue("source_id"),
	)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Submissions.Handler.ListMineHandler(r.Context(), userID)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPlatformStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.SetPlatformStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.SetPlatformStatusHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMoveSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.MoveSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.MoveSubmissionHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPostURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.SetPostURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.SetPostURLHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCaption(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.UpdateCaptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.UpdateCaptionHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.SetFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.SetFeedbackHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPayoutAmount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSubmissionUser(w, r)
	if !ok {
		return
	}

	var req submissionhttp.SetPayoutAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Submissions.Handler.SetPayoutAmountHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireSubmissionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound):
		writeSubmissionError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrPlatformNotFound):
		writeSubmissionError(w, http.StatusNotFound, "platform_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidTransition):
		writeSubmissionError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, submissionerrors.ErrCaptionLocked):
		writeSubmissionError(w, http.StatusConflict, "caption_locked", err.Error())
	case errors.Is(err, submissionerrors.ErrForbidden):
		writeSubmissionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidRequest):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
