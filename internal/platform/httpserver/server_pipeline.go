package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pipelineerrors "clipcast/contexts/sales/pipeline-service/domain/errors"
	pipelinehttp "clipcast/contexts/sales/pipeline-service/transport/http"
)

func (s *Server) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	var req pipelinehttp.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePipelineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Pipeline.Handler.CreateDealHandler(r.Context(), userID, req)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Pipeline.Handler.GetDealHandler(r.Context(), userID, r.PathValue("deal_id"))
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.modules.Pipeline.Handler.ListDealsHandler(r.Context(), userID, query.Get("stage"), query.Get("brand_id"))
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMoveDealStage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	var req pipelinehttp.MoveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePipelineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Pipeline.Handler.MoveStageHandler(r.Context(), userID, r.PathValue("deal_id"), req)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	var req pipelinehttp.UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePipelineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Pipeline.Handler.UpdateDealHandler(r.Context(), userID, r.PathValue("deal_id"), req)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	if err := s.modules.Pipeline.Handler.DeleteDealHandler(r.Context(), userID, r.PathValue("deal_id")); err != nil {
		writePipelineDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requirePipelineUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Pipeline.Handler.MonthlyRevenueHandler(r.Context(), userID)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requirePipelineUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writePipelineError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writePipelineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipelineerrors.ErrDealNotFound):
		writePipelineError(w, http.StatusNotFound, "deal_not_found", err.Error())
	case errors.Is(err, pipelineerrors.ErrInvalidTransition):
		writePipelineError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, pipelineerrors.ErrForbidden):
		writePipelineError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, pipelineerrors.ErrInvalidRequest):
		writePipelineError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writePipelineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePipelineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pipelinehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
