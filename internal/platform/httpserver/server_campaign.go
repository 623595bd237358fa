package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	campaignhttp "clipcast/contexts/marketplace/campaign-service/transport/http"
)

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.CreateCampaignHandler(r.Context(), userID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.UpdateCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetCampaignStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.modules.Campaigns.Handler.SetCampaignStatusHandler(r.Context(), userID, r.PathValue("campaign_id"), req); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBrandCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.ListBrandCampaignsHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Campaigns.Handler.DiscoverHandler(r.Context())
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateBoost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.CreateBoostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.CreateBoostHandler(r.Context(), userID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetBoost(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Campaigns.Handler.GetBoostHandler(r.Context(), r.PathValue("boost_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetBoostStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.modules.Campaigns.Handler.SetBoostStatusHandler(r.Context(), userID, r.PathValue("boost_id"), req); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBrandBoosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.ListBrandBoostsHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplyToBoost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.ApplyToBoostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.ApplyToBoostHandler(r.Context(), userID, r.PathValue("boost_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.ListApplicationsHandler(r.Context(), userID, r.PathValue("boost_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.ReviewApplicationHandler(r.Context(), userID, r.PathValue("application_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignContract(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.SignContractHandler(r.Context(), userID, r.PathValue("application_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJoinCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.JoinCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveCreator(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	err := s.modules.Campaigns.Handler.RemoveCreatorHandler(
		r.Context(),
		userID,
		r.PathValue("campaign_id"),
		r.PathValue("creator_id"),
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	var req campaignhttp.ToggleBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Campaigns.Handler.ToggleBookmarkHandler(r.Context(), userID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCampaignUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Campaigns.Handler.ListBookmarksHandler(r.Context(), userID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireCampaignUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrBoostNotFound):
		writeCampaignError(w, http.StatusNotFound, "boost_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrApplicationNotFound):
		writeCampaignError(w, http.StatusNotFound, "application_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrParticipantNotFound):
		writeCampaignError(w, http.StatusNotFound, "participant_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrAlreadyApplied):
		writeCampaignError(w, http.StatusConflict, "already_applied", err.Error())
	case errors.Is(err, campaignerrors.ErrParticipantExists):
		writeCampaignError(w, http.StatusConflict, "already_joined", err.Error())
	case errors.Is(err, campaignerrors.ErrApplicationNotPending):
		writeCampaignError(w, http.StatusConflict, "application_not_pending", err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotEditable):
		writeCampaignError(w, http.StatusConflict, "campaign_not_editable", err.Error())
	case errors.Is(err, campaignerrors.ErrSourceNotActive):
		writeCampaignError(w, http.StatusConflict, "source_not_active", err.Error())
	case errors.Is(err, campaignerrors.ErrForbidden):
		writeCampaignError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidRequest):
		writeCampaignError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
