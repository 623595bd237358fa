package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	branderrors "clipcast/contexts/marketplace/brand-service/domain/errors"
	brandhttp "clipcast/contexts/marketplace/brand-service/transport/http"
)

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	var req brandhttp.CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBrandError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Brands.Handler.CreateBrandHandler(r.Context(), userID, req)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Brands.Handler.GetBrandHandler(r.Context(), r.PathValue("brand_id"))
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBrandBySlug(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Brands.Handler.GetBrandBySlugHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Brands.Handler.ListBrandsHandler(r.Context(), userID)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	var req brandhttp.UpdateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBrandError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Brands.Handler.UpdateBrandHandler(r.Context(), userID, r.PathValue("brand_id"), req)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Brands.Handler.ListMembersHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	var req brandhttp.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBrandError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Brands.Handler.CreateInviteHandler(r.Context(), userID, r.PathValue("brand_id"), req)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleJoinBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	var req brandhttp.JoinBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBrandError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Brands.Handler.JoinBrandHandler(r.Context(), userID, r.PathValue("brand_id"), req)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	var req brandhttp.ChangeMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBrandError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Brands.Handler.ChangeMemberRoleHandler(
		r.Context(),
		actorID,
		r.PathValue("brand_id"),
		r.PathValue("user_id"),
		req,
	)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireBrandUser(w, r)
	if !ok {
		return
	}

	err := s.modules.Brands.Handler.RemoveMemberHandler(
		r.Context(),
		actorID,
		r.PathValue("brand_id"),
		r.PathValue("user_id"),
	)
	if err != nil {
		writeBrandDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireBrandUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeBrandError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeBrandDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, branderrors.ErrBrandNotFound):
		writeBrandError(w, http.StatusNotFound, "brand_not_found", err.Error())
	case errors.Is(err, branderrors.ErrMemberNotFound):
		writeBrandError(w, http.StatusNotFound, "member_not_found", err.Error())
	case errors.Is(err, branderrors.ErrSlugTaken):
		writeBrandError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, branderrors.ErrMemberAlreadyExists):
		writeBrandError(w, http.StatusConflict, "member_exists", err.Error())
	case errors.Is(err, branderrors.ErrLastOwner):
		writeBrandError(w, http.StatusConflict, "last_owner", err.Error())
	case errors.Is(err, branderrors.ErrOwnerExists):
		writeBrandError(w, http.StatusConflict, "owner_exists", err.Error())
	case errors.Is(err, branderrors.ErrInviteInvalid):
		writeBrandError(w, http.StatusBadRequest, "invite_invalid", err.Error())
	case errors.Is(err, branderrors.ErrSubscriptionInactive):
		writeBrandError(w, http.StatusPaymentRequired, "subscription_inactive", err.Error())
	case errors.Is(err, branderrors.ErrForbidden):
		writeBrandError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, branderrors.ErrInvalidRequest):
		writeBrandError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeBrandError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBrandError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, brandhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
