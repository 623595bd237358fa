package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	discorderrors "clipcast/contexts/integrations/discord-service/domain/errors"
	discordhttp "clipcast/contexts/integrations/discord-service/transport/http"
)

func (s *Server) handleCompleteDiscordOAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDiscordUser(w, r)
	if !ok {
		return
	}

	var req discordhttp.CompleteOAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDiscordError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Discord.Handler.CompleteOAuthHandler(r.Context(), userID, r.PathValue("brand_id"), req)
	if err != nil {
		writeDiscordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDiscordConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDiscordUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Discord.Handler.GetConnectionHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeDiscordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGuildRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDiscordUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Discord.Handler.GuildRolesHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeDiscordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDisconnectDiscord(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireDiscordUser(w, r)
	if !ok {
		return
	}

	if err := s.modules.Discord.Handler.DisconnectHandler(r.Context(), userID, r.PathValue("brand_id")); err != nil {
		writeDiscordDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireDiscordUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeDiscordError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeDiscordDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, discorderrors.ErrNotConnected):
		writeDiscordError(w, http.StatusNotFound, "not_connected", err.Error())
	case errors.Is(err, discorderrors.ErrOAuthFailed):
		writeDiscordError(w, http.StatusBadGateway, "oauth_failed", err.Error())
	case errors.Is(err, discorderrors.ErrForbidden):
		writeDiscordError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, discorderrors.ErrInvalidRequest):
		writeDiscordError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeDiscordError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDiscordError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, discordhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
