package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	messagingerrors "clipcast/contexts/community/messaging-service/domain/errors"
	messaginghttp "clipcast/contexts/community/messaging-service/transport/http"
)

func (s *Server) handleOpenConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	var req messaginghttp.OpenConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessagingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Messaging.Handler.OpenConversationHandler(r.Context(), userID, req)
	if err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Messaging.Handler.ListConversationsHandler(r.Context(), userID, r.URL.Query().Get("brand_id"))
	if err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	var req messaginghttp.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessagingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Messaging.Handler.SendMessageHandler(r.Context(), userID, r.PathValue("conversation_id"), req)
	if err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Messaging.Handler.ListMessagesHandler(r.Context(), userID, r.PathValue("conversation_id"))
	if err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	if err := s.modules.Messaging.Handler.MarkReadHandler(r.Context(), userID, r.PathValue("conversation_id")); err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Messaging.Handler.UnreadCountHandler(r.Context(), userID, r.PathValue("conversation_id"))
	if err != nil {
		writeMessagingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSubscribeConversation upgrades the connection after verifying the
// caller is a conversation participant. Closing the socket tears the
// subscription down.
func (s *Server) handleSubscribeConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireMessagingUser(w, r)
	if !ok {
		return
	}
	if s.hub == nil {
		writeMessagingError(w, http.StatusServiceUnavailable, "realtime_disabled", "realtime messaging is not enabled")
		return
	}

	conversationID := r.PathValue("conversation_id")
	if _, err := s.modules.Messaging.Handler.UnreadCountHandler(r.Context(), userID, conversationID); err != nil {
		writeMessagingDomainError(w, err)
		return
	}

	if err := s.hub.Subscribe(w, r, conversationID); err != nil {
		s.logger.Error("websocket upgrade failed",
			"event", "realtime_subscribe_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"conversation_id", conversationID,
			"error", err.Error(),
		)
	}
}

func (s *Server) requireMessagingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeMessagingError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeMessagingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, messagingerrors.ErrConversationNotFound):
		writeMessagingError(w, http.StatusNotFound, "conversation_not_found", err.Error())
	case errors.Is(err, messagingerrors.ErrForbidden):
		writeMessagingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, messagingerrors.ErrInvalidRequest):
		writeMessagingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeMessagingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMessagingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, messaginghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
