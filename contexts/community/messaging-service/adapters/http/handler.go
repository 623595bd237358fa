package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/community/messaging-service/application"
	"clipcast/contexts/community/messaging-service/ports"
	httptransport "clipcast/contexts/community/messaging-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) OpenConversationHandler(ctx context.Context, userID string, req httptransport.OpenConversationRequest) (httptransport.ConversationResponse, error) {
	conversation, err := h.Service.OpenConversation(ctx, userID, req.BrandID, req.CreatorID)
	if err != nil {
		return httptransport.ConversationResponse{}, err
	}
	return httptransport.ConversationResponse{Conversation: mapConversation(conversation)}, nil
}

func (h Handler) ListConversationsHandler(ctx context.Context, userID string, brandID string) (httptransport.ListConversationsResponse, error) {
	items, err := h.Service.ListConversations(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListConversationsResponse{}, err
	}
	result := make([]httptransport.ConversationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapConversation(item))
	}
	return httptransport.ListConversationsResponse{Items: result}, nil
}

func (h Handler) SendMessageHandler(ctx context.Context, userID string, conversationID string, req httptransport.SendMessageRequest) (httptransport.MessageResponse, error) {
	message, err := h.Service.SendMessage(ctx, userID, conversationID, req.Body)
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: mapMessage(message)}, nil
}

func (h Handler) ListMessagesHandler(ctx context.Context, userID string, conversationID string) (httptransport.ListMessagesResponse, error) {
	items, err := h.Service.ListMessages(ctx, userID, conversationID)
	if err != nil {
		return httptransport.ListMessagesResponse{}, err
	}
	result := make([]httptransport.MessageDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapMessage(item))
	}
	return httptransport.ListMessagesResponse{Items: result}, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, userID string, conversationID string) error {
	return h.Service.MarkRead(ctx, userID, conversationID)
}

func (h Handler) UnreadCountHandler(ctx context.Context, userID string, conversationID string) (httptransport.UnreadCountResponse, error) {
	unread, err := h.Service.UnreadCount(ctx, userID, conversationID)
	if err != nil {
		return httptransport.UnreadCountResponse{}, err
	}
	return httptransport.UnreadCountResponse{Unread: unread}, nil
}

func mapConversation(item ports.Conversation) httptransport.ConversationDTO {
	return httptransport.ConversationDTO{
		ConversationID: item.ConversationID,
		BrandID:        item.BrandID,
		CreatorID:      item.CreatorID,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		LastMessageAt:  item.LastMessageAt.UTC().Format(time.RFC3339),
	}
}

func mapMessage(item ports.Message) httptransport.MessageDTO {
	return httptransport.MessageDTO{
		MessageID:      item.MessageID,
		ConversationID: item.ConversationID,
		SenderType:     string(item.SenderType),
		SenderID:       item.SenderID,
		Body:           item.Body,
		Read:           item.Read,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
