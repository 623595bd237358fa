package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/community/messaging-service/domain/errors"
	"clipcast/contexts/community/messaging-service/ports"
)

const eventMessageCreated = "message_created"

type Service struct {
	Repo     ports.Repository
	Roles    ports.RoleResolver
	Realtime ports.Publisher
	Unread   ports.UnreadCounter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// OpenConversation returns the existing brand/creator conversation or creates
// one. Either participant may open it.
func (s Service) OpenConversation(ctx context.Context, actorID, brandID, creatorID string) (ports.Conversation, error) {
	brandID = strings.TrimSpace(brandID)
	creatorID = strings.TrimSpace(creatorID)
	if brandID == "" || creatorID == "" {
		return ports.Conversation{}, domainerrors.ErrInvalidRequest
	}
	if _, err := s.participantSide(ctx, actorID, brandID, creatorID); err != nil {
		return ports.Conversation{}, err
	}

	existing, err := s.Repo.GetConversationByPair(ctx, brandID, creatorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrConversationNotFound) {
		return ports.Conversation{}, err
	}

	conversationID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Conversation{}, err
	}
	now := s.now()
	conversation := ports.Conversation{
		ConversationID: conversationID,
		BrandID:        brandID,
		CreatorID:      creatorID,
		CreatedAt:      now,
		LastMessageAt:  now,
	}
	if err := s.Repo.CreateConversation(ctx, conversation); err != nil {
		return ports.Conversation{}, err
	}
	resolveLogger(s.Logger).Info("conversation opened",
		"event", "conversation_opened",
		"module", "community/messaging-service",
		"layer", "application",
		"conversation_id", conversation.ConversationID,
		"brand_id", brandID,
	)
	return conversation, nil
}

func (s Service) ListConversations(ctx context.Context, actorID string, brandID string) ([]ports.Conversation, error) {
	actorID = strings.TrimSpace(actorID)
	if brandID = strings.TrimSpace(brandID); brandID != "" {
		if err := s.requireBrandMember(ctx, brandID, actorID); err != nil {
			return nil, err
		}
		return s.Repo.ListConversationsForBrand(ctx, brandID)
	}
	return s.Repo.ListConversationsForCreator(ctx, actorID)
}

// SendMessage appends to the conversation, bumps the other side's unread
// counter, and publishes the message to live subscribers.
func (s Service) SendMessage(ctx context.Context, actorID, conversationID, body string) (ports.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return ports.Message{}, domainerrors.ErrInvalidRequest
	}

	conversation, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return ports.Message{}, err
	}
	side, err := s.participantSide(ctx, actorID, conversation.BrandID, conversation.CreatorID)
	if err != nil {
		return ports.Message{}, err
	}

	messageID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Message{}, err
	}
	message := ports.Message{
		MessageID:      messageID,
		ConversationID: conversation.ConversationID,
		SenderType:     side,
		SenderID:       strings.TrimSpace(actorID),
		Body:           body,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.CreateMessage(ctx, message); err != nil {
		return ports.Message{}, err
	}
	if err := s.Repo.TouchConversation(ctx, conversation.ConversationID, message.CreatedAt); err != nil {
		return ports.Message{}, err
	}

	if s.Unread != nil {
		if _, err := s.Unread.IncrCounter(ctx, unreadKey(conversation.ConversationID, side.Other())); err != nil {
			resolveLogger(s.Logger).Warn("unread counter increment failed",
				"event", "unread_incr_failed",
				"module", "community/messaging-service",
				"layer", "application",
				"conversation_id", conversation.ConversationID,
				"error", err.Error(),
			)
		}
	}
	if s.Realtime != nil {
		if payload, err := json.Marshal(message); err == nil {
			s.Realtime.Publish(ctx, conversation.ConversationID, eventMessageCreated, payload)
		}
	}
	return message, nil
}

func (s Service) ListMessages(ctx context.Context, actorID, conversationID string) ([]ports.Message, error) {
	conversation, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.participantSide(ctx, actorID, conversation.BrandID, conversation.CreatorID); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(ctx, conversation.ConversationID)
}

// MarkRead flags the other side's messages as read and clears the caller's
// unread counter.
func (s Service) MarkRead(ctx context.Context, actorID, conversationID string) error {
	conversation, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	side, err := s.participantSide(ctx, actorID, conversation.BrandID, conversation.CreatorID)
	if err != nil {
		return err
	}
	if _, err := s.Repo.MarkMessagesRead(ctx, conversation.ConversationID, side.Other()); err != nil {
		return err
	}
	if s.Unread != nil {
		if err := s.Unread.ResetCounter(ctx, unreadKey(conversation.ConversationID, side)); err != nil {
			resolveLogger(s.Logger).Warn("unread counter reset failed",
				"event", "unread_reset_failed",
				"module", "community/messaging-service",
				"layer", "application",
				"conversation_id", conversation.ConversationID,
				"error", err.Error(),
			)
		}
	}
	return nil
}

func (s Service) UnreadCount(ctx context.Context, actorID, conversationID string) (int64, error) {
	conversation, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	side, err := s.participantSide(ctx, actorID, conversation.BrandID, conversation.CreatorID)
	if err != nil {
		return 0, err
	}
	if s.Unread == nil {
		return 0, nil
	}
	return s.Unread.GetCounter(ctx, unreadKey(conversation.ConversationID, side))
}

// participantSide resolves which side of the conversation the actor speaks
// for. Brand membership is re-derived server-side, never trusted from the
// caller.
func (s Service) participantSide(ctx context.Context, actorID, brandID, creatorID string) (ports.SenderType, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return "", domainerrors.ErrForbidden
	}
	if actorID == creatorID {
		return ports.SenderCreator, nil
	}
	if err := s.requireBrandMember(ctx, brandID, actorID); err != nil {
		return "", err
	}
	return ports.SenderBrand, nil
}

func (s Service) requireBrandMember(ctx context.Context, brandID, userID string) error {
	if s.Roles == nil {
		return domainerrors.ErrForbidden
	}
	role, err := s.Roles.Role(ctx, brandID, userID)
	if err != nil || role == "" {
		return domainerrors.ErrForbidden
	}
	return nil
}

func unreadKey(conversationID string, side ports.SenderType) string {
	return fmt.Sprintf("messaging:unread:%s:%s", conversationID, side)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
