package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type SenderType string

const (
	SenderBrand   SenderType = "brand"
	SenderCreator SenderType = "creator"
)

func (s SenderType) Other() SenderType {
	if s == SenderBrand {
		return SenderCreator
	}
	return SenderBrand
}

type Conversation struct {
	ConversationID string
	BrandID        string
	CreatorID      string
	CreatedAt      time.Time
	LastMessageAt  time.Time
}

type Message struct {
	MessageID      string
	ConversationID string
	SenderType     SenderType
	SenderID       string
	Body           string
	Read           bool
	CreatedAt      time.Time
}

type Repository interface {
	CreateConversation(ctx context.Context, conversation Conversation) error
	GetConversation(ctx context.Context, conversationID string) (Conversation, error)
	GetConversationByPair(ctx context.Context, brandID, creatorID string) (Conversation, error)
	ListConversationsForBrand(ctx context.Context, brandID string) ([]Conversation, error)
	ListConversationsForCreator(ctx context.Context, creatorID string) ([]Conversation, error)
	TouchConversation(ctx context.Context, conversationID string, at time.Time) error

	CreateMessage(ctx context.Context, message Message) error
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	// MarkMessagesRead flags every unread message sent by the given side and
	// returns how many were flipped.
	MarkMessagesRead(ctx context.Context, conversationID string, sender SenderType) (int64, error)
}

// Publisher fans a conversation event out to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, conversationID string, eventType string, payload []byte)
}

// UnreadCounter tracks per-side unread tallies. Satisfied by the platform
// redis cache in production and by an in-memory counter in tests.
type UnreadCounter interface {
	IncrCounter(ctx context.Context, key string) (int64, error)
	ResetCounter(ctx context.Context, key string) error
	GetCounter(ctx context.Context, key string) (int64, error)
}

// RoleResolver answers brand membership for the brand side of a conversation.
type RoleResolver interface {
	Role(ctx context.Context, brandID, userID string) (string, error)
}
