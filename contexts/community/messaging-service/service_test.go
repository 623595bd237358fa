package messagingservice

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainerrors "clipcast/contexts/community/messaging-service/domain/errors"
	"clipcast/contexts/community/messaging-service/ports"
)

type stubRoles struct {
	roles map[string]string // brandID|userID -> role
}

func (s stubRoles) Role(_ context.Context, brandID, userID string) (string, error) {
	role, ok := s.roles[brandID+"|"+userID]
	if !ok {
		return "", errors.New("not a member")
	}
	return role, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string // conversationID|eventType
}

func (p *recordingPublisher) Publish(_ context.Context, conversationID string, eventType string, _ []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, conversationID+"|"+eventType)
}

func newTestModule(publisher ports.Publisher) Module {
	roles := stubRoles{roles: map[string]string{
		"brand_1|user_owner": "owner",
	}}
	return NewInMemoryModule(nil, roles, publisher, nil)
}

func TestOpenConversationIsIdempotentPerPair(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	first, err := module.Service.OpenConversation(ctx, "creator_1", "brand_1", "creator_1")
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	second, err := module.Service.OpenConversation(ctx, "user_owner", "brand_1", "creator_1")
	if err != nil {
		t.Fatalf("reopen conversation: %v", err)
	}
	if first.ConversationID != second.ConversationID {
		t.Fatalf("expected same conversation, got %q and %q", first.ConversationID, second.ConversationID)
	}

	if _, err := module.Service.OpenConversation(ctx, "outsider", "brand_1", "creator_1"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
}

func TestSendMessagePublishesAndCountsUnread(t *testing.T) {
	publisher := &recordingPublisher{}
	module := newTestModule(publisher)
	ctx := context.Background()

	conversation, err := module.Service.OpenConversation(ctx, "creator_1", "brand_1", "creator_1")
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}

	message, err := module.Service.SendMessage(ctx, "user_owner", conversation.ConversationID, "hey, loved the draft")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if message.SenderType != ports.SenderBrand {
		t.Fatalf("sender type = %q, want brand", message.SenderType)
	}

	publisher.mu.Lock()
	events := len(publisher.events)
	publisher.mu.Unlock()
	if events != 1 {
		t.Fatalf("published events = %d, want 1", events)
	}

	// The creator side accrues unread; the sending side does not.
	unread, err := module.Service.UnreadCount(ctx, "creator_1", conversation.ConversationID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 1 {
		t.Fatalf("creator unread = %d, want 1", unread)
	}
	brandUnread, err := module.Service.UnreadCount(ctx, "user_owner", conversation.ConversationID)
	if err != nil {
		t.Fatalf("brand unread count: %v", err)
	}
	if brandUnread != 0 {
		t.Fatalf("brand unread = %d, want 0", brandUnread)
	}
}

func TestMarkReadClearsCounterAndFlags(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	conversation, err := module.Service.OpenConversation(ctx, "creator_1", "brand_1", "creator_1")
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	if _, err := module.Service.SendMessage(ctx, "user_owner", conversation.ConversationID, "first"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := module.Service.SendMessage(ctx, "user_owner", conversation.ConversationID, "second"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := module.Service.MarkRead(ctx, "creator_1", conversation.ConversationID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := module.Service.UnreadCount(ctx, "creator_1", conversation.ConversationID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 0 {
		t.Fatalf("unread after mark read = %d, want 0", unread)
	}

	messages, err := module.Service.ListMessages(ctx, "creator_1", conversation.ConversationID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	for _, message := range messages {
		if !message.Read {
			t.Fatalf("message %q still unread after mark read", message.MessageID)
		}
	}
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	conversation, err := module.Service.OpenConversation(ctx, "creator_1", "brand_1", "creator_1")
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	if _, err := module.Service.ListMessages(ctx, "outsider", conversation.ConversationID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := module.Service.ListMessages(ctx, "creator_1", "missing"); !errors.Is(err, domainerrors.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}
