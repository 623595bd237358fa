package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/community/messaging-service/domain/errors"
	"clipcast/contexts/community/messaging-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu            sync.RWMutex
	conversations map[string]ports.Conversation
	messages      map[string][]ports.Message // keyed by conversationID
}

func NewStore(seed []ports.Conversation) *Store {
	conversations := make(map[string]ports.Conversation, len(seed))
	for _, item := range seed {
		conversations[item.ConversationID] = item
	}
	return &Store{
		conversations: conversations,
		messages:      make(map[string][]ports.Message),
	}
}

func (s *Store) CreateConversation(_ context.Context, conversation ports.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conversation.ConversationID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.conversations[conversation.ConversationID] = conversation
	return nil
}

func (s *Store) GetConversation(_ context.Context, conversationID string) (ports.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.conversations[strings.TrimSpace(conversationID)]
	if !exists {
		return ports.Conversation{}, domainerrors.ErrConversationNotFound
	}
	return item, nil
}

func (s *Store) GetConversationByPair(_ context.Context, brandID, creatorID string) (ports.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.conversations {
		if item.BrandID == brandID && item.CreatorID == creatorID {
			return item, nil
		}
	}
	return ports.Conversation{}, domainerrors.ErrConversationNotFound
}

func (s *Store) ListConversationsForBrand(_ context.Context, brandID string) ([]ports.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Conversation, 0)
	for _, item := range s.conversations {
		if item.BrandID == brandID {
			items = append(items, item)
		}
	}
	sortByLastMessage(items)
	return items, nil
}

func (s *Store) ListConversationsForCreator(_ context.Context, creatorID string) ([]ports.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Conversation, 0)
	for _, item := range s.conversations {
		if item.CreatorID == creatorID {
			items = append(items, item)
		}
	}
	sortByLastMessage(items)
	return items, nil
}

func (s *Store) TouchConversation(_ context.Context, conversationID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.conversations[conversationID]
	if !exists {
		return domainerrors.ErrConversationNotFound
	}
	item.LastMessageAt = at
	s.conversations[conversationID] = item
	return nil
}

func (s *Store) CreateMessage(_ context.Context, message ports.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[message.ConversationID]; !exists {
		return domainerrors.ErrConversationNotFound
	}
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], message)
	return nil
}

func (s *Store) ListMessages(_ context.Context, conversationID string) ([]ports.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Message, len(s.messages[conversationID]))
	copy(items, s.messages[conversationID])
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) MarkMessagesRead(_ context.Context, conversationID string, sender ports.SenderType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flipped int64
	items := s.messages[conversationID]
	for i, item := range items {
		if item.SenderType == sender && !item.Read {
			items[i].Read = true
			flipped++
		}
	}
	return flipped, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortByLastMessage(items []ports.Conversation) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].LastMessageAt.After(items[j].LastMessageAt)
	})
}
