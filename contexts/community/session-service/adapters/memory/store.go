package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/community/session-service/domain/errors"
	"clipcast/contexts/community/session-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]ports.Session
}

func NewStore(seed []ports.Session) *Store {
	sessions := make(map[string]ports.Session, len(seed))
	for _, item := range seed {
		sessions[item.SessionID] = item
	}
	return &Store{sessions: sessions}
}

func (s *Store) CreateSession(_ context.Context, session ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.SessionID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.sessions[session.SessionID] = cloneSession(session)
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.sessions[strings.TrimSpace(sessionID)]
	if !exists {
		return ports.Session{}, domainerrors.ErrSessionNotFound
	}
	return cloneSession(item), nil
}

func (s *Store) UpdateSession(_ context.Context, session ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.SessionID]; !exists {
		return domainerrors.ErrSessionNotFound
	}
	s.sessions[session.SessionID] = cloneSession(session)
	return nil
}

func (s *Store) ListSessionsForUser(_ context.Context, userID string) ([]ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Session, 0)
	for _, item := range s.sessions {
		if item.BuyerID == userID || item.SellerID == userID {
			items = append(items, cloneSession(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
	return items, nil
}

func (s *Store) ListOverdueRequested(_ context.Context, before time.Time) ([]ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Session, 0)
	for _, item := range s.sessions {
		if item.Status == ports.StatusRequested && item.ScheduledAt.Before(before) {
			items = append(items, cloneSession(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneSession(item ports.Session) ports.Session {
	if item.ScheduledEndAt != nil {
		endAt := *item.ScheduledEndAt
		item.ScheduledEndAt = &endAt
	}
	if item.ConfirmedAt != nil {
		confirmedAt := *item.ConfirmedAt
		item.ConfirmedAt = &confirmedAt
	}
	return item
}
