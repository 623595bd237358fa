package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/integrations/discord-service/domain/errors"
	"clipcast/contexts/integrations/discord-service/ports"
)

type Store struct {
	mu          sync.RWMutex
	connections map[string]ports.GuildConnection
}

func NewStore(seed []ports.GuildConnection) *Store {
	connections := make(map[string]ports.GuildConnection, len(seed))
	for _, item := range seed {
		connections[item.BrandID] = item
	}
	return &Store{connections: connections}
}

func (s *Store) SaveConnection(_ context.Context, connection ports.GuildConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections[connection.BrandID] = connection
	return nil
}

func (s *Store) GetConnection(_ context.Context, brandID string) (ports.GuildConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.connections[strings.TrimSpace(brandID)]
	if !exists {
		return ports.GuildConnection{}, domainerrors.ErrNotConnected
	}
	return item, nil
}

func (s *Store) DeleteConnection(_ context.Context, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.connections[strings.TrimSpace(brandID)]; !exists {
		return domainerrors.ErrNotConnected
	}
	delete(s.connections, strings.TrimSpace(brandID))
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
