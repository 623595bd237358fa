package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/sales/pipeline-service/domain/errors"
	"clipcast/contexts/sales/pipeline-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	deals map[string]ports.Deal
}

func NewStore(seed []ports.Deal) *Store {
	deals := make(map[string]ports.Deal, len(seed))
	for _, item := range seed {
		deals[item.DealID] = item
	}
	return &Store{deals: deals}
}

func (s *Store) CreateDeal(_ context.Context, deal ports.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deals[deal.DealID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.deals[deal.DealID] = deal
	return nil
}

func (s *Store) GetDeal(_ context.Context, dealID string) (ports.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.deals[strings.TrimSpace(dealID)]
	if !exists {
		return ports.Deal{}, domainerrors.ErrDealNotFound
	}
	return item, nil
}

func (s *Store) UpdateDeal(_ context.Context, deal ports.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deals[deal.DealID]; !exists {
		return domainerrors.ErrDealNotFound
	}
	s.deals[deal.DealID] = deal
	return nil
}

func (s *Store) DeleteDeal(_ context.Context, dealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deals[strings.TrimSpace(dealID)]; !exists {
		return domainerrors.ErrDealNotFound
	}
	delete(s.deals, strings.TrimSpace(dealID))
	return nil
}

func (s *Store) ListDeals(_ context.Context, filter ports.DealFilter) ([]ports.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Deal, 0)
	for _, item := range s.deals {
		if filter.Stage != "" && item.Stage != filter.Stage {
			continue
		}
		if filter.BrandID != "" && item.BrandID != filter.BrandID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
