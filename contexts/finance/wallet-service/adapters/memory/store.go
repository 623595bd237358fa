package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/finance/wallet-service/domain/errors"
	"clipcast/contexts/finance/wallet-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	wallets      map[string]ports.Wallet
	transactions map[string]ports.Transaction
	settings     map[string]ports.PayoutSettings
}

func NewStore(seedWallets []ports.Wallet) *Store {
	wallets := make(map[string]ports.Wallet, len(seedWallets))
	for _, item := range seedWallets {
		wallets[item.CreatorID] = item
	}
	return &Store{
		wallets:      wallets,
		transactions: make(map[string]ports.Transaction),
		settings:     make(map[string]ports.PayoutSettings),
	}
}

func (s *Store) GetWallet(_ context.Context, creatorID string) (ports.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.wallets[strings.TrimSpace(creatorID)]
	if !exists {
		return ports.Wallet{}, domainerrors.ErrWalletNotFound
	}
	return item, nil
}

func (s *Store) SaveWallet(_ context.Context, wallet ports.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets[wallet.CreatorID] = wallet
	return nil
}

func (s *Store) CreateTransaction(_ context.Context, transaction ports.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if transaction.IdempotencyKey != "" {
		for _, item := range s.transactions {
			if item.CreatorID == transaction.CreatorID && item.IdempotencyKey == transaction.IdempotencyKey {
				return domainerrors.ErrInvalidRequest
			}
		}
	}
	s.transactions[transaction.TransactionID] = transaction
	return nil
}

func (s *Store) GetTransactionByKey(_ context.Context, creatorID, idempotencyKey string) (ports.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.transactions {
		if item.CreatorID == creatorID && item.IdempotencyKey == idempotencyKey {
			return item, nil
		}
	}
	return ports.Transaction{}, domainerrors.ErrTransactionNotFound
}

func (s *Store) ListTransactions(_ context.Context, creatorID string) ([]ports.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Transaction, 0)
	for _, item := range s.transactions {
		if item.CreatorID == creatorID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetPayoutSettings(_ context.Context, creatorID string) (ports.PayoutSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.settings[strings.TrimSpace(creatorID)]
	if !exists {
		return ports.PayoutSettings{}, domainerrors.ErrSettingsNotFound
	}
	return item, nil
}

func (s *Store) SavePayoutSettings(_ context.Context, settings ports.PayoutSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.CreatorID] = settings
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
