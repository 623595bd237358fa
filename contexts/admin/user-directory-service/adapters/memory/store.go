package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	"clipcast/contexts/admin/user-directory-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	profiles     map[string]ports.Profile
	accounts     map[string]ports.SocialAccount // keyed by accountID
	demographics map[string]ports.DemographicSubmission
}

func NewStore(seedProfiles []ports.Profile, seedAccounts []ports.SocialAccount) *Store {
	profiles := make(map[string]ports.Profile, len(seedProfiles))
	for _, item := range seedProfiles {
		profiles[item.UserID] = item
	}
	accounts := make(map[string]ports.SocialAccount, len(seedAccounts))
	for _, item := range seedAccounts {
		accounts[item.AccountID] = item
	}
	return &Store{
		profiles:     profiles,
		accounts:     accounts,
		demographics: make(map[string]ports.DemographicSubmission),
	}
}

func (s *Store) UpsertProfile(_ context.Context, profile ports.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (ports.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.profiles[strings.TrimSpace(userID)]
	if !exists {
		return ports.Profile{}, domainerrors.ErrProfileNotFound
	}
	return item, nil
}

func (s *Store) ListProfiles(_ context.Context, filter ports.ProfileFilter) ([]ports.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.TrimSpace(strings.ToLower(filter.Search))
	items := make([]ports.Profile, 0)
	for _, item := range s.profiles {
		if filter.Role != "" && item.Role != filter.Role {
			continue
		}
		if filter.Country != "" && !strings.EqualFold(item.Country, filter.Country) {
			continue
		}
		if filter.Suspended != nil && item.Suspended != *filter.Suspended {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Username), search) &&
			!strings.Contains(strings.ToLower(item.FullName), search) &&
			!strings.Contains(strings.ToLower(item.Email), search) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Username < items[j].Username
	})
	return items, nil
}

func (s *Store) SetSuspended(_ context.Context, userID string, suspended bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.profiles[strings.TrimSpace(userID)]
	if !exists {
		return domainerrors.ErrProfileNotFound
	}
	item.Suspended = suspended
	item.UpdatedAt = now
	s.profiles[item.UserID] = item
	return nil
}

func (s *Store) AdjustTrustScore(_ context.Context, userID string, delta float64, now time.Time) (ports.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.profiles[strings.TrimSpace(userID)]
	if !exists {
		return ports.Profile{}, domainerrors.ErrProfileNotFound
	}
	item.TrustScore += delta
	if item.TrustScore < 0 {
		item.TrustScore = 0
	}
	item.UpdatedAt = now
	s.profiles[item.UserID] = item
	return item, nil
}

func (s *Store) UpsertSocialAccount(_ context.Context, account ports.SocialAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) ListSocialAccountsByUsers(_ context.Context, userIDs []string) ([]ports.SocialAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	items := make([]ports.SocialAccount, 0)
	for _, account := range s.accounts {
		if wanted[account.UserID] {
			items = append(items, account)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].UserID != items[j].UserID {
			return items[i].UserID < items[j].UserID
		}
		return items[i].Platform < items[j].Platform
	})
	return items, nil
}

func (s *Store) CreateDemographicSubmission(_ context.Context, submission ports.DemographicSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.demographics[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.demographics[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetDemographicSubmission(_ context.Context, submissionID string) (ports.DemographicSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.demographics[strings.TrimSpace(submissionID)]
	if !exists {
		return ports.DemographicSubmission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) UpdateDemographicSubmission(_ context.Context, submission ports.DemographicSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.demographics[submission.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.demographics[submission.SubmissionID] = submission
	return nil
}

func (s *Store) ListDemographicSubmissions(_ context.Context, status ports.DemographicStatus) ([]ports.DemographicSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.DemographicSubmission, 0)
	for _, item := range s.demographics {
		if status != "" && item.Status != status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
