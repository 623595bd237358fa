package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/marketplace/brand-service/domain/errors"
	"clipcast/contexts/marketplace/brand-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	brands  map[string]ports.Brand
	members map[string]ports.Member // keyed by brandID|userID
	invites map[string]ports.Invite
}

func NewStore(seed []ports.Brand) *Store {
	brands := make(map[string]ports.Brand, len(seed))
	for _, item := range seed {
		brands[item.BrandID] = item
	}
	return &Store{
		brands:  brands,
		members: make(map[string]ports.Member),
		invites: make(map[string]ports.Invite),
	}
}

func memberKey(brandID string, userID string) string {
	return strings.TrimSpace(brandID) + "|" + strings.TrimSpace(userID)
}

func (s *Store) CreateBrand(_ context.Context, brand ports.Brand, owner ports.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.brands {
		if existing.Slug == brand.Slug {
			return domainerrors.ErrSlugTaken
		}
	}
	s.brands[brand.BrandID] = brand
	s.members[memberKey(owner.BrandID, owner.UserID)] = owner
	return nil
}

func (s *Store) GetBrand(_ context.Context, brandID string) (ports.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.brands[strings.TrimSpace(brandID)]
	if !exists {
		return ports.Brand{}, domainerrors.ErrBrandNotFound
	}
	return item, nil
}

func (s *Store) GetBrandBySlug(_ context.Context, slug string) (ports.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.brands {
		if item.Slug == strings.TrimSpace(slug) {
			return item, nil
		}
	}
	return ports.Brand{}, domainerrors.ErrBrandNotFound
}

func (s *Store) UpdateBrand(_ context.Context, input ports.UpdateBrandInput, now time.Time) (ports.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.brands[strings.TrimSpace(input.BrandID)]
	if !exists {
		return ports.Brand{}, domainerrors.ErrBrandNotFound
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.LogoURL != nil {
		item.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.BannerURL != nil {
		item.BannerURL = strings.TrimSpace(*input.BannerURL)
	}
	if input.PayoutHoldingDays != nil {
		item.PayoutHoldingDays = *input.PayoutHoldingDays
	}
	if input.PayoutMinimumAmount != nil {
		item.PayoutMinimumAmount = *input.PayoutMinimumAmount
	}
	item.UpdatedAt = now
	s.brands[item.BrandID] = item
	return item, nil
}

func (s *Store) ListBrandsForUser(_ context.Context, userID string) ([]ports.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Brand, 0)
	for _, member := range s.members {
		if member.UserID != strings.TrimSpace(userID) {
			continue
		}
		if brand, exists := s.brands[member.BrandID]; exists {
			items = append(items, brand)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AddMember(_ context.Context, member ports.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey(member.BrandID, member.UserID)
	if _, exists := s.members[key]; exists {
		return domainerrors.ErrMemberAlreadyExists
	}
	s.members[key] = member
	return nil
}

func (s *Store) RemoveMember(_ context.Context, brandID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey(brandID, userID)
	if _, exists := s.members[key]; !exists {
		return domainerrors.ErrMemberNotFound
	}
	delete(s.members, key)
	return nil
}

func (s *Store) UpdateMemberRole(_ context.Context, brandID string, userID string, role ports.Role, _ time.Time) (ports.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey(brandID, userID)
	member, exists := s.members[key]
	if !exists {
		return ports.Member{}, domainerrors.ErrMemberNotFound
	}
	member.Role = role
	s.members[key] = member
	return member, nil
}

func (s *Store) ListMembers(_ context.Context, brandID string) ([]ports.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Member, 0)
	for _, member := range s.members {
		if member.BrandID == strings.TrimSpace(brandID) {
			items = append(items, member)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetMember(_ context.Context, brandID string, userID string) (ports.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, exists := s.members[memberKey(brandID, userID)]
	if !exists {
		return ports.Member{}, domainerrors.ErrMemberNotFound
	}
	return member, nil
}

func (s *Store) CreateInvite(_ context.Context, invite ports.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invites[invite.InviteID] = invite
	return nil
}

func (s *Store) ListOpenInvites(_ context.Context, brandID string, now time.Time) ([]ports.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Invite, 0)
	for _, invite := range s.invites {
		if invite.BrandID != strings.TrimSpace(brandID) {
			continue
		}
		if invite.UsedAt != nil || !invite.ExpiresAt.After(now) {
			continue
		}
		items = append(items, invite)
	}
	return items, nil
}

func (s *Store) MarkInviteUsed(_ context.Context, inviteID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, exists := s.invites[inviteID]
	if !exists {
		return domainerrors.ErrInviteInvalid
	}
	used := now
	invite.UsedAt = &used
	s.invites[inviteID] = invite
	return nil
}

// SeedMember inserts a membership row directly; test helper.
func (s *Store) SeedMember(member ports.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members[memberKey(member.BrandID, member.UserID)] = member
}

// SeedSubscription flips subscription fields directly; test helper.
func (s *Store) SeedSubscription(brandID string, status ports.SubscriptionStatus, plan string, expiresAt *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand, exists := s.brands[brandID]
	if !exists {
		return
	}
	brand.SubscriptionStatus = status
	brand.SubscriptionPlan = plan
	brand.SubscriptionExpiresAt = expiresAt
	s.brands[brandID] = brand
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
