package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	"clipcast/contexts/marketplace/campaign-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns    map[string]ports.Campaign
	boosts       map[string]ports.Boost
	applications map[string]ports.BoostApplication
	participants map[string]ports.Participant // keyed by campaignID|creatorID
	bookmarks    map[string]ports.Bookmark    // keyed by creatorID|type|id
}

func NewStore(seedCampaigns []ports.Campaign, seedBoosts []ports.Boost) *Store {
	campaigns := make(map[string]ports.Campaign, len(seedCampaigns))
	for _, item := range seedCampaigns {
		campaigns[item.CampaignID] = item
	}
	boosts := make(map[string]ports.Boost, len(seedBoosts))
	for _, item := range seedBoosts {
		boosts[item.BoostID] = item
	}
	return &Store{
		campaigns:    campaigns,
		boosts:       boosts,
		applications: make(map[string]ports.BoostApplication),
		participants: make(map[string]ports.Participant),
		bookmarks:    make(map[string]ports.Bookmark),
	}
}

func participantKey(campaignID string, creatorID string) string {
	return campaignID + "|" + creatorID
}

func bookmarkKey(creatorID string, source ports.SourceRef) string {
	return creatorID + "|" + string(source.Type) + "|" + source.ID
}

func (s *Store) CreateCampaign(_ context.Context, campaign ports.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (ports.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return ports.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) UpdateCampaign(_ context.Context, input ports.UpdateCampaignInput, now time.Time) (ports.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.campaigns[strings.TrimSpace(input.CampaignID)]
	if !exists {
		return ports.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Budget != nil {
		item.Budget = *input.Budget
	}
	if input.Platforms != nil {
		item.Platforms = append([]string(nil), input.Platforms...)
	}
	if input.BlueprintID != nil {
		item.BlueprintID = strings.TrimSpace(*input.BlueprintID)
	}
	item.UpdatedAt = now
	s.campaigns[item.CampaignID] = item
	return item, nil
}

func (s *Store) SetCampaignStatus(_ context.Context, campaignID string, status ports.CampaignStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	item.Status = status
	item.UpdatedAt = now
	s.campaigns[item.CampaignID] = item
	return nil
}

func (s *Store) ListCampaignsByBrand(_ context.Context, brandID string) ([]ports.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Campaign, 0)
	for _, campaign := range s.campaigns {
		if campaign.BrandID == strings.TrimSpace(brandID) {
			items = append(items, campaign)
		}
	}
	sortCampaigns(items)
	return items, nil
}

func (s *Store) ListActiveCampaigns(_ context.Context) ([]ports.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Campaign, 0)
	for _, campaign := range s.campaigns {
		if campaign.Status == ports.CampaignStatusActive {
			items = append(items, campaign)
		}
	}
	sortCampaigns(items)
	return items, nil
}

func (s *Store) AddParticipant(_ context.Context, participant ports.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := participantKey(participant.CampaignID, participant.CreatorID)
	if _, exists := s.participants[key]; exists {
		return domainerrors.ErrParticipantExists
	}
	s.participants[key] = participant
	return nil
}

func (s *Store) ListParticipants(_ context.Context, campaignID string) ([]ports.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Participant, 0)
	for _, participant := range s.participants {
		if participant.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, participant)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].JoinedAt.Before(items[j].JoinedAt)
	})
	return items, nil
}

func (s *Store) RemoveParticipant(_ context.Context, campaignID string, creatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := participantKey(strings.TrimSpace(campaignID), strings.TrimSpace(creatorID))
	if _, exists := s.participants[key]; !exists {
		return domainerrors.ErrParticipantNotFound
	}
	delete(s.participants, key)
	return nil
}

func (s *Store) CreateBoost(_ context.Context, boost ports.Boost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boosts[boost.BoostID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.boosts[boost.BoostID] = boost
	return nil
}

func (s *Store) GetBoost(_ context.Context, boostID string) (ports.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.boosts[strings.TrimSpace(boostID)]
	if !exists {
		return ports.Boost{}, domainerrors.ErrBoostNotFound
	}
	return item, nil
}

func (s *Store) SetBoostStatus(_ context.Context, boostID string, status ports.CampaignStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.boosts[strings.TrimSpace(boostID)]
	if !exists {
		return domainerrors.ErrBoostNotFound
	}
	item.Status = status
	item.UpdatedAt = now
	s.boosts[item.BoostID] = item
	return nil
}

func (s *Store) ListBoostsByBrand(_ context.Context, brandID string) ([]ports.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Boost, 0)
	for _, boost := range s.boosts {
		if boost.BrandID == strings.TrimSpace(brandID) {
			items = append(items, boost)
		}
	}
	sortBoosts(items)
	return items, nil
}

func (s *Store) ListActiveBoosts(_ context.Context) ([]ports.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Boost, 0)
	for _, boost := range s.boosts {
		if boost.Status == ports.CampaignStatusActive {
			items = append(items, boost)
		}
	}
	sortBoosts(items)
	return items, nil
}

func (s *Store) CreateApplication(_ context.Context, app ports.BoostApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.applications {
		if existing.BoostID == app.BoostID && existing.CreatorID == app.CreatorID {
			return domainerrors.ErrAlreadyApplied
		}
	}
	s.applications[app.ApplicationID] = app
	return nil
}

func (s *Store) GetApplication(_ context.Context, applicationID string) (ports.BoostApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.applications[strings.TrimSpace(applicationID)]
	if !exists {
		return ports.BoostApplication{}, domainerrors.ErrApplicationNotFound
	}
	return item, nil
}

func (s *Store) GetApplicationByCreator(_ context.Context, boostID string, creatorID string) (ports.BoostApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.applications {
		if item.BoostID == strings.TrimSpace(boostID) && item.CreatorID == strings.TrimSpace(creatorID) {
			return item, nil
		}
	}
	return ports.BoostApplication{}, domainerrors.ErrApplicationNotFound
}

func (s *Store) UpdateApplication(_ context.Context, app ports.BoostApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applications[app.ApplicationID]; !exists {
		return domainerrors.ErrApplicationNotFound
	}
	s.applications[app.ApplicationID] = app
	return nil
}

func (s *Store) ListApplications(_ context.Context, boostID string) ([]ports.BoostApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.BoostApplication, 0)
	for _, item := range s.applications {
		if item.BoostID == strings.TrimSpace(boostID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ToggleBookmark(_ context.Context, creatorID string, source ports.SourceRef, bookmarkID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey(creatorID, source)
	if _, exists := s.bookmarks[key]; exists {
		delete(s.bookmarks, key)
		return false, nil
	}
	s.bookmarks[key] = ports.Bookmark{
		BookmarkID: bookmarkID,
		CreatorID:  creatorID,
		Source:     source,
		CreatedAt:  now,
	}
	return true, nil
}

func (s *Store) ListBookmarks(_ context.Context, creatorID string) ([]ports.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Bookmark, 0)
	for _, item := range s.bookmarks {
		if item.CreatorID == creatorID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func sortCampaigns(items []ports.Campaign) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortBoosts(items []ports.Boost) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
