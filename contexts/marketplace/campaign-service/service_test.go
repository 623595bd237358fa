package campaignservice_test

import (
	"context"
	"errors"
	"testing"

	campaignservice "clipcast/contexts/marketplace/campaign-service"
	domainerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	"clipcast/contexts/marketplace/campaign-service/ports"
	httptransport "clipcast/contexts/marketplace/campaign-service/transport/http"
)

type stubRoles struct {
	roles map[string]string // brandID|userID -> role
}

func (s stubRoles) Role(_ context.Context, brandID string, userID string) (string, error) {
	role, ok := s.roles[brandID+"|"+userID]
	if !ok {
		return "", errors.New("not a member")
	}
	return role, nil
}

type stubSubscriptions struct {
	active map[string]bool
	err    error
}

func (s stubSubscriptions) RequireActiveSubscription(_ context.Context, brandID string) error {
	if s.active[brandID] {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	return errors.New("subscription inactive")
}

type stubPurger struct {
	calls []string
}

func (s *stubPurger) PurgeForCreator(_ context.Context, source ports.SourceRef, creatorID string) error {
	s.calls = append(s.calls, string(source.Type)+"|"+source.ID+"|"+creatorID)
	return nil
}

func newTestModule(purger *stubPurger) campaignservice.Module {
	roles := stubRoles{roles: map[string]string{
		"brand_1|user_owner":  "owner",
		"brand_1|user_admin":  "admin",
		"brand_1|user_member": "member",
	}}
	subs := stubSubscriptions{active: map[string]bool{"brand_1": true}}
	return campaignservice.NewInMemoryModule(nil, nil, roles, subs, purger, nil)
}

func TestCampaignServiceCreateRequiresManagerRole(t *testing.T) {
	module := newTestModule(&stubPurger{})
	ctx := context.Background()

	if _, err := module.Handler.CreateCampaignHandler(ctx, "user_member", httptransport.CreateCampaignRequest{
		BrandID:   "brand_1",
		Title:     "Spring Launch",
		Budget:    5000,
		Platforms: []string{"tiktok"},
	}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member, got %v", err)
	}

	created, err := module.Handler.CreateCampaignHandler(ctx, "user_admin", httptransport.CreateCampaignRequest{
		BrandID:   "brand_1",
		Title:     "Spring Launch",
		Budget:    5000,
		Platforms: []string{"tiktok", "instagram"},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if created.Campaign.Status != "draft" {
		t.Fatalf("expected draft status, got %s", created.Campaign.Status)
	}
}

func TestCampaignServiceDiscoverListsOnlyActive(t *testing.T) {
	module := newTestModule(&stubPurger{})
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "user_owner", httptransport.CreateCampaignRequest{
		BrandID:   "brand_1",
		Title:     "Hidden Draft",
		Budget:    1000,
		Platforms: []string{"tiktok"},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}

	discover, err := module.Handler.DiscoverHandler(ctx)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(discover.Campaigns) != 0 {
		t.Fatalf("expected no active campaigns, got %d", len(discover.Campaigns))
	}

	if err := module.Handler.SetCampaignStatusHandler(ctx, "user_owner", created.Campaign.CampaignID, httptransport.SetStatusRequest{Status: "active"}); err != nil {
		t.Fatalf("activate campaign failed: %v", err)
	}

	discover, err = module.Handler.DiscoverHandler(ctx)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(discover.Campaigns) != 1 {
		t.Fatalf("expected one active campaign, got %d", len(discover.Campaigns))
	}
}

func TestBoostApplicationLifecycle(t *testing.T) {
	module := newTestModule(&stubPurger{})
	ctx := context.Background()

	boost, err := module.Handler.CreateBoostHandler(ctx, "user_owner", httptransport.CreateBoostRequest{
		BrandID:         "brand_1",
		Title:           "Monthly Clips",
		MonthlyRetainer: 1200,
		VideosPerMonth:  8,
		Platforms:       []string{"tiktok"},
	})
	if err != nil {
		t.Fatalf("create boost failed: %v", err)
	}
	boostID := boost.Boost.BoostID

	if _, err := module.Handler.ApplyToBoostHandler(ctx, "creator_9", boostID, httptransport.ApplyToBoostRequest{Pitch: "I make clips"}); !errors.Is(err, domainerrors.ErrSourceNotActive) {
		t.Fatalf("expected not active, got %v", err)
	}

	if err := module.Handler.SetBoostStatusHandler(ctx, "user_owner", boostID, httptransport.SetStatusRequest{Status: "active"}); err != nil {
		t.Fatalf("activate boost failed: %v", err)
	}

	applied, err := module.Handler.ApplyToBoostHandler(ctx, "creator_9", boostID, httptransport.ApplyToBoostRequest{Pitch: "I make clips"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied.Application.Status != "applied" || applied.Application.ContractStatus != "none" {
		t.Fatalf("unexpected application state: %+v", applied.Application)
	}

	if _, err := module.Handler.ApplyToBoostHandler(ctx, "creator_9", boostID, httptransport.ApplyToBoostRequest{Pitch: "again"}); !errors.Is(err, domainerrors.ErrAlreadyApplied) {
		t.Fatalf("expected already applied, got %v", err)
	}

	reviewed, err := module.Handler.ReviewApplicationHandler(ctx, "user_admin", applied.Application.ApplicationID, httptransport.ReviewApplicationRequest{Accept: true})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Application.Status != "accepted" || reviewed.Application.ContractStatus != "sent" {
		t.Fatalf("expected accepted/sent, got %s/%s", reviewed.Application.Status, reviewed.Application.ContractStatus)
	}

	if _, err := module.Handler.SignContractHandler(ctx, "creator_other", applied.Application.ApplicationID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for wrong creator, got %v", err)
	}

	signed, err := module.Handler.SignContractHandler(ctx, "creator_9", applied.Application.ApplicationID)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if signed.Application.ContractStatus != "signed" {
		t.Fatalf("expected signed contract, got %s", signed.Application.ContractStatus)
	}
}

func TestBoostCreationSubscriptionGated(t *testing.T) {
	roles := stubRoles{roles: map[string]string{"brand_free|user_owner": "owner"}}
	subs := stubSubscriptions{active: map[string]bool{}}
	module := campaignservice.NewInMemoryModule(nil, nil, roles, subs, &stubPurger{}, nil)
	ctx := context.Background()

	if _, err := module.Handler.CreateBoostHandler(ctx, "user_owner", httptransport.CreateBoostRequest{
		BrandID:         "brand_free",
		Title:           "Gated Boost",
		MonthlyRetainer: 900,
		VideosPerMonth:  4,
		Platforms:       []string{"tiktok"},
	}); err == nil {
		t.Fatal("expected subscription gate to block boost creation")
	}
}

func TestRemoveCreatorPurgesSubmissions(t *testing.T) {
	purger := &stubPurger{}
	module := newTestModule(purger)
	ctx := context.Background()

	created, err := module.Handler.CreateCampaignHandler(ctx, "user_owner", httptransport.CreateCampaignRequest{
		BrandID:   "brand_1",
		Title:     "Join Me",
		Budget:    2000,
		Platforms: []string{"tiktok"},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID
	if err := module.Handler.SetCampaignStatusHandler(ctx, "user_owner", campaignID, httptransport.SetStatusRequest{Status: "active"}); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if _, err := module.Handler.JoinCampaignHandler(ctx, "creator_5", campaignID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := module.Handler.RemoveCreatorHandler(ctx, "user_admin", campaignID, "creator_5"); err != nil {
		t.Fatalf("remove creator failed: %v", err)
	}
	if len(purger.calls) != 1 || purger.calls[0] != "campaign|"+campaignID+"|creator_5" {
		t.Fatalf("expected one purge call for the removed creator, got %v", purger.calls)
	}

	if err := module.Handler.RemoveCreatorHandler(ctx, "user_admin", campaignID, "creator_5"); !errors.Is(err, domainerrors.ErrParticipantNotFound) {
		t.Fatalf("expected participant not found on second removal, got %v", err)
	}
}

func TestToggleBookmarkFlipsState(t *testing.T) {
	module := newTestModule(&stubPurger{})
	ctx := context.Background()

	first, err := module.Handler.ToggleBookmarkHandler(ctx, "creator_1", httptransport.ToggleBookmarkRequest{
		SourceType: "campaign",
		SourceID:   "camp_42",
	})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !first.Bookmarked {
		t.Fatal("expected bookmark to be set on first toggle")
	}

	second, err := module.Handler.ToggleBookmarkHandler(ctx, "creator_1", httptransport.ToggleBookmarkRequest{
		SourceType: "campaign",
		SourceID:   "camp_42",
	})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if second.Bookmarked {
		t.Fatal("expected bookmark to be cleared on second toggle")
	}

	list, err := module.Handler.ListBookmarksHandler(ctx, "creator_1")
	if err != nil {
		t.Fatalf("list bookmarks failed: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("expected empty bookmark list, got %d", len(list.Items))
	}
}
