package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	"clipcast/contexts/marketplace/campaign-service/ports"
)

type Service struct {
	Campaigns     ports.CampaignRepository
	Boosts        ports.BoostRepository
	Bookmarks     ports.BookmarkRepository
	Roles         ports.RoleResolver
	Subscriptions ports.SubscriptionGate
	Submissions   ports.SubmissionPurger
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func (s Service) CreateCampaign(ctx context.Context, actorID string, input ports.CreateCampaignInput) (ports.Campaign, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.BrandID) == "" || input.Budget <= 0 || len(input.Platforms) == 0 {
		return ports.Campaign{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, input.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Campaign{}, err
	}

	now := s.now()
	campaignID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Campaign{}, err
	}
	campaign := ports.Campaign{
		CampaignID:  campaignID,
		BrandID:     strings.TrimSpace(input.BrandID),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Budget:      input.Budget,
		Platforms:   append([]string(nil), input.Platforms...),
		Status:      ports.CampaignStatusDraft,
		BlueprintID: strings.TrimSpace(input.BlueprintID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return ports.Campaign{}, err
	}

	resolveLogger(s.Logger).Info("campaign created",
		"event", "campaign_created",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}

func (s Service) GetCampaign(ctx context.Context, campaignID string) (ports.Campaign, error) {
	if strings.TrimSpace(campaignID) == "" {
		return ports.Campaign{}, domainerrors.ErrInvalidRequest
	}
	return s.Campaigns.GetCampaign(ctx, campaignID)
}

func (s Service) UpdateCampaign(ctx context.Context, actorID string, input ports.UpdateCampaignInput) (ports.Campaign, error) {
	campaign, err := s.Campaigns.GetCampaign(ctx, input.CampaignID)
	if err != nil {
		return ports.Campaign{}, err
	}
	if err := s.requireRole(ctx, campaign.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Campaign{}, err
	}
	if campaign.Status == ports.CampaignStatusEnded {
		return ports.Campaign{}, domainerrors.ErrCampaignNotEditable
	}
	if input.Budget != nil && *input.Budget <= 0 {
		return ports.Campaign{}, domainerrors.ErrInvalidRequest
	}
	return s.Campaigns.UpdateCampaign(ctx, input, s.now())
}

func (s Service) SetCampaignStatus(ctx context.Context, actorID string, campaignID string, status ports.CampaignStatus) error {
	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := s.requireRole(ctx, campaign.BrandID, actorID, "owner", "admin"); err != nil {
		return err
	}
	switch status {
	case ports.CampaignStatusActive, ports.CampaignStatusEnded:
	default:
		return domainerrors.ErrInvalidRequest
	}
	return s.Campaigns.SetCampaignStatus(ctx, campaignID, status, s.now())
}

func (s Service) ListBrandCampaigns(ctx context.Context, actorID string, brandID string) ([]ports.Campaign, error) {
	if err := s.requireRole(ctx, brandID, actorID, "owner", "admin", "poster", "member"); err != nil {
		return nil, err
	}
	return s.Campaigns.ListCampaignsByBrand(ctx, brandID)
}

// Discover returns everything a creator can currently apply to or submit
// against, campaigns and boosts together.
func (s Service) Discover(ctx context.Context) ([]ports.Campaign, []ports.Boost, error) {
	campaigns, err := s.Campaigns.ListActiveCampaigns(ctx)
	if err != nil {
		return nil, nil, err
	}
	boosts, err := s.Boosts.ListActiveBoosts(ctx)
	if err != nil {
		return nil, nil, err
	}
	return campaigns, boosts, nil
}

// CreateBoost is subscription-gated: boosts pay a monthly retainer and are
// only available to brands on a current plan.
func (s Service) CreateBoost(ctx context.Context, actorID string, input ports.CreateBoostInput) (ports.Boost, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.BrandID) == "" || input.MonthlyRetainer <= 0 || input.VideosPerMonth <= 0 {
		return ports.Boost{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, input.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Boost{}, err
	}
	if err := s.Subscriptions.RequireActiveSubscription(ctx, input.BrandID); err != nil {
		return ports.Boost{}, err
	}

	now := s.now()
	boostID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Boost{}, err
	}
	boost := ports.Boost{
		BoostID:         boostID,
		BrandID:         strings.TrimSpace(input.BrandID),
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		MonthlyRetainer: input.MonthlyRetainer,
		VideosPerMonth:  input.VideosPerMonth,
		Platforms:       append([]string(nil), input.Platforms...),
		Status:          ports.CampaignStatusDraft,
		BlueprintID:     strings.TrimSpace(input.BlueprintID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Boosts.CreateBoost(ctx, boost); err != nil {
		return ports.Boost{}, err
	}
	return boost, nil
}

func (s Service) GetBoost(ctx context.Context, boostID string) (ports.Boost, error) {
	if strings.TrimSpace(boostID) == "" {
		return ports.Boost{}, domainerrors.ErrInvalidRequest
	}
	return s.Boosts.GetBoost(ctx, boostID)
}

func (s Service) SetBoostStatus(ctx context.Context, actorID string, boostID string, status ports.CampaignStatus) error {
	boost, err := s.Boosts.GetBoost(ctx, boostID)
	if err != nil {
		return err
	}
	if err := s.requireRole(ctx, boost.BrandID, actorID, "owner", "admin"); err != nil {
		return err
	}
	switch status {
	case ports.CampaignStatusActive, ports.CampaignStatusEnded:
	default:
		return domainerrors.ErrInvalidRequest
	}
	return s.Boosts.SetBoostStatus(ctx, boostID, status, s.now())
}

func (s Service) ListBrandBoosts(ctx context.Context, actorID string, brandID string) ([]ports.Boost, error) {
	if err := s.requireRole(ctx, brandID, actorID, "owner", "admin", "poster", "member"); err != nil {
		return nil, err
	}
	return s.Boosts.ListBoostsByBrand(ctx, brandID)
}

func (s Service) ApplyToBoost(ctx context.Context, creatorID string, boostID string, pitch string) (ports.BoostApplication, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return ports.BoostApplication{}, domainerrors.ErrInvalidRequest
	}
	boost, err := s.Boosts.GetBoost(ctx, boostID)
	if err != nil {
		return ports.BoostApplication{}, err
	}
	if boost.Status != ports.CampaignStatusActive {
		return ports.BoostApplication{}, domainerrors.ErrSourceNotActive
	}
	if _, err := s.Boosts.GetApplicationByCreator(ctx, boostID, creatorID); err == nil {
		return ports.BoostApplication{}, domainerrors.ErrAlreadyApplied
	}

	now := s.now()
	applicationID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.BoostApplication{}, err
	}
	app := ports.BoostApplication{
		ApplicationID:  applicationID,
		BoostID:        boost.BoostID,
		CreatorID:      creatorID,
		Pitch:          strings.TrimSpace(pitch),
		Status:         ports.ApplicationApplied,
		ContractStatus: ports.ContractNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Boosts.CreateApplication(ctx, app); err != nil {
		return ports.BoostApplication{}, err
	}
	return app, nil
}

// ReviewApplication accepts or rejects a pending application. Accepting
// moves the contract to sent.
func (s Service) ReviewApplication(ctx context.Context, actorID string, applicationID string, accept bool) (ports.BoostApplication, error) {
	app, err := s.Boosts.GetApplication(ctx, applicationID)
	if err != nil {
		return ports.BoostApplication{}, err
	}
	boost, err := s.Boosts.GetBoost(ctx, app.BoostID)
	if err != nil {
		return ports.BoostApplication{}, err
	}
	if err := s.requireRole(ctx, boost.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.BoostApplication{}, err
	}
	if app.Status != ports.ApplicationApplied {
		return ports.BoostApplication{}, domainerrors.ErrApplicationNotPending
	}

	if accept {
		app.Status = ports.ApplicationAccepted
		app.ContractStatus = ports.ContractSent
	} else {
		app.Status = ports.ApplicationRejected
	}
	app.UpdatedAt = s.now()
	if err := s.Boosts.UpdateApplication(ctx, app); err != nil {
		return ports.BoostApplication{}, err
	}

	resolveLogger(s.Logger).Info("boost application reviewed",
		"event", "boost_application_reviewed",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"application_id", app.ApplicationID,
		"status", string(app.Status),
	)
	return app, nil
}

func (s Service) SignContract(ctx context.Context, creatorID string, applicationID string) (ports.BoostApplication, error) {
	app, err := s.Boosts.GetApplication(ctx, applicationID)
	if err != nil {
		return ports.BoostApplication{}, err
	}
	if app.CreatorID != strings.TrimSpace(creatorID) {
		return ports.BoostApplication{}, domainerrors.ErrForbidden
	}
	if app.Status != ports.ApplicationAccepted || app.ContractStatus != ports.ContractSent {
		return ports.BoostApplication{}, domainerrors.ErrApplicationNotPending
	}
	app.ContractStatus = ports.ContractSigned
	app.UpdatedAt = s.now()
	if err := s.Boosts.UpdateApplication(ctx, app); err != nil {
		return ports.BoostApplication{}, err
	}
	return app, nil
}

func (s Service) ListApplications(ctx context.Context, actorID string, boostID string) ([]ports.BoostApplication, error) {
	boost, err := s.Boosts.GetBoost(ctx, boostID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, boost.BrandID, actorID, "owner", "admin", "poster", "member"); err != nil {
		return nil, err
	}
	return s.Boosts.ListApplications(ctx, boostID)
}

func (s Service) JoinCampaign(ctx context.Context, creatorID string, campaignID string) (ports.Participant, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return ports.Participant{}, domainerrors.ErrInvalidRequest
	}
	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return ports.Participant{}, err
	}
	if campaign.Status != ports.CampaignStatusActive {
		return ports.Participant{}, domainerrors.ErrSourceNotActive
	}

	participantID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Participant{}, err
	}
	participant := ports.Participant{
		ParticipantID: participantID,
		CampaignID:    campaign.CampaignID,
		CreatorID:     creatorID,
		JoinedAt:      s.now(),
	}
	if err := s.Campaigns.AddParticipant(ctx, participant); err != nil {
		return ports.Participant{}, err
	}
	return participant, nil
}

// RemoveCreator drops the join row and purges the creator's submissions for
// the campaign in one operation; the two always go together.
func (s Service) RemoveCreator(ctx context.Context, actorID string, campaignID string, creatorID string) error {
	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := s.requireRole(ctx, campaign.BrandID, actorID, "owner", "admin"); err != nil {
		return err
	}
	if err := s.Campaigns.RemoveParticipant(ctx, campaignID, creatorID); err != nil {
		return err
	}
	if s.Submissions != nil {
		if err := s.Submissions.PurgeForCreator(ctx, ports.SourceRef{Type: ports.SourceCampaign, ID: campaignID}, creatorID); err != nil {
			return err
		}
	}
	resolveLogger(s.Logger).Info("creator removed from campaign",
		"event", "campaign_creator_removed",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaignID,
		"creator_id", creatorID,
	)
	return nil
}

func (s Service) ToggleBookmark(ctx context.Context, creatorID string, source ports.SourceRef) (bool, error) {
	if strings.TrimSpace(creatorID) == "" || !source.Valid() {
		return false, domainerrors.ErrInvalidRequest
	}
	bookmarkID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return false, err
	}
	return s.Bookmarks.ToggleBookmark(ctx, strings.TrimSpace(creatorID), source, bookmarkID, s.now())
}

func (s Service) ListBookmarks(ctx context.Context, creatorID string) ([]ports.Bookmark, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Bookmarks.ListBookmarks(ctx, strings.TrimSpace(creatorID))
}

func (s Service) requireRole(ctx context.Context, brandID string, actorID string, allowed ...string) error {
	if s.Roles == nil {
		return domainerrors.ErrForbidden
	}
	role, err := s.Roles.Role(ctx, brandID, strings.TrimSpace(actorID))
	if err != nil {
		return domainerrors.ErrForbidden
	}
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return domainerrors.ErrForbidden
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
