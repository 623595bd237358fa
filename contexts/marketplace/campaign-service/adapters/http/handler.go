package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/marketplace/campaign-service/application"
	"clipcast/contexts/marketplace/campaign-service/ports"
	httptransport "clipcast/contexts/marketplace/campaign-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCampaignHandler(ctx context.Context, userID string, req httptransport.CreateCampaignRequest) (httptransport.CreateCampaignResponse, error) {
	campaign, err := h.Service.CreateCampaign(ctx, userID, ports.CreateCampaignInput{
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Platforms:   req.Platforms,
		BlueprintID: req.BlueprintID,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.Service.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) UpdateCampaignHandler(ctx context.Context, userID string, campaignID string, req httptransport.UpdateCampaignRequest) (httptransport.UpdateCampaignResponse, error) {
	campaign, err := h.Service.UpdateCampaign(ctx, userID, ports.UpdateCampaignInput{
		CampaignID:  campaignID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Platforms:   req.Platforms,
		BlueprintID: req.BlueprintID,
	})
	if err != nil {
		return httptransport.UpdateCampaignResponse{}, err
	}
	return httptransport.UpdateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) SetCampaignStatusHandler(ctx context.Context, userID string, campaignID string, req httptransport.SetStatusRequest) error {
	return h.Service.SetCampaignStatus(ctx, userID, campaignID, ports.CampaignStatus(req.Status))
}

func (h Handler) ListBrandCampaignsHandler(ctx context.Context, userID string, brandID string) (httptransport.ListCampaignsResponse, error) {
	items, err := h.Service.ListBrandCampaigns(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) DiscoverHandler(ctx context.Context) (httptransport.DiscoverResponse, error) {
	campaigns, boosts, err := h.Service.Discover(ctx)
	if err != nil {
		return httptransport.DiscoverResponse{}, err
	}
	resp := httptransport.DiscoverResponse{
		Campaigns: make([]httptransport.CampaignDTO, 0, len(campaigns)),
		Boosts:    make([]httptransport.BoostDTO, 0, len(boosts)),
	}
	for _, item := range campaigns {
		resp.Campaigns = append(resp.Campaigns, mapCampaign(item))
	}
	for _, item := range boosts {
		resp.Boosts = append(resp.Boosts, mapBoost(item))
	}
	return resp, nil
}

func (h Handler) CreateBoostHandler(ctx context.Context, userID string, req httptransport.CreateBoostRequest) (httptransport.CreateBoostResponse, error) {
	boost, err := h.Service.CreateBoost(ctx, userID, ports.CreateBoostInput{
		BrandID:         req.BrandID,
		Title:           req.Title,
		Description:     req.Description,
		MonthlyRetainer: req.MonthlyRetainer,
		VideosPerMonth:  req.VideosPerMonth,
		Platforms:       req.Platforms,
		BlueprintID:     req.BlueprintID,
	})
	if err != nil {
		return httptransport.CreateBoostResponse{}, err
	}
	return httptransport.CreateBoostResponse{Boost: mapBoost(boost)}, nil
}

func (h Handler) GetBoostHandler(ctx context.Context, boostID string) (httptransport.GetBoostResponse, error) {
	boost, err := h.Service.GetBoost(ctx, boostID)
	if err != nil {
		return httptransport.GetBoostResponse{}, err
	}
	return httptransport.GetBoostResponse{Boost: mapBoost(boost)}, nil
}

func (h Handler) SetBoostStatusHandler(ctx context.Context, userID string, boostID string, req httptransport.SetStatusRequest) error {
	return h.Service.SetBoostStatus(ctx, userID, boostID, ports.CampaignStatus(req.Status))
}

func (h Handler) ListBrandBoostsHandler(ctx context.Context, userID string, brandID string) (httptransport.ListBoostsResponse, error) {
	items, err := h.Service.ListBrandBoosts(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListBoostsResponse{}, err
	}
	result := make([]httptransport.BoostDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapBoost(item))
	}
	return httptransport.ListBoostsResponse{Items: result}, nil
}

func (h Handler) ApplyToBoostHandler(ctx context.Context, userID string, boostID string, req httptransport.ApplyToBoostRequest) (httptransport.ApplyToBoostResponse, error) {
	app, err := h.Service.ApplyToBoost(ctx, userID, boostID, req.Pitch)
	if err != nil {
		return httptransport.ApplyToBoostResponse{}, err
	}
	return httptransport.ApplyToBoostResponse{Application: mapApplication(app)}, nil
}

func (h Handler) ReviewApplicationHandler(ctx context.Context, userID string, applicationID string, req httptransport.ReviewApplicationRequest) (httptransport.ReviewApplicationResponse, error) {
	app, err := h.Service.ReviewApplication(ctx, userID, applicationID, req.Accept)
	if err != nil {
		return httptransport.ReviewApplicationResponse{}, err
	}
	return httptransport.ReviewApplicationResponse{Application: mapApplication(app)}, nil
}

func (h Handler) SignContractHandler(ctx context.Context, userID string, applicationID string) (httptransport.SignContractResponse, error) {
	app, err := h.Service.SignContract(ctx, userID, applicationID)
	if err != nil {
		return httptransport.SignContractResponse{}, err
	}
	return httptransport.SignContractResponse{Application: mapApplication(app)}, nil
}

func (h Handler) ListApplicationsHandler(ctx context.Context, userID string, boostID string) (httptransport.ListApplicationsResponse, error) {
	items, err := h.Service.ListApplications(ctx, userID, boostID)
	if err != nil {
		return httptransport.ListApplicationsResponse{}, err
	}
	result := make([]httptransport.ApplicationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapApplication(item))
	}
	return httptransport.ListApplicationsResponse{Items: result}, nil
}

func (h Handler) JoinCampaignHandler(ctx context.Context, userID string, campaignID string) (httptransport.JoinCampaignResponse, error) {
	participant, err := h.Service.JoinCampaign(ctx, userID, campaignID)
	if err != nil {
		return httptransport.JoinCampaignResponse{}, err
	}
	return httptransport.JoinCampaignResponse{Participant: mapParticipant(participant)}, nil
}

func (h Handler) RemoveCreatorHandler(ctx context.Context, userID string, campaignID string, creatorID string) error {
	return h.Service.RemoveCreator(ctx, userID, campaignID, creatorID)
}

func (h Handler) ToggleBookmarkHandler(ctx context.Context, userID string, req httptransport.ToggleBookmarkRequest) (httptransport.ToggleBookmarkResponse, error) {
	bookmarked, err := h.Service.ToggleBookmark(ctx, userID, ports.SourceRef{
		Type: ports.SourceType(req.SourceType),
		ID:   req.SourceID,
	})
	if err != nil {
		return httptransport.ToggleBookmarkResponse{}, err
	}
	return httptransport.ToggleBookmarkResponse{Bookmarked: bookmarked}, nil
}

func (h Handler) ListBookmarksHandler(ctx context.Context, userID string) (httptransport.ListBookmarksResponse, error) {
	items, err := h.Service.ListBookmarks(ctx, userID)
	if err != nil {
		return httptransport.ListBookmarksResponse{}, err
	}
	result := make([]httptransport.BookmarkDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.BookmarkDTO{
			BookmarkID: item.BookmarkID,
			SourceType: string(item.Source.Type),
			SourceID:   item.Source.ID,
			CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.ListBookmarksResponse{Items: result}, nil
}

func mapCampaign(item ports.Campaign) httptransport.CampaignDTO {
	return httptransport.CampaignDTO{
		CampaignID:  item.CampaignID,
		BrandID:     item.BrandID,
		Title:       item.Title,
		Description: item.Description,
		Budget:      item.Budget,
		Platforms:   item.Platforms,
		Status:      string(item.Status),
		BlueprintID: item.BlueprintID,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapBoost(item ports.Boost) httptransport.BoostDTO {
	return httptransport.BoostDTO{
		BoostID:         item.BoostID,
		BrandID:         item.BrandID,
		Title:           item.Title,
		Description:     item.Description,
		MonthlyRetainer: item.MonthlyRetainer,
		VideosPerMonth:  item.VideosPerMonth,
		Platforms:       item.Platforms,
		Status:          string(item.Status),
		BlueprintID:     item.BlueprintID,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapApplication(item ports.BoostApplication) httptransport.ApplicationDTO {
	return httptransport.ApplicationDTO{
		ApplicationID:  item.ApplicationID,
		BoostID:        item.BoostID,
		CreatorID:      item.CreatorID,
		Pitch:          item.Pitch,
		Status:         string(item.Status),
		ContractStatus: string(item.ContractStatus),
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapParticipant(item ports.Participant) httptransport.ParticipantDTO {
	return httptransport.ParticipantDTO{
		ParticipantID: item.ParticipantID,
		CampaignID:    item.CampaignID,
		CreatorID:     item.CreatorID,
		JoinedAt:      item.JoinedAt.UTC().Format(time.RFC3339),
	}
}
