package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"clipcast/contexts/content/blueprint-service/application"
	"clipcast/contexts/content/blueprint-service/ports"
	httptransport "clipcast/contexts/content/blueprint-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateBlueprintHandler(ctx context.Context, userID string, req httptransport.CreateBlueprintRequest) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.CreateBlueprint(ctx, userID, req.BrandID, req.Title)
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) GetBlueprintHandler(ctx context.Context, blueprintID string) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) ListBlueprintsHandler(ctx context.Context, userID string, brandID string) (httptransport.ListBlueprintsResponse, error) {
	items, err := h.Service.ListByBrand(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListBlueprintsResponse{}, err
	}
	result := make([]httptransport.BlueprintDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapBlueprint(item))
	}
	return httptransport.ListBlueprintsResponse{Items: result}, nil
}

func (h Handler) SaveFieldsHandler(ctx context.Context, userID string, blueprintID string, req httptransport.SaveFieldsRequest) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.SaveFields(ctx, userID, ports.UpdateBlueprintInput{
		BlueprintID: blueprintID,
		Title:       req.Title,
		Hooks:       req.Hooks,
		Personas:    req.Personas,
		Dos:         req.Dos,
		Donts:       req.Donts,
		Hashtags:    req.Hashtags,
	})
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) SetSectionLayoutHandler(ctx context.Context, userID string, blueprintID string, req httptransport.SetSectionLayoutRequest) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.SetSectionLayout(ctx, userID, blueprintID, req.Order, req.Hidden)
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) AddExampleVideoHandler(ctx context.Context, userID string, blueprintID string, label string, contentType string, size int64, body io.Reader) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.AddExampleVideo(ctx, userID, blueprintID, label, contentType, size, body)
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) RemoveExampleVideoHandler(ctx context.Context, userID string, blueprintID string, videoID string) (httptransport.BlueprintResponse, error) {
	blueprint, err := h.Service.RemoveExampleVideo(ctx, userID, blueprintID, videoID)
	if err != nil {
		return httptransport.BlueprintResponse{}, err
	}
	return httptransport.BlueprintResponse{Blueprint: mapBlueprint(blueprint)}, nil
}

func (h Handler) DeleteBlueprintHandler(ctx context.Context, userID string, blueprintID string) error {
	return h.Service.DeleteBlueprint(ctx, userID, blueprintID)
}

func mapBlueprint(item ports.Blueprint) httptransport.BlueprintDTO {
	videos := make([]httptransport.ExampleVideoDTO, 0, len(item.ExampleVideos))
	for _, video := range item.ExampleVideos {
		videos = append(videos, httptransport.ExampleVideoDTO{
			VideoID: video.VideoID,
			URL:     video.URL,
			Label:   video.Label,
			AddedAt: video.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.BlueprintDTO{
		BlueprintID:    item.BlueprintID,
		BrandID:        item.BrandID,
		Title:          item.Title,
		Hooks:          item.Hooks,
		Personas:       item.Personas,
		Dos:            item.Dos,
		Donts:          item.Donts,
		Hashtags:       item.Hashtags,
		ExampleVideos:  videos,
		SectionOrder:   item.SectionOrder,
		HiddenSections: item.HiddenSections,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
