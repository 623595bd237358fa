package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/content/blueprint-service/domain/errors"
	"clipcast/contexts/content/blueprint-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Media  ports.MediaStore
	Roles  ports.RoleResolver
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateBlueprint(ctx context.Context, actorID string, brandID string, title string) (ports.Blueprint, error) {
	if strings.TrimSpace(brandID) == "" || strings.TrimSpace(title) == "" {
		return ports.Blueprint{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, brandID, actorID, "owner", "admin"); err != nil {
		return ports.Blueprint{}, err
	}

	now := s.now()
	blueprintID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Blueprint{}, err
	}
	blueprint := ports.Blueprint{
		BlueprintID:  blueprintID,
		BrandID:      strings.TrimSpace(brandID),
		Title:        strings.TrimSpace(title),
		SectionOrder: ports.KnownSections(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateBlueprint(ctx, blueprint); err != nil {
		return ports.Blueprint{}, err
	}

	resolveLogger(s.Logger).Info("blueprint created",
		"event", "blueprint_created",
		"module", "content/blueprint-service",
		"layer", "application",
		"blueprint_id", blueprintID,
		"brand_id", blueprint.BrandID,
	)
	return blueprint, nil
}

// GetBlueprint is readable by anyone; briefs are shown to creators browsing
// a campaign.
func (s Service) GetBlueprint(ctx context.Context, blueprintID string) (ports.Blueprint, error) {
	if strings.TrimSpace(blueprintID) == "" {
		return ports.Blueprint{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetBlueprint(ctx, blueprintID)
}

func (s Service) ListByBrand(ctx context.Context, actorID string, brandID string) ([]ports.Blueprint, error) {
	if err := s.requireRole(ctx, brandID, actorID, "owner", "admin", "poster", "member"); err != nil {
		return nil, err
	}
	return s.Repo.ListByBrand(ctx, brandID)
}

// SaveFields commits a debounced autosave. Only the fields present in the
// input are written; everything else keeps its stored value.
func (s Service) SaveFields(ctx context.Context, actorID string, input ports.UpdateBlueprintInput) (ports.Blueprint, error) {
	blueprint, err := s.Repo.GetBlueprint(ctx, input.BlueprintID)
	if err != nil {
		return ports.Blueprint{}, err
	}
	if err := s.requireRole(ctx, blueprint.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Blueprint{}, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return ports.Blueprint{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.UpdateBlueprint(ctx, input, s.now())
}

func (s Service) SetSectionLayout(ctx context.Context, actorID string, blueprintID string, order []string, hidden []string) (ports.Blueprint, error) {
	blueprint, err := s.Repo.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return ports.Blueprint{}, err
	}
	if err := s.requireRole(ctx, blueprint.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Blueprint{}, err
	}

	known := make(map[string]bool, len(ports.KnownSections()))
	for _, section := range ports.KnownSections() {
		known[section] = true
	}
	seen := make(map[string]bool, len(order))
	for _, section := range order {
		if !known[section] || seen[section] {
			return ports.Blueprint{}, domainerrors.ErrUnknownSection
		}
		seen[section] = true
	}
	for _, section := range hidden {
		if !known[section] {
			return ports.Blueprint{}, domainerrors.ErrUnknownSection
		}
	}
	return s.Repo.SetSectionLayout(ctx, blueprintID, order, hidden, s.now())
}

func (s Service) AddExampleVideo(ctx context.Context, actorID string, blueprintID string, label string, contentType string, size int64, body io.Reader) (ports.Blueprint, error) {
	blueprint, err := s.Repo.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return ports.Blueprint{}, err
	}
	if err := s.requireRole(ctx, blueprint.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Blueprint{}, err
	}

	key, err := s.Media.SaveVideo(contentType, size, body)
	if err != nil {
		return ports.Blueprint{}, err
	}
	videoID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Blueprint{}, err
	}

	video := ports.ExampleVideo{
		VideoID:    videoID,
		StorageKey: key,
		URL:        s.Media.PublicURL(key),
		Label:      strings.TrimSpace(label),
		AddedAt:    s.now(),
	}
	updated, err := s.Repo.AddExampleVideo(ctx, blueprintID, video, s.now())
	if err != nil {
		// keep storage consistent with the row
		_ = s.Media.Remove(key)
		return ports.Blueprint{}, err
	}
	return updated, nil
}

func (s Service) RemoveExampleVideo(ctx context.Context, actorID string, blueprintID string, videoID string) (ports.Blueprint, error) {
	blueprint, err := s.Repo.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return ports.Blueprint{}, err
	}
	if err := s.requireRole(ctx, blueprint.BrandID, actorID, "owner", "admin"); err != nil {
		return ports.Blueprint{}, err
	}

	var storageKey string
	for _, video := range blueprint.ExampleVideos {
		if video.VideoID == strings.TrimSpace(videoID) {
			storageKey = video.StorageKey
			break
		}
	}
	if storageKey == "" {
		return ports.Blueprint{}, domainerrors.ErrVideoNotFound
	}

	updated, err := s.Repo.RemoveExampleVideo(ctx, blueprintID, strings.TrimSpace(videoID), s.now())
	if err != nil {
		return ports.Blueprint{}, err
	}
	if err := s.Media.Remove(storageKey); err != nil {
		resolveLogger(s.Logger).Warn("orphaned example video file",
			"event", "blueprint_video_orphaned",
			"module", "content/blueprint-service",
			"layer", "application",
			"blueprint_id", blueprintID,
			"storage_key", storageKey,
			"error", err,
		)
	}
	return updated, nil
}

func (s Service) DeleteBlueprint(ctx context.Context, actorID string, blueprintID string) error {
	blueprint, err := s.Repo.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return err
	}
	if err := s.requireRole(ctx, blueprint.BrandID, actorID, "owner", "admin"); err != nil {
		return err
	}
	if err := s.Repo.DeleteBlueprint(ctx, blueprintID); err != nil {
		return err
	}
	for _, video := range blueprint.ExampleVideos {
		_ = s.Media.Remove(video.StorageKey)
	}
	return nil
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
