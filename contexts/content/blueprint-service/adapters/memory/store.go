package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/content/blueprint-service/domain/errors"
	"clipcast/contexts/content/blueprint-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	blueprints map[string]ports.Blueprint
}

func NewStore(seed []ports.Blueprint) *Store {
	blueprints := make(map[string]ports.Blueprint, len(seed))
	for _, item := range seed {
		blueprints[item.BlueprintID] = cloneBlueprint(item)
	}
	return &Store{blueprints: blueprints}
}

func (s *Store) CreateBlueprint(_ context.Context, blueprint ports.Blueprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blueprints[blueprint.BlueprintID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.blueprints[blueprint.BlueprintID] = cloneBlueprint(blueprint)
	return nil
}

func (s *Store) GetBlueprint(_ context.Context, blueprintID string) (ports.Blueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.blueprints[strings.TrimSpace(blueprintID)]
	if !exists {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	return cloneBlueprint(item), nil
}

func (s *Store) UpdateBlueprint(_ context.Context, input ports.UpdateBlueprintInput, now time.Time) (ports.Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.blueprints[strings.TrimSpace(input.BlueprintID)]
	if !exists {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Hooks != nil {
		item.Hooks = append([]string(nil), input.Hooks...)
	}
	if input.Personas != nil {
		item.Personas = append([]string(nil), input.Personas...)
	}
	if input.Dos != nil {
		item.Dos = strings.TrimSpace(*input.Dos)
	}
	if input.Donts != nil {
		item.Donts = strings.TrimSpace(*input.Donts)
	}
	if input.Hashtags != nil {
		item.Hashtags = append([]string(nil), input.Hashtags...)
	}
	item.UpdatedAt = now
	s.blueprints[item.BlueprintID] = item
	return cloneBlueprint(item), nil
}

func (s *Store) SetSectionLayout(_ context.Context, blueprintID string, order []string, hidden []string, now time.Time) (ports.Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.blueprints[strings.TrimSpace(blueprintID)]
	if !exists {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	item.SectionOrder = append([]string(nil), order...)
	item.HiddenSections = append([]string(nil), hidden...)
	item.UpdatedAt = now
	s.blueprints[item.BlueprintID] = item
	return cloneBlueprint(item), nil
}

func (s *Store) AddExampleVideo(_ context.Context, blueprintID string, video ports.ExampleVideo, now time.Time) (ports.Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.blueprints[strings.TrimSpace(blueprintID)]
	if !exists {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	item.ExampleVideos = append(item.ExampleVideos, video)
	item.UpdatedAt = now
	s.blueprints[item.BlueprintID] = item
	return cloneBlueprint(item), nil
}

func (s *Store) RemoveExampleVideo(_ context.Context, blueprintID string, videoID string, now time.Time) (ports.Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.blueprints[strings.TrimSpace(blueprintID)]
	if !exists {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}

	kept := make([]ports.ExampleVideo, 0, len(item.ExampleVideos))
	removed := false
	for _, video := range item.ExampleVideos {
		if video.VideoID == videoID {
			removed = true
			continue
		}
		kept = append(kept, video)
	}
	if !removed {
		return ports.Blueprint{}, domainerrors.ErrVideoNotFound
	}
	item.ExampleVideos = kept
	item.UpdatedAt = now
	s.blueprints[item.BlueprintID] = item
	return cloneBlueprint(item), nil
}

func (s *Store) ListByBrand(_ context.Context, brandID string) ([]ports.Blueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Blueprint, 0)
	for _, item := range s.blueprints {
		if item.BrandID == strings.TrimSpace(brandID) {
			items = append(items, cloneBlueprint(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteBlueprint(_ context.Context, blueprintID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blueprints[strings.TrimSpace(blueprintID)]; !exists {
		return domainerrors.ErrBlueprintNotFound
	}
	delete(s.blueprints, strings.TrimSpace(blueprintID))
	return nil
}

func cloneBlueprint(item ports.Blueprint) ports.Blueprint {
	clone := item
	clone.Hooks = append([]string(nil), item.Hooks...)
	clone.Personas = append([]string(nil), item.Personas...)
	clone.Hashtags = append([]string(nil), item.Hashtags...)
	clone.ExampleVideos = append([]ports.ExampleVideo(nil), item.ExampleVideos...)
	clone.SectionOrder = append([]string(nil), item.SectionOrder...)
	clone.HiddenSections = append([]string(nil), item.HiddenSections...)
	return clone
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
