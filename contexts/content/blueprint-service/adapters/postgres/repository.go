package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/content/blueprint-service/domain/errors"
	"clipcast/contexts/content/blueprint-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("postgres repository requires a non-nil db")
	}
	if err := db.AutoMigrate(&blueprintModel{}, &exampleVideoModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// List fields are stored as jsonb arrays; edits are column-granular so
// concurrent editors only race within one list.
type blueprintModel struct {
	BlueprintID    string    `gorm:"column:blueprint_id;primaryKey"`
	BrandID        string    `gorm:"column:brand_id;index"`
	Title          string    `gorm:"column:title"`
	Hooks          string    `gorm:"column:hooks;type:jsonb"`
	Personas       string    `gorm:"column:personas;type:jsonb"`
	Dos            string    `gorm:"column:dos"`
	Donts          string    `gorm:"column:donts"`
	Hashtags       string    `gorm:"column:hashtags;type:jsonb"`
	SectionOrder   string    `gorm:"column:section_order;type:jsonb"`
	HiddenSections string    `gorm:"column:hidden_sections;type:jsonb"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (blueprintModel) TableName() string { return "blueprints" }

type exampleVideoModel struct {
	VideoID     string    `gorm:"column:video_id;primaryKey"`
	BlueprintID string    `gorm:"column:blueprint_id;index"`
	StorageKey  string    `gorm:"column:storage_key"`
	URL         string    `gorm:"column:url"`
	Label       string    `gorm:"column:label"`
	AddedAt     time.Time `gorm:"column:added_at"`
}

func (exampleVideoModel) TableName() string { return "blueprint_example_videos" }

func (r *Repository) CreateBlueprint(ctx context.Context, blueprint ports.Blueprint) error {
	model, err := blueprintToModel(blueprint)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *Repository) GetBlueprint(ctx context.Context, blueprintID string) (ports.Blueprint, error) {
	var model blueprintModel
	err := r.db.WithContext(ctx).
		Where("blueprint_id = ?", strings.TrimSpace(blueprintID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	if err != nil {
		return ports.Blueprint{}, err
	}
	return r.hydrate(ctx, model)
}

func (r *Repository) UpdateBlueprint(ctx context.Context, input ports.UpdateBlueprintInput, now time.Time) (ports.Blueprint, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Hooks != nil {
		raw, err := json.Marshal(input.Hooks)
		if err != nil {
			return ports.Blueprint{}, err
		}
		updates["hooks"] = string(raw)
	}
	if input.Personas != nil {
		raw, err := json.Marshal(input.Personas)
		if err != nil {
			return ports.Blueprint{}, err
		}
		updates["personas"] = string(raw)
	}
	if input.Dos != nil {
		updates["dos"] = *input.Dos
	}
	if input.Donts != nil {
		updates["donts"] = *input.Donts
	}
	if input.Hashtags != nil {
		raw, err := json.Marshal(input.Hashtags)
		if err != nil {
			return ports.Blueprint{}, err
		}
		updates["hashtags"] = string(raw)
	}

	result := r.db.WithContext(ctx).
		Model(&blueprintModel{}).
		Where("blueprint_id = ?", input.BlueprintID).
		Updates(updates)
	if result.Error != nil {
		return ports.Blueprint{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	return r.GetBlueprint(ctx, input.BlueprintID)
}

func (r *Repository) SetSectionLayout(ctx context.Context, blueprintID string, order []string, hidden []string, now time.Time) (ports.Blueprint, error) {
	orderRaw, err := json.Marshal(order)
	if err != nil {
		return ports.Blueprint{}, err
	}
	hiddenRaw, err := json.Marshal(hidden)
	if err != nil {
		return ports.Blueprint{}, err
	}

	result := r.db.WithContext(ctx).
		Model(&blueprintModel{}).
		Where("blueprint_id = ?", blueprintID).
		Updates(map[string]any{
			"section_order":   string(orderRaw),
			"hidden_sections": string(hiddenRaw),
			"updated_at":      now.UTC(),
		})
	if result.Error != nil {
		return ports.Blueprint{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Blueprint{}, domainerrors.ErrBlueprintNotFound
	}
	return r.GetBlueprint(ctx, blueprintID)
}

func (r *Repository) AddExampleVideo(ctx context.Context, blueprintID string, video ports.ExampleVideo, now time.Time) (ports.Blueprint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&blueprintModel{}).
			Where("blueprint_id = ?", blueprintID).
			Update("updated_at", now.UTC())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrBlueprintNotFound
		}
		return tx.Create(&exampleVideoModel{
			VideoID:     video.VideoID,
			BlueprintID: blueprintID,
			StorageKey:  video.StorageKey,
			URL:         video.URL,
			Label:       video.Label,
			AddedAt:     video.AddedAt.UTC(),
		}).Error
	})
	if err != nil {
		return ports.Blueprint{}, err
	}
	return r.GetBlueprint(ctx, blueprintID)
}

func (r *Repository) RemoveExampleVideo(ctx context.Context, blueprintID string, videoID string, now time.Time) (ports.Blueprint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("blueprint_id = ? AND video_id = ?", blueprintID, videoID).
			Delete(&exampleVideoModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVideoNotFound
		}
		return tx.Model(&blueprintModel{}).
			Where("blueprint_id = ?", blueprintID).
			Update("updated_at", now.UTC()).Error
	})
	if err != nil {
		return ports.Blueprint{}, err
	}
	return r.GetBlueprint(ctx, blueprintID)
}

func (r *Repository) ListByBrand(ctx context.Context, brandID string) ([]ports.Blueprint, error) {
	var models []blueprintModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Blueprint, 0, len(models))
	for _, model := range models {
		item, err := r.hydrate(ctx, model)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) DeleteBlueprint(ctx context.Context, blueprintID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blueprint_id = ?", blueprintID).
			Delete(&exampleVideoModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("blueprint_id = ?", blueprintID).Delete(&blueprintModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrBlueprintNotFound
		}
		return nil
	})
}

func (r *Repository) hydrate(ctx context.Context, model blueprintModel) (ports.Blueprint, error) {
	item, err := model.toEntity()
	if err != nil {
		return ports.Blueprint{}, err
	}

	var videos []exampleVideoModel
	if err := r.db.WithContext(ctx).
		Where("blueprint_id = ?", model.BlueprintID).
		Order("added_at ASC").
		Find(&videos).Error; err != nil {
		return ports.Blueprint{}, err
	}
	item.ExampleVideos = make([]ports.ExampleVideo, 0, len(videos))
	for _, video := range videos {
		item.ExampleVideos = append(item.ExampleVideos, ports.ExampleVideo{
			VideoID:    video.VideoID,
			StorageKey: video.StorageKey,
			URL:        video.URL,
			Label:      video.Label,
			AddedAt:    video.AddedAt,
		})
	}
	return item, nil
}

func blueprintToModel(blueprint ports.Blueprint) (*blueprintModel, error) {
	hooks, err := json.Marshal(blueprint.Hooks)
	if err != nil {
		return nil, err
	}
	personas, err := json.Marshal(blueprint.Personas)
	if err != nil {
		return nil, err
	}
	hashtags, err := json.Marshal(blueprint.Hashtags)
	if err != nil {
		return nil, err
	}
	order, err := json.Marshal(blueprint.SectionOrder)
	if err != nil {
		return nil, err
	}
	hidden, err := json.Marshal(blueprint.HiddenSections)
	if err != nil {
		return nil, err
	}
	return &blueprintModel{
		BlueprintID:    blueprint.BlueprintID,
		BrandID:        blueprint.BrandID,
		Title:          blueprint.Title,
		Hooks:          string(hooks),
		Personas:       string(personas),
		Dos:            blueprint.Dos,
		Donts:          blueprint.Donts,
		Hashtags:       string(hashtags),
		SectionOrder:   string(order),
		HiddenSections: string(hidden),
		CreatedAt:      blueprint.CreatedAt.UTC(),
		UpdatedAt:      blueprint.UpdatedAt.UTC(),
	}, nil
}

func (m blueprintModel) toEntity() (ports.Blueprint, error) {
	item := ports.Blueprint{
		BlueprintID: m.BlueprintID,
		BrandID:     m.BrandID,
		Title:       m.Title,
		Dos:         m.Dos,
		Donts:       m.Donts,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	fields := []struct {
		raw    string
		target *[]string
	}{
		{m.Hooks, &item.Hooks},
		{m.Personas, &item.Personas},
		{m.Hashtags, &item.Hashtags},
		{m.SectionOrder, &item.SectionOrder},
		{m.HiddenSections, &item.HiddenSections},
	}
	for _, field := range fields {
		if field.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.raw), field.target); err != nil {
			return ports.Blueprint{}, err
		}
	}
	return item, nil
}
