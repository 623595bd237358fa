package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/integrations/discord-service/domain/errors"
	"clipcast/contexts/integrations/discord-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("postgres repository requires a non-nil db")
	}
	if err := db.AutoMigrate(&connectionModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type connectionModel struct {
	BrandID     string    `gorm:"column:brand_id;primaryKey"`
	GuildID     string    `gorm:"column:guild_id"`
	GuildName   string    `gorm:"column:guild_name"`
	ConnectedAt time.Time `gorm:"column:connected_at"`
}

func (connectionModel) TableName() string { return "discord_guild_connections" }

func (r *Repository) SaveConnection(ctx context.Context, connection ports.GuildConnection) error {
	model := connectionModel{
		BrandID:     connection.BrandID,
		GuildID:     connection.GuildID,
		GuildName:   connection.GuildName,
		ConnectedAt: connection.ConnectedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "brand_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (r *Repository) GetConnection(ctx context.Context, brandID string) (ports.GuildConnection, error) {
	var model connectionModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.GuildConnection{}, domainerrors.ErrNotConnected
	}
	if err != nil {
		return ports.GuildConnection{}, err
	}
	return ports.GuildConnection{
		BrandID:     model.BrandID,
		GuildID:     model.GuildID,
		GuildName:   model.GuildName,
		ConnectedAt: model.ConnectedAt,
	}, nil
}

func (r *Repository) DeleteConnection(ctx context.Context, brandID string) error {
	result := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Delete(&connectionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotConnected
	}
	return nil
}
