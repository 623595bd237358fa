package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/marketplace/campaign-service/domain/errors"
	"clipcast/contexts/marketplace/campaign-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign ports.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (ports.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return ports.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, input ports.UpdateCampaignInput, now time.Time) (ports.Campaign, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Budget != nil {
		updates["budget"] = *input.Budget
	}
	if input.Platforms != nil {
		updates["platforms"] = copyOrEmpty(input.Platforms)
	}
	if input.BlueprintID != nil {
		updates["blueprint_id"] = strings.TrimSpace(*input.BlueprintID)
	}

	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(input.CampaignID)).
		Updates(updates)
	if result.Error != nil {
		return ports.Campaign{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return r.GetCampaign(ctx, input.CampaignID)
}

func (r *Repository) SetCampaignStatus(ctx context.Context, campaignID string, status ports.CampaignStatus, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) ListCampaignsByBrand(ctx context.Context, brandID string) ([]ports.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return campaignsToEntities(rows), nil
}

func (r *Repository) ListActiveCampaigns(ctx context.Context) ([]ports.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(ports.CampaignStatusActive)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return campaignsToEntities(rows), nil
}

func (r *Repository) AddParticipant(ctx context.Context, participant ports.Participant) error {
	row := participantModel{
		ParticipantID: strings.TrimSpace(participant.ParticipantID),
		CampaignID:    strings.TrimSpace(participant.CampaignID),
		CreatorID:     strings.TrimSpace(participant.CreatorID),
		JoinedAt:      participant.JoinedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrParticipantExists
		}
		return err
	}
	return nil
}

func (r *Repository) ListParticipants(ctx context.Context, campaignID string) ([]ports.Participant, error) {
	var rows []participantModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("joined_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.Participant, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.Participant{
			ParticipantID: row.ParticipantID,
			CampaignID:    row.CampaignID,
			CreatorID:     row.CreatorID,
			JoinedAt:      row.JoinedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) RemoveParticipant(ctx context.Context, campaignID string, creatorID string) error {
	result := r.db.WithContext(ctx).
		Where("campaign_id = ? AND creator_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(creatorID)).
		Delete(&participantModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrParticipantNotFound
	}
	return nil
}

func (r *Repository) CreateBoost(ctx context.Context, boost ports.Boost) error {
	row := boostModelFromEntity(boost)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetBoost(ctx context.Context, boostID string) (ports.Boost, error) {
	var row boostModel
	err := r.db.WithContext(ctx).
		Where("boost_id = ?", strings.TrimSpace(boostID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Boost{}, domainerrors.ErrBoostNotFound
		}
		return ports.Boost{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) SetBoostStatus(ctx context.Context, boostID string, status ports.CampaignStatus, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&boostModel{}).
		Where("boost_id = ?", strings.TrimSpace(boostID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBoostNotFound
	}
	return nil
}

func (r *Repository) ListBoostsByBrand(ctx context.Context, brandID string) ([]ports.Boost, error) {
	var rows []boostModel
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return boostsToEntities(rows), nil
}

func (r *Repository) ListActiveBoosts(ctx context.Context) ([]ports.Boost, error) {
	var rows []boostModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(ports.CampaignStatusActive)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return boostsToEntities(rows), nil
}

func (r *Repository) CreateApplication(ctx context.Context, app ports.BoostApplication) error {
	row := applicationModelFromEntity(app)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// unique (boost_id, creator_id) backs the one-application rule
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *Repository) GetApplication(ctx context.Context, applicationID string) (ports.BoostApplication, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", strings.TrimSpace(applicationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.BoostApplication{}, domainerrors.ErrApplicationNotFound
		}
		return ports.BoostApplication{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetApplicationByCreator(ctx context.Context, boostID string, creatorID string) (ports.BoostApplication, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).
		Where("boost_id = ? AND creator_id = ?", strings.TrimSpace(boostID), strings.TrimSpace(creatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.BoostApplication{}, domainerrors.ErrApplicationNotFound
		}
		return ports.BoostApplication{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateApplication(ctx context.Context, app ports.BoostApplication) error {
	result := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("application_id = ?", strings.TrimSpace(app.ApplicationID)).
		Updates(map[string]any{
			"status":          string(app.Status),
			"contract_status": string(app.ContractStatus),
			"updated_at":      app.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrApplicationNotFound
	}
	return nil
}

func (r *Repository) ListApplications(ctx context.Context, boostID string) ([]ports.BoostApplication, error) {
	var rows []applicationModel
	if err := r.db.WithContext(ctx).
		Where("boost_id = ?", strings.TrimSpace(boostID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.BoostApplication, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ToggleBookmark(ctx context.Context, creatorID string, source ports.SourceRef, bookmarkID string, now time.Time) (bool, error) {
	creatorID = strings.TrimSpace(creatorID)

	bookmarked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("creator_id = ? AND source_type = ? AND source_id = ?", creatorID, string(source.Type), source.ID).
			Delete(&bookmarkModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		row := bookmarkModel{
			BookmarkID: strings.TrimSpace(bookmarkID),
			CreatorID:  creatorID,
			SourceType: string(source.Type),
			SourceID:   strings.TrimSpace(source.ID),
			CreatedAt:  now.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil
			}
			return err
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

func (r *Repository) ListBookmarks(ctx context.Context, creatorID string) ([]ports.Bookmark, error) {
	var rows []bookmarkModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.Bookmark, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.Bookmark{
			BookmarkID: row.BookmarkID,
			CreatorID:  row.CreatorID,
			Source: ports.SourceRef{
				Type: ports.SourceType(row.SourceType),
				ID:   row.SourceID,
			},
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

type campaignModel struct {
	CampaignID  string    `gorm:"column:campaign_id;primaryKey"`
	BrandID     string    `gorm:"column:brand_id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Budget      float64   `gorm:"column:budget"`
	Platforms   []string  `gorm:"column:platforms;type:text[]"`
	Status      string    `gorm:"column:status"`
	BlueprintID string    `gorm:"column:blueprint_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item ports.Campaign) campaignModel {
	return campaignModel{
		CampaignID:  strings.TrimSpace(item.CampaignID),
		BrandID:     strings.TrimSpace(item.BrandID),
		Title:       strings.TrimSpace(item.Title),
		Description: strings.TrimSpace(item.Description),
		Budget:      item.Budget,
		Platforms:   copyOrEmpty(item.Platforms),
		Status:      string(item.Status),
		BlueprintID: strings.TrimSpace(item.BlueprintID),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m campaignModel) toEntity() ports.Campaign {
	return ports.Campaign{
		CampaignID:  m.CampaignID,
		BrandID:     m.BrandID,
		Title:       m.Title,
		Description: m.Description,
		Budget:      m.Budget,
		Platforms:   copyOrEmpty(m.Platforms),
		Status:      ports.CampaignStatus(m.Status),
		BlueprintID: m.BlueprintID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func campaignsToEntities(rows []campaignModel) []ports.Campaign {
	items := make([]ports.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type boostModel struct {
	BoostID         string    `gorm:"column:boost_id;primaryKey"`
	BrandID         string    `gorm:"column:brand_id"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	MonthlyRetainer float64   `gorm:"column:monthly_retainer"`
	VideosPerMonth  int       `gorm:"column:videos_per_month"`
	Platforms       []string  `gorm:"column:platforms;type:text[]"`
	Status          string    `gorm:"column:status"`
	BlueprintID     string    `gorm:"column:blueprint_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (boostModel) TableName() string {
	return "boosts"
}

func boostModelFromEntity(item ports.Boost) boostModel {
	return boostModel{
		BoostID:         strings.TrimSpace(item.BoostID),
		BrandID:         strings.TrimSpace(item.BrandID),
		Title:           strings.TrimSpace(item.Title),
		Description:     strings.TrimSpace(item.Description),
		MonthlyRetainer: item.MonthlyRetainer,
		VideosPerMonth:  item.VideosPerMonth,
		Platforms:       copyOrEmpty(item.Platforms),
		Status:          string(item.Status),
		BlueprintID:     strings.TrimSpace(item.BlueprintID),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m boostModel) toEntity() ports.Boost {
	return ports.Boost{
		BoostID:         m.BoostID,
		BrandID:         m.BrandID,
		Title:           m.Title,
		Description:     m.Description,
		MonthlyRetainer: m.MonthlyRetainer,
		VideosPerMonth:  m.VideosPerMonth,
		Platforms:       copyOrEmpty(m.Platforms),
		Status:          ports.CampaignStatus(m.Status),
		BlueprintID:     m.BlueprintID,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func boostsToEntities(rows []boostModel) []ports.Boost {
	items := make([]ports.Boost, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type applicationModel struct {
	ApplicationID  string    `gorm:"column:application_id;primaryKey"`
	BoostID        string    `gorm:"column:boost_id;uniqueIndex:idx_boost_creator"`
	CreatorID      string    `gorm:"column:creator_id;uniqueIndex:idx_boost_creator"`
	Pitch          string    `gorm:"column:pitch"`
	Status         string    `gorm:"column:status"`
	ContractStatus string    `gorm:"column:contract_status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string {
	return "boost_applications"
}

func applicationModelFromEntity(item ports.BoostApplication) applicationModel {
	return applicationModel{
		ApplicationID:  strings.TrimSpace(item.ApplicationID),
		BoostID:        strings.TrimSpace(item.BoostID),
		CreatorID:      strings.TrimSpace(item.CreatorID),
		Pitch:          strings.TrimSpace(item.Pitch),
		Status:         string(item.Status),
		ContractStatus: string(item.ContractStatus),
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m applicationModel) toEntity() ports.BoostApplication {
	return ports.BoostApplication{
		ApplicationID:  m.ApplicationID,
		BoostID:        m.BoostID,
		CreatorID:      m.CreatorID,
		Pitch:          m.Pitch,
		Status:         ports.ApplicationStatus(m.Status),
		ContractStatus: ports.ContractStatus(m.ContractStatus),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type participantModel struct {
	ParticipantID string    `gorm:"column:participant_id;primaryKey"`
	CampaignID    string    `gorm:"column:campaign_id;uniqueIndex:idx_campaign_creator"`
	CreatorID     string    `gorm:"column:creator_id;uniqueIndex:idx_campaign_creator"`
	JoinedAt      time.Time `gorm:"column:joined_at"`
}

func (participantModel) TableName() string {
	return "campaign_participants"
}

type bookmarkModel struct {
	BookmarkID string    `gorm:"column:bookmark_id;primaryKey"`
	CreatorID  string    `gorm:"column:creator_id;uniqueIndex:idx_creator_source"`
	SourceType string    `gorm:"column:source_type;uniqueIndex:idx_creator_source"`
	SourceID   string    `gorm:"column:source_id;uniqueIndex:idx_creator_source"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (bookmarkModel) TableName() string {
	return "bookmarks"
}

func copyOrEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return append([]string(nil), items...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
