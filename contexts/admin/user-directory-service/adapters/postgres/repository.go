package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/admin/user-directory-service/domain/errors"
	"clipcast/contexts/admin/user-directory-service/ports"

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
	if err := db.AutoMigrate(&profileModel{}, &socialAccountModel{}, &demographicModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type profileModel struct {
	UserID        string    `gorm:"column:user_id;primaryKey"`
	Username      string    `gorm:"column:username;index"`
	FullName      string    `gorm:"column:full_name"`
	Email         string    `gorm:"column:email"`
	Country       string    `gorm:"column:country;index"`
	Role          string    `gorm:"column:role;index"`
	TrustScore    float64   `gorm:"column:trust_score"`
	TotalViews    int64     `gorm:"column:total_views"`
	TotalEarnings float64   `gorm:"column:total_earnings"`
	Suspended     bool      `gorm:"column:suspended"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "user_profiles" }

type socialAccountModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	UserID    string `gorm:"column:user_id;uniqueIndex:idx_user_platform"`
	Platform  string `gorm:"column:platform;uniqueIndex:idx_user_platform"`
	Handle    string `gorm:"column:handle"`
	Followers int64  `gorm:"column:followers"`
}

func (socialAccountModel) TableName() string { return "social_accounts" }

type demographicModel struct {
	SubmissionID string     `gorm:"column:submission_id;primaryKey"`
	UserID       string     `gorm:"column:user_id;index"`
	Platform     string     `gorm:"column:platform"`
	Splits       string     `gorm:"column:splits;type:jsonb"`
	Status       string     `gorm:"column:status;index"`
	ReviewedBy   string     `gorm:"column:reviewed_by"`
	Notes        string     `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
}

func (demographicModel) TableName() string { return "demographic_submissions" }

func (r *Repository) UpsertProfile(ctx context.Context, profile ports.Profile) error {
	model := profileFromEntity(profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (ports.Profile, error) {
	var model profileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Profile{}, domainerrors.ErrProfileNotFound
	}
	if err != nil {
		return ports.Profile{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListProfiles(ctx context.Context, filter ports.ProfileFilter) ([]ports.Profile, error) {
	query := r.db.WithContext(ctx).Model(&profileModel{})
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.Country != "" {
		query = query.Where("LOWER(country) = LOWER(?)", filter.Country)
	}
	if filter.Suspended != nil {
		query = query.Where("suspended = ?", *filter.Suspended)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var models []profileModel
	if err := query.Order("username ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]ports.Profile, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) SetSuspended(ctx context.Context, userID string, suspended bool, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{"suspended": suspended, "updated_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProfileNotFound
	}
	return nil
}

func (r *Repository) AdjustTrustScore(ctx context.Context, userID string, delta float64, now time.Time) (ports.Profile, error) {
	result := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"trust_score": gorm.Expr("GREATEST(trust_score + ?, 0)", delta),
			"updated_at":  now,
		})
	if result.Error != nil {
		return ports.Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Profile{}, domainerrors.ErrProfileNotFound
	}
	return r.GetProfile(ctx, userID)
}

func (r *Repository) UpsertSocialAccount(ctx context.Context, account ports.SocialAccount) error {
	model := socialAccountModel{
		AccountID: account.AccountID,
		UserID:    account.UserID,
		Platform:  account.Platform,
		Handle:    account.Handle,
		Followers: account.Followers,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (r *Repository) ListSocialAccountsByUsers(ctx context.Context, userIDs []string) ([]ports.SocialAccount, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var models []socialAccountModel
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("user_id ASC, platform ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.SocialAccount, 0, len(models))
	for _, model := range models {
		items = append(items, ports.SocialAccount{
			AccountID: model.AccountID,
			UserID:    model.UserID,
			Platform:  model.Platform,
			Handle:    model.Handle,
			Followers: model.Followers,
		})
	}
	return items, nil
}

func (r *Repository) CreateDemographicSubmission(ctx context.Context, submission ports.DemographicSubmission) error {
	model, err := demographicFromEntity(submission)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetDemographicSubmission(ctx context.Context, submissionID string) (ports.DemographicSubmission, error) {
	var model demographicModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.DemographicSubmission{}, domainerrors.ErrSubmissionNotFound
	}
	if err != nil {
		return ports.DemographicSubmission{}, err
	}
	return model.toEntity()
}

func (r *Repository) UpdateDemographicSubmission(ctx context.Context, submission ports.DemographicSubmission) error {
	model, err := demographicFromEntity(submission)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&demographicModel{}).
		Where("submission_id = ?", model.SubmissionID).
		Updates(map[string]any{
			"status":      model.Status,
			"reviewed_by": model.ReviewedBy,
			"notes":       model.Notes,
			"reviewed_at": model.ReviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) ListDemographicSubmissions(ctx context.Context, status ports.DemographicStatus) ([]ports.DemographicSubmission, error) {
	query := r.db.WithContext(ctx).Model(&demographicModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var models []demographicModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]ports.DemographicSubmission, 0, len(models))
	for _, model := range models {
		item, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func profileFromEntity(profile ports.Profile) profileModel {
	return profileModel{
		UserID:        profile.UserID,
		Username:      profile.Username,
		FullName:      profile.FullName,
		Email:         profile.Email,
		Country:       profile.Country,
		Role:          string(profile.Role),
		TrustScore:    profile.TrustScore,
		TotalViews:    profile.TotalViews,
		TotalEarnings: profile.TotalEarnings,
		Suspended:     profile.Suspended,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}

func (m profileModel) toEntity() ports.Profile {
	return ports.Profile{
		UserID:        m.UserID,
		Username:      m.Username,
		FullName:      m.FullName,
		Email:         m.Email,
		Country:       m.Country,
		Role:          ports.AccountRole(m.Role),
		TrustScore:    m.TrustScore,
		TotalViews:    m.TotalViews,
		TotalEarnings: m.TotalEarnings,
		Suspended:     m.Suspended,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func demographicFromEntity(submission ports.DemographicSubmission) (demographicModel, error) {
	splits, err := json.Marshal(submission.AudienceSplits)
	if err != nil {
		return demographicModel{}, err
	}
	return demographicModel{
		SubmissionID: submission.SubmissionID,
		UserID:       submission.UserID,
		Platform:     submission.Platform,
		Splits:       string(splits),
		Status:       string(submission.Status),
		ReviewedBy:   submission.ReviewedBy,
		Notes:        submission.Notes,
		CreatedAt:    submission.CreatedAt,
		ReviewedAt:   submission.ReviewedAt,
	}, nil
}

func (m demographicModel) toEntity() (ports.DemographicSubmission, error) {
	splits := make(map[string]float64)
	if m.Splits != "" {
		if err := json.Unmarshal([]byte(m.Splits), &splits); err != nil {
			return ports.DemographicSubmission{}, err
		}
	}
	return ports.DemographicSubmission{
		SubmissionID:   m.SubmissionID,
		UserID:         m.UserID,
		Platform:       m.Platform,
		AudienceSplits: splits,
		Status:         ports.DemographicStatus(m.Status),
		ReviewedBy:     m.ReviewedBy,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		ReviewedAt:     m.ReviewedAt,
	}, nil
}
