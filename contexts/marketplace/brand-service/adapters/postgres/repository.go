package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/marketplace/brand-service/domain/errors"
	"clipcast/contexts/marketplace/brand-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("postgres repository requires a non-nil db")
	}
	if err := db.AutoMigrate(&brandModel{}, &memberModel{}, &inviteModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type brandModel struct {
	BrandID               string     `gorm:"column:brand_id;primaryKey"`
	Name                  string     `gorm:"column:name"`
	Slug                  string     `gorm:"column:slug;uniqueIndex"`
	LogoURL               string     `gorm:"column:logo_url"`
	BannerURL             string     `gorm:"column:banner_url"`
	Verified              bool       `gorm:"column:verified"`
	SubscriptionStatus    string     `gorm:"column:subscription_status"`
	SubscriptionPlan      string     `gorm:"column:subscription_plan"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`
	PayoutHoldingDays     int        `gorm:"column:payout_holding_days"`
	PayoutMinimumAmount   float64    `gorm:"column:payout_minimum_amount"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (brandModel) TableName() string { return "brands" }

type memberModel struct {
	MemberID  string    `gorm:"column:member_id;primaryKey"`
	BrandID   string    `gorm:"column:brand_id;index;uniqueIndex:idx_brand_user"`
	UserID    string    `gorm:"column:user_id;index;uniqueIndex:idx_brand_user"`
	Role      string    `gorm:"column:role"`
	InvitedBy string    `gorm:"column:invited_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (memberModel) TableName() string { return "brand_members" }

type inviteModel struct {
	InviteID  string     `gorm:"column:invite_id;primaryKey"`
	BrandID   string     `gorm:"column:brand_id;index"`
	TokenHash string     `gorm:"column:token_hash"`
	Role      string     `gorm:"column:role"`
	CreatedBy string     `gorm:"column:created_by"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	ExpiresAt time.Time  `gorm:"column:expires_at;index"`
	UsedAt    *time.Time `gorm:"column:used_at"`
}

func (inviteModel) TableName() string { return "brand_invites" }

func (r *Repository) CreateBrand(ctx context.Context, brand ports.Brand, owner ports.Member) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(brandToModel(brand)).Error; err != nil {
			return err
		}
		return tx.Create(memberToModel(owner)).Error
	})
	if isUniqueViolation(err) {
		return domainerrors.ErrSlugTaken
	}
	return err
}

func (r *Repository) GetBrand(ctx context.Context, brandID string) (ports.Brand, error) {
	var model brandModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Brand{}, domainerrors.ErrBrandNotFound
	}
	if err != nil {
		return ports.Brand{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) GetBrandBySlug(ctx context.Context, slug string) (ports.Brand, error) {
	var model brandModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Brand{}, domainerrors.ErrBrandNotFound
	}
	if err != nil {
		return ports.Brand{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdateBrand(ctx context.Context, input ports.UpdateBrandInput, now time.Time) (ports.Brand, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}
	if input.BannerURL != nil {
		updates["banner_url"] = *input.BannerURL
	}
	if input.PayoutHoldingDays != nil {
		updates["payout_holding_days"] = *input.PayoutHoldingDays
	}
	if input.PayoutMinimumAmount != nil {
		updates["payout_minimum_amount"] = *input.PayoutMinimumAmount
	}

	result := r.db.WithContext(ctx).
		Model(&brandModel{}).
		Where("brand_id = ?", input.BrandID).
		Updates(updates)
	if result.Error != nil {
		return ports.Brand{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Brand{}, domainerrors.ErrBrandNotFound
	}
	return r.GetBrand(ctx, input.BrandID)
}

func (r *Repository) ListBrandsForUser(ctx context.Context, userID string) ([]ports.Brand, error) {
	var models []brandModel
	err := r.db.WithContext(ctx).
		Joins("JOIN brand_members ON brand_members.brand_id = brands.brand_id").
		Where("brand_members.user_id = ?", strings.TrimSpace(userID)).
		Order("brands.created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Brand, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) AddMember(ctx context.Context, member ports.Member) error {
	err := r.db.WithContext(ctx).Create(memberToModel(member)).Error
	if isUniqueViolation(err) {
		return domainerrors.ErrMemberAlreadyExists
	}
	return err
}

func (r *Repository) RemoveMember(ctx context.Context, brandID string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("brand_id = ? AND user_id = ?", brandID, userID).
		Delete(&memberModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

func (r *Repository) UpdateMemberRole(ctx context.Context, brandID string, userID string, role ports.Role, now time.Time) (ports.Member, error) {
	result := r.db.WithContext(ctx).
		Model(&memberModel{}).
		Where("brand_id = ? AND user_id = ?", brandID, userID).
		Update("role", string(role))
	if result.Error != nil {
		return ports.Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Member{}, domainerrors.ErrMemberNotFound
	}
	return r.GetMember(ctx, brandID, userID)
}

func (r *Repository) ListMembers(ctx context.Context, brandID string) ([]ports.Member, error) {
	var models []memberModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Member, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) GetMember(ctx context.Context, brandID string, userID string) (ports.Member, error) {
	var model memberModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND user_id = ?", strings.TrimSpace(brandID), strings.TrimSpace(userID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Member{}, domainerrors.ErrMemberNotFound
	}
	if err != nil {
		return ports.Member{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) CreateInvite(ctx context.Context, invite ports.Invite) error {
	model := inviteModel{
		InviteID:  invite.InviteID,
		BrandID:   invite.BrandID,
		TokenHash: invite.TokenHash,
		Role:      string(invite.Role),
		CreatedBy: invite.CreatedBy,
		CreatedAt: invite.CreatedAt.UTC(),
		ExpiresAt: invite.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) ListOpenInvites(ctx context.Context, brandID string, now time.Time) ([]ports.Invite, error) {
	var models []inviteModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND used_at IS NULL AND expires_at > ?", brandID, now.UTC()).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Invite, 0, len(models))
	for _, model := range models {
		items = append(items, ports.Invite{
			InviteID:  model.InviteID,
			BrandID:   model.BrandID,
			TokenHash: model.TokenHash,
			Role:      ports.Role(model.Role),
			CreatedBy: model.CreatedBy,
			CreatedAt: model.CreatedAt,
			ExpiresAt: model.ExpiresAt,
			UsedAt:    model.UsedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkInviteUsed(ctx context.Context, inviteID string, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&inviteModel{}).
		Where("invite_id = ? AND used_at IS NULL", inviteID).
		Update("used_at", now.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInviteInvalid
	}
	return nil
}

func brandToModel(brand ports.Brand) *brandModel {
	return &brandModel{
		BrandID:               brand.BrandID,
		Name:                  brand.Name,
		Slug:                  brand.Slug,
		LogoURL:               brand.LogoURL,
		BannerURL:             brand.BannerURL,
		Verified:              brand.Verified,
		SubscriptionStatus:    string(brand.SubscriptionStatus),
		SubscriptionPlan:      brand.SubscriptionPlan,
		SubscriptionExpiresAt: brand.SubscriptionExpiresAt,
		PayoutHoldingDays:     brand.PayoutHoldingDays,
		PayoutMinimumAmount:   brand.PayoutMinimumAmount,
		CreatedAt:             brand.CreatedAt.UTC(),
		UpdatedAt:             brand.UpdatedAt.UTC(),
	}
}

func memberToModel(member ports.Member) *memberModel {
	return &memberModel{
		MemberID:  member.MemberID,
		BrandID:   member.BrandID,
		UserID:    member.UserID,
		Role:      string(member.Role),
		InvitedBy: member.InvitedBy,
		CreatedAt: member.CreatedAt.UTC(),
	}
}

func (m brandModel) toEntity() ports.Brand {
	return ports.Brand{
		BrandID:               m.BrandID,
		Name:                  m.Name,
		Slug:                  m.Slug,
		LogoURL:               m.LogoURL,
		BannerURL:             m.BannerURL,
		Verified:              m.Verified,
		SubscriptionStatus:    ports.SubscriptionStatus(m.SubscriptionStatus),
		SubscriptionPlan:      m.SubscriptionPlan,
		SubscriptionExpiresAt: m.SubscriptionExpiresAt,
		PayoutHoldingDays:     m.PayoutHoldingDays,
		PayoutMinimumAmount:   m.PayoutMinimumAmount,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func (m memberModel) toEntity() ports.Member {
	return ports.Member{
		MemberID:  m.MemberID,
		BrandID:   m.BrandID,
		UserID:    m.UserID,
		Role:      ports.Role(m.Role),
		InvitedBy: m.InvitedBy,
		CreatedAt: m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
