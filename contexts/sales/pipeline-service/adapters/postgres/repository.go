package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/sales/pipeline-service/domain/errors"
	"clipcast/contexts/sales/pipeline-service/ports"

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

func (r *Repository) CreateDeal(ctx context.Context, deal ports.Deal) error {
	row := dealModelFromEntity(deal)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetDeal(ctx context.Context, dealID string) (ports.Deal, error) {
	var row dealModel
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", strings.TrimSpace(dealID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Deal{}, domainerrors.ErrDealNotFound
		}
		return ports.Deal{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateDeal(ctx context.Context, deal ports.Deal) error {
	row := dealModelFromEntity(deal)
	result := r.db.WithContext(ctx).
		Model(&dealModel{}).
		Where("deal_id = ?", row.DealID).
		Updates(map[string]any{
			"brand_id":      row.BrandID,
			"company":       row.Company,
			"contact_name":  row.ContactName,
			"contact_email": row.ContactEmail,
			"stage":         row.Stage,
			"value":         row.Value,
			"monthly_value": row.MonthlyValue,
			"notes":         row.Notes,
			"won_date":      row.WonDate,
			"updated_at":    row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDealNotFound
	}
	return nil
}

func (r *Repository) DeleteDeal(ctx context.Context, dealID string) error {
	result := r.db.WithContext(ctx).
		Where("deal_id = ?", strings.TrimSpace(dealID)).
		Delete(&dealModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDealNotFound
	}
	return nil
}

func (r *Repository) ListDeals(ctx context.Context, filter ports.DealFilter) ([]ports.Deal, error) {
	tx := r.db.WithContext(ctx).Model(&dealModel{})
	if filter.Stage != "" {
		tx = tx.Where("stage = ?", string(filter.Stage))
	}
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}

	var rows []dealModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Deal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type dealModel struct {
	DealID       string     `gorm:"column:deal_id;primaryKey"`
	BrandID      string     `gorm:"column:brand_id"`
	Company      string     `gorm:"column:company"`
	ContactName  string     `gorm:"column:contact_name"`
	ContactEmail string     `gorm:"column:contact_email"`
	Stage        string     `gorm:"column:stage"`
	Value        float64    `gorm:"column:value"`
	MonthlyValue float64    `gorm:"column:monthly_value"`
	Notes        string     `gorm:"column:notes"`
	WonDate      *time.Time `gorm:"column:won_date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (dealModel) TableName() string {
	return "sales_deals"
}

func dealModelFromEntity(item ports.Deal) dealModel {
	return dealModel{
		DealID:       strings.TrimSpace(item.DealID),
		BrandID:      strings.TrimSpace(item.BrandID),
		Company:      strings.TrimSpace(item.Company),
		ContactName:  strings.TrimSpace(item.ContactName),
		ContactEmail: strings.TrimSpace(item.ContactEmail),
		Stage:        string(item.Stage),
		Value:        item.Value,
		MonthlyValue: item.MonthlyValue,
		Notes:        strings.TrimSpace(item.Notes),
		WonDate:      normalizeOptionalTime(item.WonDate),
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m dealModel) toEntity() ports.Deal {
	return ports.Deal{
		DealID:       m.DealID,
		BrandID:      m.BrandID,
		Company:      m.Company,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		Stage:        ports.DealStage(m.Stage),
		Value:        m.Value,
		MonthlyValue: m.MonthlyValue,
		Notes:        m.Notes,
		WonDate:      normalizeOptionalTime(m.WonDate),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
