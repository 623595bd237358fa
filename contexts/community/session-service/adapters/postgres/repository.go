package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/community/session-service/domain/errors"
	"clipcast/contexts/community/session-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("postgres repository requires a non-nil db")
	}
	if err := db.AutoMigrate(&sessionModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type sessionModel struct {
	SessionID      string     `gorm:"column:session_id;primaryKey"`
	BuyerID        string     `gorm:"column:buyer_id;index"`
	SellerID       string     `gorm:"column:seller_id;index"`
	Units          int        `gorm:"column:units"`
	ScheduledAt    time.Time  `gorm:"column:scheduled_at;index"`
	ScheduledEndAt *time.Time `gorm:"column:scheduled_end_at"`
	Status         string     `gorm:"column:status;index"`
	ConfirmedAt    *time.Time `gorm:"column:confirmed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func (r *Repository) CreateSession(ctx context.Context, session ports.Session) error {
	model := fromEntity(session)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (ports.Session, error) {
	var model sessionModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Session{}, domainerrors.ErrSessionNotFound
	}
	if err != nil {
		return ports.Session{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdateSession(ctx context.Context, session ports.Session) error {
	result := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("session_id = ?", session.SessionID).
		Updates(map[string]any{
			"status":           string(session.Status),
			"scheduled_end_at": session.ScheduledEndAt,
			"confirmed_at":     session.ConfirmedAt,
			"updated_at":       session.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) ListSessionsForUser(ctx context.Context, userID string) ([]ports.Session, error) {
	var models []sessionModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("scheduled_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

func (r *Repository) ListOverdueRequested(ctx context.Context, before time.Time) ([]ports.Session, error) {
	var models []sessionModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at < ?", string(ports.StatusRequested), before).
		Order("scheduled_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

func fromEntity(session ports.Session) sessionModel {
	return sessionModel{
		SessionID:      session.SessionID,
		BuyerID:        session.BuyerID,
		SellerID:       session.SellerID,
		Units:          session.Units,
		ScheduledAt:    session.ScheduledAt,
		ScheduledEndAt: session.ScheduledEndAt,
		Status:         string(session.Status),
		ConfirmedAt:    session.ConfirmedAt,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
}

func (m sessionModel) toEntity() ports.Session {
	return ports.Session{
		SessionID:      m.SessionID,
		BuyerID:        m.BuyerID,
		SellerID:       m.SellerID,
		Units:          m.Units,
		ScheduledAt:    m.ScheduledAt,
		ScheduledEndAt: m.ScheduledEndAt,
		Status:         ports.SessionStatus(m.Status),
		ConfirmedAt:    m.ConfirmedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toEntities(models []sessionModel) []ports.Session {
	items := make([]ports.Session, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items
}
