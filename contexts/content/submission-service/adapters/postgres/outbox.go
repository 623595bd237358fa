package postgresadapter

import (
	"context"
	"time"

	domainerrors "clipcast/contexts/content/submission-service/domain/errors"
	"clipcast/contexts/content/submission-service/ports"
)

type outboxModel struct {
	OutboxID  string     `gorm:"column:outbox_id;primaryKey"`
	Topic     string     `gorm:"column:topic"`
	Payload   []byte     `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	SentAt    *time.Time `gorm:"column:sent_at;index"`
}

func (outboxModel) TableName() string {
	return "submission_outbox"
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:  message.OutboxID,
		Topic:     message.Topic,
		Payload:   message.Payload,
		CreatedAt: message.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			Topic:     row.Topic,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
			SentAt:    row.SentAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ? AND sent_at IS NULL", outboxID).
		Update("sent_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}
