package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/community/messaging-service/domain/errors"
	"clipcast/contexts/community/messaging-service/ports"

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
	if err := db.AutoMigrate(&conversationModel{}, &messageModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type conversationModel struct {
	ConversationID string    `gorm:"column:conversation_id;primaryKey"`
	BrandID        string    `gorm:"column:brand_id;index;uniqueIndex:idx_brand_creator"`
	CreatorID      string    `gorm:"column:creator_id;index;uniqueIndex:idx_brand_creator"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	LastMessageAt  time.Time `gorm:"column:last_message_at;index"`
}

func (conversationModel) TableName() string { return "conversations" }

type messageModel struct {
	MessageID      string    `gorm:"column:message_id;primaryKey"`
	ConversationID string    `gorm:"column:conversation_id;index"`
	SenderType     string    `gorm:"column:sender_type"`
	SenderID       string    `gorm:"column:sender_id"`
	Body           string    `gorm:"column:body"`
	Read           bool      `gorm:"column:read"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
}

func (messageModel) TableName() string { return "messages" }

func (r *Repository) CreateConversation(ctx context.Context, conversation ports.Conversation) error {
	model := conversationModel{
		ConversationID: conversation.ConversationID,
		BrandID:        conversation.BrandID,
		CreatorID:      conversation.CreatorID,
		CreatedAt:      conversation.CreatedAt.UTC(),
		LastMessageAt:  conversation.LastMessageAt.UTC(),
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err) {
		return domainerrors.ErrInvalidRequest
	}
	return err
}

func (r *Repository) GetConversation(ctx context.Context, conversationID string) (ports.Conversation, error) {
	var model conversationModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", strings.TrimSpace(conversationID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Conversation{}, domainerrors.ErrConversationNotFound
	}
	if err != nil {
		return ports.Conversation{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) GetConversationByPair(ctx context.Context, brandID, creatorID string) (ports.Conversation, error) {
	var model conversationModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND creator_id = ?", strings.TrimSpace(brandID), strings.TrimSpace(creatorID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Conversation{}, domainerrors.ErrConversationNotFound
	}
	if err != nil {
		return ports.Conversation{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListConversationsForBrand(ctx context.Context, brandID string) ([]ports.Conversation, error) {
	return r.listConversations(ctx, "brand_id = ?", brandID)
}

func (r *Repository) ListConversationsForCreator(ctx context.Context, creatorID string) ([]ports.Conversation, error) {
	return r.listConversations(ctx, "creator_id = ?", creatorID)
}

func (r *Repository) listConversations(ctx context.Context, where string, arg string) ([]ports.Conversation, error) {
	var models []conversationModel
	err := r.db.WithContext(ctx).
		Where(where, strings.TrimSpace(arg)).
		Order("last_message_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Conversation, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) TouchConversation(ctx context.Context, conversationID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&conversationModel{}).
		Where("conversation_id = ?", conversationID).
		Update("last_message_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConversationNotFound
	}
	return nil
}

func (r *Repository) CreateMessage(ctx context.Context, message ports.Message) error {
	model := messageModel{
		MessageID:      message.MessageID,
		ConversationID: message.ConversationID,
		SenderType:     string(message.SenderType),
		SenderID:       message.SenderID,
		Body:           message.Body,
		Read:           message.Read,
		CreatedAt:      message.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) ListMessages(ctx context.Context, conversationID string) ([]ports.Message, error) {
	var models []messageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", strings.TrimSpace(conversationID)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Message, 0, len(models))
	for _, model := range models {
		items = append(items, ports.Message{
			MessageID:      model.MessageID,
			ConversationID: model.ConversationID,
			SenderType:     ports.SenderType(model.SenderType),
			SenderID:       model.SenderID,
			Body:           model.Body,
			Read:           model.Read,
			CreatedAt:      model.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkMessagesRead(ctx context.Context, conversationID string, sender ports.SenderType) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("conversation_id = ? AND sender_type = ? AND read = ?", conversationID, string(sender), false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (m conversationModel) toEntity() ports.Conversation {
	return ports.Conversation{
		ConversationID: m.ConversationID,
		BrandID:        m.BrandID,
		CreatorID:      m.CreatorID,
		CreatedAt:      m.CreatedAt,
		LastMessageAt:  m.LastMessageAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
