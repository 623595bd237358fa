package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	domainerrors "clipcast/contexts/finance/wallet-service/domain/errors"
	"clipcast/contexts/finance/wallet-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
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
	if err := db.AutoMigrate(&walletModel{}, &transactionModel{}, &payoutSettingsModel{}); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

type walletModel struct {
	CreatorID   string    `gorm:"column:creator_id;primaryKey"`
	Balance     float64   `gorm:"column:balance"`
	TotalEarned float64   `gorm:"column:total_earned"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (walletModel) TableName() string { return "wallets" }

type transactionModel struct {
	TransactionID  string    `gorm:"column:transaction_id;primaryKey"`
	CreatorID      string    `gorm:"column:creator_id;index;uniqueIndex:idx_creator_idem"`
	Type           string    `gorm:"column:type"`
	Amount         float64   `gorm:"column:amount"`
	Description    string    `gorm:"column:description"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;uniqueIndex:idx_creator_idem"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (transactionModel) TableName() string { return "wallet_transactions" }

type payoutSettingsModel struct {
	CreatorID     string    `gorm:"column:creator_id;primaryKey"`
	HoldingDays   int       `gorm:"column:holding_days"`
	MinimumAmount float64   `gorm:"column:minimum_amount"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (payoutSettingsModel) TableName() string { return "payout_settings" }

func (r *Repository) GetWallet(ctx context.Context, creatorID string) (ports.Wallet, error) {
	var model walletModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Wallet{}, domainerrors.ErrWalletNotFound
	}
	if err != nil {
		return ports.Wallet{}, err
	}
	return ports.Wallet{
		CreatorID:   model.CreatorID,
		Balance:     model.Balance,
		TotalEarned: model.TotalEarned,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (r *Repository) SaveWallet(ctx context.Context, wallet ports.Wallet) error {
	model := walletModel{
		CreatorID:   wallet.CreatorID,
		Balance:     wallet.Balance,
		TotalEarned: wallet.TotalEarned,
		UpdatedAt:   wallet.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creator_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (r *Repository) CreateTransaction(ctx context.Context, transaction ports.Transaction) error {
	model := transactionModel{
		TransactionID: transaction.TransactionID,
		CreatorID:     transaction.CreatorID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount,
		Description:   transaction.Description,
		CreatedAt:     transaction.CreatedAt,
	}
	if transaction.IdempotencyKey != "" {
		key := transaction.IdempotencyKey
		model.IdempotencyKey = &key
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err) {
		return domainerrors.ErrInvalidRequest
	}
	return err
}

func (r *Repository) GetTransactionByKey(ctx context.Context, creatorID, idempotencyKey string) (ports.Transaction, error) {
	var model transactionModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND idempotency_key = ?", creatorID, idempotencyKey).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Transaction{}, domainerrors.ErrTransactionNotFound
	}
	if err != nil {
		return ports.Transaction{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListTransactions(ctx context.Context, creatorID string) ([]ports.Transaction, error) {
	var models []transactionModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.Transaction, 0, len(models))
	for _, model := range models {
		items = append(items, model.toEntity())
	}
	return items, nil
}

func (r *Repository) GetPayoutSettings(ctx context.Context, creatorID string) (ports.PayoutSettings, error) {
	var model payoutSettingsModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.PayoutSettings{}, domainerrors.ErrSettingsNotFound
	}
	if err != nil {
		return ports.PayoutSettings{}, err
	}
	return ports.PayoutSettings{
		CreatorID:     model.CreatorID,
		HoldingDays:   model.HoldingDays,
		MinimumAmount: model.MinimumAmount,
		UpdatedAt:     model.UpdatedAt,
	}, nil
}

func (r *Repository) SavePayoutSettings(ctx context.Context, settings ports.PayoutSettings) error {
	model := payoutSettingsModel{
		CreatorID:     settings.CreatorID,
		HoldingDays:   settings.HoldingDays,
		MinimumAmount: settings.MinimumAmount,
		UpdatedAt:     settings.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creator_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (m transactionModel) toEntity() ports.Transaction {
	item := ports.Transaction{
		TransactionID: m.TransactionID,
		CreatorID:     m.CreatorID,
		Type:          ports.TransactionType(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
	if m.IdempotencyKey != nil {
		item.IdempotencyKey = *m.IdempotencyKey
	}
	return item
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
