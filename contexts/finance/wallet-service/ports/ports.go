package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

type Wallet struct {
	CreatorID   string
	Balance     float64
	TotalEarned float64
	UpdatedAt   time.Time
}

// Transaction is one wallet movement. IdempotencyKey de-duplicates retried
// credits.
type Transaction struct {
	TransactionID  string
	CreatorID      string
	Type           TransactionType
	Amount         float64
	Description    string
	IdempotencyKey string
	CreatedAt      time.Time
}

type PayoutSettings struct {
	CreatorID     string
	HoldingDays   int
	MinimumAmount float64
	UpdatedAt     time.Time
}

type Repository interface {
	GetWallet(ctx context.Context, creatorID string) (Wallet, error)
	SaveWallet(ctx context.Context, wallet Wallet) error

	CreateTransaction(ctx context.Context, transaction Transaction) error
	GetTransactionByKey(ctx context.Context, creatorID, idempotencyKey string) (Transaction, error)
	ListTransactions(ctx context.Context, creatorID string) ([]Transaction, error)

	GetPayoutSettings(ctx context.Context, creatorID string) (PayoutSettings, error)
	SavePayoutSettings(ctx context.Context, settings PayoutSettings) error
}

// Cooldown gates rate-limited mutations. Satisfied by the platform redis
// cache in production.
type Cooldown interface {
	AcquireCooldown(ctx context.Context, key string, window time.Duration) (acquired bool, remaining time.Duration, err error)
	ReleaseCooldown(ctx context.Context, key string) error
}

// AdminGate re-derives platform-admin status server-side; credits are an
// admin-only mutation.
type AdminGate interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
