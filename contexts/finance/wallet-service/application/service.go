package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/finance/wallet-service/domain/errors"
	"clipcast/contexts/finance/wallet-service/ports"
)

// payoutSettingsWindow is the default minimum gap between payout-settings
// changes, enforced server-side.
const payoutSettingsWindow = 24 * time.Hour

type Service struct {
	Repo      ports.Repository
	Cooldowns ports.Cooldown
	Admins    ports.AdminGate
	// CooldownWindow overrides payoutSettingsWindow when positive.
	CooldownWindow time.Duration
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	Logger         *slog.Logger
}

func (s Service) cooldownWindow() time.Duration {
	if s.CooldownWindow > 0 {
		return s.CooldownWindow
	}
	return payoutSettingsWindow
}

// GetWallet returns the creator's wallet, materializing a zero wallet on
// first access.
func (s Service) GetWallet(ctx context.Context, actorID, creatorID string) (ports.Wallet, error) {
	creatorID = strings.TrimSpace(creatorID)
	if err := requireSelf(actorID, creatorID); err != nil {
		return ports.Wallet{}, err
	}
	wallet, err := s.Repo.GetWallet(ctx, creatorID)
	if errors.Is(err, domainerrors.ErrWalletNotFound) {
		return ports.Wallet{CreatorID: creatorID, UpdatedAt: s.now()}, nil
	}
	return wallet, err
}

// AddToWallet credits the wallet on behalf of a platform admin. A repeated
// idempotency key returns the original transaction without crediting again.
func (s Service) AddToWallet(ctx context.Context, actorID, creatorID string, amount float64, idempotencyKey, description string) (ports.Transaction, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return ports.Transaction{}, err
	}
	creatorID = strings.TrimSpace(creatorID)
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if creatorID == "" || idempotencyKey == "" || amount <= 0 {
		return ports.Transaction{}, domainerrors.ErrInvalidRequest
	}

	existing, err := s.Repo.GetTransactionByKey(ctx, creatorID, idempotencyKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrTransactionNotFound) {
		return ports.Transaction{}, err
	}

	transactionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Transaction{}, err
	}
	now := s.now()
	transaction := ports.Transaction{
		TransactionID:  transactionID,
		CreatorID:      creatorID,
		Type:           ports.TransactionCredit,
		Amount:         amount,
		Description:    strings.TrimSpace(description),
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
	}
	if err := s.Repo.CreateTransaction(ctx, transaction); err != nil {
		return ports.Transaction{}, err
	}

	wallet, err := s.Repo.GetWallet(ctx, creatorID)
	if errors.Is(err, domainerrors.ErrWalletNotFound) {
		wallet = ports.Wallet{CreatorID: creatorID}
	} else if err != nil {
		return ports.Transaction{}, err
	}
	wallet.Balance += amount
	wallet.TotalEarned += amount
	wallet.UpdatedAt = now
	if err := s.Repo.SaveWallet(ctx, wallet); err != nil {
		return ports.Transaction{}, err
	}

	resolveLogger(s.Logger).Info("wallet credited",
		"event", "wallet_credited",
		"module", "finance/wallet-service",
		"layer", "application",
		"creator_id", creatorID,
		"amount", amount,
	)
	return transaction, nil
}

// Debit withdraws from the wallet balance. Total earned is untouched.
func (s Service) Debit(ctx context.Context, actorID, creatorID string, amount float64, description string) (ports.Transaction, error) {
	creatorID = strings.TrimSpace(creatorID)
	if err := requireSelf(actorID, creatorID); err != nil {
		return ports.Transaction{}, err
	}
	if amount <= 0 {
		return ports.Transaction{}, domainerrors.ErrInvalidRequest
	}

	wallet, err := s.Repo.GetWallet(ctx, creatorID)
	if err != nil {
		return ports.Transaction{}, err
	}
	if wallet.Balance < amount {
		return ports.Transaction{}, domainerrors.ErrInsufficientFunds
	}

	transactionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Transaction{}, err
	}
	now := s.now()
	transaction := ports.Transaction{
		TransactionID: transactionID,
		CreatorID:     creatorID,
		Type:          ports.TransactionDebit,
		Amount:        amount,
		Description:   strings.TrimSpace(description),
		CreatedAt:     now,
	}
	if err := s.Repo.CreateTransaction(ctx, transaction); err != nil {
		return ports.Transaction{}, err
	}
	wallet.Balance -= amount
	wallet.UpdatedAt = now
	if err := s.Repo.SaveWallet(ctx, wallet); err != nil {
		return ports.Transaction{}, err
	}
	return transaction, nil
}

func (s Service) ListTransactions(ctx context.Context, actorID, creatorID string) ([]ports.Transaction, error) {
	creatorID = strings.TrimSpace(creatorID)
	if err := requireSelf(actorID, creatorID); err != nil {
		return nil, err
	}
	return s.Repo.ListTransactions(ctx, creatorID)
}

func (s Service) GetPayoutSettings(ctx context.Context, actorID, creatorID string) (ports.PayoutSettings, error) {
	creatorID = strings.TrimSpace(creatorID)
	if err := requireSelf(actorID, creatorID); err != nil {
		return ports.PayoutSettings{}, err
	}
	settings, err := s.Repo.GetPayoutSettings(ctx, creatorID)
	if errors.Is(err, domainerrors.ErrSettingsNotFound) {
		return ports.PayoutSettings{CreatorID: creatorID}, nil
	}
	return settings, err
}

// UpdatePayoutSettings changes holding days and minimum amount at most once
// per window. A second attempt inside the window fails with the remaining
// time and performs no write.
func (s Service) UpdatePayoutSettings(ctx context.Context, actorID, creatorID string, holdingDays int, minimumAmount float64) (ports.PayoutSettings, error) {
	creatorID = strings.TrimSpace(creatorID)
	if err := requireSelf(actorID, creatorID); err != nil {
		return ports.PayoutSettings{}, err
	}
	if holdingDays < 0 || minimumAmount < 0 {
		return ports.PayoutSettings{}, domainerrors.ErrInvalidRequest
	}

	if s.Cooldowns != nil {
		acquired, remaining, err := s.Cooldowns.AcquireCooldown(ctx, payoutCooldownKey(creatorID), s.cooldownWindow())
		if err != nil {
			return ports.PayoutSettings{}, err
		}
		if !acquired {
			return ports.PayoutSettings{}, domainerrors.CooldownError{Remaining: remaining}
		}
	}

	settings := ports.PayoutSettings{
		CreatorID:     creatorID,
		HoldingDays:   holdingDays,
		MinimumAmount: minimumAmount,
		UpdatedAt:     s.now(),
	}
	if err := s.Repo.SavePayoutSettings(ctx, settings); err != nil {
		if s.Cooldowns != nil {
			_ = s.Cooldowns.ReleaseCooldown(ctx, payoutCooldownKey(creatorID))
		}
		return ports.PayoutSettings{}, err
	}

	resolveLogger(s.Logger).Info("payout settings updated",
		"event", "payout_settings_updated",
		"module", "finance/wallet-service",
		"layer", "application",
		"creator_id", creatorID,
	)
	return settings, nil
}

func payoutCooldownKey(creatorID string) string {
	return "wallet:payout-settings:" + creatorID
}

func requireSelf(actorID, creatorID string) error {
	if strings.TrimSpace(actorID) == "" || strings.TrimSpace(actorID) != creatorID {
		return domainerrors.ErrForbidden
	}
	return nil
}

func (s Service) requireAdmin(ctx context.Context, actorID string) error {
	if s.Admins == nil {
		return domainerrors.ErrForbidden
	}
	isAdmin, err := s.Admins.IsAdmin(ctx, strings.TrimSpace(actorID))
	if err != nil || !isAdmin {
		return domainerrors.ErrForbidden
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
