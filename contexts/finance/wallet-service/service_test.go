package walletservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"clipcast/contexts/finance/wallet-service/adapters/memory"
	domainerrors "clipcast/contexts/finance/wallet-service/domain/errors"
)

type stubAdmins struct {
	admins map[string]bool
}

func (s stubAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return s.admins[userID], nil
}

func testAdmins() stubAdmins {
	return stubAdmins{admins: map[string]bool{"admin_1": true}}
}

func TestAddToWalletIsIdempotent(t *testing.T) {
	module := NewInMemoryModule(nil, nil, testAdmins(), nil)
	ctx := context.Background()

	first, err := module.Service.AddToWallet(ctx, "admin_1", "creator_1", 120.50, "payout_sub_1", "video payout")
	if err != nil {
		t.Fatalf("first credit: %v", err)
	}
	second, err := module.Service.AddToWallet(ctx, "admin_1", "creator_1", 120.50, "payout_sub_1", "video payout")
	if err != nil {
		t.Fatalf("retried credit: %v", err)
	}
	if first.TransactionID != second.TransactionID {
		t.Fatalf("retry created a new transaction: %q vs %q", first.TransactionID, second.TransactionID)
	}

	wallet, err := module.Service.GetWallet(ctx, "creator_1", "creator_1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if wallet.Balance != 120.50 {
		t.Fatalf("balance = %v, want 120.50 after duplicate credit", wallet.Balance)
	}
	if wallet.TotalEarned != 120.50 {
		t.Fatalf("total earned = %v, want 120.50", wallet.TotalEarned)
	}

	transactions, err := module.Service.ListTransactions(ctx, "creator_1", "creator_1")
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(transactions))
	}
}

func TestDebitChecksBalance(t *testing.T) {
	module := NewInMemoryModule(nil, nil, testAdmins(), nil)
	ctx := context.Background()

	if _, err := module.Service.AddToWallet(ctx, "admin_1", "creator_1", 50, "k1", ""); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := module.Service.Debit(ctx, "creator_1", "creator_1", 80, "withdrawal"); !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := module.Service.Debit(ctx, "creator_1", "creator_1", 30, "withdrawal"); err != nil {
		t.Fatalf("debit: %v", err)
	}

	wallet, err := module.Service.GetWallet(ctx, "creator_1", "creator_1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if wallet.Balance != 20 {
		t.Fatalf("balance = %v, want 20", wallet.Balance)
	}
	// Debits never reduce lifetime earnings.
	if wallet.TotalEarned != 50 {
		t.Fatalf("total earned = %v, want 50", wallet.TotalEarned)
	}
}

func TestWalletAccessIsOwnerOnly(t *testing.T) {
	module := NewInMemoryModule(nil, nil, testAdmins(), nil)
	ctx := context.Background()

	if _, err := module.Service.GetWallet(ctx, "creator_2", "creator_1"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := module.Service.ListTransactions(ctx, "creator_2", "creator_1"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPayoutSettingsCooldown(t *testing.T) {
	gate := memory.NewCooldownGate()
	current := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	gate.SetNow(func() time.Time { return current })

	module := NewInMemoryModule(nil, gate, testAdmins(), nil)
	ctx := context.Background()

	settings, err := module.Service.UpdatePayoutSettings(ctx, "creator_1", "creator_1", 7, 50)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if settings.HoldingDays != 7 || settings.MinimumAmount != 50 {
		t.Fatalf("settings not applied: %+v", settings)
	}

	// Second attempt 2 hours later must fail with the remaining window and
	// leave the stored settings untouched.
	current = current.Add(2 * time.Hour)
	_, err = module.Service.UpdatePayoutSettings(ctx, "creator_1", "creator_1", 14, 100)
	if !errors.Is(err, domainerrors.ErrPayoutCooldown) {
		t.Fatalf("expected ErrPayoutCooldown, got %v", err)
	}
	var cooldownErr domainerrors.CooldownError
	if !errors.As(err, &cooldownErr) {
		t.Fatalf("expected CooldownError, got %T", err)
	}
	if got := cooldownErr.RemainingHours(); got != 22 {
		t.Fatalf("remaining hours = %d, want 22", got)
	}

	stored, err := module.Service.GetPayoutSettings(ctx, "creator_1", "creator_1")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if stored.HoldingDays != 7 || stored.MinimumAmount != 50 {
		t.Fatalf("settings changed during cooldown: %+v", stored)
	}

	// Past the window the update goes through.
	current = current.Add(23 * time.Hour)
	updated, err := module.Service.UpdatePayoutSettings(ctx, "creator_1", "creator_1", 14, 100)
	if err != nil {
		t.Fatalf("update after window: %v", err)
	}
	if updated.HoldingDays != 14 {
		t.Fatalf("holding days = %d, want 14", updated.HoldingDays)
	}
}

func TestAddToWalletRequiresAdmin(t *testing.T) {
	module := NewInMemoryModule(nil, nil, testAdmins(), nil)
	ctx := context.Background()

	// The creator crediting their own wallet is still refused.
	if _, err := module.Service.AddToWallet(ctx, "creator_1", "creator_1", 500, "k1", ""); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin credit, got %v", err)
	}

	wallet, err := module.Service.GetWallet(ctx, "creator_1", "creator_1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if wallet.Balance != 0 {
		t.Fatalf("balance = %v, want 0 after refused credit", wallet.Balance)
	}

	if _, err := module.Service.AddToWallet(ctx, "admin_1", "creator_1", 500, "k1", ""); err != nil {
		t.Fatalf("admin credit: %v", err)
	}
}
