package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSettingsNotFound    = errors.New("payout settings not found")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrPayoutCooldown      = errors.New("payout settings were changed recently")
)

// CooldownError carries how long until payout settings may change again.
// errors.Is(err, ErrPayoutCooldown) matches it.
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("payout settings may change again in %d hours", e.RemainingHours())
}

func (e CooldownError) Is(target error) bool {
	return target == ErrPayoutCooldown
}

func (e CooldownError) RemainingHours() int {
	hours := int(e.Remaining.Hours())
	if e.Remaining > time.Duration(hours)*time.Hour {
		hours++
	}
	return hours
}
