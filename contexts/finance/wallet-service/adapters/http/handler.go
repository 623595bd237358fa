package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/finance/wallet-service/application"
	"clipcast/contexts/finance/wallet-service/ports"
	httptransport "clipcast/contexts/finance/wallet-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetWalletHandler(ctx context.Context, userID string) (httptransport.WalletResponse, error) {
	wallet, err := h.Service.GetWallet(ctx, userID, userID)
	if err != nil {
		return httptransport.WalletResponse{}, err
	}
	return httptransport.WalletResponse{Wallet: mapWallet(wallet)}, nil
}

// AddToWalletHandler serves the admin credit endpoint. The idempotency key
// comes from the Idempotency-Key header.
func (h Handler) AddToWalletHandler(ctx context.Context, actorID, idempotencyKey string, req httptransport.AddToWalletRequest) (httptransport.TransactionResponse, error) {
	transaction, err := h.Service.AddToWallet(ctx, actorID, req.CreatorID, req.Amount, idempotencyKey, req.Description)
	if err != nil {
		return httptransport.TransactionResponse{}, err
	}
	return httptransport.TransactionResponse{Transaction: mapTransaction(transaction)}, nil
}

func (h Handler) DebitHandler(ctx context.Context, userID string, req httptransport.DebitRequest) (httptransport.TransactionResponse, error) {
	transaction, err := h.Service.Debit(ctx, userID, userID, req.Amount, req.Description)
	if err != nil {
		return httptransport.TransactionResponse{}, err
	}
	return httptransport.TransactionResponse{Transaction: mapTransaction(transaction)}, nil
}

func (h Handler) ListTransactionsHandler(ctx context.Context, userID string) (httptransport.ListTransactionsResponse, error) {
	items, err := h.Service.ListTransactions(ctx, userID, userID)
	if err != nil {
		return httptransport.ListTransactionsResponse{}, err
	}
	result := make([]httptransport.TransactionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapTransaction(item))
	}
	return httptransport.ListTransactionsResponse{Items: result}, nil
}

func (h Handler) GetPayoutSettingsHandler(ctx context.Context, userID string) (httptransport.PayoutSettingsResponse, error) {
	settings, err := h.Service.GetPayoutSettings(ctx, userID, userID)
	if err != nil {
		return httptransport.PayoutSettingsResponse{}, err
	}
	return httptransport.PayoutSettingsResponse{Settings: mapSettings(settings)}, nil
}

func (h Handler) UpdatePayoutSettingsHandler(ctx context.Context, userID string, req httptransport.UpdatePayoutSettingsRequest) (httptransport.PayoutSettingsResponse, error) {
	settings, err := h.Service.UpdatePayoutSettings(ctx, userID, userID, req.HoldingDays, req.MinimumAmount)
	if err != nil {
		return httptransport.PayoutSettingsResponse{}, err
	}
	return httptransport.PayoutSettingsResponse{Settings: mapSettings(settings)}, nil
}

func mapWallet(item ports.Wallet) httptransport.WalletDTO {
	return httptransport.WalletDTO{
		CreatorID:   item.CreatorID,
		Balance:     item.Balance,
		TotalEarned: item.TotalEarned,
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapTransaction(item ports.Transaction) httptransport.TransactionDTO {
	return httptransport.TransactionDTO{
		TransactionID: item.TransactionID,
		Type:          string(item.Type),
		Amount:        item.Amount,
		Description:   item.Description,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapSettings(item ports.PayoutSettings) httptransport.PayoutSettingsDTO {
	return httptransport.PayoutSettingsDTO{
		HoldingDays:   item.HoldingDays,
		MinimumAmount: item.MinimumAmount,
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
