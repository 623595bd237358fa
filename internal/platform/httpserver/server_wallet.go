package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	walleterrors "clipcast/contexts/finance/wallet-service/domain/errors"
	wallethttp "clipcast/contexts/finance/wallet-service/transport/http"
)

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Wallets.Handler.GetWalletHandler(r.Context(), userID)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddToWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	var req wallethttp.AddToWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Wallets.Handler.AddToWalletHandler(r.Context(), userID, r.Header.Get("Idempotency-Key"), req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDebitWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	var req wallethttp.DebitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Wallets.Handler.DebitHandler(r.Context(), userID, req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Wallets.Handler.ListTransactionsHandler(r.Context(), userID)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPayoutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Wallets.Handler.GetPayoutSettingsHandler(r.Context(), userID)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePayoutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireWalletUser(w, r)
	if !ok {
		return
	}

	var req wallethttp.UpdatePayoutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Wallets.Handler.UpdatePayoutSettingsHandler(r.Context(), userID, req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireWalletUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeWalletError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeWalletDomainError(w http.ResponseWriter, err error) {
	var cooldown walleterrors.CooldownError
	switch {
	case errors.As(err, &cooldown):
		writeJSON(w, http.StatusTooManyRequests, wallethttp.ErrorResponse{
			Code:           "payout_settings_cooldown",
			Message:        err.Error(),
			RemainingHours: cooldown.RemainingHours(),
		})
	case errors.Is(err, walleterrors.ErrPayoutCooldown):
		writeWalletError(w, http.StatusTooManyRequests, "payout_settings_cooldown", err.Error())
	case errors.Is(err, walleterrors.ErrWalletNotFound):
		writeWalletError(w, http.StatusNotFound, "wallet_not_found", err.Error())
	case errors.Is(err, walleterrors.ErrTransactionNotFound):
		writeWalletError(w, http.StatusNotFound, "transaction_not_found", err.Error())
	case errors.Is(err, walleterrors.ErrSettingsNotFound):
		writeWalletError(w, http.StatusNotFound, "settings_not_found", err.Error())
	case errors.Is(err, walleterrors.ErrInsufficientFunds):
		writeWalletError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, walleterrors.ErrForbidden):
		writeWalletError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, walleterrors.ErrInvalidRequest):
		writeWalletError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeWalletError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWalletError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, wallethttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
