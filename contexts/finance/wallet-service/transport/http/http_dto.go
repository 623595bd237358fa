package http

type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	RemainingHours int    `json:"remaining_hours,omitempty"`
}

type WalletDTO struct {
	CreatorID   string  `json:"creator_id"`
	Balance     float64 `json:"balance"`
	TotalEarned float64 `json:"total_earned"`
	UpdatedAt   string  `json:"updated_at"`
}

type WalletResponse struct {
	Wallet WalletDTO `json:"wallet"`
}

type TransactionDTO struct {
	TransactionID string  `json:"transaction_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type TransactionResponse struct {
	Transaction TransactionDTO `json:"transaction"`
}

type ListTransactionsResponse struct {
	Items []TransactionDTO `json:"items"`
}

type AddToWalletRequest struct {
	CreatorID   string  `json:"creator_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type DebitRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type PayoutSettingsDTO struct {
	HoldingDays   int     `json:"holding_days"`
	MinimumAmount float64 `json:"minimum_amount"`
	UpdatedAt     string  `json:"updated_at"`
}

type PayoutSettingsResponse struct {
	Settings PayoutSettingsDTO `json:"settings"`
}

type UpdatePayoutSettingsRequest struct {
	HoldingDays   int     `json:"holding_days"`
	MinimumAmount float64 `json:"minimum_amount"`
}
