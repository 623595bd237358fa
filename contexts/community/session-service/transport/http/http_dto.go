package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ParticipantDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type SessionDTO struct {
	SessionID      string         `json:"session_id"`
	BuyerID        string         `json:"buyer_id"`
	SellerID       string         `json:"seller_id"`
	Units          int            `json:"units"`
	ScheduledAt    string         `json:"scheduled_at"`
	ScheduledEndAt string         `json:"scheduled_end_at,omitempty"`
	Status         string         `json:"status"`
	ConfirmedAt    string         `json:"confirmed_at,omitempty"`
	CreatedAt      string         `json:"created_at"`
	Buyer          ParticipantDTO `json:"buyer"`
	Seller         ParticipantDTO `json:"seller"`
}

type CreateSessionRequest struct {
	SellerID    string `json:"seller_id"`
	Units       int    `json:"units"`
	ScheduledAt string `json:"scheduled_at"`
}

type SessionResponse struct {
	Session SessionDTO `json:"session"`
}

type ListSessionsResponse struct {
	Items []SessionDTO `json:"items"`
}
