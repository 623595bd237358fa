package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DealDTO struct {
	DealID       string  `json:"deal_id"`
	BrandID      string  `json:"brand_id,omitempty"`
	Company      string  `json:"company"`
	ContactName  string  `json:"contact_name,omitempty"`
	ContactEmail string  `json:"contact_email,omitempty"`
	Stage        string  `json:"stage"`
	Value        float64 `json:"value"`
	MonthlyValue float64 `json:"monthly_value"`
	Notes        string  `json:"notes,omitempty"`
	WonDate      string  `json:"won_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type CreateDealRequest struct {
	BrandID      string  `json:"brand_id"`
	Company      string  `json:"company"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	Value        float64 `json:"value"`
	MonthlyValue float64 `json:"monthly_value"`
	Notes        string  `json:"notes"`
}

type DealResponse struct {
	Deal DealDTO `json:"deal"`
}

type ListDealsResponse struct {
	Items []DealDTO `json:"items"`
}

type MoveStageRequest struct {
	Stage string `json:"stage"`
}

type UpdateDealRequest struct {
	Company      *string  `json:"company"`
	ContactName  *string  `json:"contact_name"`
	ContactEmail *string  `json:"contact_email"`
	Value        *float64 `json:"value"`
	MonthlyValue *float64 `json:"monthly_value"`
	Notes        *string  `json:"notes"`
}

type MonthRevenueDTO struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Total   float64 `json:"total"`
	Monthly float64 `json:"monthly"`
	Deals   int     `json:"deals"`
}

type MonthlyRevenueResponse struct {
	Items []MonthRevenueDTO `json:"items"`
}
