package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProfileDTO struct {
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Country       string  `json:"country"`
	Role          string  `json:"role"`
	TrustScore    float64 `json:"trust_score"`
	TotalViews    int64   `json:"total_views"`
	TotalEarnings float64 `json:"total_earnings"`
	Suspended     bool    `json:"suspended"`
	CreatedAt     string  `json:"created_at"`
}

type SocialAccountDTO struct {
	AccountID string `json:"account_id"`
	Platform  string `json:"platform"`
	Handle    string `json:"handle"`
	Followers int64  `json:"followers"`
}

type CreatorRecordDTO struct {
	Profile  ProfileDTO         `json:"profile"`
	Accounts []SocialAccountDTO `json:"accounts"`
}

type UpsertProfileRequest struct {
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Country       string  `json:"country"`
	Role          string  `json:"role"`
	TotalViews    int64   `json:"total_views"`
	TotalEarnings float64 `json:"total_earnings"`
}

type ProfileResponse struct {
	Profile ProfileDTO `json:"profile"`
}

type ListProfilesResponse struct {
	Items []ProfileDTO `json:"items"`
}

type ListCreatorsResponse struct {
	Items []CreatorRecordDTO `json:"items"`
}

type SetSuspendedRequest struct {
	Suspended bool `json:"suspended"`
}

type UpsertSocialAccountRequest struct {
	UserID    string `json:"user_id"`
	Platform  string `json:"platform"`
	Handle    string `json:"handle"`
	Followers int64  `json:"followers"`
}

type SubmitDemographicsRequest struct {
	Platform string             `json:"platform"`
	Splits   map[string]float64 `json:"splits"`
}

type DemographicSubmissionDTO struct {
	SubmissionID string             `json:"submission_id"`
	UserID       string             `json:"user_id"`
	Platform     string             `json:"platform"`
	Splits       map[string]float64 `json:"splits"`
	Status       string             `json:"status"`
	ReviewedBy   string             `json:"reviewed_by,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    string             `json:"created_at"`
	ReviewedAt   string             `json:"reviewed_at,omitempty"`
}

type DemographicSubmissionResponse struct {
	Submission DemographicSubmissionDTO `json:"submission"`
}

type ListDemographicsResponse struct {
	Items []DemographicSubmissionDTO `json:"items"`
}

type ReviewDemographicsRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}
