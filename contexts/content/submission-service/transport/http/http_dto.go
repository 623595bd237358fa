package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PlatformEntryDTO struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	PostURL  string `json:"post_url,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID string             `json:"submission_id"`
	CreatorID    string             `json:"creator_id"`
	SourceType   string             `json:"source_type"`
	SourceID     string             `json:"source_id"`
	VideoURL     string             `json:"video_url"`
	Caption      string             `json:"caption"`
	Feedback     string             `json:"feedback,omitempty"`
	PayoutAmount float64            `json:"payout_amount"`
	Status       string             `json:"status"`
	Platforms    []PlatformEntryDTO `json:"platforms"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

type CreateSubmissionRequest struct {
	SourceType string   `json:"source_type"`
	SourceID   string   `json:"source_id"`
	VideoURL   string   `json:"video_url"`
	Caption    string   `json:"caption"`
	Platforms  []string `json:"platforms"`
}

type CreateSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type GetSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type SetPlatformStatusRequest struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

type MoveSubmissionRequest struct {
	Status string `json:"status"`
}

type SetPostURLRequest struct {
	Platform string `json:"platform"`
	PostURL  string `json:"post_url"`
}

type UpdateCaptionRequest struct {
	Caption string `json:"caption"`
}

type SetFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type SetPayoutAmountRequest struct {
	Amount float64 `json:"amount"`
}

type SubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}
