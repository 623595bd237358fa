package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type AccountRole string

const (
	RoleCreator AccountRole = "creator"
	RoleBrand   AccountRole = "brand"
	RoleAdmin   AccountRole = "admin"
)

type Profile struct {
	UserID        string
	Username      string
	FullName      string
	Email         string
	Country       string
	Role          AccountRole
	TrustScore    float64
	TotalViews    int64
	TotalEarnings float64
	Suspended     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SocialAccount struct {
	AccountID string
	UserID    string
	Platform  string
	Handle    string
	Followers int64
}

// CreatorRecord is the merged directory row: a profile joined with its
// social accounts.
type CreatorRecord struct {
	Profile  Profile
	Accounts []SocialAccount
}

type ProfileFilter struct {
	Role      AccountRole
	Country   string
	Search    string
	Suspended *bool
}

type DemographicStatus string

const (
	DemographicPending  DemographicStatus = "pending"
	DemographicApproved DemographicStatus = "approved"
	DemographicRejected DemographicStatus = "rejected"
)

// DemographicSubmission is creator-submitted audience analytics awaiting
// admin review. Approval feeds the trust score.
type DemographicSubmission struct {
	SubmissionID   string
	UserID         string
	Platform       string
	AudienceSplits map[string]float64
	Status         DemographicStatus
	ReviewedBy     string
	Notes          string
	CreatedAt      time.Time
	ReviewedAt     *time.Time
}

type Repository interface {
	UpsertProfile(ctx context.Context, profile Profile) error
	GetProfile(ctx context.Context, userID string) (Profile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]Profile, error)
	SetSuspended(ctx context.Context, userID string, suspended bool, now time.Time) error
	AdjustTrustScore(ctx context.Context, userID string, delta float64, now time.Time) (Profile, error)

	UpsertSocialAccount(ctx context.Context, account SocialAccount) error
	// ListSocialAccountsByUsers serves one batch of user IDs; callers chunk
	// large ID lists to respect the backing row-return cap.
	ListSocialAccountsByUsers(ctx context.Context, userIDs []string) ([]SocialAccount, error)

	CreateDemographicSubmission(ctx context.Context, submission DemographicSubmission) error
	GetDemographicSubmission(ctx context.Context, submissionID string) (DemographicSubmission, error)
	UpdateDemographicSubmission(ctx context.Context, submission DemographicSubmission) error
	ListDemographicSubmissions(ctx context.Context, status DemographicStatus) ([]DemographicSubmission, error)
}

type AdminGate interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
