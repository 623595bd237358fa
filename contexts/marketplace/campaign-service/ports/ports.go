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

// SourceType discriminates the two campaign shapes a creator can work
// against. Carried as a tagged union instead of a loose string+id pair.
type SourceType string

const (
	SourceCampaign SourceType = "campaign"
	SourceBoost    SourceType = "boost"
)

type SourceRef struct {
	Type SourceType
	ID   string
}

func (r SourceRef) Valid() bool {
	return (r.Type == SourceCampaign || r.Type == SourceBoost) && r.ID != ""
}

type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "draft"
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusEnded  CampaignStatus = "ended"
)

type Campaign struct {
	CampaignID  string
	BrandID     string
	Title       string
	Description string
	Budget      float64
	Platforms   []string
	Status      CampaignStatus
	BlueprintID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Boost is a bounty campaign: a monthly retainer for a fixed content quota.
type Boost struct {
	BoostID         string
	BrandID         string
	Title           string
	Description     string
	MonthlyRetainer float64
	VideosPerMonth  int
	Platforms       []string
	Status          CampaignStatus
	BlueprintID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type ContractStatus string

const (
	ContractNone      ContractStatus = "none"
	ContractSent      ContractStatus = "sent"
	ContractSigned    ContractStatus = "signed"
	ContractCancelled ContractStatus = "cancelled"
)

type BoostApplication struct {
	ApplicationID  string
	BoostID        string
	CreatorID      string
	Pitch          string
	Status         ApplicationStatus
	ContractStatus ContractStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Participant struct {
	ParticipantID string
	CampaignID    string
	CreatorID     string
	JoinedAt      time.Time
}

type Bookmark struct {
	BookmarkID string
	CreatorID  string
	Source     SourceRef
	CreatedAt  time.Time
}

type CreateCampaignInput struct {
	BrandID     string
	Title       string
	Description string
	Budget      float64
	Platforms   []string
	BlueprintID string
}

type UpdateCampaignInput struct {
	CampaignID  string
	Title       *string
	Description *string
	Budget      *float64
	Platforms   []string
	BlueprintID *string
}

type CreateBoostInput struct {
	BrandID         string
	Title           string
	Description     string
	MonthlyRetainer float64
	VideosPerMonth  int
	Platforms       []string
	BlueprintID     string
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (Campaign, error)
	UpdateCampaign(ctx context.Context, input UpdateCampaignInput, now time.Time) (Campaign, error)
	SetCampaignStatus(ctx context.Context, campaignID string, status CampaignStatus, now time.Time) error
	ListCampaignsByBrand(ctx context.Context, brandID string) ([]Campaign, error)
	ListActiveCampaigns(ctx context.Context) ([]Campaign, error)

	AddParticipant(ctx context.Context, participant Participant) error
	ListParticipants(ctx context.Context, campaignID string) ([]Participant, error)
	RemoveParticipant(ctx context.Context, campaignID string, creatorID string) error
}

type BoostRepository interface {
	CreateBoost(ctx context.Context, boost Boost) error
	GetBoost(ctx context.Context, boostID string) (Boost, error)
	SetBoostStatus(ctx context.Context, boostID string, status CampaignStatus, now time.Time) error
	ListBoostsByBrand(ctx context.Context, brandID string) ([]Boost, error)
	ListActiveBoosts(ctx context.Context) ([]Boost, error)

	CreateApplication(ctx context.Context, app BoostApplication) error
	GetApplication(ctx context.Context, applicationID string) (BoostApplication, error)
	GetApplicationByCreator(ctx context.Context, boostID string, creatorID string) (BoostApplication, error)
	UpdateApplication(ctx context.Context, app BoostApplication) error
	ListApplications(ctx context.Context, boostID string) ([]BoostApplication, error)
}

type BookmarkRepository interface {
	// ToggleBookmark flips membership and reports the resulting state.
	ToggleBookmark(ctx context.Context, creatorID string, source SourceRef, bookmarkID string, now time.Time) (bool, error)
	ListBookmarks(ctx context.Context, creatorID string) ([]Bookmark, error)
}

// RoleResolver re-derives the caller's brand role server-side; client
// booleans are never trusted.
type RoleResolver interface {
	Role(ctx context.Context, brandID string, userID string) (string, error)
}

// SubscriptionGate reports whether a brand's plan currently allows gated
// features such as boosts.
type SubscriptionGate interface {
	RequireActiveSubscription(ctx context.Context, brandID string) error
}

// SubmissionPurger removes a creator's submissions when they are removed
// from a campaign; the join row and submissions go together.
type SubmissionPurger interface {
	PurgeForCreator(ctx context.Context, source SourceRef, creatorID string) error
}
