package ports

import (
	"context"
	"time"

	"clipcast/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

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

// PlatformStatus is the per-platform review stage. The review flow is
// pending -> approved -> ready_to_post -> posted, with rejected reachable
// only from pending and skipped set when a platform is waived.
type PlatformStatus string

const (
	StatusPending     PlatformStatus = "pending"
	StatusApproved    PlatformStatus = "approved"
	StatusReadyToPost PlatformStatus = "ready_to_post"
	StatusPosted      PlatformStatus = "posted"
	StatusRejected    PlatformStatus = "rejected"
	StatusSkipped     PlatformStatus = "skipped"
)

type PlatformEntry struct {
	Platform string
	Status   PlatformStatus
	PostURL  string
}

type Submission struct {
	SubmissionID string
	CreatorID    string
	Source       SourceRef
	VideoURL     string
	Caption      string
	Feedback     string
	PayoutAmount float64
	Platforms    []PlatformEntry
	// Status is derived from the platform entries and recomputed on every
	// platform write; it is the single source of truth for column membership.
	Status    PlatformStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostedAnywhere reports whether any platform has gone live. Captions lock
// as soon as this is true.
func (s Submission) PostedAnywhere() bool {
	for _, entry := range s.Platforms {
		if entry.Status == StatusPosted {
			return true
		}
	}
	return false
}

type CreateSubmissionInput struct {
	CreatorID string
	Source    SourceRef
	VideoURL  string
	Caption   string
	Platforms []string
}

type Repository interface {
	CreateSubmission(ctx context.Context, submission Submission) error
	GetSubmission(ctx context.Context, submissionID string) (Submission, error)
	UpdateSubmission(ctx context.Context, submission Submission) error
	ListBySource(ctx context.Context, source SourceRef) ([]Submission, error)
	ListByCreator(ctx context.Context, creatorID string) ([]Submission, error)
	DeleteForCreator(ctx context.Context, source SourceRef, creatorID string) (int64, error)
}

// OutboxMessage is a pending event row written alongside a status change
// and relayed to the bus by the worker.
type OutboxMessage struct {
	OutboxID  string
	Topic     string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

type OutboxRepository interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, at time.Time) error
}

// EventPublisher delivers relayed envelopes. Satisfied by the platform bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// BrandResolver maps a campaign or boost back to its owning brand so role
// checks can run server-side.
type BrandResolver interface {
	BrandID(ctx context.Context, source SourceRef) (string, error)
}

type RoleResolver interface {
	Role(ctx context.Context, brandID string, userID string) (string, error)
}
