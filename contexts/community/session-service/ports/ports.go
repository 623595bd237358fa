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

type SessionStatus string

const (
	StatusRequested SessionStatus = "REQUESTED"
	StatusAccepted  SessionStatus = "ACCEPTED"
	StatusDeclined  SessionStatus = "DECLINED"
	StatusExpired   SessionStatus = "EXPIRED"
)

// Session is a booked call between a buyer and a seller. Units are 30-minute
// slots; ScheduledEndAt is computed on acceptance.
type Session struct {
	SessionID      string
	BuyerID        string
	SellerID       string
	Units          int
	ScheduledAt    time.Time
	ScheduledEndAt *time.Time
	Status         SessionStatus
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateSessionInput struct {
	BuyerID     string
	SellerID    string
	Units       int
	ScheduledAt time.Time
}

// Participant is the sub-selection embedded in session responses.
type Participant struct {
	UserID   string
	Username string
	FullName string
}

// SessionView is a session with its buyer/seller participants resolved.
type SessionView struct {
	Session Session
	Buyer   Participant
	Seller  Participant
}

type Repository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	UpdateSession(ctx context.Context, session Session) error
	ListSessionsForUser(ctx context.Context, userID string) ([]Session, error)
	// ListOverdueRequested returns sessions still REQUESTED whose scheduled
	// start has passed; the worker sweep expires them.
	ListOverdueRequested(ctx context.Context, before time.Time) ([]Session, error)
}

// ParticipantDirectory resolves the buyer/seller sub-selections embedded in
// responses.
type ParticipantDirectory interface {
	Participant(ctx context.Context, userID string) (Participant, error)
}
