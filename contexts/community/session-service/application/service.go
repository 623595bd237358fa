package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/community/session-service/domain/errors"
	"clipcast/contexts/community/session-service/ports"
)

// slotDuration is the length of one booked unit.
const slotDuration = 30 * time.Minute

type Service struct {
	Repo         ports.Repository
	Participants ports.ParticipantDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func (s Service) CreateSession(ctx context.Context, actorID string, input ports.CreateSessionInput) (ports.SessionView, error) {
	input.BuyerID = strings.TrimSpace(input.BuyerID)
	input.SellerID = strings.TrimSpace(input.SellerID)
	if input.BuyerID == "" || input.SellerID == "" || input.BuyerID == input.SellerID {
		return ports.SessionView{}, domainerrors.ErrInvalidRequest
	}
	if input.Units <= 0 || input.ScheduledAt.IsZero() {
		return ports.SessionView{}, domainerrors.ErrInvalidRequest
	}
	if strings.TrimSpace(actorID) != input.BuyerID {
		return ports.SessionView{}, domainerrors.ErrForbidden
	}

	sessionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.SessionView{}, err
	}
	now := s.now()
	session := ports.Session{
		SessionID:   sessionID,
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		Units:       input.Units,
		ScheduledAt: input.ScheduledAt.UTC(),
		Status:      ports.StatusRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return ports.SessionView{}, err
	}
	resolveLogger(s.Logger).Info("session requested",
		"event", "session_requested",
		"module", "community/session-service",
		"layer", "application",
		"session_id", session.SessionID,
		"seller_id", session.SellerID,
	)
	return s.view(ctx, session)
}

func (s Service) GetSession(ctx context.Context, actorID, sessionID string) (ports.SessionView, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}
	if err := requireParticipant(actorID, session); err != nil {
		return ports.SessionView{}, err
	}
	return s.view(ctx, session)
}

func (s Service) ListSessions(ctx context.Context, actorID string) ([]ports.SessionView, error) {
	sessions, err := s.Repo.ListSessionsForUser(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return nil, err
	}
	views := make([]ports.SessionView, 0, len(sessions))
	for _, session := range sessions {
		view, err := s.view(ctx, session)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// AcceptSession confirms a requested booking. Only the seller may accept,
// only from REQUESTED; the end time is the start plus the booked units.
func (s Service) AcceptSession(ctx context.Context, actorID, sessionID string) (ports.SessionView, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}
	if strings.TrimSpace(actorID) != session.SellerID {
		return ports.SessionView{}, domainerrors.ErrForbidden
	}
	if session.Status != ports.StatusRequested {
		return ports.SessionView{}, domainerrors.ErrInvalidState
	}

	now := s.now()
	endAt := session.ScheduledAt.Add(time.Duration(session.Units) * slotDuration)
	session.ScheduledEndAt = &endAt
	session.Status = ports.StatusAccepted
	session.ConfirmedAt = &now
	session.UpdatedAt = now
	if err := s.Repo.UpdateSession(ctx, session); err != nil {
		return ports.SessionView{}, err
	}
	resolveLogger(s.Logger).Info("session accepted",
		"event", "session_accepted",
		"module", "community/session-service",
		"layer", "application",
		"session_id", session.SessionID,
	)
	return s.view(ctx, session)
}

// DeclineSession rejects a requested booking. Seller only, REQUESTED only.
func (s Service) DeclineSession(ctx context.Context, actorID, sessionID string) (ports.SessionView, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}
	if strings.TrimSpace(actorID) != session.SellerID {
		return ports.SessionView{}, domainerrors.ErrForbidden
	}
	if session.Status != ports.StatusRequested {
		return ports.SessionView{}, domainerrors.ErrInvalidState
	}

	session.Status = ports.StatusDeclined
	session.UpdatedAt = s.now()
	if err := s.Repo.UpdateSession(ctx, session); err != nil {
		return ports.SessionView{}, err
	}
	return s.view(ctx, session)
}

// ExpireOverdue moves REQUESTED sessions whose start time has passed to
// EXPIRED. The worker runs this on a sweep interval.
func (s Service) ExpireOverdue(ctx context.Context) (int, error) {
	now := s.now()
	overdue, err := s.Repo.ListOverdueRequested(ctx, now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, session := range overdue {
		session.Status = ports.StatusExpired
		session.UpdatedAt = now
		if err := s.Repo.UpdateSession(ctx, session); err != nil {
			return expired, err
		}
		expired++
	}
	if expired > 0 {
		resolveLogger(s.Logger).Info("overdue sessions expired",
			"event", "sessions_expired",
			"module", "community/session-service",
			"layer", "application",
			"count", expired,
		)
	}
	return expired, nil
}

func (s Service) view(ctx context.Context, session ports.Session) (ports.SessionView, error) {
	view := ports.SessionView{Session: session}
	if s.Participants == nil {
		return view, nil
	}
	buyer, err := s.Participants.Participant(ctx, session.BuyerID)
	if err == nil {
		view.Buyer = buyer
	}
	seller, err := s.Participants.Participant(ctx, session.SellerID)
	if err == nil {
		view.Seller = seller
	}
	return view, nil
}

func requireParticipant(actorID string, session ports.Session) error {
	actorID = strings.TrimSpace(actorID)
	if actorID != session.BuyerID && actorID != session.SellerID {
		return domainerrors.ErrForbidden
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
