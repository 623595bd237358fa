package sessionservice

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "clipcast/contexts/community/session-service/domain/errors"
	"clipcast/contexts/community/session-service/ports"
)

type stubParticipants struct{}

func (stubParticipants) Participant(_ context.Context, userID string) (ports.Participant, error) {
	return ports.Participant{UserID: userID, Username: "u_" + userID, FullName: "User " + userID}, nil
}

func requestSession(t *testing.T, module Module, scheduledAt time.Time, units int) ports.SessionView {
	t.Helper()
	view, err := module.Service.CreateSession(context.Background(), "buyer_1", ports.CreateSessionInput{
		BuyerID:     "buyer_1",
		SellerID:    "seller_1",
		Units:       units,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return view
}

func TestAcceptComputesEndFromUnits(t *testing.T) {
	module := NewInMemoryModule(nil, stubParticipants{}, nil)
	ctx := context.Background()

	scheduledAt := time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)
	view := requestSession(t, module, scheduledAt, 2)

	accepted, err := module.Service.AcceptSession(ctx, "seller_1", view.Session.SessionID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Session.Status != ports.StatusAccepted {
		t.Fatalf("status = %q, want ACCEPTED", accepted.Session.Status)
	}
	if accepted.Session.ScheduledEndAt == nil {
		t.Fatal("scheduled_end_at not set")
	}
	// 2 units of 30 minutes each.
	wantEnd := scheduledAt.Add(60 * time.Minute)
	if !accepted.Session.ScheduledEndAt.Equal(wantEnd) {
		t.Fatalf("scheduled_end_at = %v, want %v", accepted.Session.ScheduledEndAt, wantEnd)
	}
	if accepted.Session.ConfirmedAt == nil {
		t.Fatal("confirmed_at not stamped")
	}
	if accepted.Buyer.UserID != "buyer_1" || accepted.Seller.UserID != "seller_1" {
		t.Fatalf("participants not embedded: %+v", accepted)
	}
}

func TestAcceptByNonSellerLeavesSessionUnchanged(t *testing.T) {
	module := NewInMemoryModule(nil, stubParticipants{}, nil)
	ctx := context.Background()

	view := requestSession(t, module, time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC), 1)

	if _, err := module.Service.AcceptSession(ctx, "buyer_1", view.Session.SessionID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	current, err := module.Service.GetSession(ctx, "buyer_1", view.Session.SessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if current.Session.Status != ports.StatusRequested {
		t.Fatalf("status changed to %q after rejected accept", current.Session.Status)
	}
}

func TestAcceptRequiresRequestedState(t *testing.T) {
	module := NewInMemoryModule(nil, stubParticipants{}, nil)
	ctx := context.Background()

	view := requestSession(t, module, time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC), 1)
	if _, err := module.Service.AcceptSession(ctx, "seller_1", view.Session.SessionID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := module.Service.AcceptSession(ctx, "seller_1", view.Session.SessionID); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for second accept, got %v", err)
	}

	if _, err := module.Service.AcceptSession(ctx, "seller_1", "missing"); !errors.Is(err, domainerrors.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeclineIsSellerOnly(t *testing.T) {
	module := NewInMemoryModule(nil, stubParticipants{}, nil)
	ctx := context.Background()

	view := requestSession(t, module, time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC), 1)

	if _, err := module.Service.DeclineSession(ctx, "buyer_1", view.Session.SessionID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	declined, err := module.Service.DeclineSession(ctx, "seller_1", view.Session.SessionID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Session.Status != ports.StatusDeclined {
		t.Fatalf("status = %q, want DECLINED", declined.Session.Status)
	}
}

func TestExpireOverdueSweep(t *testing.T) {
	module := NewInMemoryModule(nil, stubParticipants{}, nil)
	ctx := context.Background()

	past := requestSession(t, module, time.Now().UTC().Add(-2*time.Hour), 1)
	future := requestSession(t, module, time.Now().UTC().Add(2*time.Hour), 1)

	expired, err := module.Service.ExpireOverdue(ctx)
	if err != nil {
		t.Fatalf("expire overdue: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expired = %d, want 1", expired)
	}

	pastNow, err := module.Service.GetSession(ctx, "buyer_1", past.Session.SessionID)
	if err != nil {
		t.Fatalf("get past session: %v", err)
	}
	if pastNow.Session.Status != ports.StatusExpired {
		t.Fatalf("past session status = %q, want EXPIRED", pastNow.Session.Status)
	}
	futureNow, err := module.Service.GetSession(ctx, "buyer_1", future.Session.SessionID)
	if err != nil {
		t.Fatalf("get future session: %v", err)
	}
	if futureNow.Session.Status != ports.StatusRequested {
		t.Fatalf("future session status = %q, want REQUESTED", futureNow.Session.Status)
	}
}
