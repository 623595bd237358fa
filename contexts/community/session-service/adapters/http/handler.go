package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/community/session-service/application"
	domainerrors "clipcast/contexts/community/session-service/domain/errors"
	"clipcast/contexts/community/session-service/ports"
	httptransport "clipcast/contexts/community/session-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateSessionHandler(ctx context.Context, userID string, req httptransport.CreateSessionRequest) (httptransport.SessionResponse, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return httptransport.SessionResponse{}, domainerrors.ErrInvalidRequest
	}
	view, err := h.Service.CreateSession(ctx, userID, ports.CreateSessionInput{
		BuyerID:     userID,
		SellerID:    req.SellerID,
		Units:       req.Units,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{Session: mapSession(view)}, nil
}

func (h Handler) GetSessionHandler(ctx context.Context, userID string, sessionID string) (httptransport.SessionResponse, error) {
	view, err := h.Service.GetSession(ctx, userID, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{Session: mapSession(view)}, nil
}

func (h Handler) ListSessionsHandler(ctx context.Context, userID string) (httptransport.ListSessionsResponse, error) {
	views, err := h.Service.ListSessions(ctx, userID)
	if err != nil {
		return httptransport.ListSessionsResponse{}, err
	}
	items := make([]httptransport.SessionDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapSession(view))
	}
	return httptransport.ListSessionsResponse{Items: items}, nil
}

func (h Handler) AcceptSessionHandler(ctx context.Context, userID string, sessionID string) (httptransport.SessionResponse, error) {
	view, err := h.Service.AcceptSession(ctx, userID, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{Session: mapSession(view)}, nil
}

func (h Handler) DeclineSessionHandler(ctx context.Context, userID string, sessionID string) (httptransport.SessionResponse, error) {
	view, err := h.Service.DeclineSession(ctx, userID, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{Session: mapSession(view)}, nil
}

func mapSession(view ports.SessionView) httptransport.SessionDTO {
	session := view.Session
	dto := httptransport.SessionDTO{
		SessionID:   session.SessionID,
		BuyerID:     session.BuyerID,
		SellerID:    session.SellerID,
		Units:       session.Units,
		ScheduledAt: session.ScheduledAt.UTC().Format(time.RFC3339),
		Status:      string(session.Status),
		CreatedAt:   session.CreatedAt.UTC().Format(time.RFC3339),
		Buyer:       mapParticipant(view.Buyer),
		Seller:      mapParticipant(view.Seller),
	}
	if session.ScheduledEndAt != nil {
		dto.ScheduledEndAt = session.ScheduledEndAt.UTC().Format(time.RFC3339)
	}
	if session.ConfirmedAt != nil {
		dto.ConfirmedAt = session.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapParticipant(item ports.Participant) httptransport.ParticipantDTO {
	return httptransport.ParticipantDTO{
		UserID:   item.UserID,
		Username: item.Username,
		FullName: item.FullName,
	}
}
