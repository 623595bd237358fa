package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clipcast/contexts/integrations/discord-service/application"
	"clipcast/contexts/integrations/discord-service/ports"
	httptransport "clipcast/contexts/integrations/discord-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CompleteOAuthHandler(ctx context.Context, userID string, brandID string, req httptransport.CompleteOAuthRequest) (httptransport.ConnectionResponse, error) {
	connection, err := h.Service.CompleteOAuth(ctx, userID, brandID, req.MessageType, req.GuildID, req.GuildName)
	if err != nil {
		return httptransport.ConnectionResponse{}, err
	}
	return httptransport.ConnectionResponse{Connection: mapConnection(connection)}, nil
}

func (h Handler) GetConnectionHandler(ctx context.Context, userID string, brandID string) (httptransport.ConnectionResponse, error) {
	connection, err := h.Service.GetConnection(ctx, userID, brandID)
	if err != nil {
		return httptransport.ConnectionResponse{}, err
	}
	return httptransport.ConnectionResponse{Connection: mapConnection(connection)}, nil
}

func (h Handler) GuildRolesHandler(ctx context.Context, userID string, brandID string) (httptransport.ListGuildRolesResponse, error) {
	roles, err := h.Service.GuildRoles(ctx, userID, brandID)
	if err != nil {
		return httptransport.ListGuildRolesResponse{}, err
	}
	items := make([]httptransport.GuildRoleDTO, 0, len(roles))
	for _, role := range roles {
		items = append(items, httptransport.GuildRoleDTO{
			RoleID:   role.RoleID,
			Name:     role.Name,
			Color:    role.Color,
			Position: role.Position,
		})
	}
	return httptransport.ListGuildRolesResponse{Items: items}, nil
}

func (h Handler) DisconnectHandler(ctx context.Context, userID string, brandID string) error {
	return h.Service.Disconnect(ctx, userID, brandID)
}

func mapConnection(item ports.GuildConnection) httptransport.GuildConnectionDTO {
	return httptransport.GuildConnectionDTO{
		BrandID:     item.BrandID,
		GuildID:     item.GuildID,
		GuildName:   item.GuildName,
		ConnectedAt: item.ConnectedAt.UTC().Format(time.RFC3339),
	}
}
