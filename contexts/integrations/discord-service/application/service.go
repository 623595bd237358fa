package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/integrations/discord-service/domain/errors"
	"clipcast/contexts/integrations/discord-service/ports"
)

// roleCacheTTL bounds how stale a cached guild role list may be.
const roleCacheTTL = 10 * time.Minute

type Service struct {
	Repo   ports.Repository
	Fetch  ports.RoleFetcher
	Cache  ports.RoleCache
	Roles  ports.RoleResolver
	Clock  ports.Clock
	Logger *slog.Logger
}

// CompleteOAuth lands the bot-install handshake. The message type decides
// whether a connection is stored or the failure is surfaced.
func (s Service) CompleteOAuth(ctx context.Context, actorID, brandID, messageType, guildID, guildName string) (ports.GuildConnection, error) {
	brandID = strings.TrimSpace(brandID)
	if brandID == "" {
		return ports.GuildConnection{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireManager(ctx, brandID, actorID); err != nil {
		return ports.GuildConnection{}, err
	}

	switch messageType {
	case ports.OAuthSuccessMessage:
	case ports.OAuthErrorMessage:
		resolveLogger(s.Logger).Warn("discord oauth handshake failed",
			"event", "discord_oauth_failed",
			"module", "integrations/discord-service",
			"layer", "application",
			"brand_id", brandID,
		)
		return ports.GuildConnection{}, domainerrors.ErrOAuthFailed
	default:
		return ports.GuildConnection{}, domainerrors.ErrInvalidRequest
	}

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return ports.GuildConnection{}, domainerrors.ErrInvalidRequest
	}
	connection := ports.GuildConnection{
		BrandID:     brandID,
		GuildID:     guildID,
		GuildName:   strings.TrimSpace(guildName),
		ConnectedAt: s.now(),
	}
	if err := s.Repo.SaveConnection(ctx, connection); err != nil {
		return ports.GuildConnection{}, err
	}
	resolveLogger(s.Logger).Info("discord guild connected",
		"event", "discord_guild_connected",
		"module", "integrations/discord-service",
		"layer", "application",
		"brand_id", brandID,
		"guild_id", guildID,
	)
	return connection, nil
}

func (s Service) GetConnection(ctx context.Context, actorID, brandID string) (ports.GuildConnection, error) {
	if err := s.requireMember(ctx, brandID, actorID); err != nil {
		return ports.GuildConnection{}, err
	}
	return s.Repo.GetConnection(ctx, strings.TrimSpace(brandID))
}

// GuildRoles returns the connected guild's role list, served from cache
// while fresh.
func (s Service) GuildRoles(ctx context.Context, actorID, brandID string) ([]ports.GuildRole, error) {
	if err := s.requireMember(ctx, brandID, actorID); err != nil {
		return nil, err
	}
	connection, err := s.Repo.GetConnection(ctx, strings.TrimSpace(brandID))
	if err != nil {
		return nil, err
	}

	cacheKey := roleCacheKey(connection.GuildID)
	if s.Cache != nil {
		if raw, found, err := s.Cache.GetJSON(ctx, cacheKey); err == nil && found {
			var roles []ports.GuildRole
			if err := json.Unmarshal(raw, &roles); err == nil {
				return roles, nil
			}
		}
	}

	if s.Fetch == nil {
		// No bot session configured; the connection row alone cannot
		// answer role queries.
		return nil, domainerrors.ErrOAuthFailed
	}
	roles, err := s.Fetch.GuildRoles(ctx, connection.GuildID)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if raw, err := json.Marshal(roles); err == nil {
			if err := s.Cache.SetJSON(ctx, cacheKey, raw, roleCacheTTL); err != nil {
				resolveLogger(s.Logger).Warn("guild role cache write failed",
					"event", "discord_role_cache_failed",
					"module", "integrations/discord-service",
					"layer", "application",
					"guild_id", connection.GuildID,
					"error", err.Error(),
				)
			}
		}
	}
	return roles, nil
}

// Disconnect clears the stored guild for the brand.
func (s Service) Disconnect(ctx context.Context, actorID, brandID string) error {
	brandID = strings.TrimSpace(brandID)
	if err := s.requireManager(ctx, brandID, actorID); err != nil {
		return err
	}
	if err := s.Repo.DeleteConnection(ctx, brandID); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("discord guild disconnected",
		"event", "discord_guild_disconnected",
		"module", "integrations/discord-service",
		"layer", "application",
		"brand_id", brandID,
	)
	return nil
}

func (s Service) requireMember(ctx context.Context, brandID, userID string) error {
	if s.Roles == nil {
		return domainerrors.ErrForbidden
	}
	role, err := s.Roles.Role(ctx, strings.TrimSpace(brandID), strings.TrimSpace(userID))
	if err != nil || role == "" {
		return domainerrors.ErrForbidden
	}
	return nil
}

func (s Service) requireManager(ctx context.Context, brandID, userID string) error {
	if s.Roles == nil {
		return domainerrors.ErrForbidden
	}
	role, err := s.Roles.Role(ctx, strings.TrimSpace(brandID), strings.TrimSpace(userID))
	if err != nil {
		return domainerrors.ErrForbidden
	}
	if role != "owner" && role != "admin" {
		return domainerrors.ErrForbidden
	}
	return nil
}

func roleCacheKey(guildID string) string {
	return "discord:guild-roles:" + guildID
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
