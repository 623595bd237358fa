package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// OAuth handshake outcomes surfaced by the bot-install popup.
const (
	OAuthSuccessMessage = "discord-bot-oauth-success"
	OAuthErrorMessage   = "discord-bot-oauth-error"
)

// GuildConnection links a brand to the Discord guild its bot was installed
// into.
type GuildConnection struct {
	BrandID     string
	GuildID     string
	GuildName   string
	ConnectedAt time.Time
}

type GuildRole struct {
	RoleID   string `json:"role_id"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
}

type Repository interface {
	SaveConnection(ctx context.Context, connection GuildConnection) error
	GetConnection(ctx context.Context, brandID string) (GuildConnection, error)
	DeleteConnection(ctx context.Context, brandID string) error
}

// RoleFetcher pulls the live role list from Discord.
type RoleFetcher interface {
	GuildRoles(ctx context.Context, guildID string) ([]GuildRole, error)
}

// RoleCache holds serialized role lists with a TTL. Satisfied by the
// platform redis cache.
type RoleCache interface {
	SetJSON(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	GetJSON(ctx context.Context, key string) ([]byte, bool, error)
}

// RoleResolver answers brand membership for connect/disconnect gating.
type RoleResolver interface {
	Role(ctx context.Context, brandID, userID string) (string, error)
}
