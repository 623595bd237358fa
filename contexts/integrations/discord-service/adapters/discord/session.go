package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"clipcast/contexts/integrations/discord-service/ports"

	"github.com/bwmarrin/discordgo"
)

// RoleFetcher reads guild roles through a bot session.
type RoleFetcher struct {
	session *discordgo.Session
}

func NewRoleFetcher(botToken string) (*RoleFetcher, error) {
	if botToken == "" {
		return nil, errors.New("discord bot token is required")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &RoleFetcher{session: session}, nil
}

func (f *RoleFetcher) GuildRoles(ctx context.Context, guildID string) ([]ports.GuildRole, error) {
	roles, err := f.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch guild roles: %w", err)
	}
	items := make([]ports.GuildRole, 0, len(roles))
	for _, role := range roles {
		items = append(items, ports.GuildRole{
			RoleID:   role.ID,
			Name:     role.Name,
			Color:    role.Color,
			Position: role.Position,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position > items[j].Position
	})
	return items, nil
}

func (f *RoleFetcher) Close() error {
	return f.session.Close()
}
