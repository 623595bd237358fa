package discordservice

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainerrors "clipcast/contexts/integrations/discord-service/domain/errors"
	"clipcast/contexts/integrations/discord-service/ports"
)

type stubRoles struct {
	roles map[string]string // brandID|userID -> role
}

func (s stubRoles) Role(_ context.Context, brandID, userID string) (string, error) {
	role, ok := s.roles[brandID+"|"+userID]
	if !ok {
		return "", errors.New("not a member")
	}
	return role, nil
}

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	roles []ports.GuildRole
	err   error
}

func (f *countingFetcher) GuildRoles(_ context.Context, _ string) ([]ports.GuildRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.roles, f.err
}

func newTestModule(fetcher ports.RoleFetcher) Module {
	roles := stubRoles{roles: map[string]string{
		"brand_1|user_owner":  "owner",
		"brand_1|user_member": "member",
	}}
	return NewInMemoryModule(nil, fetcher, roles, nil)
}

func TestCompleteOAuthStoresConnection(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	connection, err := module.Service.CompleteOAuth(ctx, "user_owner", "brand_1", ports.OAuthSuccessMessage, "guild_42", "Creator Hub")
	if err != nil {
		t.Fatalf("complete oauth: %v", err)
	}
	if connection.GuildID != "guild_42" {
		t.Fatalf("guild id = %q, want guild_42", connection.GuildID)
	}

	stored, err := module.Service.GetConnection(ctx, "user_member", "brand_1")
	if err != nil {
		t.Fatalf("get connection: %v", err)
	}
	if stored.GuildName != "Creator Hub" {
		t.Fatalf("guild name = %q, want Creator Hub", stored.GuildName)
	}
}

func TestCompleteOAuthErrorMessageFails(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	if _, err := module.Service.CompleteOAuth(ctx, "user_owner", "brand_1", ports.OAuthErrorMessage, "", ""); !errors.Is(err, domainerrors.ErrOAuthFailed) {
		t.Fatalf("expected ErrOAuthFailed, got %v", err)
	}
	if _, err := module.Service.GetConnection(ctx, "user_owner", "brand_1"); !errors.Is(err, domainerrors.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected after failed handshake, got %v", err)
	}
}

func TestConnectRequiresManagerRole(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	if _, err := module.Service.CompleteOAuth(ctx, "user_member", "brand_1", ports.OAuthSuccessMessage, "guild_42", ""); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member connect, got %v", err)
	}
	if err := module.Service.Disconnect(ctx, "user_member", "brand_1"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member disconnect, got %v", err)
	}
}

func TestGuildRolesServedFromCache(t *testing.T) {
	fetcher := &countingFetcher{roles: []ports.GuildRole{
		{RoleID: "r1", Name: "Clipper", Position: 2},
		{RoleID: "r2", Name: "Mod", Position: 5},
	}}
	module := newTestModule(fetcher)
	ctx := context.Background()

	if _, err := module.Service.CompleteOAuth(ctx, "user_owner", "brand_1", ports.OAuthSuccessMessage, "guild_42", ""); err != nil {
		t.Fatalf("connect: %v", err)
	}

	first, err := module.Service.GuildRoles(ctx, "user_member", "brand_1")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("roles = %d, want 2", len(first))
	}
	second, err := module.Service.GuildRoles(ctx, "user_member", "brand_1")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("cached roles = %d, want 2", len(second))
	}

	fetcher.mu.Lock()
	calls := fetcher.calls
	fetcher.mu.Unlock()
	if calls != 1 {
		t.Fatalf("upstream calls = %d, want 1 (second read served from cache)", calls)
	}
}

func TestDisconnectClearsGuild(t *testing.T) {
	module := newTestModule(nil)
	ctx := context.Background()

	if _, err := module.Service.CompleteOAuth(ctx, "user_owner", "brand_1", ports.OAuthSuccessMessage, "guild_42", ""); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := module.Service.Disconnect(ctx, "user_owner", "brand_1"); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if _, err := module.Service.GetConnection(ctx, "user_owner", "brand_1"); !errors.Is(err, domainerrors.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected after disconnect, got %v", err)
	}
}
