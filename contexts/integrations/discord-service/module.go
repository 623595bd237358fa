package discordservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/integrations/discord-service/adapters/http"
	"clipcast/contexts/integrations/discord-service/adapters/memory"
	"clipcast/contexts/integrations/discord-service/application"
	"clipcast/contexts/integrations/discord-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Fetcher    ports.RoleFetcher
	Cache      ports.RoleCache
	Roles      ports.RoleResolver
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Fetch:  deps.Fetcher,
		Cache:  deps.Cache,
		Roles:  deps.Roles,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []ports.GuildConnection, fetcher ports.RoleFetcher, roles ports.RoleResolver, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Fetcher:    fetcher,
		Cache:      memory.NewRoleCache(),
		Roles:      roles,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
