package blueprintservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/content/blueprint-service/adapters/http"
	"clipcast/contexts/content/blueprint-service/adapters/memory"
	"clipcast/contexts/content/blueprint-service/application"
	"clipcast/contexts/content/blueprint-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Media      ports.MediaStore
	Roles      ports.RoleResolver
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Media:  deps.Media,
		Roles:  deps.Roles,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []ports.Blueprint, media ports.MediaStore, roles ports.RoleResolver, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Media:      media,
		Roles:      roles,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
