package submissionservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/content/submission-service/adapters/http"
	"clipcast/contexts/content/submission-service/adapters/memory"
	"clipcast/contexts/content/submission-service/application"
	"clipcast/contexts/content/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxRepository
	Brands     ports.BrandResolver
	Roles      ports.RoleResolver
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Outbox: deps.Outbox,
		Brands: deps.Brands,
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

func NewInMemoryModule(seed []ports.Submission, brands ports.BrandResolver, roles ports.RoleResolver, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Brands:     brands,
		Roles:      roles,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
