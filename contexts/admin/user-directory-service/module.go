package userdirectoryservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/admin/user-directory-service/adapters/http"
	"clipcast/contexts/admin/user-directory-service/adapters/memory"
	"clipcast/contexts/admin/user-directory-service/application"
	"clipcast/contexts/admin/user-directory-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Admins     ports.AdminGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Admins: deps.Admins,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seedProfiles []ports.Profile, seedAccounts []ports.SocialAccount, admins ports.AdminGate, logger *slog.Logger) Module {
	store := memory.NewStore(seedProfiles, seedAccounts)
	module := NewModule(Dependencies{
		Repository: store,
		Admins:     admins,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
