package messagingservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/community/messaging-service/adapters/http"
	"clipcast/contexts/community/messaging-service/adapters/memory"
	"clipcast/contexts/community/messaging-service/application"
	"clipcast/contexts/community/messaging-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Roles      ports.RoleResolver
	Realtime   ports.Publisher
	Unread     ports.UnreadCounter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Roles:    deps.Roles,
		Realtime: deps.Realtime,
		Unread:   deps.Unread,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []ports.Conversation, roles ports.RoleResolver, realtime ports.Publisher, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Roles:      roles,
		Realtime:   realtime,
		Unread:     memory.NewCounter(),
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
