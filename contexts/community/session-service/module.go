package sessionservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/community/session-service/adapters/http"
	"clipcast/contexts/community/session-service/adapters/memory"
	"clipcast/contexts/community/session-service/application"
	"clipcast/contexts/community/session-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Participants ports.ParticipantDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repository,
		Participants: deps.Participants,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seed []ports.Session, participants ports.ParticipantDirectory, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository:   store,
		Participants: participants,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
