package walletservice

import (
	"log/slog"
	"time"

	httpadapter "clipcast/contexts/finance/wallet-service/adapters/http"
	"clipcast/contexts/finance/wallet-service/adapters/memory"
	"clipcast/contexts/finance/wallet-service/application"
	"clipcast/contexts/finance/wallet-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository     ports.Repository
	Cooldowns      ports.Cooldown
	Admins         ports.AdminGate
	CooldownWindow time.Duration
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		Cooldowns:      deps.Cooldowns,
		Admins:         deps.Admins,
		CooldownWindow: deps.CooldownWindow,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(seedWallets []ports.Wallet, cooldowns ports.Cooldown, admins ports.AdminGate, logger *slog.Logger) Module {
	store := memory.NewStore(seedWallets)
	if cooldowns == nil {
		cooldowns = memory.NewCooldownGate()
	}
	module := NewModule(Dependencies{
		Repository: store,
		Cooldowns:  cooldowns,
		Admins:     admins,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
