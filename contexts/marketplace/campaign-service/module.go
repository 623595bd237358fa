package campaignservice

import (
	"log/slog"

	httpadapter "clipcast/contexts/marketplace/campaign-service/adapters/http"
	"clipcast/contexts/marketplace/campaign-service/adapters/memory"
	"clipcast/contexts/marketplace/campaign-service/application"
	"clipcast/contexts/marketplace/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns     ports.CampaignRepository
	Boosts        ports.BoostRepository
	Bookmarks     ports.BookmarkRepository
	Roles         ports.RoleResolver
	Subscriptions ports.SubscriptionGate
	Submissions   ports.SubmissionPurger
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Campaigns:     deps.Campaigns,
		Boosts:        deps.Boosts,
		Bookmarks:     deps.Bookmarks,
		Roles:         deps.Roles,
		Subscriptions: deps.Subscriptions,
		Submissions:   deps.Submissions,
		Clock:         deps.Clock,
		IDGen:         deps.IDGen,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(
	seedCampaigns []ports.Campaign,
	seedBoosts []ports.Boost,
	roles ports.RoleResolver,
	subscriptions ports.SubscriptionGate,
	submissions ports.SubmissionPurger,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seedCampaigns, seedBoosts)
	module := NewModule(Dependencies{
		Campaigns:     store,
		Boosts:        store,
		Bookmarks:     store,
		Roles:         roles,
		Subscriptions: subscriptions,
		Submissions:   submissions,
		Clock:         store,
		IDGen:         store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
