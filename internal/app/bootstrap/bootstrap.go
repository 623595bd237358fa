package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	userdirectoryservice "clipcast/contexts/admin/user-directory-service"
	directorypostgres "clipcast/contexts/admin/user-directory-service/adapters/postgres"
	messagingservice "clipcast/contexts/community/messaging-service"
	messagingpostgres "clipcast/contexts/community/messaging-service/adapters/postgres"
	messagingports "clipcast/contexts/community/messaging-service/ports"
	sessionservice "clipcast/contexts/community/session-service"
	sessionpostgres "clipcast/contexts/community/session-service/adapters/postgres"
	sessionworkers "clipcast/contexts/community/session-service/application/workers"
	blueprintservice "clipcast/contexts/content/blueprint-service"
	blueprintpostgres "clipcast/contexts/content/blueprint-service/adapters/postgres"
	submissionservice "clipcast/contexts/content/submission-service"
	submissionpostgres "clipcast/contexts/content/submission-service/adapters/postgres"
	submissionworkers "clipcast/contexts/content/submission-service/application/workers"
	walletservice "clipcast/contexts/finance/wallet-service"
	walletpostgres "clipcast/contexts/finance/wallet-service/adapters/postgres"
	discordservice "clipcast/contexts/integrations/discord-service"
	discordadapter "clipcast/contexts/integrations/discord-service/adapters/discord"
	discordpostgres "clipcast/contexts/integrations/discord-service/adapters/postgres"
	discordports "clipcast/contexts/integrations/discord-service/ports"
	brandservice "clipcast/contexts/marketplace/brand-service"
	brandpostgres "clipcast/contexts/marketplace/brand-service/adapters/postgres"
	campaignservice "clipcast/contexts/marketplace/campaign-service"
	campaignpostgres "clipcast/contexts/marketplace/campaign-service/adapters/postgres"
	pipelineservice "clipcast/contexts/sales/pipeline-service"
	pipelinepostgres "clipcast/contexts/sales/pipeline-service/adapters/postgres"
	"clipcast/internal/platform/cache"
	"clipcast/internal/platform/config"
	"clipcast/internal/platform/db"
	"clipcast/internal/platform/httpserver"
	"clipcast/internal/platform/messaging"
	"clipcast/internal/platform/realtime"
	"clipcast/internal/platform/storage"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so context code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	outboxRelay   submissionworkers.OutboxRelay
	expirer       sessionworkers.SessionExpirer
	enableRelay   bool
	enableExpirer bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	redis, err := cache.Connect(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, err
	}

	media, err := storage.New(cfg.StorageRoot, logger)
	if err != nil {
		return nil, err
	}

	brandRepo, err := brandpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	blueprintRepo, err := blueprintpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	directoryRepo, err := directorypostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	messagingRepo, err := messagingpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	sessionRepo, err := sessionpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	walletRepo, err := walletpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	discordRepo, err := discordpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	pipelineRepo := pipelinepostgres.NewRepository(pg.DB, logger)

	brandModule := brandservice.NewModule(brandservice.Dependencies{
		Repository: brandRepo,
		Clock:      brandpostgres.SystemClock{},
		IDGen:      brandpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	roles := brandRoles{brands: brandModule.Service}

	// Campaign and submission each consume the other's service, so the
	// purger is bound after both modules exist.
	purger := &submissionPurger{}
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:     campaignRepo,
		Boosts:        campaignRepo,
		Bookmarks:     campaignRepo,
		Roles:         roles,
		Subscriptions: brandModule.Service,
		Submissions:   purger,
		Clock:         campaignpostgres.SystemClock{},
		IDGen:         campaignpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: submissionRepo,
		Outbox:     submissionRepo,
		Brands:     campaignBrands{campaigns: campaignModule.Service},
		Roles:      roles,
		Clock:      submissionpostgres.SystemClock{},
		IDGen:      submissionpostgres.UUIDGenerator{},
		Logger:     logger,
	})
	purger.submissions = submissionModule.Service

	blueprintModule := blueprintservice.NewModule(blueprintservice.Dependencies{
		Repository: blueprintRepo,
		Media:      media,
		Roles:      roles,
		Clock:      blueprintpostgres.SystemClock{},
		IDGen:      blueprintpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	admins := profileAdminGate{profiles: directoryRepo}
	directoryModule := userdirectoryservice.NewModule(userdirectoryservice.Dependencies{
		Repository: directoryRepo,
		Admins:     admins,
		Clock:      directorypostgres.SystemClock{},
		IDGen:      directorypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	pipelineModule := pipelineservice.NewModule(pipelineservice.Dependencies{
		Repository: pipelineRepo,
		Admins:     admins,
		Clock:      pipelinepostgres.SystemClock{},
		IDGen:      pipelinepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	var hub *realtime.Hub
	var publisher messagingports.Publisher
	if cfg.EnableRealtimeMessages {
		hub = realtime.NewHub(logger)
		publisher = conversationPublisher{hub: hub}
	}
	messagingModule := messagingservice.NewModule(messagingservice.Dependencies{
		Repository: messagingRepo,
		Roles:      roles,
		Realtime:   publisher,
		Unread:     redis,
		Clock:      messagingpostgres.SystemClock{},
		IDGen:      messagingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Repository:   sessionRepo,
		Participants: profileParticipants{profiles: directoryRepo},
		Clock:        sessionpostgres.SystemClock{},
		IDGen:        sessionpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	walletModule := walletservice.NewModule(walletservice.Dependencies{
		Repository:     walletRepo,
		Cooldowns:      redis,
		Admins:         admins,
		CooldownWindow: cfg.PayoutSettingsCooldown,
		Clock:          walletpostgres.SystemClock{},
		IDGen:          walletpostgres.UUIDGenerator{},
		Logger:         logger,
	})

	var fetcher discordports.RoleFetcher
	if strings.TrimSpace(cfg.DiscordBotToken) != "" {
		roleFetcher, err := discordadapter.NewRoleFetcher(cfg.DiscordBotToken)
		if err != nil {
			return nil, err
		}
		fetcher = roleFetcher
	}
	discordModule := discordservice.NewModule(discordservice.Dependencies{
		Repository: discordRepo,
		Fetcher:    fetcher,
		Cache:      redis,
		Roles:      roles,
		Clock:      discordpostgres.SystemClock{},
		Logger:     logger,
	})

	server := httpserver.New(
		httpserver.Modules{
			Brands:      brandModule,
			Campaigns:   campaignModule,
			Submissions: submissionModule,
			Blueprints:  blueprintModule,
			Pipeline:    pipelineModule,
			Directory:   directoryModule,
			Messaging:   messagingModule,
			Sessions:    sessionModule,
			Wallets:     walletModule,
			Discord:     discordModule,
		},
		hub,
		httpserver.NewAuthenticator(cfg.JWTSecret),
		cfg.StorageRoot,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redis,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	sessionRepo, err := sessionpostgres.NewRepository(pg.DB)
	if err != nil {
		return nil, err
	}
	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Repository: sessionRepo,
		Clock:      sessionpostgres.SystemClock{},
		IDGen:      sessionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: submissionworkers.OutboxRelay{
			Outbox:    submissionRepo,
			Publisher: messaging.NewBus(logger),
			Clock:     submissionpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		expirer: sessionworkers.SessionExpirer{
			Service: sessionModule.Service,
			Logger:  logger,
		},
		enableRelay:   cfg.EnableOutboxRelay,
		enableExpirer: cfg.EnableSessionExpirer,
		pollInterval:  2 * time.Second,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay", w.enableRelay,
		"session_expirer", w.enableExpirer,
	)

	for {
		if w.enableExpirer {
			if err := w.expirer.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
