package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	userdirectoryservice "clipcast/contexts/admin/user-directory-service"
	messagingservice "clipcast/contexts/community/messaging-service"
	sessionservice "clipcast/contexts/community/session-service"
	blueprintservice "clipcast/contexts/content/blueprint-service"
	submissionservice "clipcast/contexts/content/submission-service"
	walletservice "clipcast/contexts/finance/wallet-service"
	discordservice "clipcast/contexts/integrations/discord-service"
	brandservice "clipcast/contexts/marketplace/brand-service"
	campaignservice "clipcast/contexts/marketplace/campaign-service"
	pipelineservice "clipcast/contexts/sales/pipeline-service"
	"clipcast/internal/platform/realtime"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Modules gathers every bounded context the API process serves.
type Modules struct {
	Brands      brandservice.Module
	Campaigns   campaignservice.Module
	Submissions submissionservice.Module
	Blueprints  blueprintservice.Module
	Pipeline    pipelineservice.Module
	Directory   userdirectoryservice.Module
	Messaging   messagingservice.Module
	Sessions    sessionservice.Module
	Wallets     walletservice.Module
	Discord     discordservice.Module
}

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	modules   Modules
	hub       *realtime.Hub
	auth      *Authenticator
	mediaRoot string
}

func New(
	modules Modules,
	hub *realtime.Hub,
	auth *Authenticator,
	mediaRoot string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if auth == nil {
		auth = NewAuthenticator("")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		modules:   modules,
		hub:       hub,
		auth:      auth,
		mediaRoot: mediaRoot,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if s.mediaRoot != "" {
		s.mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(s.mediaRoot))))
	}

	s.mux.HandleFunc("POST /api/brands", s.handleCreateBrand)
	s.mux.HandleFunc("GET /api/brands", s.handleListBrands)
	s.mux.HandleFunc("GET /api/brands/{brand_id}", s.handleGetBrand)
	s.mux.HandleFunc("GET /api/brands/slug/{slug}", s.handleGetBrandBySlug)
	s.mux.HandleFunc("PATCH /api/brands/{brand_id}", s.handleUpdateBrand)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/members", s.handleListMembers)
	s.mux.HandleFunc("POST /api/brands/{brand_id}/invites", s.handleCreateInvite)
	s.mux.HandleFunc("POST /api/brands/{brand_id}/join", s.handleJoinBrand)
	s.mux.HandleFunc("PATCH /api/brands/{brand_id}/members/{user_id}/role", s.handleChangeMemberRole)
	s.mux.HandleFunc("DELETE /api/brands/{brand_id}/members/{user_id}", s.handleRemoveMember)

	s.mux.HandleFunc("POST /api/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /api/campaigns/{campaign_id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("PATCH /api/campaigns/{campaign_id}/status", s.handleSetCampaignStatus)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/campaigns", s.handleListBrandCampaigns)
	s.mux.HandleFunc("GET /api/discover", s.handleDiscover)
	s.mux.HandleFunc("POST /api/boosts", s.handleCreateBoost)
	s.mux.HandleFunc("GET /api/boosts/{boost_id}", s.handleGetBoost)
	s.mux.HandleFunc("PATCH /api/boosts/{boost_id}/status", s.handleSetBoostStatus)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/boosts", s.handleListBrandBoosts)
	s.mux.HandleFunc("POST /api/boosts/{boost_id}/applications", s.handleApplyToBoost)
	s.mux.HandleFunc("GET /api/boosts/{boost_id}/applications", s.handleListApplications)
	s.mux.HandleFunc("POST /api/applications/{application_id}/review", s.handleReviewApplication)
	s.mux.HandleFunc("POST /api/applications/{application_id}/sign", s.handleSignContract)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/join", s.handleJoinCampaign)
	s.mux.HandleFunc("DELETE /api/campaigns/{campaign_id}/creators/{creator_id}", s.handleRemoveCreator)
	s.mux.HandleFunc("POST /api/bookmarks/toggle", s.handleToggleBookmark)
	s.mux.HandleFunc("GET /api/bookmarks", s.handleListBookmarks)

	s.mux.HandleFunc("POST /api/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /api/submissions/mine", s.handleListMySubmissions)
	s.mux.HandleFunc("GET /api/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("GET /api/sources/{source_type}/{source_id}/submissions", s.handleListSubmissionsBySource)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/platform-status", s.handleSetPlatformStatus)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/move", s.handleMoveSubmission)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/post-url", s.handleSetPostURL)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/caption", s.handleUpdateCaption)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/feedback", s.handleSetFeedback)
	s.mux.HandleFunc("PATCH /api/submissions/{submission_id}/payout", s.handleSetPayoutAmount)

	s.mux.HandleFunc("POST /api/blueprints", s.handleCreateBlueprint)
	s.mux.HandleFunc("GET /api/blueprints/{blueprint_id}", s.handleGetBlueprint)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/blueprints", s.handleListBlueprints)
	s.mux.HandleFunc("PATCH /api/blueprints/{blueprint_id}", s.handleSaveBlueprintFields)
	s.mux.HandleFunc("PATCH /api/blueprints/{blueprint_id}/sections", s.handleSetSectionLayout)
	s.mux.HandleFunc("POST /api/blueprints/{blueprint_id}/example-videos", s.handleAddExampleVideo)
	s.mux.HandleFunc("DELETE /api/blueprints/{blueprint_id}/example-videos/{video_id}", s.handleRemoveExampleVideo)
	s.mux.HandleFunc("DELETE /api/blueprints/{blueprint_id}", s.handleDeleteBlueprint)

	s.mux.HandleFunc("POST /api/deals", s.handleCreateDeal)
	s.mux.HandleFunc("GET /api/deals", s.handleListDeals)
	s.mux.HandleFunc("GET /api/deals/revenue/monthly", s.handleMonthlyRevenue)
	s.mux.HandleFunc("GET /api/deals/{deal_id}", s.handleGetDeal)
	s.mux.HandleFunc("PATCH /api/deals/{deal_id}/stage", s.handleMoveDealStage)
	s.mux.HandleFunc("PATCH /api/deals/{deal_id}", s.handleUpdateDeal)
	s.mux.HandleFunc("DELETE /api/deals/{deal_id}", s.handleDeleteDeal)

	s.mux.HandleFunc("PUT /api/users/profile", s.handleUpsertProfile)
	s.mux.HandleFunc("GET /api/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/users/{user_id}", s.handleGetProfile)
	s.mux.HandleFunc("PATCH /api/users/{user_id}/suspended", s.handleSetSuspended)
	s.mux.HandleFunc("PUT /api/users/social-accounts", s.handleUpsertSocialAccount)
	s.mux.HandleFunc("GET /api/creators", s.handleListCreators)
	s.mux.HandleFunc("GET /api/creators/export", s.handleExportCreatorsCSV)
	s.mux.HandleFunc("POST /api/demographics", s.handleSubmitDemographics)
	s.mux.HandleFunc("GET /api/demographics/pending", s.handleListPendingDemographics)
	s.mux.HandleFunc("POST /api/demographics/{submission_id}/review", s.handleReviewDemographics)

	s.mux.HandleFunc("POST /api/conversations", s.handleOpenConversation)
	s.mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	s.mux.HandleFunc("POST /api/conversations/{conversation_id}/messages", s.handleSendMessage)
	s.mux.HandleFunc("GET /api/conversations/{conversation_id}/messages", s.handleListMessages)
	s.mux.HandleFunc("POST /api/conversations/{conversation_id}/read", s.handleMarkRead)
	s.mux.HandleFunc("GET /api/conversations/{conversation_id}/unread", s.handleUnreadCount)
	s.mux.HandleFunc("GET /api/conversations/{conversation_id}/subscribe", s.handleSubscribeConversation)

	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	s.mux.HandleFunc("GET /api/sessions/{session_id}", s.handleGetSession)
	s.mux.HandleFunc("PATCH /api/sessions/{session_id}/accept", s.handleAcceptSession)
	s.mux.HandleFunc("PATCH /api/sessions/{session_id}/decline", s.handleDeclineSession)

	s.mux.HandleFunc("GET /api/wallet", s.handleGetWallet)
	s.mux.HandleFunc("POST /api/wallet/add", s.handleAddToWallet)
	s.mux.HandleFunc("POST /api/wallet/debit", s.handleDebitWallet)
	s.mux.HandleFunc("GET /api/wallet/transactions", s.handleListTransactions)
	s.mux.HandleFunc("GET /api/wallet/payout-settings", s.handleGetPayoutSettings)
	s.mux.HandleFunc("PUT /api/wallet/payout-settings", s.handleUpdatePayoutSettings)

	s.mux.HandleFunc("POST /api/brands/{brand_id}/discord/oauth-complete", s.handleCompleteDiscordOAuth)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/discord", s.handleGetDiscordConnection)
	s.mux.HandleFunc("GET /api/brands/{brand_id}/discord/roles", s.handleListGuildRoles)
	s.mux.HandleFunc("DELETE /api/brands/{brand_id}/discord", s.handleDisconnectDiscord)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
