package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CampaignDTO struct {
	CampaignID  string   `json:"campaign_id"`
	BrandID     string   `json:"brand_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	Platforms   []string `json:"platforms"`
	Status      string   `json:"status"`
	BlueprintID string   `json:"blueprint_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type BoostDTO struct {
	BoostID         string   `json:"boost_id"`
	BrandID         string   `json:"brand_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MonthlyRetainer float64  `json:"monthly_retainer"`
	VideosPerMonth  int      `json:"videos_per_month"`
	Platforms       []string `json:"platforms"`
	Status          string   `json:"status"`
	BlueprintID     string   `json:"blueprint_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ApplicationDTO struct {
	ApplicationID  string `json:"application_id"`
	BoostID        string `json:"boost_id"`
	CreatorID      string `json:"creator_id"`
	Pitch          string `json:"pitch"`
	Status         string `json:"status"`
	ContractStatus string `json:"contract_status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type ParticipantDTO struct {
	ParticipantID string `json:"participant_id"`
	CampaignID    string `json:"campaign_id"`
	CreatorID     string `json:"creator_id"`
	JoinedAt      string `json:"joined_at"`
}

type BookmarkDTO struct {
	BookmarkID string `json:"bookmark_id"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
	CreatedAt  string `json:"created_at"`
}

type CreateCampaignRequest struct {
	BrandID     string   `json:"brand_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	Platforms   []string `json:"platforms"`
	BlueprintID string   `json:"blueprint_id"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type UpdateCampaignRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	Platforms   []string `json:"platforms"`
	BlueprintID *string  `json:"blueprint_id"`
}

type UpdateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type DiscoverResponse struct {
	Campaigns []CampaignDTO `json:"campaigns"`
	Boosts    []BoostDTO    `json:"boosts"`
}

type CreateBoostRequest struct {
	BrandID         string   `json:"brand_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MonthlyRetainer float64  `json:"monthly_retainer"`
	VideosPerMonth  int      `json:"videos_per_month"`
	Platforms       []string `json:"platforms"`
	BlueprintID     string   `json:"blueprint_id"`
}

type CreateBoostResponse struct {
	Boost BoostDTO `json:"boost"`
}

type GetBoostResponse struct {
	Boost BoostDTO `json:"boost"`
}

type ListBoostsResponse struct {
	Items []BoostDTO `json:"items"`
}

type ApplyToBoostRequest struct {
	Pitch string `json:"pitch"`
}

type ApplyToBoostResponse struct {
	Application ApplicationDTO `json:"application"`
}

type ReviewApplicationRequest struct {
	Accept bool `json:"accept"`
}

type ReviewApplicationResponse struct {
	Application ApplicationDTO `json:"application"`
}

type SignContractResponse struct {
	Application ApplicationDTO `json:"application"`
}

type ListApplicationsResponse struct {
	Items []ApplicationDTO `json:"items"`
}

type JoinCampaignResponse struct {
	Participant ParticipantDTO `json:"participant"`
}

type ToggleBookmarkRequest struct {
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
}

type ToggleBookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type ListBookmarksResponse struct {
	Items []BookmarkDTO `json:"items"`
}
