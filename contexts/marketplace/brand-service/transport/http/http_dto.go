package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BrandDTO struct {
	BrandID               string  `json:"brand_id"`
	Name                  string  `json:"name"`
	Slug                  string  `json:"slug"`
	LogoURL               string  `json:"logo_url"`
	BannerURL             string  `json:"banner_url"`
	Verified              bool    `json:"verified"`
	SubscriptionStatus    string  `json:"subscription_status"`
	SubscriptionPlan      string  `json:"subscription_plan"`
	SubscriptionExpiresAt string  `json:"subscription_expires_at,omitempty"`
	PayoutHoldingDays     int     `json:"payout_holding_days"`
	PayoutMinimumAmount   float64 `json:"payout_minimum_amount"`
	CreatedAt             string  `json:"created_at"`
}

type MemberDTO struct {
	MemberID  string `json:"member_id"`
	BrandID   string `json:"brand_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	InvitedBy string `json:"invited_by,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreateBrandRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateBrandResponse struct {
	Brand BrandDTO `json:"brand"`
}

type GetBrandResponse struct {
	Brand BrandDTO `json:"brand"`
}

type ListBrandsResponse struct {
	Items []BrandDTO `json:"items"`
}

type UpdateBrandRequest struct {
	Name                *string  `json:"name"`
	LogoURL             *string  `json:"logo_url"`
	BannerURL           *string  `json:"banner_url"`
	PayoutHoldingDays   *int     `json:"payout_holding_days"`
	PayoutMinimumAmount *float64 `json:"payout_minimum_amount"`
}

type UpdateBrandResponse struct {
	Brand BrandDTO `json:"brand"`
}

type ListMembersResponse struct {
	Items []MemberDTO `json:"items"`
}

type CreateInviteRequest struct {
	Role string `json:"role"`
}

type CreateInviteResponse struct {
	Token string `json:"token"`
}

type JoinBrandRequest struct {
	Token string `json:"token"`
}

type JoinBrandResponse struct {
	Member MemberDTO `json:"member"`
}

type ChangeMemberRoleRequest struct {
	Role string `json:"role"`
}

type ChangeMemberRoleResponse struct {
	Member MemberDTO `json:"member"`
}
