package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RolePoster Role = "poster"
	RoleMember Role = "member"
)

func IsSupportedRole(value Role) bool {
	switch value {
	case RoleOwner, RoleAdmin, RolePoster, RoleMember:
		return true
	default:
		return false
	}
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Brand struct {
	BrandID               string
	Name                  string
	Slug                  string
	LogoURL               string
	BannerURL             string
	Verified              bool
	SubscriptionStatus    SubscriptionStatus
	SubscriptionPlan      string
	SubscriptionExpiresAt *time.Time
	PayoutHoldingDays     int
	PayoutMinimumAmount   float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SubscriptionCurrent reports whether the brand may use gated features:
// an active plan that has not lapsed.
func (b Brand) SubscriptionCurrent(now time.Time) bool {
	if b.SubscriptionStatus != SubscriptionActive {
		return false
	}
	if b.SubscriptionExpiresAt == nil {
		return true
	}
	return b.SubscriptionExpiresAt.UTC().After(now.UTC())
}

type Member struct {
	MemberID  string
	BrandID   string
	UserID    string
	Role      Role
	InvitedBy string
	CreatedAt time.Time
}

type Invite struct {
	InviteID  string
	BrandID   string
	TokenHash string
	Role      Role
	CreatedBy string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

type CreateBrandInput struct {
	Name    string
	Slug    string
	OwnerID string
}

type UpdateBrandInput struct {
	BrandID             string
	Name                *string
	LogoURL             *string
	BannerURL           *string
	PayoutHoldingDays   *int
	PayoutMinimumAmount *float64
}

type Repository interface {
	CreateBrand(ctx context.Context, brand Brand, owner Member) error
	GetBrand(ctx context.Context, brandID string) (Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (Brand, error)
	UpdateBrand(ctx context.Context, input UpdateBrandInput, now time.Time) (Brand, error)
	ListBrandsForUser(ctx context.Context, userID string) ([]Brand, error)

	AddMember(ctx context.Context, member Member) error
	RemoveMember(ctx context.Context, brandID string, userID string) error
	UpdateMemberRole(ctx context.Context, brandID string, userID string, role Role, now time.Time) (Member, error)
	ListMembers(ctx context.Context, brandID string) ([]Member, error)
	GetMember(ctx context.Context, brandID string, userID string) (Member, error)

	CreateInvite(ctx context.Context, invite Invite) error
	ListOpenInvites(ctx context.Context, brandID string, now time.Time) ([]Invite, error)
	MarkInviteUsed(ctx context.Context, inviteID string, now time.Time) error
}
