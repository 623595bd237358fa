package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/marketplace/brand-service/domain/errors"
	"clipcast/contexts/marketplace/brand-service/ports"

	"golang.org/x/crypto/bcrypt"
)

const inviteTTL = 7 * 24 * time.Hour

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateBrand(ctx context.Context, input ports.CreateBrandInput) (ports.Brand, error) {
	name := strings.TrimSpace(input.Name)
	slug := normalizeSlug(input.Slug)
	ownerID := strings.TrimSpace(input.OwnerID)
	if name == "" || slug == "" || ownerID == "" {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	brandID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Brand{}, err
	}
	memberID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Brand{}, err
	}

	brand := ports.Brand{
		BrandID:            brandID,
		Name:               name,
		Slug:               slug,
		SubscriptionStatus: ports.SubscriptionInactive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	owner := ports.Member{
		MemberID:  memberID,
		BrandID:   brandID,
		UserID:    ownerID,
		Role:      ports.RoleOwner,
		CreatedAt: now,
	}
	if err := s.Repo.CreateBrand(ctx, brand, owner); err != nil {
		return ports.Brand{}, err
	}

	resolveLogger(s.Logger).Info("brand created",
		"event", "brand_created",
		"module", "marketplace/brand-service",
		"layer", "application",
		"brand_id", brandID,
		"owner_id", ownerID,
	)
	return brand, nil
}

func (s Service) GetBrand(ctx context.Context, brandID string) (ports.Brand, error) {
	if strings.TrimSpace(brandID) == "" {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetBrand(ctx, brandID)
}

func (s Service) GetBrandBySlug(ctx context.Context, slug string) (ports.Brand, error) {
	if strings.TrimSpace(slug) == "" {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetBrandBySlug(ctx, normalizeSlug(slug))
}

func (s Service) ListBrandsForUser(ctx context.Context, userID string) ([]ports.Brand, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListBrandsForUser(ctx, userID)
}

// UpdateBrand applies a partial settings update. Owner or admin only.
func (s Service) UpdateBrand(ctx context.Context, actorID string, input ports.UpdateBrandInput) (ports.Brand, error) {
	if strings.TrimSpace(input.BrandID) == "" {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, input.BrandID, actorID, ports.RoleOwner, ports.RoleAdmin); err != nil {
		return ports.Brand{}, err
	}
	if input.PayoutHoldingDays != nil && *input.PayoutHoldingDays < 0 {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}
	if input.PayoutMinimumAmount != nil && *input.PayoutMinimumAmount < 0 {
		return ports.Brand{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.UpdateBrand(ctx, input, s.now())
}

// RequireActiveSubscription gates features behind a current plan.
func (s Service) RequireActiveSubscription(ctx context.Context, brandID string) error {
	brand, err := s.Repo.GetBrand(ctx, brandID)
	if err != nil {
		return err
	}
	if !brand.SubscriptionCurrent(s.now()) {
		return domainerrors.ErrSubscriptionInactive
	}
	return nil
}

func (s Service) ListMembers(ctx context.Context, actorID string, brandID string) ([]ports.Member, error) {
	if _, err := s.Repo.GetMember(ctx, brandID, strings.TrimSpace(actorID)); err != nil {
		return nil, domainerrors.ErrForbidden
	}
	return s.Repo.ListMembers(ctx, brandID)
}

// CreateInvite issues a join token for a role below owner. The raw token is
// returned once; only its bcrypt hash is stored.
func (s Service) CreateInvite(ctx context.Context, actorID string, brandID string, role ports.Role) (string, error) {
	if !ports.IsSupportedRole(role) || role == ports.RoleOwner {
		return "", domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, brandID, actorID, ports.RoleOwner, ports.RoleAdmin); err != nil {
		return "", err
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	inviteID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	if err := s.Repo.CreateInvite(ctx, ports.Invite{
		InviteID:  inviteID,
		BrandID:   strings.TrimSpace(brandID),
		TokenHash: string(hash),
		Role:      role,
		CreatedBy: strings.TrimSpace(actorID),
		CreatedAt: now,
		ExpiresAt: now.Add(inviteTTL),
	}); err != nil {
		return "", err
	}
	return token, nil
}

// JoinWithInvite redeems a token against the brand's open invites.
func (s Service) JoinWithInvite(ctx context.Context, userID string, brandID string, token string) (ports.Member, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(token) == "" {
		return ports.Member{}, domainerrors.ErrInvalidRequest
	}
	if _, err := s.Repo.GetMember(ctx, brandID, userID); err == nil {
		return ports.Member{}, domainerrors.ErrMemberAlreadyExists
	}

	now := s.now()
	invites, err := s.Repo.ListOpenInvites(ctx, brandID, now)
	if err != nil {
		return ports.Member{}, err
	}
	for _, invite := range invites {
		if bcrypt.CompareHashAndPassword([]byte(invite.TokenHash), []byte(token)) != nil {
			continue
		}
		memberID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.Member{}, err
		}
		member := ports.Member{
			MemberID:  memberID,
			BrandID:   invite.BrandID,
			UserID:    userID,
			Role:      invite.Role,
			InvitedBy: invite.CreatedBy,
			CreatedAt: now,
		}
		if err := s.Repo.AddMember(ctx, member); err != nil {
			return ports.Member{}, err
		}
		if err := s.Repo.MarkInviteUsed(ctx, invite.InviteID, now); err != nil {
			return ports.Member{}, err
		}
		resolveLogger(s.Logger).Info("brand member joined",
			"event", "brand_member_joined",
			"module", "marketplace/brand-service",
			"layer", "application",
			"brand_id", invite.BrandID,
			"user_id", userID,
			"role", string(invite.Role),
		)
		return member, nil
	}
	return ports.Member{}, domainerrors.ErrInviteInvalid
}

// ChangeMemberRole is owner-only. A brand has exactly one owner: the owner
// role is assigned at creation and can be neither granted nor vacated here.
func (s Service) ChangeMemberRole(ctx context.Context, actorID string, brandID string, userID string, role ports.Role) (ports.Member, error) {
	if !ports.IsSupportedRole(role) {
		return ports.Member{}, domainerrors.ErrInvalidRequest
	}
	if err := s.requireRole(ctx, brandID, actorID, ports.RoleOwner); err != nil {
		return ports.Member{}, err
	}

	target, err := s.Repo.GetMember(ctx, brandID, userID)
	if err != nil {
		return ports.Member{}, err
	}
	if role == ports.RoleOwner && target.Role != ports.RoleOwner {
		return ports.Member{}, domainerrors.ErrOwnerExists
	}
	if target.Role == ports.RoleOwner && role != ports.RoleOwner {
		if err := s.requireAnotherOwner(ctx, brandID, userID); err != nil {
			return ports.Member{}, err
		}
	}
	return s.Repo.UpdateMemberRole(ctx, brandID, userID, role, s.now())
}

func (s Service) RemoveMember(ctx context.Context, actorID string, brandID string, userID string) error {
	if err := s.requireRole(ctx, brandID, actorID, ports.RoleOwner, ports.RoleAdmin); err != nil {
		return err
	}
	target, err := s.Repo.GetMember(ctx, brandID, userID)
	if err != nil {
		return err
	}
	if target.Role == ports.RoleOwner {
		if err := s.requireAnotherOwner(ctx, brandID, userID); err != nil {
			return err
		}
	}
	return s.Repo.RemoveMember(ctx, brandID, userID)
}

// Role resolves the caller's membership role; used by sibling contexts for
// server-side permission checks.
func (s Service) Role(ctx context.Context, brandID string, userID string) (ports.Role, error) {
	member, err := s.Repo.GetMember(ctx, brandID, userID)
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

func (s Service) requireRole(ctx context.Context, brandID string, actorID string, allowed ...ports.Role) error {
	member, err := s.Repo.GetMember(ctx, brandID, strings.TrimSpace(actorID))
	if err != nil {
		return domainerrors.ErrForbidden
	}
	for _, role := range allowed {
		if member.Role == role {
			return nil
		}
	}
	return domainerrors.ErrForbidden
}

func (s Service) requireAnotherOwner(ctx context.Context, brandID string, excludeUserID string) error {
	members, err := s.Repo.ListMembers(ctx, brandID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if member.Role == ports.RoleOwner && member.UserID != excludeUserID {
			return nil
		}
	}
	return domainerrors.ErrLastOwner
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
