package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/caching"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

var (
	// ErrForbidden is returned for every denied authorization, regardless of
	// cause: missing membership, wrong role, or a failed lookup. The gate
	// fails closed and callers get no further detail.
	ErrForbidden = errors.New("forbidden")

	// ErrNoOrganization is returned when a user has no membership at all and
	// therefore no organization context to act in.
	ErrNoOrganization = errors.New("no active organization")
)

const activeOrgTTL = 24 * time.Hour

// AuthzService is the single authorization gate for organization-scoped
// actions. Every mutation handler goes through Authorize; role checks are
// never re-implemented per route.
type AuthzService interface {
	// ResolveActiveOrganization determines which organization the user is
	// currently acting in: the session-cached choice if one exists and the
	// membership is still valid, otherwise the most recent membership.
	ResolveActiveOrganization(ctx context.Context, userID uuid.UUID) (*models.Member, error)

	// Authorize resolves the user's member row for the given organization and
	// checks the role against the allowed set. An empty allowed set admits
	// any member. Denial is always ErrForbidden.
	Authorize(ctx context.Context, userID, organizationID uuid.UUID, allowedRoles ...string) (*models.Member, error)

	// SwitchOrganization changes the session's active organization after
	// verifying the user actually belongs to the target.
	SwitchOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error)

	// ClearSession drops the cached active organization on sign-out.
	ClearSession(ctx context.Context, userID uuid.UUID) error
}

type authzService struct {
	memberRepo repositories.MemberRepository
	cacheSvc   caching.CacheService
}

func NewAuthzService(memberRepo repositories.MemberRepository, cacheSvc caching.CacheService) AuthzService {
	return &authzService{
		memberRepo: memberRepo,
		cacheSvc:   cacheSvc,
	}
}

func (s *authzService) ResolveActiveOrganization(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	// Session cache first; a cache error is treated as a miss, not a denial,
	// because the member table remains the source of truth.
	cachedOrgID, err := s.cacheSvc.GetActiveOrganization(ctx, userID)
	if err == nil && cachedOrgID != uuid.Nil {
		member, err := s.memberRepo.GetByUserAndOrganization(ctx, userID, cachedOrgID)
		if err == nil {
			return member, nil
		}
		// Stale cache entry: membership revoked since it was cached.
		_ = s.cacheSvc.DeleteActiveOrganization(ctx, userID)
	}

	// Most recent membership wins as the default active organization.
	member, err := s.memberRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, ErrNoOrganization
	}

	if err := s.cacheSvc.SetActiveOrganization(ctx, userID, member.OrganizationID, activeOrgTTL); err != nil {
		// Cache failures never block resolution
		_ = err
	}

	return member, nil
}

func (s *authzService) Authorize(ctx context.Context, userID, organizationID uuid.UUID, allowedRoles ...string) (*models.Member, error) {
	if userID == uuid.Nil || organizationID == uuid.Nil {
		return nil, ErrForbidden
	}

	member, err := s.memberRepo.GetByUserAndOrganization(ctx, userID, organizationID)
	if err != nil {
		// Fail closed: lookup errors and missing memberships deny alike
		return nil, ErrForbidden
	}

	if len(allowedRoles) == 0 {
		return member, nil
	}

	for _, role := range allowedRoles {
		if member.Role == role {
			return member, nil
		}
	}

	return nil, ErrForbidden
}

func (s *authzService) SwitchOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error) {
	member, err := s.Authorize(ctx, userID, organizationID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetActiveOrganization(ctx, userID, organizationID, activeOrgTTL); err != nil {
		return nil, fmt.Errorf("failed to update active organization: %w", err)
	}

	return member, nil
}

func (s *authzService) ClearSession(ctx context.Context, userID uuid.UUID) error {
	return s.cacheSvc.DeleteActiveOrganization(ctx, userID)
}
