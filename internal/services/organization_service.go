package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/caching"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

const invitationTTL = 7 * 24 * time.Hour

type OrganizationService interface {
	// Onboard creates an organization and makes the creating user its owner.
	// This is the NoOrg -> WithOrg transition for a fresh account.
	Onboard(ctx context.Context, userID uuid.UUID, req *CreateOrganizationRequest) (*models.Organization, error)
	GetByID(ctx context.Context, organizationID uuid.UUID) (*models.Organization, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error)
	Update(ctx context.Context, actorID uuid.UUID, req *UpdateOrganizationRequest) error
	Delete(ctx context.Context, actorID, organizationID uuid.UUID) error

	Invite(ctx context.Context, actorID, organizationID uuid.UUID, email, role string) (*models.Invitation, error)
	AcceptInvitation(ctx context.Context, userID uuid.UUID, userEmail string, invitationID uuid.UUID) (*models.Member, error)
	CancelInvitation(ctx context.Context, actorID, organizationID, invitationID uuid.UUID) error
	ListInvitations(ctx context.Context, actorID, organizationID uuid.UUID) ([]*models.Invitation, error)

	ListMembers(ctx context.Context, actorID, organizationID uuid.UUID) ([]*models.Member, error)
	UpdateMemberRole(ctx context.Context, actorID, organizationID, memberID uuid.UUID, role string) error
	RemoveMember(ctx context.Context, actorID, organizationID, memberID uuid.UUID) error
}

type organizationService struct {
	orgRepo        repositories.OrganizationRepository
	memberRepo     repositories.MemberRepository
	invitationRepo repositories.InvitationRepository
	authzSvc       AuthzService
	notificationSvc NotificationService
	cacheSvc       caching.CacheService
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, memberRepo repositories.MemberRepository, invitationRepo repositories.InvitationRepository, authzSvc AuthzService, notificationSvc NotificationService, cacheSvc caching.CacheService) OrganizationService {
	return &organizationService{
		orgRepo:        orgRepo,
		memberRepo:     memberRepo,
		invitationRepo: invitationRepo,
		authzSvc:       authzSvc,
		notificationSvc: notificationSvc,
		cacheSvc:       cacheSvc,
	}
}

type CreateOrganizationRequest struct {
	Name      string  `json:"name" validate:"required"`
	Slug      string  `json:"slug" validate:"required"`
	GSTIN     *string `json:"gstin"`
	StateCode *string `json:"state_code"`
	Address   *string `json:"address"`
}

type UpdateOrganizationRequest struct {
	ID        uuid.UUID
	Name      string  `json:"name" validate:"required"`
	Slug      string  `json:"slug" validate:"required"`
	GSTIN     *string `json:"gstin"`
	StateCode *string `json:"state_code"`
	Address   *string `json:"address"`
}

func (s *organizationService) Onboard(ctx context.Context, userID uuid.UUID, req *CreateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, common.Invalidf("", "name and slug are required")
	}
	if strings.TrimSpace(req.Slug) != req.Slug || strings.Contains(req.Slug, " ") {
		return nil, common.Invalidf("slug", "cannot have spaces")
	}
	if req.GSTIN != nil {
		if err := common.ValidateGSTIN(*req.GSTIN, "gstin"); err != nil {
			return nil, err
		}
	}

	org := &models.Organization{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      strings.ToLower(req.Slug),
		GSTIN:     req.GSTIN,
		StateCode: req.StateCode,
		Address:   req.Address,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, common.SecureErrorMessage("create organization", err)
	}

	member := &models.Member{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: org.ID,
		Role:           models.RoleOwner,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, common.SecureErrorMessage("create owner membership", err)
	}

	// The new organization becomes the active one
	if _, err := s.authzSvc.SwitchOrganization(ctx, userID, org.ID); err != nil {
		log.Printf("Failed to activate new organization %s for user %s: %v", org.ID, userID, err)
	}

	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, organizationID uuid.UUID) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, organizationID)
}

func (s *organizationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error) {
	return s.orgRepo.ListByUser(ctx, userID)
}

func (s *organizationService) Update(ctx context.Context, actorID uuid.UUID, req *UpdateOrganizationRequest) error {
	// Company settings changes are owner/admin only
	if _, err := s.authzSvc.Authorize(ctx, actorID, req.ID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}

	if req.GSTIN != nil {
		if err := common.ValidateGSTIN(*req.GSTIN, "gstin"); err != nil {
			return err
		}
	}

	org, err := s.orgRepo.GetByID(ctx, req.ID)
	if err != nil {
		return common.SecureErrorMessage("load organization", err)
	}

	org.Name = req.Name
	org.Slug = strings.ToLower(req.Slug)
	org.GSTIN = req.GSTIN
	org.StateCode = req.StateCode
	org.Address = req.Address

	return s.orgRepo.Update(ctx, org)
}

func (s *organizationService) Delete(ctx context.Context, actorID, organizationID uuid.UUID) error {
	// Only the owner may delete an organization; members, invitations and all
	// scoped business data cascade with it.
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(ctx, organizationID); err != nil {
		return common.SecureErrorMessage("delete organization", err)
	}

	if err := s.cacheSvc.InvalidateOrganizationCache(ctx, organizationID); err != nil {
		log.Printf("Failed to invalidate cache for deleted organization %s: %v", organizationID, err)
	}
	_ = s.authzSvc.ClearSession(ctx, actorID)

	return nil
}

func (s *organizationService) Invite(ctx context.Context, actorID, organizationID uuid.UUID, email, role string) (*models.Invitation, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return nil, err
	}
	if err := common.ValidateRole(role); err != nil {
		return nil, err
	}
	// Ownership is transferred deliberately, never granted over email
	if role == models.RoleOwner {
		return nil, common.Invalidf("role", "cannot invite a user as owner")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.invitationRepo.GetPendingByEmailAndOrganization(ctx, email, organizationID); err == nil && existing != nil {
		return nil, common.Invalidf("email", "an invitation for %s is already pending", email)
	}

	invitation := &models.Invitation{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Email:          email,
		Role:           role,
		Status:         models.InvitationPending,
		InviterID:      actorID,
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, common.SecureErrorMessage("create invitation", err)
	}

	// Delivery failures do not roll back the invitation
	if err := s.notificationSvc.SendInvitationEmail(ctx, organizationID, email, invitation.ID); err != nil {
		log.Printf("Failed to send invitation email to %s: %v", email, err)
	}

	return invitation, nil
}

func (s *organizationService) AcceptInvitation(ctx context.Context, userID uuid.UUID, userEmail string, invitationID uuid.UUID) (*models.Member, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, ErrForbidden
	}

	if invitation.Status != models.InvitationPending {
		return nil, common.Invalidf("", "invitation is no longer valid")
	}
	if time.Now().After(invitation.ExpiresAt) {
		_ = s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationExpired)
		return nil, common.Invalidf("", "invitation has expired")
	}
	// The invitation is bound to the invited address
	if !strings.EqualFold(invitation.Email, userEmail) {
		return nil, ErrForbidden
	}

	member := &models.Member{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: invitation.OrganizationID,
		Role:           invitation.Role,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, common.SecureErrorMessage("create membership", err)
	}

	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationAccepted); err != nil {
		log.Printf("Failed to mark invitation %s accepted: %v", invitationID, err)
	}

	// The joined organization becomes the active one
	if _, err := s.authzSvc.SwitchOrganization(ctx, userID, invitation.OrganizationID); err != nil {
		log.Printf("Failed to activate organization %s for user %s: %v", invitation.OrganizationID, userID, err)
	}

	return member, nil
}

func (s *organizationService) CancelInvitation(ctx context.Context, actorID, organizationID, invitationID uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return common.SecureErrorMessage("load invitation", err)
	}
	if invitation.OrganizationID != organizationID {
		return ErrForbidden
	}

	return s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationCancelled)
}

func (s *organizationService) ListInvitations(ctx context.Context, actorID, organizationID uuid.UUID) ([]*models.Invitation, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.invitationRepo.ListByOrganization(ctx, organizationID)
}

func (s *organizationService) ListMembers(ctx context.Context, actorID, organizationID uuid.UUID) ([]*models.Member, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByOrganization(ctx, organizationID)
}

func (s *organizationService) UpdateMemberRole(ctx context.Context, actorID, organizationID, memberID uuid.UUID, role string) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner); err != nil {
		return err
	}
	if err := common.ValidateRole(role); err != nil {
		return err
	}

	member, err := s.memberRepo.GetByID(ctx, organizationID, memberID)
	if err != nil {
		return common.SecureErrorMessage("load member", err)
	}

	// An organization always keeps at least one owner
	if member.Role == models.RoleOwner && role != models.RoleOwner {
		owners, err := s.memberRepo.CountByRole(ctx, organizationID, models.RoleOwner)
		if err != nil {
			return common.SecureErrorMessage("count owners", err)
		}
		if owners <= 1 {
			return common.Invalidf("", "cannot demote the last owner")
		}
	}

	return s.memberRepo.UpdateRole(ctx, organizationID, memberID, role)
}

func (s *organizationService) RemoveMember(ctx context.Context, actorID, organizationID, memberID uuid.UUID) error {
	actor, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.GetByID(ctx, organizationID, memberID)
	if err != nil {
		return common.SecureErrorMessage("load member", err)
	}

	// Admins cannot remove owners
	if member.Role == models.RoleOwner && actor.Role != models.RoleOwner {
		return ErrForbidden
	}
	if member.Role == models.RoleOwner {
		owners, err := s.memberRepo.CountByRole(ctx, organizationID, models.RoleOwner)
		if err != nil {
			return common.SecureErrorMessage("count owners", err)
		}
		if owners <= 1 {
			return common.Invalidf("", "cannot remove the last owner")
		}
	}

	if err := s.memberRepo.Delete(ctx, organizationID, memberID); err != nil {
		return common.SecureErrorMessage("remove member", err)
	}

	// The removed user's session must not keep pointing at this organization
	_ = s.authzSvc.ClearSession(ctx, member.UserID)

	return nil
}
