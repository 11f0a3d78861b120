package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type PartyService interface {
	Create(ctx context.Context, actorID uuid.UUID, party *models.Party) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Party, error)
	Update(ctx context.Context, actorID uuid.UUID, party *models.Party) error
	Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, partyType string, limit, offset int) ([]*models.Party, error)
}

type partyService struct {
	partyRepo repositories.PartyRepository
	authzSvc  AuthzService
}

func NewPartyService(partyRepo repositories.PartyRepository, authzSvc AuthzService) PartyService {
	return &partyService{
		partyRepo: partyRepo,
		authzSvc:  authzSvc,
	}
}

func validateParty(party *models.Party) error {
	if err := common.ValidateRequiredString(party.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidatePartyType(party.Type); err != nil {
		return err
	}
	if party.GSTIN != nil && *party.GSTIN != "" {
		normalized := strings.ToUpper(strings.TrimSpace(*party.GSTIN))
		if err := common.ValidateGSTIN(normalized, "gstin"); err != nil {
			return err
		}
		party.GSTIN = &normalized
	}
	return nil
}

func (s *partyService) Create(ctx context.Context, actorID uuid.UUID, party *models.Party) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, party.OrganizationID); err != nil {
		return err
	}
	if err := validateParty(party); err != nil {
		return err
	}
	if party.ID == uuid.Nil {
		party.ID = uuid.New()
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return common.SecureErrorMessage("create party", err)
	}
	return nil
}

func (s *partyService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Party, error) {
	return s.partyRepo.GetByID(ctx, organizationID, id)
}

func (s *partyService) Update(ctx context.Context, actorID uuid.UUID, party *models.Party) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, party.OrganizationID); err != nil {
		return err
	}
	if err := validateParty(party); err != nil {
		return err
	}
	existing, err := s.partyRepo.GetByID(ctx, party.OrganizationID, party.ID)
	if err != nil {
		return common.SecureErrorMessage("load party", err)
	}
	// Balance only moves through payments, never through a profile edit
	party.Balance = existing.Balance
	if err := s.partyRepo.Update(ctx, party); err != nil {
		return common.SecureErrorMessage("update party", err)
	}
	return nil
}

func (s *partyService) Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.partyRepo.Delete(ctx, organizationID, id); err != nil {
		return common.SecureErrorMessage("delete party", err)
	}
	return nil
}

func (s *partyService) List(ctx context.Context, organizationID uuid.UUID, partyType string, limit, offset int) ([]*models.Party, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	if partyType != "" {
		if err := common.ValidatePartyType(partyType); err != nil {
			return nil, err
		}
	}
	return s.partyRepo.List(ctx, organizationID, partyType, limit, offset)
}
