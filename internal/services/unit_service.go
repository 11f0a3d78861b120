package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type UnitService interface {
	Create(ctx context.Context, actorID uuid.UUID, unit *models.Unit) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Unit, error)
	Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Unit, error)

	CreateConversion(ctx context.Context, actorID uuid.UUID, conversion *models.UnitConversion) error
	ListConversions(ctx context.Context, organizationID, unitID uuid.UUID) ([]*models.UnitConversion, error)
	DeleteConversion(ctx context.Context, actorID, organizationID, id uuid.UUID) error
}

type unitService struct {
	unitRepo repositories.UnitRepository
	authzSvc AuthzService
}

func NewUnitService(unitRepo repositories.UnitRepository, authzSvc AuthzService) UnitService {
	return &unitService{
		unitRepo: unitRepo,
		authzSvc: authzSvc,
	}
}

func (s *unitService) Create(ctx context.Context, actorID uuid.UUID, unit *models.Unit) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, unit.OrganizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(unit.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(unit.Symbol, "symbol"); err != nil {
		return err
	}
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return common.SecureErrorMessage("create unit", err)
	}
	return nil
}

func (s *unitService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Unit, error) {
	return s.unitRepo.GetByID(ctx, organizationID, id)
}

func (s *unitService) Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.unitRepo.Delete(ctx, organizationID, id); err != nil {
		return common.SecureErrorMessage("delete unit", err)
	}
	return nil
}

func (s *unitService) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Unit, error) {
	return s.unitRepo.List(ctx, organizationID)
}

func (s *unitService) CreateConversion(ctx context.Context, actorID uuid.UUID, conversion *models.UnitConversion) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, conversion.OrganizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	// A conversion factor must scale, not erase or flip sign
	if conversion.ConversionFactor.Cmp(decimal.Zero) <= 0 {
		return common.Invalidf("conversion_factor", "must be greater than zero")
	}
	if conversion.UnitID == conversion.ToUnitID {
		return common.Invalidf("to_unit_id", "cannot convert a unit to itself")
	}
	// Both ends of the conversion must exist in this organization
	if _, err := s.unitRepo.GetByID(ctx, conversion.OrganizationID, conversion.UnitID); err != nil {
		return common.SecureErrorMessage("load base unit", err)
	}
	if _, err := s.unitRepo.GetByID(ctx, conversion.OrganizationID, conversion.ToUnitID); err != nil {
		return common.SecureErrorMessage("load target unit", err)
	}
	if conversion.ID == uuid.Nil {
		conversion.ID = uuid.New()
	}
	if err := s.unitRepo.CreateConversion(ctx, conversion); err != nil {
		return common.SecureErrorMessage("create unit conversion", err)
	}
	return nil
}

func (s *unitService) ListConversions(ctx context.Context, organizationID, unitID uuid.UUID) ([]*models.UnitConversion, error) {
	return s.unitRepo.ListConversionsByUnit(ctx, organizationID, unitID)
}

func (s *unitService) DeleteConversion(ctx context.Context, actorID, organizationID, id uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.unitRepo.DeleteConversion(ctx, organizationID, id); err != nil {
		return common.SecureErrorMessage("delete unit conversion", err)
	}
	return nil
}
