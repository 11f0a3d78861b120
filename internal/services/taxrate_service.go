package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

// splitTolerance absorbs float representation noise when checking that the
// stored CGST/SGST/IGST components add back up to the nominal rate.
const splitTolerance = 1e-9

type TaxRateService interface {
	Create(ctx context.Context, actorID uuid.UUID, taxRate *models.TaxRate) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.TaxRate, error)
	Update(ctx context.Context, actorID uuid.UUID, taxRate *models.TaxRate) error
	Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.TaxRate, error)
}

type taxRateService struct {
	taxRateRepo repositories.TaxRateRepository
	authzSvc    AuthzService
}

func NewTaxRateService(taxRateRepo repositories.TaxRateRepository, authzSvc AuthzService) TaxRateService {
	return &taxRateService{
		taxRateRepo: taxRateRepo,
		authzSvc:    authzSvc,
	}
}

// validateTaxRate enforces the GST slab set and the split consistency rules
// at write time. Billing later applies the stored splits as-is.
func validateTaxRate(taxRate *models.TaxRate) error {
	if err := common.ValidateRequiredString(taxRate.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateGSTRateSlab(taxRate.Rate, "rate"); err != nil {
		return err
	}
	if taxRate.CGSTRate < 0 || taxRate.SGSTRate < 0 || taxRate.IGSTRate < 0 {
		return common.Invalidf("", "tax rate components cannot be negative")
	}
	if math.Abs(taxRate.CGSTRate+taxRate.SGSTRate-taxRate.Rate) > splitTolerance {
		return common.Invalidf("", "cgst_rate + sgst_rate must equal rate")
	}
	if math.Abs(taxRate.IGSTRate-taxRate.Rate) > splitTolerance {
		return common.Invalidf("", "igst_rate must equal rate")
	}
	return nil
}

func (s *taxRateService) Create(ctx context.Context, actorID uuid.UUID, taxRate *models.TaxRate) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, taxRate.OrganizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := validateTaxRate(taxRate); err != nil {
		return err
	}
	if taxRate.ID == uuid.Nil {
		taxRate.ID = uuid.New()
	}
	if err := s.taxRateRepo.Create(ctx, taxRate); err != nil {
		return common.SecureErrorMessage("create tax rate", err)
	}
	return nil
}

func (s *taxRateService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.TaxRate, error) {
	return s.taxRateRepo.GetByID(ctx, organizationID, id)
}

func (s *taxRateService) Update(ctx context.Context, actorID uuid.UUID, taxRate *models.TaxRate) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, taxRate.OrganizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := validateTaxRate(taxRate); err != nil {
		return err
	}
	if _, err := s.taxRateRepo.GetByID(ctx, taxRate.OrganizationID, taxRate.ID); err != nil {
		return common.SecureErrorMessage("load tax rate", err)
	}
	if err := s.taxRateRepo.Update(ctx, taxRate); err != nil {
		return common.SecureErrorMessage("update tax rate", err)
	}
	return nil
}

func (s *taxRateService) Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.taxRateRepo.Delete(ctx, organizationID, id); err != nil {
		return common.SecureErrorMessage("delete tax rate", err)
	}
	return nil
}

func (s *taxRateService) List(ctx context.Context, organizationID uuid.UUID) ([]*models.TaxRate, error) {
	return s.taxRateRepo.List(ctx, organizationID)
}
