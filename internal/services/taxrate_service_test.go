package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type TaxRateServiceTestSuite struct {
	suite.Suite
	mockTaxRateRepo *MockTaxRateRepository
	mockAuthz       *MockAuthzService
	service         TaxRateService

	userID uuid.UUID
	orgID  uuid.UUID
	admin  *models.Member
}

func (suite *TaxRateServiceTestSuite) SetupTest() {
	suite.mockTaxRateRepo = &MockTaxRateRepository{}
	suite.mockAuthz = &MockAuthzService{}
	suite.service = NewTaxRateService(suite.mockTaxRateRepo, suite.mockAuthz)

	suite.userID = uuid.New()
	suite.orgID = uuid.New()
	suite.admin = &models.Member{ID: uuid.New(), UserID: suite.userID, OrganizationID: suite.orgID, Role: models.RoleAdmin}
}

func (suite *TaxRateServiceTestSuite) TearDownTest() {
	suite.mockTaxRateRepo.AssertExpectations(suite.T())
	suite.mockAuthz.AssertExpectations(suite.T())
}

func TestTaxRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxRateServiceTestSuite))
}

func (suite *TaxRateServiceTestSuite) taxRate(rate, cgst, sgst, igst float64) *models.TaxRate {
	return &models.TaxRate{
		OrganizationID: suite.orgID,
		Name:           "GST Test",
		Rate:           rate,
		CGSTRate:       cgst,
		SGSTRate:       sgst,
		IGSTRate:       igst,
	}
}

func (suite *TaxRateServiceTestSuite) TestCreate_ValidSlabs() {
	ctx := context.Background()

	slabs := [][4]float64{
		{0, 0, 0, 0},
		{0.25, 0.125, 0.125, 0.25},
		{3, 1.5, 1.5, 3},
		{5, 2.5, 2.5, 5},
		{12, 6, 6, 12},
		{18, 9, 9, 18},
		{28, 14, 14, 28},
	}

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil).Times(len(slabs))
	suite.mockTaxRateRepo.On("Create", ctx, mock.AnythingOfType("*models.TaxRate")).Return(nil).Times(len(slabs))

	for _, s := range slabs {
		taxRate := suite.taxRate(s[0], s[1], s[2], s[3])
		err := suite.service.Create(ctx, suite.userID, taxRate)
		suite.NoError(err, "slab %v", s[0])
		suite.NotEqual(uuid.Nil, taxRate.ID)
	}
}

func (suite *TaxRateServiceTestSuite) TestCreate_RejectsNonSlabRate() {
	ctx := context.Background()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil)

	err := suite.service.Create(ctx, suite.userID, suite.taxRate(15, 7.5, 7.5, 15))
	suite.Error(err)
}

func (suite *TaxRateServiceTestSuite) TestCreate_RejectsInconsistentSplit() {
	ctx := context.Background()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil).Twice()

	// CGST + SGST does not add up to the rate
	err := suite.service.Create(ctx, suite.userID, suite.taxRate(18, 9, 8, 18))
	suite.Error(err)

	// IGST differs from the rate
	err = suite.service.Create(ctx, suite.userID, suite.taxRate(18, 9, 9, 12))
	suite.Error(err)
}

func (suite *TaxRateServiceTestSuite) TestCreate_RejectsNegativeComponent() {
	ctx := context.Background()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil)

	err := suite.service.Create(ctx, suite.userID, suite.taxRate(0, -1, 1, 0))
	suite.Error(err)
}

func (suite *TaxRateServiceTestSuite) TestCreate_MemberDenied() {
	ctx := context.Background()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(nil, ErrForbidden)

	err := suite.service.Create(ctx, suite.userID, suite.taxRate(18, 9, 9, 18))
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *TaxRateServiceTestSuite) TestUpdate_MissingRateFails() {
	ctx := context.Background()
	taxRate := suite.taxRate(5, 2.5, 2.5, 5)
	taxRate.ID = uuid.New()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil)
	suite.mockTaxRateRepo.On("GetByID", ctx, suite.orgID, taxRate.ID).Return(nil, errors.New("no rows in result set"))

	err := suite.service.Update(ctx, suite.userID, taxRate)
	suite.Error(err)
}

func (suite *TaxRateServiceTestSuite) TestDelete() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID, models.RoleOwner, models.RoleAdmin).Return(suite.admin, nil)
	suite.mockTaxRateRepo.On("Delete", ctx, suite.orgID, id).Return(nil)

	err := suite.service.Delete(ctx, suite.userID, suite.orgID, id)
	suite.NoError(err)
}
