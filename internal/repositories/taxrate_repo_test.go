package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type TaxRateRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      TaxRateRepository
	orgID1    uuid.UUID
	orgID2    uuid.UUID
	taxRateID uuid.UUID
	context   context.Context
}

func (suite *TaxRateRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTaxRateRepository(mock)
	suite.orgID1 = uuid.New()
	suite.orgID2 = uuid.New()
	suite.taxRateID = uuid.New()
	suite.context = context.Background()
}

func (suite *TaxRateRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTaxRateRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TaxRateRepoTestSuite))
}

func (suite *TaxRateRepoTestSuite) TestCreate_Success() {
	taxRate := &models.TaxRate{
		ID:             suite.taxRateID,
		OrganizationID: suite.orgID1,
		Name:           "GST 18%",
		Rate:           18,
		CGSTRate:       9,
		SGSTRate:       9,
		IGSTRate:       18,
	}

	suite.mock.ExpectExec(`
			INSERT INTO tax_rates \(id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, NOW\(\), NOW\(\)\)
		`).WithArgs(taxRate.ID, taxRate.OrganizationID, taxRate.Name, taxRate.Rate, taxRate.CGSTRate, taxRate.SGSTRate, taxRate.IGSTRate, taxRate.IsCompositionScheme).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, taxRate)
	assert.NoError(suite.T(), err)
}

func (suite *TaxRateRepoTestSuite) TestCreate_DatabaseError() {
	taxRate := &models.TaxRate{
		ID:             suite.taxRateID,
		OrganizationID: suite.orgID1,
		Name:           "GST 5%",
		Rate:           5,
		CGSTRate:       2.5,
		SGSTRate:       2.5,
		IGSTRate:       5,
	}

	suite.mock.ExpectExec(`
			INSERT INTO tax_rates \(id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, NOW\(\), NOW\(\)\)
		`).WithArgs(taxRate.ID, taxRate.OrganizationID, taxRate.Name, taxRate.Rate, taxRate.CGSTRate, taxRate.SGSTRate, taxRate.IGSTRate, taxRate.IsCompositionScheme).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, taxRate)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *TaxRateRepoTestSuite) TestGetByID_Success() {
	now := time.Now()

	suite.mock.ExpectQuery(`
			SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
			FROM tax_rates
			WHERE organization_id = \$1 AND id = \$2
		`).WithArgs(suite.orgID1, suite.taxRateID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "name", "rate", "cgst_rate", "sgst_rate", "igst_rate", "is_composition_scheme", "created_at", "updated_at"}).
			AddRow(suite.taxRateID, suite.orgID1, "GST 12%", 12.0, 6.0, 6.0, 12.0, false, now, now))

	result, err := suite.repo.GetByID(suite.context, suite.orgID1, suite.taxRateID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.taxRateID, result.ID)
	assert.Equal(suite.T(), 12.0, result.Rate)
	assert.Equal(suite.T(), 6.0, result.CGSTRate)
}

func (suite *TaxRateRepoTestSuite) TestGetByID_WrongOrganization() {
	suite.mock.ExpectQuery(`
			SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
			FROM tax_rates
			WHERE organization_id = \$1 AND id = \$2
		`).WithArgs(suite.orgID2, suite.taxRateID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.orgID2, suite.taxRateID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), result)
}

func (suite *TaxRateRepoTestSuite) TestUpdate_ScopedToOrganization() {
	taxRate := &models.TaxRate{
		ID:             suite.taxRateID,
		OrganizationID: suite.orgID1,
		Name:           "GST 28%",
		Rate:           28,
		CGSTRate:       14,
		SGSTRate:       14,
		IGSTRate:       28,
	}

	suite.mock.ExpectExec(`
			UPDATE tax_rates
			SET name = \$1, rate = \$2, cgst_rate = \$3, sgst_rate = \$4, igst_rate = \$5, is_composition_scheme = \$6, updated_at = NOW\(\)
			WHERE organization_id = \$7 AND id = \$8
		`).WithArgs(taxRate.Name, taxRate.Rate, taxRate.CGSTRate, taxRate.SGSTRate, taxRate.IGSTRate, taxRate.IsCompositionScheme, taxRate.OrganizationID, taxRate.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, taxRate)
	assert.NoError(suite.T(), err)
}

func (suite *TaxRateRepoTestSuite) TestDelete_WrongOrganizationNoRows() {
	suite.mock.ExpectExec(`DELETE FROM tax_rates WHERE organization_id = \$1 AND id = \$2`).
		WithArgs(suite.orgID2, suite.taxRateID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.orgID2, suite.taxRateID)
	assert.NoError(suite.T(), err)
}

func (suite *TaxRateRepoTestSuite) TestList_OrderedByRate() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "organization_id", "name", "rate", "cgst_rate", "sgst_rate", "igst_rate", "is_composition_scheme", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.orgID1, "GST 5%", 5.0, 2.5, 2.5, 5.0, false, now, now).
		AddRow(uuid.New(), suite.orgID1, "GST 18%", 18.0, 9.0, 9.0, 18.0, false, now, now)

	suite.mock.ExpectQuery(`
			SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
			FROM tax_rates
			WHERE organization_id = \$1
			ORDER BY rate ASC
		`).WithArgs(suite.orgID1).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.orgID1)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "GST 5%", result[0].Name)
	assert.Equal(suite.T(), "GST 18%", result[1].Name)
}

func (suite *TaxRateRepoTestSuite) TestList_EmptyResult() {
	rows := pgxmock.NewRows([]string{"id", "organization_id", "name", "rate", "cgst_rate", "sgst_rate", "igst_rate", "is_composition_scheme", "created_at", "updated_at"})

	suite.mock.ExpectQuery(`
			SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
			FROM tax_rates
			WHERE organization_id = \$1
			ORDER BY rate ASC
		`).WithArgs(suite.orgID1).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.orgID1)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}
