package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type TaxRateRepository interface {
	Create(ctx context.Context, taxRate *models.TaxRate) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.TaxRate, error)
	Update(ctx context.Context, taxRate *models.TaxRate) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.TaxRate, error)
}

type taxRateRepo struct {
	db Database
}

func NewTaxRateRepository(db Database) TaxRateRepository {
	return &taxRateRepo{db: db}
}

func (r *taxRateRepo) Create(ctx context.Context, taxRate *models.TaxRate) error {
	query := `
		INSERT INTO tax_rates (id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, taxRate.ID, taxRate.OrganizationID, taxRate.Name, taxRate.Rate, taxRate.CGSTRate, taxRate.SGSTRate, taxRate.IGSTRate, taxRate.IsCompositionScheme)
	return err
}

func (r *taxRateRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.TaxRate, error) {
	taxRate := &models.TaxRate{}
	query := `
		SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
		FROM tax_rates
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&taxRate.ID, &taxRate.OrganizationID, &taxRate.Name, &taxRate.Rate, &taxRate.CGSTRate, &taxRate.SGSTRate, &taxRate.IGSTRate, &taxRate.IsCompositionScheme, &taxRate.CreatedAt, &taxRate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return taxRate, nil
}

func (r *taxRateRepo) Update(ctx context.Context, taxRate *models.TaxRate) error {
	query := `
		UPDATE tax_rates
		SET name = $1, rate = $2, cgst_rate = $3, sgst_rate = $4, igst_rate = $5, is_composition_scheme = $6, updated_at = NOW()
		WHERE organization_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, taxRate.Name, taxRate.Rate, taxRate.CGSTRate, taxRate.SGSTRate, taxRate.IGSTRate, taxRate.IsCompositionScheme, taxRate.OrganizationID, taxRate.ID)
	return err
}

func (r *taxRateRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM tax_rates WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *taxRateRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*models.TaxRate, error) {
	query := `
		SELECT id, organization_id, name, rate, cgst_rate, sgst_rate, igst_rate, is_composition_scheme, created_at, updated_at
		FROM tax_rates
		WHERE organization_id = $1
		ORDER BY rate ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taxRates []*models.TaxRate
	for rows.Next() {
		taxRate := &models.TaxRate{}
		if err := rows.Scan(&taxRate.ID, &taxRate.OrganizationID, &taxRate.Name, &taxRate.Rate, &taxRate.CGSTRate, &taxRate.SGSTRate, &taxRate.IGSTRate, &taxRate.IsCompositionScheme, &taxRate.CreatedAt, &taxRate.UpdatedAt); err != nil {
			return nil, err
		}
		taxRates = append(taxRates, taxRate)
	}
	return taxRates, rows.Err()
}
