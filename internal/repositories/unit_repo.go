package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Unit, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Unit, error)

	CreateConversion(ctx context.Context, conversion *models.UnitConversion) error
	ListConversionsByUnit(ctx context.Context, organizationID, unitID uuid.UUID) ([]*models.UnitConversion, error)
	DeleteConversion(ctx context.Context, organizationID, id uuid.UUID) error
}

type unitRepo struct {
	db Database
}

func NewUnitRepository(db Database) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (id, organization_id, name, symbol, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, unit.ID, unit.OrganizationID, unit.Name, unit.Symbol)
	return err
}

func (r *unitRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Unit, error) {
	unit := &models.Unit{}
	query := `
		SELECT id, organization_id, name, symbol, created_at
		FROM units
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&unit.ID, &unit.OrganizationID, &unit.Name, &unit.Symbol, &unit.CreatedAt)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *unitRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM units WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *unitRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Unit, error) {
	query := `
		SELECT id, organization_id, name, symbol, created_at
		FROM units
		WHERE organization_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit := &models.Unit{}
		if err := rows.Scan(&unit.ID, &unit.OrganizationID, &unit.Name, &unit.Symbol, &unit.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *unitRepo) CreateConversion(ctx context.Context, conversion *models.UnitConversion) error {
	query := `
		INSERT INTO unit_conversions (id, organization_id, unit_id, to_unit_id, conversion_factor, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, conversion.ID, conversion.OrganizationID, conversion.UnitID, conversion.ToUnitID, conversion.ConversionFactor)
	return err
}

func (r *unitRepo) ListConversionsByUnit(ctx context.Context, organizationID, unitID uuid.UUID) ([]*models.UnitConversion, error) {
	query := `
		SELECT id, organization_id, unit_id, to_unit_id, conversion_factor, created_at
		FROM unit_conversions
		WHERE organization_id = $1 AND unit_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []*models.UnitConversion
	for rows.Next() {
		conversion := &models.UnitConversion{}
		if err := rows.Scan(&conversion.ID, &conversion.OrganizationID, &conversion.UnitID, &conversion.ToUnitID, &conversion.ConversionFactor, &conversion.CreatedAt); err != nil {
			return nil, err
		}
		conversions = append(conversions, conversion)
	}
	return conversions, rows.Err()
}

func (r *unitRepo) DeleteConversion(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM unit_conversions WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}
