package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type PartyRepository interface {
	Create(ctx context.Context, party *models.Party) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Party, error)
	Update(ctx context.Context, party *models.Party) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, partyType string, limit, offset int) ([]*models.Party, error)
	AdjustBalance(ctx context.Context, organizationID, id uuid.UUID, delta decimal.Decimal) error
}

type partyRepo struct {
	db Database
}

func NewPartyRepository(db Database) PartyRepository {
	return &partyRepo{db: db}
}

const partyColumns = `id, organization_id, name, type, gstin, state_code, phone, email, billing_address, balance, created_at, updated_at`

func (r *partyRepo) Create(ctx context.Context, party *models.Party) error {
	query := `
		INSERT INTO parties (id, organization_id, name, type, gstin, state_code, phone, email, billing_address, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, party.ID, party.OrganizationID, party.Name, party.Type, party.GSTIN, party.StateCode, party.Phone, party.Email, party.BillingAddress, party.Balance)
	return err
}

func (r *partyRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Party, error) {
	party := &models.Party{}
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&party.ID, &party.OrganizationID, &party.Name, &party.Type, &party.GSTIN, &party.StateCode, &party.Phone, &party.Email, &party.BillingAddress, &party.Balance, &party.CreatedAt, &party.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return party, nil
}

func (r *partyRepo) Update(ctx context.Context, party *models.Party) error {
	query := `
		UPDATE parties
		SET name = $1, type = $2, gstin = $3, state_code = $4, phone = $5, email = $6, billing_address = $7, updated_at = NOW()
		WHERE organization_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, party.Name, party.Type, party.GSTIN, party.StateCode, party.Phone, party.Email, party.BillingAddress, party.OrganizationID, party.ID)
	return err
}

func (r *partyRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM parties WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *partyRepo) List(ctx context.Context, organizationID uuid.UUID, partyType string, limit, offset int) ([]*models.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE organization_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY name ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, organizationID, partyType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []*models.Party
	for rows.Next() {
		party := &models.Party{}
		if err := rows.Scan(&party.ID, &party.OrganizationID, &party.Name, &party.Type, &party.GSTIN, &party.StateCode, &party.Phone, &party.Email, &party.BillingAddress, &party.Balance, &party.CreatedAt, &party.UpdatedAt); err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, rows.Err()
}

func (r *partyRepo) AdjustBalance(ctx context.Context, organizationID, id uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE parties SET balance = balance + $1, updated_at = NOW() WHERE organization_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, delta, organizationID, id)
	return err
}
