package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Payment, error)
	ListByInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.Payment, error)
	ListByParty(ctx context.Context, organizationID, partyID uuid.UUID, limit, offset int) ([]*models.Payment, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepository(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, organization_id, invoice_id, party_id, amount, method, reference, paid_at, created_at`

func (r *paymentRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&payment.ID, &payment.OrganizationID, &payment.InvoiceID, &payment.PartyID, &payment.Amount, &payment.Method, &payment.Reference, &payment.PaidAt, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE organization_id = $1 AND invoice_id = $2
		ORDER BY paid_at ASC
	`
	return r.queryPayments(ctx, query, organizationID, invoiceID)
}

func (r *paymentRepo) ListByParty(ctx context.Context, organizationID, partyID uuid.UUID, limit, offset int) ([]*models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE organization_id = $1 AND party_id = $2
		ORDER BY paid_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryPayments(ctx, query, organizationID, partyID, limit, offset)
}

func (r *paymentRepo) queryPayments(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.OrganizationID, &payment.InvoiceID, &payment.PartyID, &payment.Amount, &payment.Method, &payment.Reference, &payment.PaidAt, &payment.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
