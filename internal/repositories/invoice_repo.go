package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

// GSTReportRow represents a row in GST reporting
type GSTReportRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	PartyGSTIN    *string         `json:"party_gstin"`
	GSTMode       string          `json:"gst_mode"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Cess          decimal.Decimal `json:"cess"`
	FinalTotal    decimal.Decimal `json:"final_total"`
	Status        string          `json:"status"`
	IssuedDate    time.Time       `json:"issued_date"`
}

type InvoiceRepository interface {
	// CreateWithItems writes the invoice, its line items and the stock
	// movements in a single transaction: all or nothing. An empty
	// InvoiceNumber is filled from the per-month sequence inside the same
	// transaction.
	CreateWithItems(ctx context.Context, invoice *models.Invoice, movements []*models.StockMovement) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Invoice, error)
	GetItems(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.InvoiceItem, error)
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	ListByStatus(ctx context.Context, organizationID uuid.UUID, status string, limit, offset int) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, organizationID, invoiceID uuid.UUID, status string) error
	// CancelWithRestock flips the invoice to cancelled and writes the
	// compensating stock movements in the same transaction.
	CancelWithRestock(ctx context.Context, organizationID, invoiceID uuid.UUID, movements []*models.StockMovement) error
	// ApplyPayment raises amount_paid and sets the new status atomically.
	ApplyPayment(ctx context.Context, organizationID, invoiceID uuid.UUID, payment *models.Payment, newStatus string) error
	GetOverdueCandidates(ctx context.Context, organizationID uuid.UUID, asOf time.Time) ([]*models.Invoice, error)
	GetGSTReportData(ctx context.Context, organizationID uuid.UUID, startDate, endDate time.Time) ([]GSTReportRow, error)
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepository(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, organization_id, party_id, invoice_number, status, gst_mode, subtotal, total_discount_amount, total_tax_amount, grand_total, round_off_enabled, round_off_amount, final_total, amount_paid, issued_date, due_date, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := row.Scan(&invoice.ID, &invoice.OrganizationID, &invoice.PartyID, &invoice.InvoiceNumber, &invoice.Status, &invoice.GSTMode, &invoice.Subtotal, &invoice.TotalDiscountAmount, &invoice.TotalTaxAmount, &invoice.GrandTotal, &invoice.RoundOffEnabled, &invoice.RoundOffAmount, &invoice.FinalTotal, &invoice.AmountPaid, &invoice.IssuedDate, &invoice.DueDate, &invoice.Notes, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) CreateWithItems(ctx context.Context, invoice *models.Invoice, movements []*models.StockMovement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The sequence upsert shares the transaction, so a failed create rolls
	// the counter back and leaves no gap in the numbering.
	if invoice.InvoiceNumber == "" {
		number, err := nextInvoiceNumber(ctx, tx, invoice.OrganizationID, invoice.IssuedDate)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}

	invoiceQuery := `
		INSERT INTO invoices (id, organization_id, party_id, invoice_number, status, gst_mode, subtotal, total_discount_amount, total_tax_amount, grand_total, round_off_enabled, round_off_amount, final_total, amount_paid, issued_date, due_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, invoiceQuery, invoice.ID, invoice.OrganizationID, invoice.PartyID, invoice.InvoiceNumber, invoice.Status, invoice.GSTMode, invoice.Subtotal, invoice.TotalDiscountAmount, invoice.TotalTaxAmount, invoice.GrandTotal, invoice.RoundOffEnabled, invoice.RoundOffAmount, invoice.FinalTotal, invoice.AmountPaid, invoice.IssuedDate, invoice.DueDate, invoice.Notes)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, organization_id, item_id, item_name, hsn_code, quantity, unit_price, discount_amount, tax_rate_id, cgst_rate, sgst_rate, igst_rate, cess_rate, taxable_amount, cgst_amount, sgst_amount, igst_amount, cess_amount, total_price, net_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW())
	`
	for _, item := range invoice.Items {
		_, err = tx.Exec(ctx, itemQuery, item.ID, item.InvoiceID, item.OrganizationID, item.ItemID, item.ItemName, item.HSNCode, item.Quantity, item.UnitPrice, item.DiscountAmount, item.TaxRateID, item.CGSTRate, item.SGSTRate, item.IGSTRate, item.CessRate, item.TaxableAmount, item.CGSTAmount, item.SGSTAmount, item.IGSTAmount, item.CessAmount, item.TotalPrice, item.NetAmount)
		if err != nil {
			return err
		}
	}

	movementQuery := `
		INSERT INTO stock_movements (id, organization_id, item_id, type, quantity, reference, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for _, movement := range movements {
		_, err = tx.Exec(ctx, movementQuery, movement.ID, movement.OrganizationID, movement.ItemID, movement.Type, movement.Quantity, movement.Reference, movement.Note)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *invoiceRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE organization_id = $1 AND id = $2
	`
	return scanInvoice(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *invoiceRepo) GetItems(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, organization_id, item_id, item_name, hsn_code, quantity, unit_price, discount_amount, tax_rate_id, cgst_rate, sgst_rate, igst_rate, cess_rate, taxable_amount, cgst_amount, sgst_amount, igst_amount, cess_amount, total_price, net_amount, created_at
		FROM invoice_items
		WHERE organization_id = $1 AND invoice_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InvoiceItem
	for rows.Next() {
		item := &models.InvoiceItem{}
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.OrganizationID, &item.ItemID, &item.ItemName, &item.HSNCode, &item.Quantity, &item.UnitPrice, &item.DiscountAmount, &item.TaxRateID, &item.CGSTRate, &item.SGSTRate, &item.IGSTRate, &item.CessRate, &item.TaxableAmount, &item.CGSTAmount, &item.SGSTAmount, &item.IGSTAmount, &item.CessAmount, &item.TotalPrice, &item.NetAmount, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *invoiceRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE organization_id = $1
		ORDER BY issued_date DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryInvoices(ctx, query, organizationID, limit, offset)
}

func (r *invoiceRepo) ListByStatus(ctx context.Context, organizationID uuid.UUID, status string, limit, offset int) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE organization_id = $1 AND status = $2
		ORDER BY issued_date DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryInvoices(ctx, query, organizationID, status, limit, offset)
}

func (r *invoiceRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, organizationID, invoiceID uuid.UUID, status string) error {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE organization_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, organizationID, invoiceID)
	return err
}

func (r *invoiceRepo) CancelWithRestock(ctx context.Context, organizationID, invoiceID uuid.UUID, movements []*models.StockMovement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = 'cancelled', updated_at = NOW()
		WHERE organization_id = $1 AND id = $2 AND status NOT IN ('paid', 'cancelled')
	`, organizationID, invoiceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice cannot be cancelled")
	}

	movementQuery := `
		INSERT INTO stock_movements (id, organization_id, item_id, type, quantity, reference, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for _, movement := range movements {
		_, err = tx.Exec(ctx, movementQuery, movement.ID, movement.OrganizationID, movement.ItemID, movement.Type, movement.Quantity, movement.Reference, movement.Note)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *invoiceRepo) ApplyPayment(ctx context.Context, organizationID, invoiceID uuid.UUID, payment *models.Payment, newStatus string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, organization_id, invoice_id, party_id, amount, method, reference, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, payment.ID, payment.OrganizationID, payment.InvoiceID, payment.PartyID, payment.Amount, payment.Method, payment.Reference, payment.PaidAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE invoices
		SET amount_paid = amount_paid + $1, status = $2, updated_at = NOW()
		WHERE organization_id = $3 AND id = $4
	`, payment.Amount, newStatus, organizationID, invoiceID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE parties
		SET balance = balance - $1, updated_at = NOW()
		WHERE organization_id = $2 AND id = $3
	`, payment.Amount, organizationID, payment.PartyID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *invoiceRepo) GetOverdueCandidates(ctx context.Context, organizationID uuid.UUID, asOf time.Time) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE organization_id = $1 AND status IN ('unpaid', 'partially_paid') AND due_date < $2
		ORDER BY due_date ASC
	`
	return r.queryInvoices(ctx, query, organizationID, asOf)
}

func (r *invoiceRepo) GetGSTReportData(ctx context.Context, organizationID uuid.UUID, startDate, endDate time.Time) ([]GSTReportRow, error) {
	query := `
		SELECT i.id, i.invoice_number, p.gstin, i.gst_mode, i.subtotal, i.total_tax_amount,
			COALESCE(SUM(ii.cgst_amount), 0), COALESCE(SUM(ii.sgst_amount), 0),
			COALESCE(SUM(ii.igst_amount), 0), COALESCE(SUM(ii.cess_amount), 0),
			i.final_total, i.status, i.issued_date
		FROM invoices i
		JOIN parties p ON p.id = i.party_id AND p.organization_id = i.organization_id
		LEFT JOIN invoice_items ii ON ii.invoice_id = i.id AND ii.organization_id = i.organization_id
		WHERE i.organization_id = $1 AND i.issued_date BETWEEN $2 AND $3 AND i.status != 'cancelled'
		GROUP BY i.id, i.invoice_number, p.gstin, i.gst_mode, i.subtotal, i.total_tax_amount, i.final_total, i.status, i.issued_date
		ORDER BY i.issued_date ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reportRows []GSTReportRow
	for rows.Next() {
		row := GSTReportRow{}
		if err := rows.Scan(&row.InvoiceID, &row.InvoiceNumber, &row.PartyGSTIN, &row.GSTMode, &row.Subtotal, &row.TotalTax, &row.CGST, &row.SGST, &row.IGST, &row.Cess, &row.FinalTotal, &row.Status, &row.IssuedDate); err != nil {
			return nil, err
		}
		reportRows = append(reportRows, row)
	}
	return reportRows, rows.Err()
}

// nextInvoiceNumber claims the next per-month sequence number for an
// organization. It runs on the caller's transaction.
func nextInvoiceNumber(ctx context.Context, tx pgx.Tx, organizationID uuid.UUID, issuedDate time.Time) (string, error) {
	yearMonth := issuedDate.Format("200601")

	query := `
		WITH upsert AS (
			INSERT INTO invoice_sequences (organization_id, year_month, last_number)
			VALUES ($1, $2, 1)
			ON CONFLICT (organization_id, year_month)
			DO UPDATE SET
				last_number = invoice_sequences.last_number + 1,
				updated_at = NOW()
			RETURNING last_number
		)
		SELECT last_number FROM upsert;
	`

	var sequenceNum int
	err := tx.QueryRow(ctx, query, organizationID, yearMonth).Scan(&sequenceNum)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice sequence: %w", err)
	}

	return fmt.Sprintf("INV-%s-%04d", yearMonth, sequenceNum), nil
}
