package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceUnpaid        = "unpaid"
	InvoicePartiallyPaid = "partially_paid"
	InvoicePaid          = "paid"
	InvoiceOverdue       = "overdue"
	InvoiceCancelled     = "cancelled"
)

// GST modes. Chosen once per invoice: intra-state splits tax into CGST+SGST,
// inter-state charges IGST. The two are mutually exclusive on every line.
const (
	GSTIntraState = "intra_state"
	GSTInterState = "inter_state"
)

type Invoice struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	OrganizationID      uuid.UUID       `json:"organization_id" db:"organization_id"`
	PartyID             uuid.UUID       `json:"party_id" db:"party_id"`
	InvoiceNumber       string          `json:"invoice_number" db:"invoice_number"`
	Status              string          `json:"status" db:"status"`
	GSTMode             string          `json:"gst_mode" db:"gst_mode"`
	Subtotal            decimal.Decimal `json:"subtotal" db:"subtotal"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount" db:"total_discount_amount"`
	TotalTaxAmount      decimal.Decimal `json:"total_tax_amount" db:"total_tax_amount"`
	GrandTotal          decimal.Decimal `json:"grand_total" db:"grand_total"`
	RoundOffEnabled     bool            `json:"round_off_enabled" db:"round_off_enabled"`
	RoundOffAmount      decimal.Decimal `json:"round_off_amount" db:"round_off_amount"`
	FinalTotal          decimal.Decimal `json:"final_total" db:"final_total"`
	AmountPaid          decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	IssuedDate          time.Time       `json:"issued_date" db:"issued_date"`
	DueDate             time.Time       `json:"due_date" db:"due_date"`
	Notes               *string         `json:"notes" db:"notes"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`

	Items []*InvoiceItem `json:"items,omitempty" db:"-"`
}

// InvoiceItem is a historical record: item name, HSN code, unit price and tax
// rates are snapshotted when the invoice is written and never re-read from the
// live Item or TaxRate rows.
type InvoiceItem struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	InvoiceID      uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	ItemID         uuid.UUID       `json:"item_id" db:"item_id"`
	ItemName       string          `json:"item_name" db:"item_name"`
	HSNCode        *string         `json:"hsn_code" db:"hsn_code"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price" db:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	TaxRateID      *uuid.UUID      `json:"tax_rate_id" db:"tax_rate_id"`
	CGSTRate       float64         `json:"cgst_rate" db:"cgst_rate"`
	SGSTRate       float64         `json:"sgst_rate" db:"sgst_rate"`
	IGSTRate       float64         `json:"igst_rate" db:"igst_rate"`
	CessRate       float64         `json:"cess_rate" db:"cess_rate"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount" db:"taxable_amount"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount" db:"cgst_amount"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount" db:"sgst_amount"`
	IGSTAmount     decimal.Decimal `json:"igst_amount" db:"igst_amount"`
	CessAmount     decimal.Decimal `json:"cess_amount" db:"cess_amount"`
	TotalPrice     decimal.Decimal `json:"total_price" db:"total_price"`
	NetAmount      decimal.Decimal `json:"net_amount" db:"net_amount"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
