package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	InvoiceID      uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	PartyID        uuid.UUID       `json:"party_id" db:"party_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Method         string          `json:"method" db:"method"`
	Reference      *string         `json:"reference" db:"reference"`
	PaidAt         time.Time       `json:"paid_at" db:"paid_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
