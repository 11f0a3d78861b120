package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PartyCustomer = "customer"
	PartySupplier = "supplier"
)

// Party is a customer or supplier of the organization.
type Party struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	Name           string          `json:"name" db:"name"`
	Type           string          `json:"type" db:"type"`
	GSTIN          *string         `json:"gstin" db:"gstin"`
	StateCode      *string         `json:"state_code" db:"state_code"`
	Phone          *string         `json:"phone" db:"phone"`
	Email          *string         `json:"email" db:"email"`
	BillingAddress *string         `json:"billing_address" db:"billing_address"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
