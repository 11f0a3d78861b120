package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Unit struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	Symbol         string    `json:"symbol" db:"symbol"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UnitConversion converts a base unit quantity to a secondary unit by a
// multiplicative factor. A unit may carry several conversions (piece -> box,
// piece -> carton); callers choose which converted value to display.
type UnitConversion struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	OrganizationID   uuid.UUID       `json:"organization_id" db:"organization_id"`
	UnitID           uuid.UUID       `json:"unit_id" db:"unit_id"`
	ToUnitID         uuid.UUID       `json:"to_unit_id" db:"to_unit_id"`
	ConversionFactor decimal.Decimal `json:"conversion_factor" db:"conversion_factor"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}
