package models

import (
	"time"

	"github.com/google/uuid"
)

// TaxRate stores a nominal GST percentage together with its persisted split
// components. The splits are stored independently of the nominal rate and the
// stored values are what billing applies; consistency between them is checked
// at create/update time only.
type TaxRate struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	OrganizationID      uuid.UUID `json:"organization_id" db:"organization_id"`
	Name                string    `json:"name" db:"name"`
	Rate                float64   `json:"rate" db:"rate"`
	CGSTRate            float64   `json:"cgst_rate" db:"cgst_rate"`
	SGSTRate            float64   `json:"sgst_rate" db:"sgst_rate"`
	IGSTRate            float64   `json:"igst_rate" db:"igst_rate"`
	IsCompositionScheme bool      `json:"is_composition_scheme" db:"is_composition_scheme"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
