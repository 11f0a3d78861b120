package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Item struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	OrganizationID uuid.UUID        `json:"organization_id" db:"organization_id"`
	Name           string           `json:"name" db:"name"`
	SKU            string           `json:"sku" db:"sku"`
	Description    *string          `json:"description" db:"description"`
	HSNCode        *string          `json:"hsn_code" db:"hsn_code"`
	Price          decimal.Decimal  `json:"price" db:"price"`
	CostPrice      decimal.Decimal  `json:"cost_price" db:"cost_price"`
	MRP            *decimal.Decimal `json:"mrp" db:"mrp"`
	TaxRateID      *uuid.UUID       `json:"tax_rate_id" db:"tax_rate_id"`
	CessRate       *float64         `json:"cess_rate" db:"cess_rate"`
	UnitID         *uuid.UUID       `json:"unit_id" db:"unit_id"`
	OpeningStock   decimal.Decimal  `json:"opening_stock" db:"opening_stock"`
	MinStock       *decimal.Decimal `json:"min_stock" db:"min_stock"`
	MaxStock       *decimal.Decimal `json:"max_stock" db:"max_stock"`
	ImageKey       *string          `json:"image_key" db:"image_key"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// Stock movement types. 'in' and 'out' quantities are stored positive and the
// type decides the sign when aggregating; 'adjustment' quantities carry their
// own sign.
const (
	StockMovementIn         = "in"
	StockMovementOut        = "out"
	StockMovementAdjustment = "adjustment"
)

// StockMovement is one entry in an item's stock ledger. Current stock is the
// item's opening stock plus the signed sum of its movements.
type StockMovement struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	ItemID         uuid.UUID       `json:"item_id" db:"item_id"`
	Type           string          `json:"type" db:"type"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	Reference      *string         `json:"reference" db:"reference"`
	Note           *string         `json:"note" db:"note"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// ItemSearchFilter holds search and filter criteria for item queries
type ItemSearchFilter struct {
	Query     string           `json:"query,omitempty"`
	SKU       *string          `json:"sku,omitempty"`
	MinPrice  *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice  *decimal.Decimal `json:"max_price,omitempty"`
	SortBy    string           `json:"sort_by,omitempty"`    // name, created_at, price
	SortOrder string           `json:"sort_order,omitempty"` // asc, desc
	Limit     int              `json:"limit,omitempty"`
	Offset    int              `json:"offset,omitempty"`
}
