package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

// ConvertedQuantity is one secondary-unit view of a base quantity.
type ConvertedQuantity struct {
	ConversionID uuid.UUID       `json:"conversion_id"`
	ToUnitID     uuid.UUID       `json:"to_unit_id"`
	Quantity     decimal.Decimal `json:"quantity"`         // full precision
	Display      decimal.Decimal `json:"display_quantity"` // rounded to 2 places
}

// Convert applies a conversion factor to a base quantity at full precision.
func Convert(quantity, factor decimal.Decimal) decimal.Decimal {
	return quantity.Mul(factor)
}

// DisplayQuantity rounds a quantity to 2 decimal places for display only.
func DisplayQuantity(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Round(2)
}

// ConvertAll returns one converted value per registered conversion. There is
// no canonical conversion: callers select which to display.
func ConvertAll(quantity decimal.Decimal, conversions []*models.UnitConversion) []ConvertedQuantity {
	results := make([]ConvertedQuantity, 0, len(conversions))
	for _, conv := range conversions {
		converted := Convert(quantity, conv.ConversionFactor)
		results = append(results, ConvertedQuantity{
			ConversionID: conv.ID,
			ToUnitID:     conv.ToUnitID,
			Quantity:     converted,
			Display:      DisplayQuantity(converted),
		})
	}
	return results
}
