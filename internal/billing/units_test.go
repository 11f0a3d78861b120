package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

func TestConvert_FullPrecision(t *testing.T) {
	converted := Convert(dec("10"), dec("0.0833"))
	assert.True(t, converted.Equal(dec("0.833")), "converted = %s", converted)

	// Display rounds a copy to 2 places; the full-precision value is untouched
	display := DisplayQuantity(converted)
	assert.True(t, display.Equal(dec("0.83")))
	assert.True(t, converted.Equal(dec("0.833")))
}

func TestConvertAll_OneValuePerConversion(t *testing.T) {
	boxID := uuid.New()
	cartonID := uuid.New()
	conversions := []*models.UnitConversion{
		{ID: uuid.New(), ToUnitID: boxID, ConversionFactor: dec("0.1")},
		{ID: uuid.New(), ToUnitID: cartonID, ConversionFactor: dec("0.01")},
	}

	results := ConvertAll(dec("250"), conversions)

	assert.Len(t, results, 2)
	assert.Equal(t, boxID, results[0].ToUnitID)
	assert.True(t, results[0].Quantity.Equal(dec("25")))
	assert.Equal(t, cartonID, results[1].ToUnitID)
	assert.True(t, results[1].Quantity.Equal(dec("2.5")))
}

func TestConvertAll_NoConversions(t *testing.T) {
	results := ConvertAll(dec("5"), nil)
	assert.Empty(t, results)
}
