package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine_IntraState(t *testing.T) {
	// 100 units at Rs 10.00 with 2.5% CGST + 2.5% SGST, no discount
	taxRate := &models.TaxRate{Rate: 5, CGSTRate: 2.5, SGSTRate: 2.5, IGSTRate: 5}
	rates := ResolveRates(taxRate, 0, GSTIntraState)

	result := ComputeLine(LineInput{
		Quantity:  dec("100"),
		UnitPrice: dec("10.00"),
		Discount:  decimal.Zero,
		Rates:     rates,
	})

	assert.True(t, result.TaxableAmount.Equal(dec("1000.00")), "taxable = %s", result.TaxableAmount)
	assert.True(t, result.CGSTAmount.Equal(dec("25.00")), "cgst = %s", result.CGSTAmount)
	assert.True(t, result.SGSTAmount.Equal(dec("25.00")), "sgst = %s", result.SGSTAmount)
	assert.True(t, result.IGSTAmount.IsZero())
	assert.True(t, result.NetAmount.Equal(dec("1050.00")), "net = %s", result.NetAmount)
	assert.True(t, result.TotalPrice.Equal(dec("1000.00")))
	assert.False(t, result.DiscountClamped)
}

func TestComputeLine_InterState(t *testing.T) {
	taxRate := &models.TaxRate{Rate: 18, CGSTRate: 9, SGSTRate: 9, IGSTRate: 18}
	rates := ResolveRates(taxRate, 0, GSTInterState)

	result := ComputeLine(LineInput{
		Quantity:  dec("2"),
		UnitPrice: dec("500"),
		Rates:     rates,
	})

	// CGST/SGST and IGST are mutually exclusive
	assert.True(t, result.CGSTAmount.IsZero())
	assert.True(t, result.SGSTAmount.IsZero())
	assert.True(t, result.IGSTAmount.Equal(dec("180")), "igst = %s", result.IGSTAmount)
	assert.True(t, result.NetAmount.Equal(dec("1180")))
}

func TestComputeLine_DiscountClamp(t *testing.T) {
	// Discount larger than line value clamps taxable amount to zero
	result := ComputeLine(LineInput{
		Quantity:  dec("10"),
		UnitPrice: dec("5"),
		Discount:  dec("100"),
		Rates:     Rates{CGST: 9, SGST: 9},
	})

	assert.True(t, result.TaxableAmount.IsZero())
	assert.True(t, result.DiscountClamped)
	assert.True(t, result.CGSTAmount.IsZero())
	assert.True(t, result.NetAmount.IsZero())
	// Total price stays pre-discount
	assert.True(t, result.TotalPrice.Equal(dec("50")))
}

func TestComputeLine_MissingTaxRateFailsOpen(t *testing.T) {
	// Stale tax rate reference resolves to zero tax, not an error
	rates := ResolveRates(nil, 0, GSTIntraState)

	result := ComputeLine(LineInput{
		Quantity:  dec("3"),
		UnitPrice: dec("99.99"),
		Rates:     rates,
	})

	assert.True(t, result.CGSTAmount.IsZero())
	assert.True(t, result.SGSTAmount.IsZero())
	assert.True(t, result.IGSTAmount.IsZero())
	assert.True(t, result.CessAmount.IsZero())
	assert.True(t, result.NetAmount.Equal(result.TaxableAmount))
}

func TestComputeLine_CessAppliesWithoutTaxRate(t *testing.T) {
	// Cess is levied separately from GST; a missing GST rate does not drop it
	rates := ResolveRates(nil, 60, GSTIntraState)

	result := ComputeLine(LineInput{
		Quantity:  dec("1"),
		UnitPrice: dec("200"),
		Rates:     rates,
	})

	assert.True(t, result.CessAmount.Equal(dec("120")), "cess = %s", result.CessAmount)
	assert.True(t, result.NetAmount.Equal(dec("320")))
}

func TestComputeLine_CessOnTopOfGST(t *testing.T) {
	taxRate := &models.TaxRate{Rate: 28, CGSTRate: 14, SGSTRate: 14, IGSTRate: 28}
	rates := ResolveRates(taxRate, 204, GSTIntraState)

	result := ComputeLine(LineInput{
		Quantity:  dec("1"),
		UnitPrice: dec("100"),
		Rates:     rates,
	})

	assert.True(t, result.CGSTAmount.Equal(dec("14")))
	assert.True(t, result.SGSTAmount.Equal(dec("14")))
	assert.True(t, result.CessAmount.Equal(dec("204")))
	assert.True(t, result.NetAmount.Equal(dec("332")))
}

func TestComputeLine_NetAmountIdentity(t *testing.T) {
	cases := []LineInput{
		{Quantity: dec("7"), UnitPrice: dec("13.33"), Discount: dec("5.5"), Rates: Rates{CGST: 2.5, SGST: 2.5}},
		{Quantity: dec("0.75"), UnitPrice: dec("1249.99"), Rates: Rates{IGST: 12}},
		{Quantity: dec("1000"), UnitPrice: dec("0.25"), Discount: dec("10"), Rates: Rates{CGST: 14, SGST: 14, Cess: 12}},
	}

	for _, input := range cases {
		result := ComputeLine(input)
		expected := result.TaxableAmount.
			Add(result.CGSTAmount).
			Add(result.SGSTAmount).
			Add(result.IGSTAmount).
			Add(result.CessAmount)
		assert.True(t, result.NetAmount.Equal(expected), "net amount identity broken for %+v", input)
	}
}

func TestResolveRates_UsesStoredSplits(t *testing.T) {
	// Stored split components are applied directly, never recomputed from the
	// nominal rate, even when they disagree with it.
	taxRate := &models.TaxRate{Rate: 18, CGSTRate: 6, SGSTRate: 6, IGSTRate: 12}

	rates := ResolveRates(taxRate, 0, GSTIntraState)
	assert.Equal(t, 6.0, rates.CGST)
	assert.Equal(t, 6.0, rates.SGST)
	assert.Equal(t, 0.0, rates.IGST)

	rates = ResolveRates(taxRate, 0, GSTInterState)
	assert.Equal(t, 0.0, rates.CGST)
	assert.Equal(t, 0.0, rates.SGST)
	assert.Equal(t, 12.0, rates.IGST)
}

func TestGSTModeFromString(t *testing.T) {
	assert.Equal(t, GSTInterState, GSTModeFromString(models.GSTInterState))
	assert.Equal(t, GSTIntraState, GSTModeFromString(models.GSTIntraState))
	assert.Equal(t, GSTIntraState, GSTModeFromString("unknown"))
}
