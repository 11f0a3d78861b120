package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_Identities(t *testing.T) {
	lines := []LineResult{
		ComputeLine(LineInput{Quantity: dec("100"), UnitPrice: dec("10"), Rates: Rates{CGST: 2.5, SGST: 2.5}}),
		ComputeLine(LineInput{Quantity: dec("3"), UnitPrice: dec("49.50"), Discount: dec("8.50"), Rates: Rates{CGST: 9, SGST: 9}}),
		ComputeLine(LineInput{Quantity: dec("1"), UnitPrice: dec("250"), Rates: Rates{CGST: 14, SGST: 14, Cess: 12}}),
	}

	totals := Aggregate(lines, false)

	var subtotal, discount, tax decimal.Decimal
	for _, line := range lines {
		subtotal = subtotal.Add(line.TaxableAmount)
		discount = discount.Add(line.Discount)
		tax = tax.Add(line.TaxAmount())
	}

	assert.True(t, totals.Subtotal.Equal(subtotal))
	assert.True(t, totals.TotalDiscountAmount.Equal(discount))
	assert.True(t, totals.TotalTaxAmount.Equal(tax))
	// Discount is already netted into the subtotal; it is not subtracted again
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.TotalTaxAmount)))
	assert.True(t, totals.FinalTotal.Equal(totals.GrandTotal.Add(totals.RoundOffAmount)))
	assert.True(t, totals.RoundOffAmount.IsZero())
}

func TestAggregate_RoundOffUp(t *testing.T) {
	// grand total 1049.60 rounds up to 1050.00 with a +0.40 residual
	lines := []LineResult{
		ComputeLine(LineInput{Quantity: dec("1"), UnitPrice: dec("1049.60"), Rates: Rates{}}),
	}

	totals := Aggregate(lines, true)

	assert.True(t, totals.GrandTotal.Equal(dec("1049.60")))
	assert.True(t, totals.FinalTotal.Equal(dec("1050")), "final = %s", totals.FinalTotal)
	assert.True(t, totals.RoundOffAmount.Equal(dec("0.40")), "round-off = %s", totals.RoundOffAmount)
	assert.True(t, totals.FinalTotal.Equal(totals.GrandTotal.Add(totals.RoundOffAmount)))
}

func TestAggregate_RoundOffDown(t *testing.T) {
	lines := []LineResult{
		ComputeLine(LineInput{Quantity: dec("1"), UnitPrice: dec("1050.40"), Rates: Rates{}}),
	}

	totals := Aggregate(lines, true)

	assert.True(t, totals.FinalTotal.Equal(dec("1050")))
	// Round-off residual is signed
	assert.True(t, totals.RoundOffAmount.Equal(dec("-0.40")), "round-off = %s", totals.RoundOffAmount)
}

func TestAggregate_RoundOffDisabled(t *testing.T) {
	lines := []LineResult{
		ComputeLine(LineInput{Quantity: dec("1"), UnitPrice: dec("1049.60"), Rates: Rates{}}),
	}

	totals := Aggregate(lines, false)

	assert.True(t, totals.FinalTotal.Equal(totals.GrandTotal))
	assert.True(t, totals.RoundOffAmount.IsZero())
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil, true)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.FinalTotal.IsZero())
	assert.True(t, totals.RoundOffAmount.IsZero())
}

func TestAggregate_NoRoundingDrift(t *testing.T) {
	// Many small lines at awkward precision: totals must still satisfy the
	// grandTotal identity exactly, because intermediates are never rounded.
	var lines []LineResult
	for i := 0; i < 100; i++ {
		lines = append(lines, ComputeLine(LineInput{
			Quantity:  dec("3"),
			UnitPrice: dec("0.33"),
			Rates:     Rates{CGST: 2.5, SGST: 2.5},
		}))
	}

	totals := Aggregate(lines, false)
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.TotalTaxAmount)))
	assert.True(t, totals.Subtotal.Equal(dec("99")))
}
