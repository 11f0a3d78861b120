package billing

import (
	"github.com/shopspring/decimal"
)

// Totals are the invoice-level aggregates over an ordered sequence of lines.
type Totals struct {
	Subtotal            decimal.Decimal // sum of taxable amounts (post-discount, pre-tax)
	TotalDiscountAmount decimal.Decimal
	TotalTaxAmount      decimal.Decimal
	GrandTotal          decimal.Decimal
	RoundOffAmount      decimal.Decimal // signed; zero when round-off is disabled
	FinalTotal          decimal.Decimal
}

// Aggregate reduces line results to invoice totals.
//
// Discount is already netted into each line's taxable amount, so the subtotal
// carries it and it is NOT subtracted again: grandTotal = subtotal + tax.
// TotalDiscountAmount is reported separately for display.
//
// With round-off enabled the final total is the grand total rounded to the
// nearest whole currency unit and the residual is tracked explicitly.
func Aggregate(lines []LineResult, roundOffEnabled bool) Totals {
	totals := Totals{
		Subtotal:            decimal.Zero,
		TotalDiscountAmount: decimal.Zero,
		TotalTaxAmount:      decimal.Zero,
	}

	for _, line := range lines {
		totals.Subtotal = totals.Subtotal.Add(line.TaxableAmount)
		totals.TotalDiscountAmount = totals.TotalDiscountAmount.Add(line.Discount)
		totals.TotalTaxAmount = totals.TotalTaxAmount.Add(line.TaxAmount())
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.TotalTaxAmount)

	if roundOffEnabled {
		totals.FinalTotal = totals.GrandTotal.Round(0)
		totals.RoundOffAmount = totals.FinalTotal.Sub(totals.GrandTotal)
	} else {
		totals.FinalTotal = totals.GrandTotal
		totals.RoundOffAmount = decimal.Zero
	}

	return totals
}
