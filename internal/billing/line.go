package billing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput is one invoice line before computation.
type LineInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // per-line, applied before tax; zero if absent
	Rates     Rates
}

// LineResult carries the computed figures for one invoice line.
type LineResult struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Rates     Rates

	TaxableAmount decimal.Decimal
	CGSTAmount    decimal.Decimal
	SGSTAmount    decimal.Decimal
	IGSTAmount    decimal.Decimal
	CessAmount    decimal.Decimal
	TotalPrice    decimal.Decimal // quantity x unit price, pre-discount pre-tax
	NetAmount     decimal.Decimal

	// DiscountClamped is set when the discount exceeded quantity x unit price
	// and the taxable amount was clamped to zero instead of going negative.
	DiscountClamped bool
}

// TaxAmount is the sum of all tax components on the line.
func (r LineResult) TaxAmount() decimal.Decimal {
	return r.CGSTAmount.Add(r.SGSTAmount).Add(r.IGSTAmount).Add(r.CessAmount)
}

// ComputeLine computes taxable amount, tax components and net amount for one
// line. Discount is applied before tax; a discount larger than the line value
// clamps the taxable amount at zero. Intermediates keep full precision.
func ComputeLine(in LineInput) LineResult {
	result := LineResult{
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Discount:  in.Discount,
		Rates:     in.Rates,
	}

	result.TotalPrice = in.Quantity.Mul(in.UnitPrice)

	taxable := result.TotalPrice.Sub(in.Discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
		result.DiscountClamped = true
	}
	result.TaxableAmount = taxable

	result.CGSTAmount = percentOf(taxable, in.Rates.CGST)
	result.SGSTAmount = percentOf(taxable, in.Rates.SGST)
	result.IGSTAmount = percentOf(taxable, in.Rates.IGST)
	result.CessAmount = percentOf(taxable, in.Rates.Cess)

	result.NetAmount = taxable.
		Add(result.CGSTAmount).
		Add(result.SGSTAmount).
		Add(result.IGSTAmount).
		Add(result.CessAmount)

	return result
}

func percentOf(amount decimal.Decimal, rate float64) decimal.Decimal {
	if rate == 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}
