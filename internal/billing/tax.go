// Package billing holds the invoice computation core: GST rate resolution,
// line-item arithmetic, invoice totals aggregation and unit conversion. All
// monetary math uses decimal.Decimal; nothing in this package rounds except
// for explicit display formatting and the invoice round-off.
package billing

import (
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

// GSTMode selects how GST splits on an invoice. It is chosen once per
// invoice, never per line.
type GSTMode int

const (
	GSTIntraState GSTMode = iota // CGST + SGST
	GSTInterState                // IGST
)

// GSTModeFromString maps the stored invoice gst_mode to a GSTMode.
// Unknown values fall back to intra-state.
func GSTModeFromString(mode string) GSTMode {
	if mode == models.GSTInterState {
		return GSTInterState
	}
	return GSTIntraState
}

// Rates are the resolved percentages to apply to one invoice line.
// CGST/SGST and IGST are mutually exclusive: the resolver zeroes whichever
// side the mode does not use.
type Rates struct {
	CGST float64
	SGST float64
	IGST float64
	Cess float64
}

// ResolveRates determines the applicable percentages for an item's tax rate
// record under the given mode. The stored split components are used directly,
// never recomputed from the nominal combined rate.
//
// A nil taxRate (missing or stale reference) resolves to zero GST rather than
// an error: a stale foreign key must not block a sale. Cess is levied
// separately from GST and still applies in that case.
func ResolveRates(taxRate *models.TaxRate, cessRate float64, mode GSTMode) Rates {
	rates := Rates{Cess: cessRate}
	if rates.Cess < 0 {
		rates.Cess = 0
	}
	if taxRate == nil {
		return rates
	}

	switch mode {
	case GSTInterState:
		rates.IGST = taxRate.IGSTRate
	default:
		rates.CGST = taxRate.CGSTRate
		rates.SGST = taxRate.SGSTRate
	}

	return rates
}
