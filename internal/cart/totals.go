package cart

import (
	"github.com/shopspring/decimal"
)

// TaxRates carries the GST split for a restaurant, in basis points.
// 250 bps on each component is the usual 5% restaurant GST.
type TaxRates struct {
	CGSTBps int
	SGSTBps int
}

// DefaultTaxRates is used when the cart is not bound to a restaurant profile.
var DefaultTaxRates = TaxRates{CGSTBps: 250, SGSTBps: 250}

// Totals is the derived money view of a cart.
type Totals struct {
	Count      int     `json:"count"`
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	GrandTotal float64 `json:"grand_total"`
}

// ComputeTotals derives the tax panel for a cart. Each GST component is
// rounded to the nearest whole unit independently before summing, so the
// grand total can differ by a unit from rounding the combined rate once.
func ComputeTotals(c Cart, rates TaxRates) Totals {
	subtotal := decimal.NewFromFloat(c.Subtotal())

	cgst := taxComponent(subtotal, rates.CGSTBps)
	sgst := taxComponent(subtotal, rates.SGSTBps)
	grand := subtotal.Add(cgst).Add(sgst)

	return Totals{
		Count:      c.Count(),
		Subtotal:   subtotal.InexactFloat64(),
		CGST:       cgst.InexactFloat64(),
		SGST:       sgst.InexactFloat64(),
		GrandTotal: grand.InexactFloat64(),
	}
}

func taxComponent(subtotal decimal.Decimal, bps int) decimal.Decimal {
	if bps <= 0 {
		return decimal.Zero
	}
	rate := decimal.NewFromInt(int64(bps)).Div(decimal.NewFromInt(10000))
	// Round half away from zero, matching how the totals were always displayed.
	return subtotal.Mul(rate).Round(0)
}
