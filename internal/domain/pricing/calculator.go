// internal/domain/pricing/calculator.go
package pricing

// TaxRatePercent is the flat tax rate applied to every order subtotal.
const TaxRatePercent = 10

// LineItem is the minimal shape the calculator needs from a cart or
// order line. Prices are in minor units (paise).
type LineItem struct {
	UnitPrice int64
	Quantity  int
}

// Totals represents the computed money breakdown for a set of line items.
// All amounts are in minor units.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Calculate computes subtotal, tax and total for the given line items.
// Pure function: no side effects, deterministic, independent of item order.
func Calculate(items []LineItem) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	tax := Tax(subtotal)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Tax returns the tax amount for a subtotal in minor units,
// rounded half-up to the nearest minor unit.
func Tax(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}
