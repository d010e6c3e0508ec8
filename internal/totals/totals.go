// Package totals derives cart totals from line items. All functions
// are pure; the reconciliation engine calls them after every local
// mutation so the derived fields never drift from the item list.
package totals

import "cart-sync/internal/model"

// Totals holds the derived fields of a cart state.
type Totals struct {
	Subtotal       float64
	Total          float64
	TotalItemCount int
}

// Compute derives subtotal, item count and final total from the given
// items and discount amount. Total floors at zero regardless of how
// large the discount is relative to the subtotal.
func Compute(items []model.LineItem, discount float64) Totals {
	t := Totals{}
	for _, item := range items {
		t.Subtotal += item.Price * float64(item.Quantity)
		t.TotalItemCount += item.Quantity
	}

	t.Total = t.Subtotal - discount
	if t.Total < 0 {
		t.Total = 0
	}

	return t
}

// Apply writes the computed totals back onto a cart state.
func Apply(state *model.CartState, discount float64) {
	t := Compute(state.Items, discount)
	state.Subtotal = t.Subtotal
	state.Discount = discount
	state.Total = t.Total
	state.TotalItemCount = t.TotalItemCount
}
