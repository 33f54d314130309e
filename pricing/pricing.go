// Package pricing is the single source of truth for checkout totals.
// Cart previews and order creation both go through Calculate, and the
// server rejects client-supplied totals that disagree with it.
package pricing

import (
	"math"

	"medizo/models"
)

const (
	// TaxRate is the VAT applied to the subtotal.
	TaxRate = 0.13
	// ShippingThreshold is the subtotal above which shipping is free.
	ShippingThreshold = 1500.0
	// ShippingFee is the flat delivery charge below the threshold.
	ShippingFee = 65.0

	// totalTolerance absorbs client-side float rounding.
	totalTolerance = 0.01
)

// Breakdown is an itemized checkout total.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Calculate prices a set of order items. An empty cart prices to zero,
// including shipping.
func Calculate(items []models.OrderItem) Breakdown {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Qty)
	}

	b := Breakdown{Subtotal: round2(subtotal)}
	b.Tax = round2(b.Subtotal * TaxRate)
	if b.Subtotal > 0 && b.Subtotal <= ShippingThreshold {
		b.Shipping = ShippingFee
	}
	b.Total = round2(b.Subtotal + b.Tax + b.Shipping)
	return b
}

// MatchesTotal reports whether a client-computed total agrees with the
// breakdown within rounding tolerance.
func (b Breakdown) MatchesTotal(total float64) bool {
	return math.Abs(b.Total-total) <= totalTolerance
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
