// Package cart computes order pricing. All money math runs on decimals so
// the published totals (for example 205.375 for the canonical two-line
// cart) are exact rather than float-rounded.
package cart

import (
	"github.com/shopspring/decimal"

	"mediswift/internal/types"
)

// Pricing constants. These reproduce the storefront's formulas exactly and
// make no claim of real-world tax correctness.
var (
	discountRate      = decimal.NewFromFloat(0.10)
	gstRate           = decimal.NewFromFloat(0.05)
	freeDeliveryAbove = decimal.NewFromInt(500)
	deliveryFee       = decimal.NewFromInt(40)
)

// Totals is the cart price breakdown.
// total = subtotal - discount + delivery + gst.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Delivery decimal.Decimal
	GST      decimal.Decimal
	Total    decimal.Decimal
}

// FreeDelivery reports whether the delivery fee was waived.
func (t Totals) FreeDelivery() bool {
	return t.Delivery.IsZero()
}

// Compute derives the full breakdown for the given cart lines:
// subtotal is the sum of line totals, discount is 10% of subtotal,
// delivery is waived strictly above 500, GST is 5% of the discounted
// subtotal.
func Compute(items []types.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.DiscountPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	discount := subtotal.Mul(discountRate)

	delivery := deliveryFee
	if subtotal.GreaterThan(freeDeliveryAbove) {
		delivery = decimal.Zero
	}

	gst := subtotal.Sub(discount).Mul(gstRate)
	total := subtotal.Sub(discount).Add(delivery).Add(gst)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Delivery: delivery,
		GST:      gst,
		Total:    total,
	}
}

// ItemCount returns the total quantity across all lines, for the nav badge.
func ItemCount(items []types.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// RequiresPrescription reports whether any line needs a prescription.
func RequiresPrescription(items []types.CartItem) bool {
	for _, item := range items {
		if item.Product.RequiresPrescription {
			return true
		}
	}
	return false
}

// CheckoutBlocked reports whether checkout must be refused: at least one
// prescription-requiring line and no uploaded prescriptions.
func CheckoutBlocked(items []types.CartItem, prescriptions []types.Prescription) bool {
	return RequiresPrescription(items) && len(prescriptions) == 0
}
