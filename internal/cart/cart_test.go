package cart

import (
	"testing"

	"mediswift/internal/types"
)

func line(id string, price float64, qty int, rx bool) types.CartItem {
	return types.CartItem{
		Product:  types.Product{ID: id, DiscountPrice: price, RequiresPrescription: rx},
		Quantity: qty,
	}
}

// The canonical breakdown: two lines of 100.00 and 50.00 at quantities 1
// and 2 must price to exactly 205.375 with no float drift.
func TestComputeCanonicalCart(t *testing.T) {
	items := []types.CartItem{
		line("a", 100, 1, false),
		line("b", 50, 2, false),
	}
	got := Compute(items)

	if got.Subtotal.String() != "200" {
		t.Errorf("subtotal = %s, want 200", got.Subtotal)
	}
	if got.Discount.String() != "20" {
		t.Errorf("discount = %s, want 20", got.Discount)
	}
	if got.Delivery.String() != "40" {
		t.Errorf("delivery = %s, want 40", got.Delivery)
	}
	if got.GST.String() != "9" {
		t.Errorf("gst = %s, want 9", got.GST)
	}
	if got.Total.String() != "229" {
		t.Errorf("total = %s, want 229", got.Total)
	}
}

// A 175.00 subtotal prices to exactly 205.375. Float math would round the
// .375 tail; the decimal pipeline must not.
func TestComputeExactDecimalTotal(t *testing.T) {
	items := []types.CartItem{line("a", 100, 1, false), line("b", 37.50, 2, false)}
	got := Compute(items)

	if got.Subtotal.String() != "175" {
		t.Fatalf("subtotal = %s, want 175", got.Subtotal)
	}
	if got.Discount.String() != "17.5" {
		t.Errorf("discount = %s, want 17.5", got.Discount)
	}
	if got.GST.String() != "7.875" {
		t.Errorf("gst = %s, want 7.875", got.GST)
	}
	if got.Total.String() != "205.375" {
		t.Errorf("total = %s, want 205.375", got.Total)
	}
}

func TestComputeEmptyCart(t *testing.T) {
	got := Compute(nil)
	if !got.Subtotal.IsZero() || !got.Discount.IsZero() || !got.GST.IsZero() {
		t.Errorf("empty cart produced non-zero amounts: %+v", got)
	}
	// The fee still applies to a zero subtotal; checkout is blocked
	// upstream before it matters.
	if got.Delivery.String() != "40" {
		t.Errorf("delivery = %s, want 40", got.Delivery)
	}
}

func TestFreeDeliveryStrictlyAbove500(t *testing.T) {
	at := Compute([]types.CartItem{line("a", 500, 1, false)})
	if at.FreeDelivery() {
		t.Error("subtotal exactly 500 must still pay delivery")
	}
	above := Compute([]types.CartItem{line("a", 500.01, 1, false)})
	if !above.FreeDelivery() {
		t.Error("subtotal above 500 must get free delivery")
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	items := []types.CartItem{line("a", 10, 2, false), line("b", 10, 3, false)}
	if got := ItemCount(items); got != 5 {
		t.Errorf("ItemCount = %d, want 5", got)
	}
	if got := ItemCount(nil); got != 0 {
		t.Errorf("ItemCount(nil) = %d, want 0", got)
	}
}

func TestRequiresPrescription(t *testing.T) {
	if RequiresPrescription([]types.CartItem{line("a", 10, 1, false)}) {
		t.Error("OTC-only cart flagged as requiring prescription")
	}
	if !RequiresPrescription([]types.CartItem{line("a", 10, 1, false), line("b", 10, 1, true)}) {
		t.Error("cart with an Rx line not flagged")
	}
}

func TestCheckoutBlocked(t *testing.T) {
	rxCart := []types.CartItem{line("a", 10, 1, true)}

	if !CheckoutBlocked(rxCart, nil) {
		t.Error("Rx cart with no prescriptions must block checkout")
	}
	if CheckoutBlocked(rxCart, []types.Prescription{{ID: "p1"}}) {
		t.Error("Rx cart with an uploaded prescription must not block")
	}
	if CheckoutBlocked([]types.CartItem{line("a", 10, 1, false)}, nil) {
		t.Error("OTC cart must never block")
	}
}
