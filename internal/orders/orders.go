// Package orders models the fixed delivery lifecycle and renders order
// artifacts shared by the confirmation, tracking and profile views.
package orders

import (
	"fmt"
	"strings"

	"mediswift/internal/types"
)

// Stage is one step of the delivery timeline.
type Stage struct {
	Status      string
	Label       string
	Description string
	Date        string
}

// Stages is the fixed lifecycle, in order. The demo dates mirror the
// original storefront's static timeline.
var Stages = []Stage{
	{types.StatusConfirmed, "Order Confirmed", "Your order has been confirmed", "16 Nov 2025, 10:30 AM"},
	{types.StatusPrescriptionVerified, "Prescription Verified", "Your prescription has been verified", "16 Nov 2025, 11:15 AM"},
	{types.StatusPacked, "Packed", "Your order has been packed", "16 Nov 2025, 02:45 PM"},
	{types.StatusOutForDelivery, "Out for Delivery", "Your order is out for delivery", "17 Nov 2025, 09:30 AM"},
	{types.StatusDelivered, "Delivered", "Your order has been delivered", "17 Nov 2025, 02:15 PM"},
}

// StageIndex maps an order status to its position in Stages. Unrecognized
// statuses clamp to 0 so a malformed order still renders a sane timeline.
func StageIndex(status string) int {
	for i, s := range Stages {
		if s.Status == status {
			return i
		}
	}
	return 0
}

// StageState classifies a timeline position relative to the current stage.
type StageState int

const (
	StageCompleted StageState = iota
	StageActive
	StagePending
)

// Classify returns the render state for stage index i when the order is at
// stage current.
func Classify(i, current int) StageState {
	switch {
	case i < current:
		return StageCompleted
	case i == current:
		return StageActive
	default:
		return StagePending
	}
}

// FindByID returns the order with the given id, or false.
func FindByID(orders []types.Order, id string) (types.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return types.Order{}, false
}

// ForUser returns the orders belonging to the given user id, preserving
// placement order.
func ForUser(orders []types.Order, userID string) []types.Order {
	var out []types.Order
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// Invoice renders the plain-text invoice for an order. user may be the
// zero value when the purchaser is unknown.
func Invoice(order types.Order, user types.User) string {
	var sb strings.Builder

	sb.WriteString("MediSwift Kolkata\n")
	sb.WriteString("Order Invoice\n\n")
	sb.WriteString(fmt.Sprintf("Order ID: %s\n", order.ID))
	sb.WriteString(fmt.Sprintf("Order Date: %s\n\n", order.Date.Format("02/01/2006")))

	name, age, phone := "Customer", "N/A", "N/A"
	if user.ID != "" {
		name = user.Name
		age = fmt.Sprintf("%d", user.Age)
		phone = user.Phone
	}
	sb.WriteString("Customer Details:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", name))
	sb.WriteString(fmt.Sprintf("Age: %s\n", age))
	sb.WriteString(fmt.Sprintf("Phone: %s\n\n", phone))

	sb.WriteString("Delivery Address:\n")
	sb.WriteString(order.Address.Line + "\n")
	sb.WriteString(fmt.Sprintf("%s, %s - %s\n\n", order.Address.City, order.Address.State, order.Address.Pincode))

	sb.WriteString("Order Items:\n")
	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("- %s (Qty: %d) - Rs.%.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity)))
	}

	sb.WriteString(fmt.Sprintf("\nTotal Amount: Rs.%.2f\n", order.Total))
	sb.WriteString("(Inclusive of GST)\n\n")
	sb.WriteString("Thank you for your order!\n")

	return sb.String()
}
