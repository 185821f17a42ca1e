// Package types defines the domain model shared across the storefront:
// catalog products, users, cart lines, orders, prescriptions, addresses
// and appointments. Collections here map one-to-one onto persisted
// collections in the store.
package types

import "time"

// Product is a single catalog entry. The yaml tags exist for the embedded
// seed catalog; persistence uses JSON.
type Product struct {
	ID                   string  `json:"id" yaml:"id"`
	Name                 string  `json:"name" yaml:"name"`
	Brand                string  `json:"brand" yaml:"brand"`
	Manufacturer         string  `json:"manufacturer" yaml:"manufacturer"`
	Category             string  `json:"type" yaml:"category"`
	MRP                  float64 `json:"mrp" yaml:"mrp"`
	DiscountPrice        float64 `json:"discountPrice" yaml:"discount_price"`
	RequiresPrescription bool    `json:"requiresPrescription" yaml:"requires_prescription"`
	Stock                int     `json:"stock" yaml:"stock"`
	Description          string  `json:"description" yaml:"description"`
	SaltComposition      string  `json:"saltComposition" yaml:"salt_composition"`
	Featured             bool    `json:"featured" yaml:"featured"`
}

// DiscountFraction returns 1 - discountPrice/mrp, or 0 when MRP is zero.
func (p Product) DiscountFraction() float64 {
	if p.MRP == 0 {
		return 0
	}
	return 1 - p.DiscountPrice/p.MRP
}

// User is a registered account. The plaintext password mirrors the mock
// backend contract; there is deliberately no credential hardening here.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Password      string    `json:"password"`
	WalletBalance float64   `json:"walletBalance"`
	JoinedDate    time.Time `json:"joinedDate"`
}

// FirstName returns the leading word of the user's name for the session
// indicator in the navigation bar.
func (u User) FirstName() string {
	for i := 0; i < len(u.Name); i++ {
		if u.Name[i] == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}

// CartItem is one cart line: a product snapshot plus a quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (c CartItem) LineTotal() float64 {
	return c.DiscountPrice * float64(c.Quantity)
}

// OrderItem is the reduced product view embedded in a placed order.
type OrderItem struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	Quantity             int     `json:"quantity"`
	RequiresPrescription bool    `json:"requiresPrescription"`
}

// Order statuses, in lifecycle order.
const (
	StatusConfirmed            = "CONFIRMED"
	StatusPrescriptionVerified = "PRESCRIPTION_VERIFIED"
	StatusPacked               = "PACKED"
	StatusOutForDelivery       = "OUT_FOR_DELIVERY"
	StatusDelivered            = "DELIVERED"
)

// Order is a confirmed purchase with server-assigned fields.
type Order struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"userId"`
	Items                []OrderItem `json:"items"`
	Total                float64     `json:"total"`
	PaymentMethod        string      `json:"paymentMethod"`
	PaymentStatus        string      `json:"paymentStatus"`
	Address              Address     `json:"address"`
	PrescriptionRequired bool        `json:"prescriptionRequired"`
	PrescriptionID       string      `json:"prescriptionId,omitempty"`
	Date                 time.Time   `json:"date"`
	Status               string      `json:"status"`
	DeliveryEstimate     string      `json:"deliveryEstimate"`
}

// Address is a delivery address. At most one address in a collection may
// have IsDefault set; state.SetDefaultAddress enforces this.
type Address struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Line      string `json:"address"`
	Pincode   string `json:"pincode"`
	City      string `json:"city"`
	State     string `json:"state"`
	IsDefault bool   `json:"isDefault"`
}

// Prescription is an uploaded prescription file reference.
type Prescription struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	UploadDate time.Time `json:"uploadDate"`
	Status     string    `json:"status"`
}

// Appointment is a telemedicine booking.
type Appointment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	Specialty string `json:"specialty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Symptoms  string `json:"symptoms"`
}

// ChatMessage is one line of the support assistant conversation.
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" or "bot"
	Timestamp time.Time `json:"timestamp"`
}
