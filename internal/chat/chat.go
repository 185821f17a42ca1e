// Package chat is the scripted support assistant: a keyword-match lookup
// over the user's message with a canned fallback. Response selection is
// pure; the typing delay is simulated by the caller.
package chat

import (
	"strings"
)

// rule maps trigger keywords to a canned response. Rules are evaluated in
// order; the first rule whose keywords match wins.
type rule struct {
	// all, when set, requires every keyword; otherwise any one suffices.
	all      bool
	keywords []string
	response string
}

var rules = []rule{
	{keywords: []string{"delivery", "timing"}, response: "HealthCart+ provides fast delivery across India! Kolkata deliveries arrive in 2–4 hours. Other metro cities: 1–2 days. PAN India: 3–5 business days. Emergency delivery available 24/7 for critical medicines."},
	{keywords: []string{"prescription", "prescribe"}, response: "Prescription is required only for Schedule H medicines. OTC medicines do not require prescriptions. You can upload your prescription in the Prescription section on HealthCart+."},
	{all: true, keywords: []string{"upload", "prescription"}, response: "To upload your prescription: Go to Prescription → Upload File → Select Image/PDF → Submit. HealthCart+ team verifies prescriptions within 2 hours."},
	{keywords: []string{"payment", "pay"}, response: "HealthCart+ supports UPI, Credit/Debit Cards, Net Banking, Wallets, and Cash on Delivery (COD). All transactions are secured and encrypted."},
	{keywords: []string{"return", "refund"}, response: "Due to health regulations, medicines cannot be returned once delivered. If you receive wrong, damaged, or expired items, HealthCart+ will process an instant refund or replacement."},
	{keywords: []string{"emergency", "urgent"}, response: "HealthCart+ offers 2-hour emergency medicine delivery in Kolkata. Call our 24/7 helpline: +91-98765-43210."},
	{keywords: []string{"discount", "offer"}, response: "Use code HEALTH20 for 20% off your first HealthCart+ order. Senior citizens receive an additional 10% discount."},
	{keywords: []string{"contact", "support"}, response: "HealthCart+ Support: +91-98765-43210 | support@healthcartplus.in | Park Street, Kolkata. Available 24/7."},
	{keywords: []string{"hello", "hi", "hey"}, response: "Hello! I'm the HealthCart+ AI Assistant. I can help you with orders, delivery, prescriptions, payments, discounts, and more. How can I assist you today?"},
}

// GenerateResponse returns the assistant's reply for a user message.
func GenerateResponse(message string) string {
	lower := strings.ToLower(message)

	for _, r := range rules {
		if r.matches(lower) {
			return r.response
		}
	}

	return "You asked: '" + message + "'. HealthCart+ Assistant can help with medicines, delivery, payments, prescriptions, and support. Please rephrase your question or contact support anytime!"
}

func (r rule) matches(lowerMessage string) bool {
	if r.all {
		for _, k := range r.keywords {
			if !strings.Contains(lowerMessage, k) {
				return false
			}
		}
		return true
	}
	for _, k := range r.keywords {
		if strings.Contains(lowerMessage, k) {
			return true
		}
	}
	return false
}
