package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/api"
	"mediswift/internal/cart"
	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// paymentResultMsg carries the outcome of the pay-and-place-order pipeline.
type paymentResultMsg struct {
	order types.Order
	err   error
}

type checkoutSection int

const (
	sectionAddress checkoutSection = iota
	sectionPayment
	sectionPay
)

var paymentMethods = []string{"UPI", "Credit/Debit Card", "Net Banking", "Wallet", "Cash on Delivery"}

var addressLabels = []string{"Name", "Phone", "Address", "Pincode", "City", "State"}

// CheckoutPageModel runs the order flow: pick a delivery address, pick a
// payment method, pay. While a payment is in flight the trigger is
// disabled, so the flow cannot be started twice; a failed payment leaves
// the cart untouched.
type CheckoutPageModel struct {
	st     *state.App
	svc    api.Service
	styles Styles
	width  int
	height int

	section       checkoutSection
	addressCursor int
	methodCursor  int
	method        string

	addingAddress bool
	addressInputs []textinput.Model
	addressFocus  int

	paying bool
	spin   spinner.Model
}

func NewCheckoutPageModel(st *state.App, svc api.Service, styles Styles) CheckoutPageModel {
	m := CheckoutPageModel{st: st, svc: svc, styles: styles}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = styles.Spinner

	for _, label := range addressLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		m.addressInputs = append(m.addressInputs, in)
	}
	return m
}

func (m *CheckoutPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter seeds a default address from the profile when none exist and
// resets the flow state.
func (m CheckoutPageModel) Enter() CheckoutPageModel {
	_ = m.st.EnsureDefaultAddress()
	m.section = sectionAddress
	m.addressCursor = 0
	m.method = ""
	m.methodCursor = 0
	m.addingAddress = false
	m.paying = false
	return m
}

// Typing reports whether the add-address form owns the keyboard.
func (m CheckoutPageModel) Typing() bool { return m.addingAddress }

func (m CheckoutPageModel) Update(msg tea.Msg) (CheckoutPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentResultMsg:
		return m.handlePaymentResult(msg)

	case spinner.TickMsg:
		if !m.paying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.paying {
			// Payment in flight; the whole form is disabled.
			return m, nil
		}
		if m.addingAddress {
			return m.updateAddressForm(msg)
		}
		return m.updateSelection(msg)
	}
	return m, nil
}

func (m CheckoutPageModel) handlePaymentResult(msg paymentResultMsg) (CheckoutPageModel, tea.Cmd) {
	m.paying = false
	if msg.err != nil {
		// The cart survives so the user can retry.
		return m, toast("Payment failed: "+msg.err.Error(), notify.SeverityError)
	}
	if err := m.st.ClearCart(); err != nil {
		return m, toast(err.Error(), notify.SeverityError)
	}
	return m, tea.Batch(
		toast("Order "+msg.order.ID+" placed successfully!", notify.SeveritySuccess),
		navigate("/order-confirmation/"+msg.order.ID),
	)
}

func (m CheckoutPageModel) updateSelection(key tea.KeyMsg) (CheckoutPageModel, tea.Cmd) {
	switch key.String() {
	case "tab":
		m.section = (m.section + 1) % 3
	case "shift+tab":
		m.section = (m.section + 2) % 3
	case "up", "k":
		switch m.section {
		case sectionAddress:
			if m.addressCursor > 0 {
				m.addressCursor--
			}
		case sectionPayment:
			if m.methodCursor > 0 {
				m.methodCursor--
			}
		}
	case "down", "j":
		switch m.section {
		case sectionAddress:
			if m.addressCursor < len(m.st.Addresses)-1 {
				m.addressCursor++
			}
		case sectionPayment:
			if m.methodCursor < len(paymentMethods)-1 {
				m.methodCursor++
			}
		}
	case "n":
		if m.section == sectionAddress {
			m.addingAddress = true
			m.addressFocus = 0
			for i := range m.addressInputs {
				m.addressInputs[i].SetValue("")
				m.addressInputs[i].Blur()
			}
			m.addressInputs[0].Focus()
		}
	case "enter", " ":
		switch m.section {
		case sectionAddress:
			if m.addressCursor < len(m.st.Addresses) {
				addr := m.st.Addresses[m.addressCursor]
				if err := m.st.SetDefaultAddress(addr.ID); err != nil {
					return m, toast(err.Error(), notify.SeverityError)
				}
			}
		case sectionPayment:
			m.method = paymentMethods[m.methodCursor]
		case sectionPay:
			return m.pay()
		}
	}
	return m, nil
}

func (m CheckoutPageModel) updateAddressForm(key tea.KeyMsg) (CheckoutPageModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.addingAddress = false
		return m, nil
	case "tab", "down":
		m.addressInputs[m.addressFocus].Blur()
		m.addressFocus = (m.addressFocus + 1) % len(m.addressInputs)
		m.addressInputs[m.addressFocus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.addressInputs[m.addressFocus].Blur()
		m.addressFocus = (m.addressFocus + len(m.addressInputs) - 1) % len(m.addressInputs)
		m.addressInputs[m.addressFocus].Focus()
		return m, nil
	case "enter":
		vals := make([]string, len(m.addressInputs))
		for i := range m.addressInputs {
			vals[i] = strings.TrimSpace(m.addressInputs[i].Value())
		}
		for i, v := range vals {
			if v == "" {
				return m, toast("Please fill in "+addressLabels[i], notify.SeverityWarning)
			}
		}
		addr := types.Address{
			ID:      strconv.FormatInt(int64(len(m.st.Addresses)+1), 10),
			Type:    "other",
			Name:    vals[0],
			Phone:   vals[1],
			Line:    vals[2],
			Pincode: vals[3],
			City:    vals[4],
			State:   vals[5],
		}
		if err := m.st.AddAddress(addr); err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		m.addingAddress = false
		return m, toast("Address added", notify.SeveritySuccess)
	}

	var cmd tea.Cmd
	m.addressInputs[m.addressFocus], cmd = m.addressInputs[m.addressFocus].Update(key)
	return m, cmd
}

// pay validates the selections and launches the async payment pipeline.
func (m CheckoutPageModel) pay() (CheckoutPageModel, tea.Cmd) {
	if len(m.st.Cart) == 0 {
		return m, toast("Your cart is empty", notify.SeverityWarning)
	}
	if m.method == "" {
		return m, toast("Please select a payment method", notify.SeverityError)
	}
	addr, ok := m.st.DefaultAddress()
	if !ok {
		return m, toast("Please add a delivery address", notify.SeverityError)
	}
	if m.st.CurrentUser == nil {
		return m, navigate("/login")
	}

	items := make([]types.OrderItem, 0, len(m.st.Cart))
	for _, line := range m.st.Cart {
		items = append(items, types.OrderItem{
			ID:                   line.ID,
			Name:                 line.Name,
			Price:                line.DiscountPrice,
			Quantity:             line.Quantity,
			RequiresPrescription: line.RequiresPrescription,
		})
	}
	totals := cart.Compute(m.st.Cart)
	total, _ := totals.Total.Float64()

	draft := api.OrderDraft{
		UserID:               m.st.CurrentUser.ID,
		Items:                items,
		Total:                total,
		PaymentMethod:        m.method,
		Address:              addr,
		PrescriptionRequired: cart.RequiresPrescription(m.st.Cart),
	}
	if draft.PrescriptionRequired && len(m.st.Prescriptions) > 0 {
		draft.PrescriptionID = m.st.Prescriptions[len(m.st.Prescriptions)-1].ID
	}

	m.paying = true
	svc := m.svc
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		if err := svc.ProcessPayment(context.Background()); err != nil {
			return paymentResultMsg{err: err}
		}
		order, err := svc.PlaceOrder(context.Background(), draft)
		return paymentResultMsg{order: order, err: err}
	})
}

func (m CheckoutPageModel) View() string {
	s := m.styles
	sections := []string{s.Title.Render("Checkout")}

	if m.addingAddress {
		sections = append(sections, s.Bold.Render("New Address"))
		for _, in := range m.addressInputs {
			sections = append(sections, in.View())
		}
		sections = append(sections, "", s.Muted.Render("tab next field · enter save · esc cancel"))
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections, m.renderSectionTitle("Delivery Address", sectionAddress))
	if len(m.st.Addresses) == 0 {
		sections = append(sections, s.Muted.Render("  No addresses yet. Press n to add one."))
	}
	for i, addr := range m.st.Addresses {
		line := fmt.Sprintf("%s, %s, %s %s · %s", addr.Name, addr.Line, addr.City, addr.Pincode, addr.Phone)
		if addr.IsDefault {
			line = s.Discount.Render("● ") + line
		} else {
			line = s.Muted.Render("○ ") + line
		}
		if m.section == sectionAddress && i == m.addressCursor {
			line = s.NavLinkActive.Render("›") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	sections = append(sections, "", m.renderSectionTitle("Payment Method", sectionPayment))
	for i, method := range paymentMethods {
		line := method
		if method == m.method {
			line = s.Discount.Render("● ") + line
		} else {
			line = s.Muted.Render("○ ") + line
		}
		if m.section == sectionPayment && i == m.methodCursor {
			line = s.NavLinkActive.Render("›") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	t := cart.Compute(m.st.Cart)
	sections = append(sections, "", s.Bold.Render("Payable: ₹"+t.Total.StringFixed(2)))

	if m.paying {
		sections = append(sections, m.spin.View()+s.Muted.Render(" processing payment..."))
	} else {
		button := s.Button.Render("  Pay Now  ")
		if m.section != sectionPay {
			button = s.Muted.Render("[ Pay Now ]")
		}
		sections = append(sections, button)
	}

	sections = append(sections, "", s.Muted.Render("tab section · ↑/↓ move · enter select/pay · n new address"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m CheckoutPageModel) renderSectionTitle(title string, sec checkoutSection) string {
	if m.section == sec {
		return m.styles.NavLinkActive.Render(title)
	}
	return m.styles.Bold.Render(title)
}
