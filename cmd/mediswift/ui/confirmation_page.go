package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/notify"
	"mediswift/internal/orders"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// ConfirmationPageModel shows a freshly placed order and can write its
// plain-text invoice to disk, standing in for the browser download.
type ConfirmationPageModel struct {
	st      *state.App
	dataDir string
	styles  Styles
	width   int
	height  int

	order types.Order
	found bool
}

func NewConfirmationPageModel(st *state.App, dataDir string, styles Styles) ConfirmationPageModel {
	return ConfirmationPageModel{st: st, dataDir: dataDir, styles: styles}
}

func (m *ConfirmationPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ConfirmationPageModel) Enter(orderID string) ConfirmationPageModel {
	m.order, m.found = orders.FindByID(m.st.Orders, orderID)
	return m
}

func (m ConfirmationPageModel) Update(msg tea.Msg) (ConfirmationPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.found {
		return m, nil
	}
	switch key.String() {
	case "i":
		path, err := m.saveInvoice()
		if err != nil {
			return m, toast("Could not save invoice: "+err.Error(), notify.SeverityError)
		}
		return m, toast("Invoice saved to "+path, notify.SeveritySuccess)
	case "o":
		return m, navigate("/order-tracking/" + m.order.ID)
	case "enter":
		return m, navigate("/")
	}
	return m, nil
}

func (m ConfirmationPageModel) saveInvoice() (string, error) {
	var user types.User
	if m.st.CurrentUser != nil {
		user = *m.st.CurrentUser
	}
	dir := filepath.Join(m.dataDir, "invoices")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, m.order.ID+".txt")
	if err := os.WriteFile(path, []byte(orders.Invoice(m.order, user)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (m ConfirmationPageModel) View() string {
	s := m.styles
	if !m.found {
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Order Not Found"),
			s.Muted.Render("We couldn't find that order."),
		))
	}

	o := m.order
	sections := []string{
		s.Success.Render("✓ Order Placed Successfully!"),
		"",
		s.Bold.Render("Order ID: " + o.ID),
		s.Body.Render("Payment: " + o.PaymentMethod + " (" + o.PaymentStatus + ")"),
		s.Body.Render("Estimated delivery: " + o.DeliveryEstimate),
		"",
		s.Bold.Render("Items"),
	}
	for _, item := range o.Items {
		sections = append(sections, fmt.Sprintf("  %s x %d  ₹%.2f", item.Name, item.Quantity, item.Price*float64(item.Quantity)))
	}
	sections = append(sections,
		"",
		s.Bold.Render(fmt.Sprintf("Total: ₹%.2f", o.Total)),
		s.Muted.Render("Delivering to: "+o.Address.Line+", "+o.Address.City+" "+o.Address.Pincode),
		"",
		s.Muted.Render("i save invoice · o track this order · enter continue shopping"),
	)
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
