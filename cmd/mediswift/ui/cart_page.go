package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/cart"
	"mediswift/internal/notify"
	"mediswift/internal/state"
)

// CartPageModel lists the cart lines with quantity controls and the price
// breakdown. Checkout is refused while a prescription-requiring line sits
// in the cart with no prescription uploaded.
type CartPageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	cursor int
}

func NewCartPageModel(st *state.App, styles Styles) CartPageModel {
	return CartPageModel{st: st, styles: styles}
}

func (m *CartPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CartPageModel) Enter() CartPageModel {
	if m.cursor >= len(m.st.Cart) {
		m.cursor = 0
	}
	return m
}

func (m CartPageModel) Update(msg tea.Msg) (CartPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.st.Cart
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "+", "right":
		if m.cursor < len(items) {
			if err := m.st.IncrementCartItem(items[m.cursor].ID); err != nil {
				return m, toast(err.Error(), notify.SeverityError)
			}
		}
	case "-", "left":
		if m.cursor < len(items) {
			if err := m.st.DecrementCartItem(items[m.cursor].ID); err != nil {
				return m, toast(err.Error(), notify.SeverityError)
			}
			if m.cursor >= len(m.st.Cart) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "x", "delete":
		if m.cursor < len(items) {
			name := items[m.cursor].Name
			if err := m.st.RemoveFromCart(items[m.cursor].ID); err != nil {
				return m, toast(err.Error(), notify.SeverityError)
			}
			if m.cursor >= len(m.st.Cart) && m.cursor > 0 {
				m.cursor--
			}
			return m, toast(name+" removed from cart", notify.SeverityInfo)
		}
	case "enter":
		if len(items) == 0 {
			return m, toast("Your cart is empty", notify.SeverityWarning)
		}
		if cart.CheckoutBlocked(items, m.st.Prescriptions) {
			return m, toast("Please upload a prescription before checkout", notify.SeverityWarning)
		}
		return m, navigate("/checkout")
	}
	return m, nil
}

func (m CartPageModel) View() string {
	s := m.styles
	items := m.st.Cart

	sections := []string{s.Title.Render("Shopping Cart")}

	if len(items) == 0 {
		sections = append(sections,
			s.Muted.Render("Your cart is empty."),
			s.Muted.Render("Press p to browse products."))
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	for i, item := range items {
		line := fmt.Sprintf("%s  ₹%.2f x %d = %s",
			s.Bold.Render(item.Name),
			item.DiscountPrice,
			item.Quantity,
			s.Price.Render(fmt.Sprintf("₹%.2f", item.LineTotal())))
		if item.RequiresPrescription {
			line += "  " + s.RxTag.Render("Rx")
		}
		if i == m.cursor {
			line = s.NavLinkActive.Render("›") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	t := cart.Compute(items)
	delivery := "₹" + t.Delivery.StringFixed(2)
	if t.FreeDelivery() {
		delivery = s.Discount.Render("FREE")
	}
	breakdown := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Subtotal      ₹%s", t.Subtotal.StringFixed(2)),
		fmt.Sprintf("Discount     -₹%s", t.Discount.StringFixed(2)),
		fmt.Sprintf("Delivery      %s", delivery),
		fmt.Sprintf("GST (5%%)      ₹%s", t.GST.StringFixed(2)),
		s.Bold.Render(fmt.Sprintf("Total         ₹%s", t.Total.StringFixed(2))),
	)
	sections = append(sections, "", s.Card.Render(breakdown))

	if cart.CheckoutBlocked(items, m.st.Prescriptions) {
		sections = append(sections, s.Warning.Render("⚠ Upload a prescription to order Rx medicines (press r)"))
	}

	sections = append(sections, "",
		s.Muted.Render("+/- quantity · x remove · enter checkout"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
