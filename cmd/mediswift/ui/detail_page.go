package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/catalog"
	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// DetailPageModel shows one product with a quantity selector. The quantity
// never drops below one; adding merges into any existing cart line.
type DetailPageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	product types.Product
	found   bool
	qty     int
}

func NewDetailPageModel(st *state.App, styles Styles) DetailPageModel {
	return DetailPageModel{st: st, styles: styles, qty: 1}
}

func (m *DetailPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter looks up the routed product id.
func (m DetailPageModel) Enter(id string) DetailPageModel {
	m.product, m.found = catalog.FindByID(m.st.Products, id)
	m.qty = 1
	return m
}

func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.found {
		return m, nil
	}
	switch key.String() {
	case "+", "right":
		m.qty++
	case "-", "left":
		if m.qty > 1 {
			m.qty--
		}
	case "enter":
		if err := m.st.AddToCart(m.product, m.qty); err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		return m, toast(fmt.Sprintf("%d x %s added to cart", m.qty, m.product.Name), notify.SeveritySuccess)
	case "b":
		if err := m.st.AddToCart(m.product, m.qty); err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		return m, navigate("/cart")
	case "v":
		added, err := m.st.ToggleWishlist(m.product)
		if err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		if added {
			return m, toast("Added to wishlist", notify.SeveritySuccess)
		}
		return m, toast("Removed from wishlist", notify.SeverityInfo)
	}
	return m, nil
}

func (m DetailPageModel) View() string {
	s := m.styles
	if !m.found {
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Product Not Found"),
			s.Muted.Render("This product does not exist. Press p to browse the catalog."),
		))
	}

	p := m.product
	price := s.Price.Render(fmt.Sprintf("₹%.2f", p.DiscountPrice)) + "  " +
		s.OriginalPrice.Render(fmt.Sprintf("₹%.2f", p.MRP)) + "  " +
		s.Discount.Render(fmt.Sprintf("%.0f%% off", p.DiscountFraction()*100))

	sections := []string{
		s.Title.Render(p.Name),
		s.Subtitle.Render(p.Brand + " · " + p.Manufacturer),
		"",
		price,
	}
	if p.RequiresPrescription {
		sections = append(sections, s.RxTag.Render("⚠ Prescription required"))
	}
	sections = append(sections,
		"",
		s.Body.Render(p.Description),
		s.Muted.Render("Salt: "+p.SaltComposition),
		s.Muted.Render(fmt.Sprintf("Category: %s · Stock: %d", p.Category, p.Stock)),
		"",
		s.Bold.Render(fmt.Sprintf("Quantity: %d", m.qty)),
	)

	wish := "v add to wishlist"
	if m.st.InWishlist(p.ID) {
		wish = "v remove from wishlist"
	}
	sections = append(sections, "",
		s.Muted.Render("+/- quantity · enter add to cart · b buy now · "+wish))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
