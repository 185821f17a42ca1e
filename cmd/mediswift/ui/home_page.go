package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/catalog"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// HomePageModel is the landing view: featured products, category shortcuts
// and the best running discounts.
type HomePageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	featured   []types.Product
	discounts  []types.Product
	categories []string
	cursor     int
}

func NewHomePageModel(st *state.App, styles Styles) HomePageModel {
	return HomePageModel{st: st, styles: styles}
}

func (m *HomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter rebuilds the featured and discount shelves from the catalog.
func (m HomePageModel) Enter() HomePageModel {
	m.featured = catalog.Featured(m.st.Products, 4)
	m.discounts = catalog.TopDiscounts(m.st.Products, 4)
	m.categories = catalog.Categories(m.st.Products)
	if m.cursor >= len(m.featured) {
		m.cursor = 0
	}
	return m
}

func (m HomePageModel) Update(msg tea.Msg) (HomePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.featured)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.featured) {
				return m, navigate("/product/" + m.featured[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m HomePageModel) View() string {
	s := m.styles
	sections := []string{
		s.Title.Render("Your Health, Delivered Swiftly"),
		s.Subtitle.Render("Genuine medicines · Fast delivery · Licensed pharmacists"),
		"",
	}

	sections = append(sections, s.Bold.Render("Featured Products"))
	if len(m.featured) == 0 {
		sections = append(sections, s.Muted.Render("Catalog is loading..."))
	}
	for i, p := range m.featured {
		card := m.renderProductLine(p)
		if i == m.cursor {
			card = s.CardSelected.Render(card)
		} else {
			card = s.Card.Render(card)
		}
		sections = append(sections, card)
	}

	if len(m.categories) > 0 {
		sections = append(sections, "", s.Bold.Render("Shop by Category"))
		row := ""
		for _, c := range m.categories {
			row += s.NavLink.Render("[" + c + "]")
		}
		sections = append(sections, row)
	}

	if len(m.discounts) > 0 {
		sections = append(sections, "", s.Bold.Render("Top Deals"))
		for _, p := range m.discounts {
			sections = append(sections, fmt.Sprintf("  %s %s",
				s.Discount.Render(fmt.Sprintf("%.0f%% off", p.DiscountFraction()*100)),
				s.Body.Render(p.Name)))
		}
	}

	sections = append(sections, "", s.Muted.Render("↑/↓ select · enter view product · p browse all"))
	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m HomePageModel) renderProductLine(p types.Product) string {
	s := m.styles
	line := s.Bold.Render(p.Name) + "  " + s.Muted.Render(p.Brand)
	price := s.Price.Render(fmt.Sprintf("₹%.2f", p.DiscountPrice)) + " " +
		s.OriginalPrice.Render(fmt.Sprintf("₹%.2f", p.MRP))
	if p.RequiresPrescription {
		price += "  " + s.RxTag.Render("Rx")
	}
	return line + "\n" + price
}
