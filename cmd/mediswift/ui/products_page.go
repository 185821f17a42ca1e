package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/api"
	"mediswift/internal/catalog"
	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// catalogLoadedMsg carries the async catalog fetch result.
type catalogLoadedMsg struct {
	products []types.Product
	err      error
}

// ProductsPageModel is the catalog browser: a search box plus category,
// prescription and sort controls over the fetched product list. Filters
// compose by intersection; sort applies to the filtered set.
type ProductsPageModel struct {
	st     *state.App
	svc    api.Service
	styles Styles
	width  int
	height int

	loading bool
	spin    spinner.Model
	all     []types.Product

	search    textinput.Model
	searching bool
	filter    catalog.Filter
	sortKey   catalog.SortKey

	visible []types.Product
	cursor  int
}

func NewProductsPageModel(st *state.App, svc api.Service, styles Styles) ProductsPageModel {
	m := ProductsPageModel{st: st, svc: svc, styles: styles}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = styles.Spinner

	m.search = textinput.New()
	m.search.Placeholder = "Search medicines, brands, salts..."
	m.search.CharLimit = 64
	m.search.TextStyle = styles.Input

	return m
}

func (m *ProductsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter starts an async catalog fetch and seeds the filter state from the
// navigation query, so /products?search=... and ?category=... deep-link.
func (m ProductsPageModel) Enter(query map[string]string) (ProductsPageModel, tea.Cmd) {
	m.loading = true
	m.cursor = 0
	m.searching = false
	m.search.Blur()

	m.filter = catalog.Filter{
		Search:   query["search"],
		Category: query["category"],
	}
	m.sortKey = catalog.SortNameAsc
	m.search.SetValue(m.filter.Search)

	svc := m.svc
	fetch := func() tea.Msg {
		products, err := svc.FetchCatalog(context.Background())
		return catalogLoadedMsg{products: products, err: err}
	}
	return m, tea.Batch(m.spin.Tick, fetch)
}

// Typing reports whether the search box owns the keyboard.
func (m ProductsPageModel) Typing() bool { return m.searching }

func (m *ProductsPageModel) refresh() {
	m.filter.Search = m.search.Value()
	m.visible = catalog.Apply(m.all, m.filter)
	catalog.Sort(m.visible, m.sortKey)
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m ProductsPageModel) Update(msg tea.Msg) (ProductsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, toast("Could not load catalog: "+msg.err.Error(), notify.SeverityError)
		}
		m.all = msg.products
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				m.refresh()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.searching = true
			m.search.Focus()
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.visible) {
				return m, navigate("/product/" + m.visible[m.cursor].ID)
			}
		case "f":
			m.cycleCategory()
			m.refresh()
		case "x":
			m.filter.Prescription = (m.filter.Prescription + 1) % 3
			m.refresh()
		case "o":
			m.sortKey = (m.sortKey + 1) % 4
			m.refresh()
		case "+":
			if m.cursor < len(m.visible) {
				p := m.visible[m.cursor]
				if err := m.st.AddToCart(p, 1); err != nil {
					return m, toast(err.Error(), notify.SeverityError)
				}
				return m, toast(p.Name+" added to cart", notify.SeveritySuccess)
			}
		case "v":
			if m.cursor < len(m.visible) {
				p := m.visible[m.cursor]
				added, err := m.st.ToggleWishlist(p)
				if err != nil {
					return m, toast(err.Error(), notify.SeverityError)
				}
				if added {
					return m, toast(p.Name+" added to wishlist", notify.SeveritySuccess)
				}
				return m, toast(p.Name+" removed from wishlist", notify.SeverityInfo)
			}
		}
	}
	return m, nil
}

// cycleCategory steps the category filter through every category plus the
// unfiltered state.
func (m *ProductsPageModel) cycleCategory() {
	cats := catalog.Categories(m.all)
	if len(cats) == 0 {
		return
	}
	if m.filter.Category == "" {
		m.filter.Category = cats[0]
		return
	}
	for i, c := range cats {
		if c == m.filter.Category {
			if i+1 < len(cats) {
				m.filter.Category = cats[i+1]
			} else {
				m.filter.Category = ""
			}
			return
		}
	}
	m.filter.Category = ""
}

var prescriptionFilterNames = map[catalog.PrescriptionFilter]string{
	catalog.PrescriptionAny:         "All",
	catalog.PrescriptionRequired:    "Rx only",
	catalog.PrescriptionNotRequired: "OTC only",
}

func (m ProductsPageModel) View() string {
	s := m.styles

	sections := []string{s.Title.Render("All Products")}

	if m.loading {
		sections = append(sections, m.spin.View()+s.Muted.Render(" loading catalog..."))
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections, m.search.View())

	category := m.filter.Category
	if category == "" {
		category = "All"
	}
	controls := fmt.Sprintf("Category: %s  ·  Rx: %s  ·  Sort: %s",
		s.Bold.Render(category),
		s.Bold.Render(prescriptionFilterNames[m.filter.Prescription]),
		s.Bold.Render(m.sortKey.String()))
	sections = append(sections, s.Muted.Render(controls), "")

	if len(m.visible) == 0 {
		sections = append(sections, s.Muted.Render("No products match the current filters."))
	}
	for i, p := range m.visible {
		line := fmt.Sprintf("%s  %s  %s %s",
			s.Bold.Render(truncate(p.Name, 40)),
			s.Muted.Render(p.Brand),
			s.Price.Render(fmt.Sprintf("₹%.2f", p.DiscountPrice)),
			s.OriginalPrice.Render(fmt.Sprintf("₹%.2f", p.MRP)))
		if p.RequiresPrescription {
			line += "  " + s.RxTag.Render("Rx")
		}
		if m.st.InWishlist(p.ID) {
			line += "  " + s.Discount.Render("♥")
		}
		if i == m.cursor {
			line = s.NavLinkActive.Render("›") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	sections = append(sections, "",
		s.Muted.Render("/ search · f category · x rx filter · o sort · + add to cart · v wishlist · enter details"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
