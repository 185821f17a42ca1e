package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/notify"
	"mediswift/internal/orders"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

type profileTab int

const (
	profileTabAccount profileTab = iota
	profileTabOrders
	profileTabAddresses
)

var profileTabLabels = []string{"Account", "Orders", "Addresses"}

// ProfilePageModel shows the logged-in user's account, order history and
// saved addresses. The view is guarded, so a session always exists here.
type ProfilePageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	tab    profileTab
	cursor int
	own    []types.Order
}

func NewProfilePageModel(st *state.App, styles Styles) ProfilePageModel {
	return ProfilePageModel{st: st, styles: styles}
}

func (m *ProfilePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ProfilePageModel) Enter() ProfilePageModel {
	m.tab = profileTabAccount
	m.cursor = 0
	if m.st.CurrentUser != nil {
		m.own = orders.ForUser(m.st.Orders, m.st.CurrentUser.ID)
	} else {
		m.own = nil
	}
	return m
}

func (m ProfilePageModel) Update(msg tea.Msg) (ProfilePageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "tab":
		m.tab = (m.tab + 1) % 3
		m.cursor = 0
	case "shift+tab":
		m.tab = (m.tab + 2) % 3
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "enter":
		switch m.tab {
		case profileTabOrders:
			if m.cursor < len(m.own) {
				return m, navigate("/order-tracking/" + m.own[m.cursor].ID)
			}
		case profileTabAddresses:
			if m.cursor < len(m.st.Addresses) {
				if err := m.st.SetDefaultAddress(m.st.Addresses[m.cursor].ID); err != nil {
					return m, toast(err.Error(), notify.SeverityError)
				}
				return m, toast("Default address updated", notify.SeveritySuccess)
			}
		}
	case "l":
		if err := m.st.Logout(); err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		return m, tea.Batch(
			toast("You have been logged out", notify.SeverityInfo),
			navigate("/"),
		)
	}
	return m, nil
}

func (m ProfilePageModel) listLen() int {
	switch m.tab {
	case profileTabOrders:
		return len(m.own)
	case profileTabAddresses:
		return len(m.st.Addresses)
	}
	return 0
}

func (m ProfilePageModel) View() string {
	s := m.styles
	user := m.st.CurrentUser
	if user == nil {
		return s.Content.Render(s.Muted.Render("No active session."))
	}

	tabs := ""
	for i, label := range profileTabLabels {
		if profileTab(i) == m.tab {
			tabs += s.NavLinkActive.Render(label)
		} else {
			tabs += s.NavLink.Render(label)
		}
	}

	sections := []string{s.Title.Render("My Account"), tabs, ""}

	switch m.tab {
	case profileTabAccount:
		sections = append(sections,
			s.Bold.Render(user.Name),
			s.Body.Render("Email: "+user.Email),
			s.Body.Render("Phone: "+user.Phone),
			s.Body.Render(fmt.Sprintf("Age: %d", user.Age)),
			s.Body.Render(fmt.Sprintf("Wallet: ₹%.2f", user.WalletBalance)),
			s.Muted.Render("Member since "+user.JoinedDate.Format("Jan 2006")),
		)

	case profileTabOrders:
		if len(m.own) == 0 {
			sections = append(sections, s.Muted.Render("No orders yet."))
		}
		for i, o := range m.own {
			line := fmt.Sprintf("%s  %s  ₹%.2f  %s",
				s.Bold.Render(o.ID),
				s.Muted.Render(o.Date.Format("02 Jan 2006")),
				o.Total,
				s.Info.Render(o.Status))
			if i == m.cursor {
				line = s.NavLinkActive.Render("›") + line
			} else {
				line = "  " + line
			}
			sections = append(sections, line)
		}

	case profileTabAddresses:
		if len(m.st.Addresses) == 0 {
			sections = append(sections, s.Muted.Render("No saved addresses."))
		}
		for i, addr := range m.st.Addresses {
			line := fmt.Sprintf("%s, %s, %s %s", addr.Name, addr.Line, addr.City, addr.Pincode)
			if addr.IsDefault {
				line = s.Discount.Render("● ") + line
			} else {
				line = s.Muted.Render("○ ") + line
			}
			if i == m.cursor {
				line = s.NavLinkActive.Render("›") + line
			} else {
				line = "  " + line
			}
			sections = append(sections, line)
		}
	}

	sections = append(sections, "", s.Muted.Render("tab switch · enter select · l logout"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
