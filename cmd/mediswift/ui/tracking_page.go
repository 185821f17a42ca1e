package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/notify"
	"mediswift/internal/orders"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// TrackingPageModel renders either the order-id lookup form or the delivery
// timeline for a routed order id. An order with an unrecognized status
// still renders: it clamps to the first stage.
type TrackingPageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	input    textinput.Model
	orderID  string
	order    types.Order
	found    bool
	notFound bool
}

func NewTrackingPageModel(st *state.App, styles Styles) TrackingPageModel {
	m := TrackingPageModel{st: st, styles: styles}
	m.input = textinput.New()
	m.input.Placeholder = "Order ID (e.g. ORD1700000000000)"
	m.input.CharLimit = 32
	return m
}

func (m *TrackingPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter shows the lookup form when no order id is routed, otherwise the
// timeline for that order.
func (m TrackingPageModel) Enter(orderID string) TrackingPageModel {
	m.orderID = orderID
	m.found = false
	m.notFound = false
	if orderID == "" {
		m.input.SetValue("")
		m.input.Focus()
		return m
	}
	m.input.Blur()
	m.order, m.found = orders.FindByID(m.st.Orders, orderID)
	m.notFound = !m.found
	return m
}

// Typing reports whether the lookup form owns the keyboard.
func (m TrackingPageModel) Typing() bool { return m.orderID == "" }

func (m TrackingPageModel) Update(msg tea.Msg) (TrackingPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.orderID == "" {
		switch key.String() {
		case "enter":
			id := strings.TrimSpace(m.input.Value())
			if id == "" {
				return m, toast("Please enter an order ID", notify.SeverityWarning)
			}
			return m, navigate("/order-tracking/" + id)
		case "esc":
			return m, navigate("/")
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd
	}

	if key.String() == "enter" {
		return m, navigate("/order-tracking")
	}
	return m, nil
}

func (m TrackingPageModel) View() string {
	s := m.styles

	if m.orderID == "" {
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Track Your Order"),
			m.input.View(),
			"",
			s.Muted.Render("enter track · esc home"),
		))
	}

	if m.notFound {
		return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Track Your Order"),
			s.Error.Render("No order found with ID "+m.orderID),
			"",
			s.Muted.Render("enter search again"),
		))
	}

	current := orders.StageIndex(m.order.Status)
	sections := []string{
		s.Title.Render("Order " + m.order.ID),
		s.Muted.Render("Estimated delivery: " + m.order.DeliveryEstimate),
		"",
	}
	for i, stage := range orders.Stages {
		var style lipgloss.Style
		marker := "○"
		switch orders.Classify(i, current) {
		case orders.StageCompleted:
			style = s.StageCompleted
			marker = "●"
		case orders.StageActive:
			style = s.StageActive
			marker = "◉"
		default:
			style = s.StagePending
		}
		sections = append(sections,
			style.Render(marker+" "+stage.Label),
			s.Muted.Render("   "+stage.Description+" · "+stage.Date),
		)
	}
	sections = append(sections, "", s.Muted.Render("enter track another order"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
