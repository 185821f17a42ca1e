package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StubPageModel renders the views that exist in the route table but have no
// interactive page of their own: admin, wishlist, wallet, refill reminders.
type StubPageModel struct {
	styles Styles
	width  int
	height int

	title string
	body  string
}

func NewStubPageModel(styles Styles) StubPageModel {
	return StubPageModel{styles: styles}
}

func (m *StubPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter sets the content for this visit.
func (m StubPageModel) Enter(title, body string) StubPageModel {
	m.title = title
	m.body = body
	return m
}

func (m StubPageModel) Update(msg tea.Msg) (StubPageModel, tea.Cmd) {
	return m, nil
}

func (m StubPageModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.title),
		m.styles.Body.Render(m.body),
	)
	return m.styles.Content.Render(content)
}
