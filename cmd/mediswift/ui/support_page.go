package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/chat"
	"mediswift/internal/logging"
	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

// chatReplyMsg delivers the assistant's reply after its typing delay.
type chatReplyMsg struct {
	text string
}

// typingDelay stands in for the assistant "thinking" before it answers.
const typingDelay = time.Second

var faqs = []struct {
	q string
	a string
}{
	{"How fast is delivery?", "Kolkata orders arrive in 2-4 hours; other metros in 1-2 days."},
	{"Do I need a prescription?", "Only for Schedule H medicines. OTC products ship without one."},
	{"Can I return medicines?", "Health regulations forbid returns; wrong or damaged items are refunded."},
	{"Which payment methods work?", "UPI, cards, net banking, wallets and cash on delivery."},
}

// SupportPageModel combines the FAQ with the scripted chat assistant. The
// conversation history persists across sessions.
type SupportPageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	history viewport.Model
	input   textinput.Model
	waiting bool
}

func NewSupportPageModel(st *state.App, styles Styles) SupportPageModel {
	m := SupportPageModel{st: st, styles: styles}
	m.history = viewport.New(60, 10)
	m.input = textinput.New()
	m.input.Placeholder = "Ask about delivery, prescriptions, payments..."
	m.input.CharLimit = 256
	m.input.TextStyle = styles.Input
	return m
}

func (m *SupportPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	vw := w - 8
	if vw < 20 {
		vw = 20
	}
	vh := h - len(faqs)*2 - 10
	if vh < 4 {
		vh = 4
	}
	m.history.Width = vw
	m.history.Height = vh
	m.refreshHistory()
}

func (m SupportPageModel) Enter() SupportPageModel {
	m.input.SetValue("")
	m.input.Focus()
	m.waiting = false
	m.refreshHistory()
	return m
}

// Typing reports that the chat input owns the keyboard while visible.
func (m SupportPageModel) Typing() bool { return true }

func (m *SupportPageModel) refreshHistory() {
	lines := make([]string, 0, 16)
	for _, msg := range m.st.RecentChat(50) {
		prefix := m.styles.Info.Render("assistant: ")
		if msg.Sender == "user" {
			prefix = m.styles.Bold.Render("you: ")
		}
		lines = append(lines, prefix+m.styles.Body.Render(msg.Text))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Muted.Render("Say hello to start a conversation."))
	}
	m.history.SetContent(strings.Join(lines, "\n"))
	m.history.GotoBottom()
}

func (m SupportPageModel) Update(msg tea.Msg) (SupportPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.waiting = false
		reply := types.ChatMessage{Text: msg.text, Sender: "bot", Timestamp: time.Now()}
		if err := m.st.AppendChat(reply); err != nil {
			return m, toast(err.Error(), notify.SeverityError)
		}
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.send()
		case "esc":
			return m, navigate("/")
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SupportPageModel) send() (SupportPageModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}
	if err := m.st.AppendChat(types.ChatMessage{Text: text, Sender: "user", Timestamp: time.Now()}); err != nil {
		return m, toast(err.Error(), notify.SeverityError)
	}
	m.input.SetValue("")
	m.waiting = true
	m.refreshHistory()

	reply := chat.GenerateResponse(text)
	logging.Chat("user %q -> reply %q", text, reply)
	return m, tea.Tick(typingDelay, func(time.Time) tea.Msg {
		return chatReplyMsg{text: reply}
	})
}

func (m SupportPageModel) View() string {
	s := m.styles
	sections := []string{s.Title.Render("Help & Support")}

	for _, f := range faqs {
		sections = append(sections,
			s.Bold.Render("Q: "+f.q),
			s.Muted.Render("A: "+f.a))
	}

	sections = append(sections, s.RenderDivider(m.history.Width), s.Bold.Render("Chat with the Assistant"), m.history.View())
	if m.waiting {
		sections = append(sections, s.Muted.Render("assistant is typing..."))
	}
	sections = append(sections, m.input.View(), "", s.Muted.Render("enter send · esc home"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
