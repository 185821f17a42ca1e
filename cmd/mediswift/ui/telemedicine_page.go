package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

var appointmentLabels = []string{
	"Patient Name", "Age", "Gender", "Phone",
	"Consultation Type (video/audio/chat)", "Specialty",
	"Preferred Date", "Preferred Time", "Symptoms",
}

// TelemedicinePageModel books doctor consultations. Bookings persist in the
// appointments collection; there is no real scheduling backend.
type TelemedicinePageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	inputs []textinput.Model
	focus  int
}

func NewTelemedicinePageModel(st *state.App, styles Styles) TelemedicinePageModel {
	m := TelemedicinePageModel{st: st, styles: styles}
	for _, label := range appointmentLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		m.inputs = append(m.inputs, in)
	}
	return m
}

func (m *TelemedicinePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m TelemedicinePageModel) Enter() TelemedicinePageModel {
	m.focus = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	if m.st.CurrentUser != nil {
		m.inputs[0].SetValue(m.st.CurrentUser.Name)
		m.inputs[1].SetValue(strconv.Itoa(m.st.CurrentUser.Age))
		m.inputs[3].SetValue(m.st.CurrentUser.Phone)
	}
	m.inputs[0].Focus()
	return m
}

// Typing reports that the booking form owns the keyboard while visible.
func (m TelemedicinePageModel) Typing() bool { return true }

func (m TelemedicinePageModel) Update(msg tea.Msg) (TelemedicinePageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "tab", "down":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	case "enter":
		return m.book()
	case "esc":
		return m, navigate("/")
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	return m, cmd
}

func (m TelemedicinePageModel) book() (TelemedicinePageModel, tea.Cmd) {
	vals := make([]string, len(m.inputs))
	for i := range m.inputs {
		vals[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	for i, v := range vals {
		if v == "" {
			return m, toast("Please fill in "+appointmentLabels[i], notify.SeverityWarning)
		}
	}
	age, err := strconv.Atoi(vals[1])
	if err != nil || age <= 0 {
		return m, toast("Please enter a valid age", notify.SeverityWarning)
	}

	apt := types.Appointment{
		ID:        uuid.NewString(),
		Name:      vals[0],
		Age:       age,
		Gender:    vals[2],
		Phone:     vals[3],
		Type:      vals[4],
		Specialty: vals[5],
		Date:      vals[6],
		Time:      vals[7],
		Symptoms:  vals[8],
	}
	if err := m.st.AddAppointment(apt); err != nil {
		return m, toast(err.Error(), notify.SeverityError)
	}

	fresh := m.Enter()
	return fresh, toast(
		fmt.Sprintf("Appointment booked: %s with %s on %s at %s", apt.Type, apt.Specialty, apt.Date, apt.Time),
		notify.SeveritySuccess)
}

func (m TelemedicinePageModel) View() string {
	s := m.styles
	sections := []string{
		s.Title.Render("Book a Doctor Consultation"),
		s.Subtitle.Render("Talk to licensed doctors over video, audio or chat."),
		"",
	}
	for _, in := range m.inputs {
		sections = append(sections, in.View())
	}

	if len(m.st.Appointments) > 0 {
		sections = append(sections, "", s.Bold.Render("Your Appointments"))
		for _, apt := range m.st.Appointments {
			sections = append(sections, fmt.Sprintf("  %s · %s · %s %s",
				s.Body.Render(apt.Specialty),
				s.Muted.Render(apt.Type),
				apt.Date, apt.Time))
		}
	}

	sections = append(sections, "", s.Muted.Render("tab next field · enter book · esc home"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
