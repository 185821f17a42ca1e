package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

const maxPrescriptionSize = 5 << 20 // 5 MB

// PrescriptionPageModel uploads prescription files by path and lists past
// uploads. Only images and PDFs up to 5 MB are accepted.
type PrescriptionPageModel struct {
	st     *state.App
	styles Styles
	width  int
	height int

	input textinput.Model
}

func NewPrescriptionPageModel(st *state.App, styles Styles) PrescriptionPageModel {
	m := PrescriptionPageModel{st: st, styles: styles}
	m.input = textinput.New()
	m.input.Placeholder = "Path to prescription file (jpg/png/pdf)"
	m.input.CharLimit = 256
	return m
}

func (m *PrescriptionPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m PrescriptionPageModel) Enter() PrescriptionPageModel {
	m.input.SetValue("")
	m.input.Focus()
	return m
}

// Typing reports that the path input owns the keyboard while visible.
func (m PrescriptionPageModel) Typing() bool { return true }

func (m PrescriptionPageModel) Update(msg tea.Msg) (PrescriptionPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "enter":
		return m.upload()
	case "esc":
		return m, navigate("/")
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m PrescriptionPageModel) upload() (PrescriptionPageModel, tea.Cmd) {
	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		return m, toast("Please enter a file path", notify.SeverityWarning)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		return m, toast("Only JPG, PNG and PDF files are accepted", notify.SeverityError)
	}

	info, err := os.Stat(path)
	if err != nil {
		return m, toast("Could not read file: "+err.Error(), notify.SeverityError)
	}
	if info.Size() > maxPrescriptionSize {
		return m, toast("File too large; the limit is 5 MB", notify.SeverityError)
	}

	userID := ""
	if m.st.CurrentUser != nil {
		userID = m.st.CurrentUser.ID
	}
	p := types.Prescription{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   filepath.Base(path),
		FileSize:   info.Size(),
		UploadDate: time.Now(),
		Status:     "PENDING_VERIFICATION",
	}
	if err := m.st.AddPrescription(p); err != nil {
		return m, toast(err.Error(), notify.SeverityError)
	}
	m.input.SetValue("")
	return m, toast("Prescription uploaded; verification takes about 2 hours", notify.SeveritySuccess)
}

func (m PrescriptionPageModel) View() string {
	s := m.styles
	sections := []string{
		s.Title.Render("Upload Prescription"),
		s.Muted.Render("Required for Schedule H medicines. JPG, PNG or PDF up to 5 MB."),
		"",
		m.input.View(),
	}

	if len(m.st.Prescriptions) > 0 {
		sections = append(sections, "", s.Bold.Render("Your Prescriptions"))
		for _, p := range m.st.Prescriptions {
			sections = append(sections, fmt.Sprintf("  %s  %s  %s",
				s.Body.Render(p.FileName),
				s.Muted.Render(p.UploadDate.Format("02 Jan 2006")),
				s.Warning.Render(p.Status)))
		}
	}

	sections = append(sections, "", s.Muted.Render("enter upload · esc home"))
	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
