package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mediswift/internal/api"
	"mediswift/internal/notify"
	"mediswift/internal/state"
	"mediswift/internal/types"
)

type loginTab int

const (
	tabLogin loginTab = iota
	tabRegister
)

// authResultMsg carries the outcome of an Authenticate or Register call.
type authResultMsg struct {
	user types.User
	err  error
}

// otpSentMsg carries the demo OTP issued during registration.
type otpSentMsg struct {
	code string
	err  error
}

// LoginPageModel is the combined login/register view. Registration runs in
// two steps: the form submits, an OTP is sent, and the account is created
// only after the code is verified.
type LoginPageModel struct {
	st     *state.App
	svc    api.Service
	styles Styles
	width  int
	height int

	tab   loginTab
	focus int
	busy  bool
	spin  spinner.Model

	loginInputs []textinput.Model
	regInputs   []textinput.Model

	awaitingOTP bool
	otpInput    textinput.Model
	otpCode     string
	pendingReg  api.Registration
}

var regLabels = []string{"Full Name", "Age", "Phone", "Email", "Address", "Password", "Confirm Password"}

func NewLoginPageModel(st *state.App, svc api.Service, styles Styles) LoginPageModel {
	m := LoginPageModel{st: st, svc: svc, styles: styles}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = styles.Spinner

	ident := textinput.New()
	ident.Placeholder = "Email or Phone"
	ident.CharLimit = 64
	ident.TextStyle = styles.Input
	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 64
	pass.TextStyle = styles.Input
	m.loginInputs = []textinput.Model{ident, pass}

	for _, label := range regLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		in.TextStyle = styles.Input
		if strings.Contains(label, "Password") {
			in.EchoMode = textinput.EchoPassword
		}
		m.regInputs = append(m.regInputs, in)
	}

	m.otpInput = textinput.New()
	m.otpInput.Placeholder = "6-digit OTP"
	m.otpInput.CharLimit = 6
	m.otpInput.TextStyle = styles.Input

	return m
}

func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Enter resets the form state for a fresh visit.
func (m LoginPageModel) Enter() LoginPageModel {
	m.tab = tabLogin
	m.focus = 0
	m.busy = false
	m.awaitingOTP = false
	m.otpCode = ""
	m.otpInput.SetValue("")
	for i := range m.loginInputs {
		m.loginInputs[i].SetValue("")
	}
	for i := range m.regInputs {
		m.regInputs[i].SetValue("")
	}
	m.applyFocus()
	return m
}

// Typing reports that this page owns the keyboard while visible.
func (m LoginPageModel) Typing() bool { return true }

func (m *LoginPageModel) applyFocus() {
	for i := range m.loginInputs {
		m.loginInputs[i].Blur()
	}
	for i := range m.regInputs {
		m.regInputs[i].Blur()
	}
	m.otpInput.Blur()

	if m.awaitingOTP {
		m.otpInput.Focus()
		return
	}
	if m.tab == tabLogin {
		m.loginInputs[m.focus].Focus()
	} else {
		m.regInputs[m.focus].Focus()
	}
}

func (m LoginPageModel) inputCount() int {
	if m.tab == tabLogin {
		return len(m.loginInputs)
	}
	return len(m.regInputs)
}

func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, toast(msg.err.Error(), notify.SeverityError)
		}
		if err := m.st.SetSession(msg.user); err != nil {
			return m, toast("Could not save session: "+err.Error(), notify.SeverityError)
		}
		return m, tea.Batch(
			toast("Welcome, "+msg.user.FirstName()+"!", notify.SeveritySuccess),
			navigate("/"),
		)

	case otpSentMsg:
		m.busy = false
		if msg.err != nil {
			return m, toast("Could not send OTP: "+msg.err.Error(), notify.SeverityError)
		}
		m.otpCode = msg.code
		m.awaitingOTP = true
		m.applyFocus()
		return m, toast("OTP sent to "+m.pendingReg.Phone, notify.SeverityInfo)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			if m.tab == tabLogin {
				m.tab = tabRegister
			} else {
				m.tab = tabLogin
			}
			m.focus = 0
			m.awaitingOTP = false
			m.applyFocus()
			return m, nil
		case "tab", "down":
			if !m.awaitingOTP {
				m.focus = (m.focus + 1) % m.inputCount()
				m.applyFocus()
			}
			return m, nil
		case "shift+tab", "up":
			if !m.awaitingOTP {
				m.focus = (m.focus + m.inputCount() - 1) % m.inputCount()
				m.applyFocus()
			}
			return m, nil
		case "enter":
			return m.submit()
		case "esc":
			return m, navigate("/")
		}
	}

	var cmd tea.Cmd
	if m.awaitingOTP {
		m.otpInput, cmd = m.otpInput.Update(msg)
	} else if m.tab == tabLogin {
		m.loginInputs[m.focus], cmd = m.loginInputs[m.focus].Update(msg)
	} else {
		m.regInputs[m.focus], cmd = m.regInputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m LoginPageModel) submit() (LoginPageModel, tea.Cmd) {
	if m.awaitingOTP {
		return m.verifyOTP()
	}
	if m.tab == tabLogin {
		return m.submitLogin()
	}
	return m.submitRegister()
}

func (m LoginPageModel) submitLogin() (LoginPageModel, tea.Cmd) {
	identifier := strings.TrimSpace(m.loginInputs[0].Value())
	password := m.loginInputs[1].Value()
	if identifier == "" || password == "" {
		return m, toast("Please enter your credentials", notify.SeverityWarning)
	}

	m.busy = true
	svc := m.svc
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		user, err := svc.Authenticate(context.Background(), identifier, password)
		return authResultMsg{user: user, err: err}
	})
}

func (m LoginPageModel) submitRegister() (LoginPageModel, tea.Cmd) {
	vals := make([]string, len(m.regInputs))
	for i := range m.regInputs {
		vals[i] = strings.TrimSpace(m.regInputs[i].Value())
	}
	for i, v := range vals {
		if v == "" {
			return m, toast("Please fill in "+regLabels[i], notify.SeverityWarning)
		}
	}
	if vals[5] != vals[6] {
		return m, toast("Passwords do not match", notify.SeverityError)
	}
	age, err := strconv.Atoi(vals[1])
	if err != nil || age <= 0 {
		return m, toast("Please enter a valid age", notify.SeverityWarning)
	}

	m.pendingReg = api.Registration{
		Name:     vals[0],
		Age:      age,
		Phone:    vals[2],
		Email:    vals[3],
		Address:  vals[4],
		Password: vals[5],
	}

	m.busy = true
	svc := m.svc
	phone := m.pendingReg.Phone
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		code, err := svc.SendOTP(context.Background(), phone)
		return otpSentMsg{code: code, err: err}
	})
}

func (m LoginPageModel) verifyOTP() (LoginPageModel, tea.Cmd) {
	if strings.TrimSpace(m.otpInput.Value()) != m.otpCode {
		return m, toast("Invalid OTP, please try again", notify.SeverityError)
	}

	m.busy = true
	svc := m.svc
	reg := m.pendingReg
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		user, err := svc.Register(context.Background(), reg)
		return authResultMsg{user: user, err: err}
	})
}

func (m LoginPageModel) View() string {
	s := m.styles

	loginTabLabel := s.NavLink.Render("Login")
	regTabLabel := s.NavLink.Render("Register")
	if m.tab == tabLogin {
		loginTabLabel = s.NavLinkActive.Render("Login")
	} else {
		regTabLabel = s.NavLinkActive.Render("Register")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Center, loginTabLabel, regTabLabel,
		s.Muted.Render("  (ctrl+t to switch)"))

	sections := []string{s.Title.Render("Welcome to MediSwift"), tabs, ""}

	if m.awaitingOTP {
		sections = append(sections,
			s.Body.Render("Enter the OTP sent to "+m.pendingReg.Phone),
			m.otpInput.View(),
		)
	} else if m.tab == tabLogin {
		for _, in := range m.loginInputs {
			sections = append(sections, in.View())
		}
		sections = append(sections, "", s.Muted.Render("Demo account: admin@mediswift.in / admin123"))
	} else {
		for _, in := range m.regInputs {
			sections = append(sections, in.View())
		}
	}

	if m.busy {
		sections = append(sections, "", m.spin.View()+s.Muted.Render(" please wait..."))
	} else {
		sections = append(sections, "", s.Muted.Render("tab next field · enter submit · esc home"))
	}

	return s.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
