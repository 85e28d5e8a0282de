package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authFormMode int

const (
	loginForm authFormMode = iota
	signupForm
)

type authState struct {
	form     authFormMode
	username textinput.Model
	pin      textinput.Model
	tosOK    bool
	focus    int
	busy     bool
	errText  string
}

func newAuthState() authState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	pin := textinput.New()
	pin.Placeholder = "4-digit PIN"
	pin.CharLimit = 4
	pin.EchoMode = textinput.EchoPassword

	return authState{username: username, pin: pin}
}

// fieldCount is 2 for login (username, pin) and 2 for signup
// (username, terms checkbox). The signup PIN comes through the code
// overlay instead of an inline field.
func (a authState) fieldCount() int { return 2 }

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.auth.busy {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+s":
		if m.auth.form == loginForm {
			m.auth.form = signupForm
		} else {
			m.auth.form = loginForm
		}
		m.auth.errText = ""
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if keyMsg.String() == "shift+tab" || keyMsg.String() == "up" {
			m.auth.focus--
		} else {
			m.auth.focus++
		}
		n := m.auth.fieldCount()
		m.auth.focus = ((m.auth.focus % n) + n) % n
		m.auth.username.Blur()
		m.auth.pin.Blur()
		if m.auth.focus == 0 {
			m.auth.username.Focus()
		} else if m.auth.form == loginForm {
			m.auth.pin.Focus()
		}
		return m, nil

	case " ":
		if m.auth.form == signupForm && m.auth.focus == 1 {
			m.auth.tosOK = !m.auth.tosOK
			return m, nil
		}

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	if m.auth.focus == 0 {
		m.auth.username, cmd = m.auth.username.Update(msg)
	} else if m.auth.form == loginForm {
		m.auth.pin, cmd = m.auth.pin.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.auth.username.Value())
	m.auth.errText = ""
	m.auth.busy = true

	if m.auth.form == loginForm {
		pin := m.auth.pin.Value()
		return m, func() tea.Msg {
			ctx, cancel := withTimeout()
			defer cancel()
			if err := m.deps.Gate.Login(ctx, username, pin); err != nil {
				return errMsg{err}
			}
			return loggedInMsg{username: username}
		}
	}

	tosOK := m.auth.tosOK
	m.authBusy = true
	signup := func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.deps.Gate.Signup(ctx, username, tosOK); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{username: username}
	}
	return m, tea.Batch(signup, pinTick())
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(m.th.title.Render("BigSister"))
	b.WriteString("\n")
	b.WriteString(m.th.meta.Render("Someone in your corner, whenever you need her."))
	b.WriteString("\n\n")

	if m.auth.form == loginForm {
		b.WriteString("Log in\n\n")
		b.WriteString("  Username: " + m.auth.username.View() + "\n")
		b.WriteString("  PIN:      " + m.auth.pin.View() + "\n")
	} else {
		b.WriteString("Create an account\n\n")
		b.WriteString("  Username: " + m.auth.username.View() + "\n")
		check := "[ ]"
		if m.auth.tosOK {
			check = "[x]"
		}
		line := "  " + check + " I agree to the terms of service"
		if m.auth.focus == 1 {
			line = m.th.selected.Render(line)
		}
		b.WriteString(line + "\n")
		b.WriteString(m.th.meta.Render("  You'll choose a PIN in the next step.") + "\n")
	}

	b.WriteString("\n")
	if m.auth.errText != "" {
		b.WriteString(m.th.errText.Render(m.auth.errText) + "\n")
	}
	if m.auth.busy {
		b.WriteString(m.th.meta.Render("Working...") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.th.help.Render("tab: next field | enter: submit | ctrl+s: switch login/signup | ctrl+c: quit"))
	return b.String()
}
