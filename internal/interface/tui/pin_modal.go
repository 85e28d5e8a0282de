package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bigsister-app/bigsister/internal/core/confirm"
)

// pinState is the code-entry overlay shown whenever a confirmation
// request is outstanding.
type pinState struct {
	open    bool
	req     confirm.Request
	digits  string
	invalid bool
}

func newPINState(req confirm.Request) pinState {
	return pinState{open: true, req: req}
}

func (m Model) updatePINModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key >= "0" && key <= "9" && len(key) == 1:
		if len(m.pin.digits) < confirm.CodeLength {
			m.pin.digits += key
			m.pin.invalid = false
		}
		return m, nil

	case key == "backspace":
		if len(m.pin.digits) > 0 {
			m.pin.digits = m.pin.digits[:len(m.pin.digits)-1]
		}
		return m, nil

	case key == "enter":
		err := m.deps.Prompt.Submit(m.pin.digits)
		if err != nil {
			m.pin.digits = ""
			m.pin.invalid = true
			return m, nil
		}
		m.pin.open = false
		return m, nil

	case key == "esc":
		if !m.pin.req.Cancellable {
			return m, nil
		}
		m.deps.Prompt.Cancel()
		m.pin.open = false
		return m, nil
	}
	return m, nil
}

func (m Model) viewPINModal() string {
	masked := strings.Repeat("● ", len(m.pin.digits)) +
		strings.Repeat("· ", confirm.CodeLength-len(m.pin.digits))

	var b strings.Builder
	b.WriteString(m.th.title.Render(m.pin.req.Title))
	b.WriteString("\n\n")
	b.WriteString(m.pin.req.Prompt)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(masked))
	b.WriteString("\n\n")
	if m.pin.invalid {
		b.WriteString(m.th.errText.Render("Enter exactly 4 digits"))
		b.WriteString("\n")
	}
	hint := "enter: " + m.pin.req.SubmitLabel
	if m.pin.req.Cancellable {
		hint += " | esc: cancel"
	}
	b.WriteString(m.th.help.Render(hint))

	return m.overlay(m.th.modal.Render(b.String()))
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmDel.reply <- true
		m.confirmDel = nil
	case "n", "N", "esc":
		m.confirmDel.reply <- false
		m.confirmDel = nil
	}
	return m, nil
}

func (m Model) viewDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.th.title.Render("Delete?"))
	b.WriteString("\n\n")
	b.WriteString("\"" + m.confirmDel.title + "\" will be gone for good.")
	b.WriteString("\n\n")
	b.WriteString(m.th.help.Render("y: delete | n/esc: keep"))
	return m.overlay(m.th.modal.Render(b.String()))
}

func (m Model) overlay(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
