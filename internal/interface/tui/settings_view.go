package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

type settingsState struct {
	username string

	profile        textarea.Model
	editingProfile bool

	oldPIN      textinput.Model
	changingPIN bool

	heatmap     []api.MoodPoint
	showHeatmap bool
}

func newSettingsState() settingsState {
	profile := textarea.New()
	profile.Placeholder = "Anything she should know about you?"
	profile.SetHeight(5)
	profile.CharLimit = 2000

	oldPIN := textinput.New()
	oldPIN.Placeholder = "current PIN"
	oldPIN.CharLimit = 4
	oldPIN.EchoMode = textinput.EchoPassword

	return settingsState{profile: profile, oldPIN: oldPIN}
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.settings.profile.SetValue(msg.info)
		return m, nil

	case heatmapLoadedMsg:
		m.settings.heatmap = msg.points
		m.settings.showHeatmap = true
		return m, nil

	case tea.KeyMsg:
		s := &m.settings
		if s.editingProfile {
			switch msg.String() {
			case "esc":
				s.editingProfile = false
				return m, nil
			case "ctrl+s":
				s.editingProfile = false
				return m, m.saveProfile(s.profile.Value())
			}
			var cmd tea.Cmd
			s.profile, cmd = s.profile.Update(msg)
			return m, cmd
		}
		if s.changingPIN {
			switch msg.String() {
			case "esc":
				s.changingPIN = false
				s.oldPIN.SetValue("")
				return m, nil
			case "enter":
				oldPIN := s.oldPIN.Value()
				s.changingPIN = false
				s.oldPIN.SetValue("")
				m.authBusy = true
				change := func() tea.Msg {
					ctx, cancel := withTimeout()
					defer cancel()
					return pinFlowDoneMsg{what: "PIN changed", err: m.deps.Gate.ChangePIN(ctx, oldPIN)}
				}
				return m, tea.Batch(change, pinTick())
			}
			var cmd tea.Cmd
			s.oldPIN, cmd = s.oldPIN.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "p":
			s.editingProfile = true
			s.profile.Focus()
		case "c":
			s.changingPIN = true
			s.oldPIN.Focus()
		case "t":
			if m.th.name == "dark" {
				m.th = lightTheme()
			} else {
				m.th = darkTheme()
			}
			if m.deps.Prefs != nil {
				if err := m.deps.Prefs.SetTheme(m.th.name); err != nil {
					m.err = err
				}
			}
			m.chat.refreshViewport(m.th)
		case "h":
			return m, m.loadHeatmap()
		case "l":
			return m, m.logout()
		}
	}
	return m, nil
}

func (m Model) viewSettings() string {
	s := m.settings
	var b strings.Builder
	b.WriteString(m.th.title.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString("Signed in as " + m.th.active.Render(s.username) + "\n")
	b.WriteString("Theme: " + m.th.selected.Render(m.th.name) + "\n\n")

	b.WriteString("About you\n")
	b.WriteString(s.profile.View() + "\n")
	if s.editingProfile {
		b.WriteString(m.th.help.Render("ctrl+s: save | esc: cancel") + "\n")
	}
	b.WriteString("\n")

	if s.changingPIN {
		b.WriteString("Current PIN: " + s.oldPIN.View() + "\n")
		b.WriteString(m.th.help.Render("enter: continue | esc: cancel") + "\n\n")
	}

	if s.showHeatmap {
		b.WriteString("Mood map\n")
		counts := map[models.Mood]int{}
		for _, p := range s.heatmap {
			counts[p.Mood]++
		}
		for _, mood := range models.Moods {
			if n := counts[mood]; n > 0 {
				b.WriteString(m.th.mood[mood].Render(fmt.Sprintf("  %-8s %s", mood, strings.Repeat("▇", n))) + "\n")
			}
		}
		if len(s.heatmap) == 0 {
			b.WriteString(m.th.meta.Render("  No located entries yet.") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.th.help.Render("p: edit profile | c: change PIN | t: theme | h: mood map | l: log out"))
	return b.String()
}
