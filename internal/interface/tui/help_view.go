package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.mode = chatView
	}
	return m, nil
}

func (m Model) viewHelp() string {
	help := `
BigSister - Help
════════════════

EVERYWHERE
──────────
  ctrl+t       Switch section (Chat, Journal, Resources, Community, Settings, Help)
  ctrl+c       Quit

CHAT
────
  enter        Send message (while typing)
  esc          Jump to the session list
  j/k          Pick a session
  enter        Open selected session
  n            New session (starts the check-in)
  r            Rename session
  d            Delete session
  c            Copy conversation to clipboard

JOURNAL
───────
  j/k          Pick an entry
  enter        Open entry
  n            New entry
  d            Delete entry (asks first)
  R            Reflect on entry in a new chat
  /            Filter (mood:sad after:last-week ...)
  ctrl+s       Save entry (in the editor)

PIN PROMPTS
───────────
  0-9          Enter digits
  enter        Submit
  esc          Cancel (when the prompt allows it)

Press any key to return to chat
`

	return m.th.help.Render(help)
}
