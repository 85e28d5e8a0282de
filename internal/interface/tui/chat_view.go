package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

const sessionPaneWidth = 28

type chatState struct {
	sessions []models.Session
	selected int

	input      textarea.Model
	vp         viewport.Model
	focusInput bool

	transcript []models.Message
	revealText string
	revealing  bool

	renaming    bool
	renameInput textinput.Model

	width  int
	height int
}

func newChatState() chatState {
	input := textarea.New()
	input.Placeholder = "Type here... she's listening"
	input.SetHeight(3)
	input.CharLimit = 4000
	input.Focus()

	rename := textinput.New()
	rename.CharLimit = 80

	return chatState{
		input:       input,
		renameInput: rename,
		focusInput:  true,
		vp:          viewport.New(0, 0),
	}
}

func (c *chatState) resize(width, height int) {
	c.width = width
	c.height = height
	chatWidth := width - sessionPaneWidth - 4
	if chatWidth < 20 {
		chatWidth = 20
	}
	vpHeight := height - c.input.Height() - 7
	if vpHeight < 5 {
		vpHeight = 5
	}
	c.vp.Width = chatWidth
	c.vp.Height = vpHeight
	c.input.SetWidth(chatWidth)
}

// handleTranscript applies conversation events coming off the event
// channel.
func (c chatState) handleTranscript(msg tea.Msg, th theme) (chatState, tea.Cmd) {
	switch msg := msg.(type) {
	case historyShownMsg:
		c.transcript = msg.messages
		c.revealing = false
		c.revealText = ""
	case messageAppendedMsg:
		c.transcript = append(c.transcript, msg.message)
	case revealFrameMsg:
		c.revealing = true
		c.revealText = msg.prefix
	case revealDoneMsg:
		c.revealing = false
		c.revealText = ""
		c.transcript = append(c.transcript, models.Message{
			Role:    models.RoleAssistant,
			Content: msg.full,
		})
	}
	c.refreshViewport(th)
	return c, nil
}

func (c *chatState) refreshViewport(th theme) {
	var b strings.Builder
	for _, msg := range c.transcript {
		b.WriteString(renderMessage(msg, th, c.vp.Width))
		b.WriteString("\n")
	}
	if c.revealing {
		b.WriteString(th.sisterMsg.Render("Big Sister"))
		b.WriteString("\n")
		b.WriteString(c.revealText)
		b.WriteString("▌\n")
	}
	c.vp.SetContent(b.String())
	c.vp.GotoBottom()
}

func renderMessage(msg models.Message, th theme, width int) string {
	var b strings.Builder
	if msg.Role == models.RoleUser {
		b.WriteString(th.userMsg.Render("You"))
	} else {
		b.WriteString(th.sisterMsg.Render("Big Sister"))
	}
	if !msg.Timestamp.IsZero() {
		b.WriteString(" " + th.meta.Render(humanize.Time(msg.Timestamp)))
	}
	b.WriteString("\n")

	content := msg.Content
	if msg.Role == models.RoleAssistant {
		if rendered, err := glamour.Render(content, "auto"); err == nil {
			content = strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.chat.sessions = msg.sessions
		if m.chat.selected >= len(msg.sessions) {
			m.chat.selected = 0
		}
		return m, nil

	case sessionOpenedMsg:
		m.chat.focusInput = true
		return m, nil

	case sessionCreatedMsg:
		m.mode = chatView
		m.quiz.busy = false
		m.chat.transcript = msg.session.Messages
		m.chat.selected = 0
		m.chat.focusInput = true
		m.chat.refreshViewport(m.th)
		return m, m.loadSessions()

	case sendDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case sessionRenamedMsg, sessionDeletedMsg:
		return m, m.loadSessions()

	case tea.KeyMsg:
		return m.handleChatKey(msg)
	}

	var cmd tea.Cmd
	m.chat.vp, cmd = m.chat.vp.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chat.renaming {
		switch msg.String() {
		case "enter":
			m.chat.renaming = false
			name := strings.TrimSpace(m.chat.renameInput.Value())
			if name == "" || m.chat.selected >= len(m.chat.sessions) {
				return m, nil
			}
			return m, m.renameSession(m.chat.sessions[m.chat.selected].ID, name)
		case "esc":
			m.chat.renaming = false
			return m, nil
		}
		var cmd tea.Cmd
		m.chat.renameInput, cmd = m.chat.renameInput.Update(msg)
		return m, cmd
	}

	if m.chat.focusInput {
		switch msg.String() {
		case "esc":
			m.chat.focusInput = false
			m.chat.input.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.chat.input.Value())
			if text == "" {
				return m, nil
			}
			if m.convo.IsRendering() {
				m.status = "One moment, she's still typing..."
				return m, nil
			}
			m.chat.input.Reset()
			m.err = nil
			m.status = ""
			return m, m.sendMessage(text)
		case "pgup":
			m.chat.vp.HalfViewUp()
			return m, nil
		case "pgdown":
			m.chat.vp.HalfViewDown()
			return m, nil
		}
		var cmd tea.Cmd
		m.chat.input, cmd = m.chat.input.Update(msg)
		return m, cmd
	}

	// Session list focus.
	switch msg.String() {
	case "enter", "i":
		if msg.String() == "enter" && m.chat.selected < len(m.chat.sessions) {
			id := m.chat.sessions[m.chat.selected].ID
			m.chat.focusInput = true
			m.chat.input.Focus()
			return m, m.openSession(id)
		}
		m.chat.focusInput = true
		m.chat.input.Focus()
		return m, nil

	case "j", "down":
		if m.chat.selected < len(m.chat.sessions)-1 {
			m.chat.selected++
		}
		return m, nil

	case "k", "up":
		if m.chat.selected > 0 {
			m.chat.selected--
		}
		return m, nil

	case "n":
		m.mode = quizView
		m.quiz = newQuizState()
		return m, nil

	case "r":
		if m.chat.selected < len(m.chat.sessions) {
			m.chat.renaming = true
			m.chat.renameInput.SetValue(m.chat.sessions[m.chat.selected].Name)
			m.chat.renameInput.Focus()
		}
		return m, nil

	case "d":
		if m.chat.selected < len(m.chat.sessions) {
			return m, m.deleteSession(m.chat.sessions[m.chat.selected])
		}
		return m, nil

	case "c":
		if err := clipboard.WriteAll(transcriptText(m.chat.transcript)); err != nil {
			m.err = err
		} else {
			m.status = "Conversation copied to clipboard"
		}
		return m, nil
	}
	return m, nil
}

func transcriptText(messages []models.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		who := "You"
		if msg.Role == models.RoleAssistant {
			who = "Big Sister"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", who, msg.Content)
	}
	return b.String()
}

func (m Model) viewChat() string {
	pane := m.viewSessionPane()
	chat := m.chat.vp.View() + "\n"

	if sess, ok := m.deps.Sessions.Current(); ok && !sess.IsActive {
		chat += m.th.meta.Render("This session has ended. You can read it, but not reply.") + "\n"
	} else {
		chat += m.chat.input.View() + "\n"
	}

	var hint string
	if m.chat.renaming {
		hint = "Rename: " + m.chat.renameInput.View()
	} else if m.chat.focusInput {
		hint = m.th.help.Render("enter: send | esc: session list | pgup/pgdn: scroll")
	} else {
		hint = m.th.help.Render("j/k: pick | enter: open | n: new | r: rename | d: delete | c: copy | i: type")
	}

	left := strings.Split(pane, "\n")
	right := strings.Split(chat+hint, "\n")
	return joinColumns(left, right, sessionPaneWidth)
}

func (m Model) viewSessionPane() string {
	var b strings.Builder
	b.WriteString(m.th.title.Render("Sessions"))
	b.WriteString("\n")
	currentID := m.deps.Sessions.CurrentID()
	for i, sess := range m.chat.sessions {
		name := sess.Name
		if name == "" {
			name = "Untitled"
		}
		if len(name) > sessionPaneWidth-4 {
			name = name[:sessionPaneWidth-7] + "..."
		}
		line := name
		switch {
		case i == m.chat.selected && !m.chat.focusInput:
			line = m.th.selected.Render("► " + name)
		case sess.ID == currentID:
			line = m.th.active.Render("  " + name)
		default:
			line = m.th.item.Render(name)
		}
		if !sess.IsActive {
			line += m.th.meta.Render(" ∅")
		}
		b.WriteString(line + "\n")
	}
	if len(m.chat.sessions) == 0 {
		b.WriteString(m.th.meta.Render("No sessions yet.\nPress n to start one."))
	}
	return b.String()
}

// joinColumns lays two line slices side by side; the left column is
// padded to a fixed width.
func joinColumns(left, right []string, leftWidth int) string {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		b.WriteString(padRight(l, leftWidth))
		b.WriteString(" │ ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	// Visible width, not byte length; styled strings carry escapes.
	visible := visibleLen(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
