package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/bigsister-app/bigsister/internal/core/api"
)

type communityState struct {
	wall    []string
	mine    api.CommunityMessage
	loaded  bool
	writing bool
	busy    bool
	input   textarea.Model
}

func newCommunityState() communityState {
	input := textarea.New()
	input.Placeholder = "Share something kind or hopeful..."
	input.SetHeight(4)
	input.CharLimit = 500
	return communityState{input: input}
}

func (m Model) updateCommunity(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wallLoadedMsg:
		m.community.wall = msg.messages
		m.community.mine = msg.mine
		m.community.loaded = true
		m.community.busy = false
		return m, nil

	case wallPostedMsg:
		m.community.writing = false
		m.community.input.Reset()
		m.status = "Sent for review. It will appear once approved."
		return m, m.loadWall()

	case tea.KeyMsg:
		c := &m.community
		if c.writing {
			switch msg.String() {
			case "esc":
				c.writing = false
				return m, nil
			case "ctrl+s":
				text := strings.TrimSpace(c.input.Value())
				if text == "" {
					return m, nil
				}
				c.busy = true
				return m, m.postToWall(text)
			}
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "w":
			c.writing = true
			c.input.Focus()
			return m, nil
		case "g":
			return m, m.loadWall()
		}
	}
	return m, nil
}

func (m Model) viewCommunity() string {
	c := m.community
	var b strings.Builder
	b.WriteString(m.th.title.Render("Community Wall"))
	b.WriteString("\n")
	b.WriteString(m.th.meta.Render("Anonymous notes of encouragement from others."))
	b.WriteString("\n\n")

	if !c.loaded {
		b.WriteString(m.th.meta.Render("Loading..."))
		return b.String()
	}

	if len(c.wall) == 0 {
		b.WriteString(m.th.meta.Render("The wall is empty right now."))
		b.WriteString("\n")
	}
	for _, text := range c.wall {
		b.WriteString(m.th.item.Render("❝ "+text+" ❞") + "\n")
	}
	b.WriteString("\n")

	switch c.mine.Status {
	case api.CommunityPending:
		b.WriteString(m.th.meta.Render("Your note is waiting for review.") + "\n")
	case api.CommunityApproved:
		b.WriteString(m.th.active.Render("Your note is on the wall") +
			m.th.meta.Render(" · "+humanize.Time(c.mine.Timestamp)) + "\n")
	case api.CommunityRejected:
		reason := c.mine.Reason
		if reason == "" {
			reason = "it didn't fit the wall's guidelines"
		}
		b.WriteString(m.th.errText.Render("Your note wasn't approved: "+reason) + "\n")
	}

	if c.writing {
		b.WriteString("\n" + c.input.View() + "\n")
		if c.busy {
			b.WriteString(m.th.meta.Render("Sending...") + "\n")
		}
		b.WriteString(m.th.help.Render("ctrl+s: submit | esc: cancel"))
	} else {
		b.WriteString("\n" + m.th.help.Render("w: write a note | g: refresh"))
	}
	return b.String()
}
