package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bigsister-app/bigsister/internal/core/resources"
)

type resourcesState struct {
	countryIdx   int
	typeIdx      int
	anonymityIdx int
	dim          int // which filter dimension the arrows move
	showAudio    bool
}

var anonymityOptions = []string{resources.FilterAll, "Anonymous", "Confidential"}

func newResourcesState() resourcesState {
	return resourcesState{}
}

func (r resourcesState) options(dim int) []string {
	switch dim {
	case 0:
		return append([]string{resources.FilterAll}, resources.Countries()...)
	case 1:
		return append([]string{resources.FilterAll}, resources.Types()...)
	default:
		return anonymityOptions
	}
}

func (r resourcesState) picked(dim int) string {
	opts := r.options(dim)
	idx := []int{r.countryIdx, r.typeIdx, r.anonymityIdx}[dim]
	if idx >= len(opts) {
		return resources.FilterAll
	}
	return opts[idx]
}

func (m Model) updateResources(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	r := &m.resources
	switch keyMsg.String() {
	case "a":
		r.showAudio = !r.showAudio
	case "tab":
		r.dim = (r.dim + 1) % 3
	case "left", "right":
		opts := r.options(r.dim)
		delta := 1
		if keyMsg.String() == "left" {
			delta = len(opts) - 1
		}
		switch r.dim {
		case 0:
			r.countryIdx = (r.countryIdx + delta) % len(opts)
		case 1:
			r.typeIdx = (r.typeIdx + delta) % len(opts)
		default:
			r.anonymityIdx = (r.anonymityIdx + delta) % len(opts)
		}
	}
	return m, nil
}

func (m Model) viewResources() string {
	r := m.resources
	var b strings.Builder

	if r.showAudio {
		b.WriteString(m.th.title.Render("Mind Matters Audio"))
		b.WriteString("\n\n")
		for _, track := range resources.AudioLibrary() {
			b.WriteString(m.th.selected.Render(track.Title) + "\n")
			b.WriteString(m.th.item.Render(track.Description) + "\n")
			b.WriteString(m.th.meta.Render("  "+track.File) + "\n\n")
		}
		b.WriteString(m.th.help.Render("a: back to helplines"))
		return b.String()
	}

	b.WriteString(m.th.title.Render("Support Resources"))
	b.WriteString("\n\n")

	labels := []string{"Country", "Type", "Anonymity"}
	for i, label := range labels {
		line := fmt.Sprintf("%s: %s", label, r.picked(i))
		if i == r.dim {
			line = m.th.selected.Render("► "+line) + m.th.help.Render("  ←/→")
		} else {
			line = m.th.item.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	matched := resources.Filter(r.picked(0), r.picked(1), r.picked(2))
	if len(matched) == 0 {
		b.WriteString(m.th.meta.Render("No resources match those filters."))
		b.WriteString("\n")
	}
	for _, h := range matched {
		b.WriteString(m.th.selected.Render(h.Name))
		b.WriteString(m.th.meta.Render(fmt.Sprintf("  %s · %s · %s", h.Country, h.Type, h.Anonymity)))
		b.WriteString("\n")
		b.WriteString(m.th.item.Render(h.Description) + "\n")
		var contact []string
		if h.Contact.Call != "" {
			contact = append(contact, "Call "+h.Contact.Call)
		}
		if h.Contact.Text != "" {
			contact = append(contact, "Text "+h.Contact.Text)
		}
		if h.Contact.Chat != "" {
			contact = append(contact, "Chat "+h.Contact.Chat)
		}
		b.WriteString(m.th.active.Render("  "+strings.Join(contact, " | ")) + "\n\n")
	}

	b.WriteString(m.th.help.Render("tab: filter | ←/→: change | a: audio library"))
	return b.String()
}
