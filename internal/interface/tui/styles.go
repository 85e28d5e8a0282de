package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

// theme holds the palette for one of the two supported looks.
type theme struct {
	name string

	title     lipgloss.Style
	item      lipgloss.Style
	selected  lipgloss.Style
	active    lipgloss.Style
	meta      lipgloss.Style
	errText   lipgloss.Style
	userMsg   lipgloss.Style
	sisterMsg lipgloss.Style
	modal     lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	help      lipgloss.Style
	mood      map[models.Mood]lipgloss.Style
}

func darkTheme() theme {
	return theme{
		name: "dark",
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		item: lipgloss.NewStyle().
			PaddingLeft(2),
		selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.Color("170")).
			Bold(true),
		active: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("120")),
		meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		userMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true),
		sisterMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3),
		tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		mood: map[models.Mood]lipgloss.Style{
			models.MoodHappy:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			models.MoodCalm:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
			models.MoodAnxious: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			models.MoodSad:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			models.MoodAngry:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			models.MoodNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		},
	}
}

func lightTheme() theme {
	t := darkTheme()
	t.name = "light"
	t.title = t.title.Foreground(lipgloss.Color("162"))
	t.selected = t.selected.Foreground(lipgloss.Color("90"))
	t.active = t.active.Foreground(lipgloss.Color("28"))
	t.meta = t.meta.Foreground(lipgloss.Color("241"))
	t.userMsg = t.userMsg.Foreground(lipgloss.Color("26"))
	t.sisterMsg = t.sisterMsg.Foreground(lipgloss.Color("126"))
	t.modal = t.modal.BorderForeground(lipgloss.Color("162"))
	t.tabActive = t.tabActive.Foreground(lipgloss.Color("162"))
	t.help = t.help.Foreground(lipgloss.Color("245"))
	return t
}

func themeByName(name string) theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}
