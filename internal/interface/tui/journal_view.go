package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

type journalPane int

const (
	journalList journalPane = iota
	journalEditor
)

type journalField int

const (
	fieldTitle journalField = iota
	fieldContent
	fieldMood
	fieldLat
	fieldLng
	fieldCount
)

type journalState struct {
	pane     journalPane
	entries  []models.JournalEntry
	selected int

	editing models.JournalEntry
	title   textinput.Model
	content textarea.Model
	lat     textinput.Model
	lng     textinput.Model
	moodIdx int
	focus   journalField

	filtering bool
	filter    textinput.Model

	width  int
	height int
}

func newJournalState() journalState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120

	content := textarea.New()
	content.Placeholder = "What's on your mind?"
	content.SetHeight(8)

	lat := textinput.New()
	lat.Placeholder = "latitude"
	lat.CharLimit = 12
	lng := textinput.New()
	lng.Placeholder = "longitude"
	lng.CharLimit = 12

	filter := textinput.New()
	filter.Placeholder = "mood:sad after:last-week"

	return journalState{title: title, content: content, lat: lat, lng: lng, filter: filter}
}

func (j *journalState) resize(width, height int) {
	j.width = width
	j.height = height
	w := width - 40
	if w < 30 {
		w = 30
	}
	j.title.Width = w
	j.content.SetWidth(w)
}

func (j *journalState) openEditor(entry models.JournalEntry) {
	j.pane = journalEditor
	j.editing = entry
	j.title.SetValue(entry.Title)
	j.content.SetValue(entry.Content)
	j.moodIdx = 0
	for i, mood := range models.Moods {
		if mood == entry.Mood {
			j.moodIdx = i
		}
	}
	if entry.Location != nil {
		j.lat.SetValue(strconv.FormatFloat(entry.Location.Lat, 'f', 4, 64))
		j.lng.SetValue(strconv.FormatFloat(entry.Location.Lng, 'f', 4, 64))
	} else {
		j.lat.SetValue("")
		j.lng.SetValue("")
	}
	j.focus = fieldTitle
	j.setFocus()
}

func (j *journalState) setFocus() {
	j.title.Blur()
	j.content.Blur()
	j.lat.Blur()
	j.lng.Blur()
	switch j.focus {
	case fieldTitle:
		j.title.Focus()
	case fieldContent:
		j.content.Focus()
	case fieldLat:
		j.lat.Focus()
	case fieldLng:
		j.lng.Focus()
	}
}

// collect builds the entry from the editor fields. Unparseable
// coordinates mean no location.
func (j *journalState) collect() models.JournalEntry {
	entry := j.editing
	entry.Title = strings.TrimSpace(j.title.Value())
	entry.Content = j.content.Value()
	entry.Mood = models.Moods[j.moodIdx]
	entry.Location = nil
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(j.lat.Value()), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(j.lng.Value()), 64)
	if latErr == nil && lngErr == nil {
		entry.Location = &models.LatLng{Lat: lat, Lng: lng}
	}
	return entry
}

func (m Model) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case journalLoadedMsg:
		m.journal.entries = msg.entries
		if m.journal.selected >= len(msg.entries) {
			m.journal.selected = 0
		}
		return m, nil

	case journalEntryMsg:
		m.journal.openEditor(msg.entry)
		return m, nil

	case journalSavedMsg:
		m.journal.pane = journalList
		m.status = "Entry saved"
		return m, m.loadJournal()

	case journalDeletedMsg:
		m.journal.pane = journalList
		m.status = "Entry deleted"
		return m, m.loadJournal()

	case journalReflectedMsg:
		m.mode = chatView
		m.chat.transcript = msg.session.Messages
		m.chat.refreshViewport(m.th)
		m.chat.focusInput = true
		m.status = "Reflecting on \"" + msg.session.Name + "\""
		return m, m.loadSessions()

	case tea.KeyMsg:
		if m.journal.pane == journalEditor {
			return m.handleJournalEditorKey(msg)
		}
		return m.handleJournalListKey(msg)
	}
	return m, nil
}

func (m Model) handleJournalListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.journal.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.journal.filtering = false
			if msg.String() == "esc" {
				m.journal.filter.SetValue("")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.journal.filter, cmd = m.journal.filter.Update(msg)
		return m, cmd
	}

	visible := m.visibleEntries()
	switch msg.String() {
	case "j", "down":
		if m.journal.selected < len(visible)-1 {
			m.journal.selected++
		}
	case "k", "up":
		if m.journal.selected > 0 {
			m.journal.selected--
		}
	case "enter":
		if m.journal.selected < len(visible) {
			return m, m.openJournalEntry(visible[m.journal.selected].ID)
		}
	case "n":
		m.jsync.Deselect()
		m.journal.openEditor(models.JournalEntry{Mood: models.MoodNeutral})
	case "d":
		if m.journal.selected < len(visible) {
			return m, m.deleteJournalEntry(visible[m.journal.selected])
		}
	case "R":
		if m.journal.selected < len(visible) {
			return m, m.reflectOnEntry(visible[m.journal.selected])
		}
	case "/":
		m.journal.filtering = true
		m.journal.filter.Focus()
	}
	return m, nil
}

func (m Model) handleJournalEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.journal.pane = journalList
		m.jsync.Deselect()
		return m, nil

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.journal.focus = (m.journal.focus + 1) % fieldCount
		} else {
			m.journal.focus = (m.journal.focus + fieldCount - 1) % fieldCount
		}
		m.journal.setFocus()
		return m, nil

	case "ctrl+s":
		entry := m.journal.collect()
		return m, m.saveJournalEntry(entry)

	case "ctrl+x":
		// Drop the pinned location.
		m.journal.lat.SetValue("")
		m.journal.lng.SetValue("")
		return m, nil

	case "left", "right":
		if m.journal.focus == fieldMood {
			if msg.String() == "right" {
				m.journal.moodIdx = (m.journal.moodIdx + 1) % len(models.Moods)
			} else {
				m.journal.moodIdx = (m.journal.moodIdx + len(models.Moods) - 1) % len(models.Moods)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.journal.focus {
	case fieldTitle:
		m.journal.title, cmd = m.journal.title.Update(msg)
	case fieldContent:
		m.journal.content, cmd = m.journal.content.Update(msg)
	case fieldLat:
		m.journal.lat, cmd = m.journal.lat.Update(msg)
	case fieldLng:
		m.journal.lng, cmd = m.journal.lng.Update(msg)
	}
	return m, cmd
}

func (m Model) viewJournal() string {
	if m.journal.pane == journalEditor {
		return m.viewJournalEditor()
	}
	return m.viewJournalList()
}

func (m Model) viewJournalList() string {
	var b strings.Builder
	b.WriteString(m.th.title.Render("My Journal"))
	b.WriteString("\n")
	if m.journal.filtering || m.journal.filter.Value() != "" {
		b.WriteString("Filter: " + m.journal.filter.View() + "\n")
	}
	b.WriteString("\n")

	visible := m.visibleEntries()
	if len(visible) == 0 {
		b.WriteString(m.th.meta.Render("Nothing here yet. Press n to write your first entry."))
		b.WriteString("\n")
	}
	for i, entry := range visible {
		mood := m.th.mood[entry.Mood].Render("● " + string(entry.Mood))
		line := fmt.Sprintf("%s  %s  %s", entry.Title, mood, m.th.meta.Render(humanize.Time(entry.Timestamp)))
		if entry.Location != nil {
			line += " " + m.th.meta.Render("📍")
		}
		if i == m.journal.selected {
			b.WriteString(m.th.selected.Render("► "+line) + "\n")
		} else {
			b.WriteString(m.th.item.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.th.help.Render("j/k: pick | enter: open | n: new | d: delete | R: reflect in chat | /: filter"))
	return b.String()
}

func (m Model) viewJournalEditor() string {
	j := &m.journal
	var b strings.Builder
	header := "New Entry"
	if j.editing.ID != "" {
		header = "Edit Entry"
	}
	b.WriteString(m.th.title.Render(header))
	b.WriteString("\n\n")
	b.WriteString("Title: " + j.title.View() + "\n\n")
	b.WriteString(j.content.View() + "\n\n")

	moodLine := "Mood:  "
	for i, mood := range models.Moods {
		if i == j.moodIdx {
			moodLine += m.th.mood[mood].Render("["+string(mood)+"]") + " "
		} else {
			moodLine += m.th.meta.Render(string(mood)) + " "
		}
	}
	if j.focus == fieldMood {
		moodLine += m.th.help.Render(" ←/→")
	}
	b.WriteString(moodLine + "\n\n")

	b.WriteString("Where were you? (optional)\n")
	b.WriteString("  Lat: " + j.lat.View() + "   Lng: " + j.lng.View() + "\n\n")
	b.WriteString(m.viewMapPanel())
	b.WriteString("\n")
	b.WriteString(m.th.help.Render("tab: next field | ctrl+s: save | ctrl+x: clear pin | esc: back"))
	return b.String()
}

// viewMapPanel draws the little ascii world map with the current pin.
func (m Model) viewMapPanel() string {
	marker, center, zoom := m.panel.snapshot()
	var b strings.Builder
	if marker == nil {
		b.WriteString(m.th.meta.Render(fmt.Sprintf("Map: world view (%.0f, %.0f) zoom %d — no pin", center.Lat, center.Lng, zoom)))
	} else {
		b.WriteString(m.th.active.Render(fmt.Sprintf("Map: pinned at %.4f, %.4f (zoom %d)", marker.Lat, marker.Lng, zoom)))
	}
	b.WriteString("\n")
	return b.String()
}

// visibleEntries applies the list filter. Tokens understood:
// mood:<name>, after:<date>, before:<date>; anything else matches the
// title.
func (m Model) visibleEntries() []models.JournalEntry {
	query := strings.TrimSpace(m.journal.filter.Value())
	if query == "" {
		return m.journal.entries
	}
	filters := parseJournalFilter(query)
	var out []models.JournalEntry
	for _, entry := range m.journal.entries {
		if filters.matches(entry) {
			out = append(out, entry)
		}
	}
	return out
}

type journalFilters struct {
	mood      string // lowercase mood name
	text      string
	after     time.Time
	before    time.Time
	hasAfter  bool
	hasBefore bool
}

func (f journalFilters) matches(entry models.JournalEntry) bool {
	if f.mood != "" && !strings.EqualFold(string(entry.Mood), f.mood) {
		return false
	}
	if f.hasAfter && entry.Timestamp.Before(f.after) {
		return false
	}
	if f.hasBefore && entry.Timestamp.After(f.before) {
		return false
	}
	if f.text != "" && !strings.Contains(strings.ToLower(entry.Title), strings.ToLower(f.text)) {
		return false
	}
	return true
}
