package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

type errMsg struct {
	err error
}

type statusMsg struct {
	text string
}

type authCheckedMsg struct {
	username string
	ok       bool
}

type loggedInMsg struct {
	username string
}

type loggedOutMsg struct{}

type forcedLogoutMsg struct{}

type sessionsLoadedMsg struct {
	sessions []models.Session
}

type sessionOpenedMsg struct {
	id string
}

type sessionCreatedMsg struct {
	session models.Session
}

type sessionRenamedMsg struct{}

type sessionDeletedMsg struct{}

type sendDoneMsg struct {
	err error
}

// Typewriter frames delivered through the event channel.
type historyShownMsg struct {
	messages []models.Message
}

type messageAppendedMsg struct {
	message models.Message
}

type revealFrameMsg struct {
	prefix string
}

type revealDoneMsg struct {
	full string
}

type journalLoadedMsg struct {
	entries []models.JournalEntry
}

type journalEntryMsg struct {
	entry models.JournalEntry
}

type journalSavedMsg struct {
	entry models.JournalEntry
}

type journalDeletedMsg struct{}

type journalReflectedMsg struct {
	session models.Session
}

type deleteConfirmMsg struct {
	title string
	reply chan bool
}

type mapChangedMsg struct{}

type heatmapLoadedMsg struct {
	points []api.MoodPoint
}

type wallLoadedMsg struct {
	messages []string
	mine     api.CommunityMessage
}

type wallPostedMsg struct{}

type profileLoadedMsg struct {
	info string
}

type pinTickMsg struct{}

// pinFlowDoneMsg ends a background flow that was collecting codes
// (signup, PIN change), however it resolved.
type pinFlowDoneMsg struct {
	what string
	err  error
}

// events is the bridge from background work (typewriter frames,
// forced logouts, delete confirmations) into the bubbletea loop.
type events struct {
	ch chan tea.Msg
}

func newEvents() *events {
	return &events{ch: make(chan tea.Msg, 64)}
}

func (e *events) emit(msg tea.Msg) {
	e.ch <- msg
}

// wait blocks until the next background event arrives. The model
// re-arms it after every delivery.
func (e *events) wait() tea.Cmd {
	return func() tea.Msg {
		return <-e.ch
	}
}

// uiDisplay feeds conversation output into the event channel. It is
// the reveal sink for the chat transcript.
type uiDisplay struct {
	events *events
}

func (d *uiDisplay) AppendMessage(msg models.Message) {
	d.events.emit(messageAppendedMsg{message: msg})
}

func (d *uiDisplay) ShowHistory(messages []models.Message) {
	d.events.emit(historyShownMsg{messages: messages})
}

func (d *uiDisplay) WriteReveal(prefix string) {
	d.events.emit(revealFrameMsg{prefix: prefix})
}

func (d *uiDisplay) RevealDone(full string) {
	d.events.emit(revealDoneMsg{full: full})
}

// uiConfirmer blocks a background delete until the user answers the
// overlay.
type uiConfirmer struct {
	events *events
}

func (c *uiConfirmer) ConfirmDelete(title string) bool {
	reply := make(chan bool, 1)
	c.events.emit(deleteConfirmMsg{title: title, reply: reply})
	return <-reply
}

// mapPanel is the text map shown next to the journal editor. Journal
// selection drives it through the MapPicker interface from background
// commands, so access is guarded.
// Zoom levels mirror the web map: world overview, close-in on a pin.
const (
	worldZoom  = 1
	markerZoom = 5
)

type mapPanel struct {
	mu     sync.Mutex
	events *events

	marker *models.LatLng
	center models.LatLng
	zoom   int
}

func newMapPanel(events *events) *mapPanel {
	return &mapPanel{
		events: events,
		center: models.LatLng{Lat: 20, Lng: 0},
		zoom:   worldZoom,
	}
}

func (p *mapPanel) SetMarker(lat, lng float64) {
	p.mu.Lock()
	p.marker = &models.LatLng{Lat: lat, Lng: lng}
	p.mu.Unlock()
	p.events.emit(mapChangedMsg{})
}

func (p *mapPanel) ClearMarker() {
	p.mu.Lock()
	p.marker = nil
	p.mu.Unlock()
	p.events.emit(mapChangedMsg{})
}

func (p *mapPanel) Recenter(lat, lng float64) {
	p.mu.Lock()
	p.center = models.LatLng{Lat: lat, Lng: lng}
	p.zoom = markerZoom
	p.mu.Unlock()
	p.events.emit(mapChangedMsg{})
}

func (p *mapPanel) ResetWorldView() {
	p.mu.Lock()
	p.center = models.LatLng{Lat: 20, Lng: 0}
	p.zoom = worldZoom
	p.mu.Unlock()
	p.events.emit(mapChangedMsg{})
}

func (p *mapPanel) snapshot() (marker *models.LatLng, center models.LatLng, zoom int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.marker != nil {
		m := *p.marker
		marker = &m
	}
	return marker, p.center, p.zoom
}

const requestTimeout = 30 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m Model) checkAuth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		username, err := m.deps.Gate.CheckAuth(ctx)
		if err != nil {
			return authCheckedMsg{ok: false}
		}
		return authCheckedMsg{username: username, ok: true}
	}
}

func (m Model) loadSessions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		sessions, err := m.deps.Sessions.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

func (m Model) openSession(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.convo.OpenSession(ctx, id); err != nil {
			return errMsg{err}
		}
		return sessionOpenedMsg{id: id}
	}
}

func (m Model) createSession(answers []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		sess, err := m.deps.Sessions.Create(ctx, api.Seed{QuizAnswers: answers})
		if err != nil {
			return errMsg{err}
		}
		return sessionCreatedMsg{session: sess}
	}
}

func (m Model) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return sendDoneMsg{err: m.convo.SendUserMessage(ctx, text)}
	}
}

func (m Model) renameSession(id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.deps.Sessions.Rename(ctx, id, name); err != nil {
			return errMsg{err}
		}
		return sessionRenamedMsg{}
	}
}

func (m Model) deleteSession(sess models.Session) tea.Cmd {
	return func() tea.Msg {
		name := sess.Name
		if name == "" {
			name = "this session"
		}
		if !m.confirmer.ConfirmDelete(name) {
			return nil
		}
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.deps.Sessions.Delete(ctx, sess.ID); err != nil {
			return errMsg{err}
		}
		return sessionDeletedMsg{}
	}
}

func (m Model) loadJournal() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		entries, err := m.jsync.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return journalLoadedMsg{entries: entries}
	}
}

func (m Model) openJournalEntry(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		entry, err := m.jsync.Load(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return journalEntryMsg{entry: entry}
	}
}

func (m Model) saveJournalEntry(entry models.JournalEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		saved, err := m.jsync.Save(ctx, entry)
		if err != nil {
			return errMsg{err}
		}
		return journalSavedMsg{entry: saved}
	}
}

func (m Model) deleteJournalEntry(entry models.JournalEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.jsync.Delete(ctx, entry); err != nil {
			return errMsg{err}
		}
		return journalDeletedMsg{}
	}
}

func (m Model) reflectOnEntry(entry models.JournalEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		sess, err := m.jsync.Reflect(ctx, entry)
		if err != nil {
			return errMsg{err}
		}
		return journalReflectedMsg{session: sess}
	}
}

func (m Model) loadHeatmap() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		points, err := m.deps.Client.Heatmap(ctx)
		if err != nil {
			return errMsg{err}
		}
		return heatmapLoadedMsg{points: points}
	}
}

func (m Model) loadWall() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		approved, err := m.deps.Client.ApprovedMessages(ctx)
		if err != nil {
			return errMsg{err}
		}
		mine, err := m.deps.Client.MyCommunityMessage(ctx)
		if err != nil {
			return errMsg{err}
		}
		return wallLoadedMsg{messages: approved, mine: mine}
	}
}

func (m Model) postToWall(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if _, err := m.deps.Client.PostCommunityMessage(ctx, text); err != nil {
			return errMsg{err}
		}
		return wallPostedMsg{}
	}
}

func (m Model) loadProfile() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		info, err := m.deps.Client.Profile(ctx)
		if err != nil {
			return errMsg{err}
		}
		return profileLoadedMsg{info: info}
	}
}

func (m Model) saveProfile(info string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.deps.Client.SaveProfile(ctx, info); err != nil {
			return errMsg{err}
		}
		return statusMsg{text: "Profile saved"}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if err := m.deps.Gate.Logout(ctx); err != nil {
			return errMsg{err}
		}
		return loggedOutMsg{}
	}
}

// pinTick keeps the UI redrawing while a background flow may open or
// close a code request.
func pinTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return pinTickMsg{}
	})
}
