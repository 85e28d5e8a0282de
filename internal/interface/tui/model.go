package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/auth"
	"github.com/bigsister-app/bigsister/internal/core/config"
	"github.com/bigsister-app/bigsister/internal/core/confirm"
	"github.com/bigsister-app/bigsister/internal/core/conversation"
	"github.com/bigsister-app/bigsister/internal/core/journal"
	"github.com/bigsister-app/bigsister/internal/core/prefs"
	"github.com/bigsister-app/bigsister/internal/core/session"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
)

type viewMode int

const (
	authView viewMode = iota
	quizView
	chatView
	journalView
	resourcesView
	communityView
	settingsView
	helpView
)

// sections cycled by ctrl+t, in tab-bar order.
var sections = []viewMode{chatView, journalView, resourcesView, communityView, settingsView, helpView}

var sectionNames = map[viewMode]string{
	chatView:      "Chat",
	journalView:   "Journal",
	resourcesView: "Resources",
	communityView: "Community",
	settingsView:  "Settings",
	helpView:      "Help",
}

// Deps are the core services the UI is built on.
type Deps struct {
	Client   *api.Client
	Sessions *session.Store
	Renderer *typewriter.Renderer
	Gate     *auth.Gate
	Prompt   *confirm.Prompt
	Prefs    *prefs.Store
	Cfg      *config.Config
}

type Model struct {
	deps      Deps
	convo     *conversation.Controller
	jsync     *journal.Sync
	panel     *mapPanel
	events    *events
	confirmer *uiConfirmer

	th     theme
	mode   viewMode
	width  int
	height int
	status string
	err    error

	auth      authState
	quiz      quizState
	chat      chatState
	journal   journalState
	resources resourcesState
	community communityState
	settings  settingsState

	pin        pinState
	confirmDel *deleteConfirmMsg
	authBusy   bool
}

func New(deps Deps) Model {
	ev := newEvents()
	display := &uiDisplay{events: ev}
	confirmer := &uiConfirmer{events: ev}
	convo := conversation.New(deps.Sessions, deps.Client, deps.Renderer, display)
	jsync := journal.New(deps.Client, deps.Sessions, confirmer, deps.Cfg.ReflectionTemplate)
	panel := newMapPanel(ev)
	jsync.AttachPicker(panel)
	deps.Gate.OnForcedLogout(func() { ev.emit(forcedLogoutMsg{}) })

	themeName := deps.Cfg.Theme
	if themeName == "" && deps.Prefs != nil {
		themeName, _ = deps.Prefs.Theme()
	}

	m := Model{
		deps:      deps,
		convo:     convo,
		jsync:     jsync,
		panel:     panel,
		events:    ev,
		confirmer: confirmer,
		th:        themeByName(themeName),
		mode:      authView,
	}
	m.auth = newAuthState()
	m.chat = newChatState()
	m.journal = newJournalState()
	m.resources = newResourcesState()
	m.community = newCommunityState()
	m.settings = newSettingsState()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.events.wait(), m.checkAuth())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.resize(msg.Width, msg.Height)
		m.journal.resize(msg.Width, msg.Height)
		return m, nil

	case forcedLogoutMsg:
		m.mode = authView
		m.auth = newAuthState()
		m.chat = newChatState()
		m.chat.resize(m.width, m.height)
		m.status = "You were signed out. Please log in again."
		return m, m.events.wait()

	case deleteConfirmMsg:
		m.confirmDel = &msg
		return m, m.events.wait()

	case mapChangedMsg:
		return m, m.events.wait()

	case historyShownMsg, messageAppendedMsg, revealFrameMsg, revealDoneMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.handleTranscript(msg, m.th)
		return m, tea.Batch(m.events.wait(), cmd)

	case authCheckedMsg:
		if msg.ok {
			return m.enterApp(msg.username)
		}
		m.mode = authView
		return m, nil

	case loggedInMsg:
		return m.enterApp(msg.username)

	case loggedOutMsg:
		m.mode = authView
		m.auth = newAuthState()
		m.chat = newChatState()
		m.chat.resize(m.width, m.height)
		return m, nil

	case pinTickMsg:
		if !m.authBusy {
			return m, nil
		}
		if req, ok := m.deps.Prompt.Outstanding(); ok {
			if !m.pin.open {
				m.pin = newPINState(req)
			}
			return m, pinTick()
		}
		m.pin.open = false
		return m, pinTick()

	case pinFlowDoneMsg:
		m.authBusy = false
		m.pin.open = false
		switch {
		case msg.err == nil:
			m.status = msg.what
		case errors.Is(msg.err, confirm.ErrCancelled):
			// Backing out of the code prompt is a normal outcome.
			m.status = ""
		default:
			m.err = msg.err
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case errMsg:
		if m.mode == authView {
			m.auth.busy = false
			m.authBusy = false
			m.auth.errText = msg.err.Error()
			return m, nil
		}
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.route(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays swallow all keys.
	if m.confirmDel != nil {
		return m.updateDeleteConfirm(msg)
	}
	if m.pin.open {
		return m.updatePINModal(msg)
	}

	// Section switching, once signed in.
	if m.mode != authView && m.mode != quizView && msg.String() == "ctrl+t" {
		for i, s := range sections {
			if s == m.mode {
				m.mode = sections[(i+1)%len(sections)]
				break
			}
		}
		m.err = nil
		return m, m.enterSection()
	}

	return m.route(msg)
}

// route hands a message to the view that owns the current mode.
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case authView:
		return m.updateAuth(msg)
	case quizView:
		return m.updateQuiz(msg)
	case chatView:
		return m.updateChat(msg)
	case journalView:
		return m.updateJournal(msg)
	case resourcesView:
		return m.updateResources(msg)
	case communityView:
		return m.updateCommunity(msg)
	case settingsView:
		return m.updateSettings(msg)
	case helpView:
		return m.updateHelp(msg)
	}
	return m, nil
}

// enterSection kicks off whatever load the newly shown section needs.
func (m Model) enterSection() tea.Cmd {
	switch m.mode {
	case journalView:
		return m.loadJournal()
	case communityView:
		return m.loadWall()
	case settingsView:
		return m.loadProfile()
	}
	return nil
}

func (m Model) enterApp(username string) (tea.Model, tea.Cmd) {
	m.settings.username = username
	m.mode = chatView
	m.status = ""
	m.authBusy = false
	m.auth.busy = false
	m.pin.open = false
	return m, m.loadSessions()
}

func (m Model) View() string {
	var body string
	switch m.mode {
	case authView:
		body = m.viewAuth()
	case quizView:
		body = m.viewQuiz()
	case chatView:
		body = m.viewChat()
	case journalView:
		body = m.viewJournal()
	case resourcesView:
		body = m.viewResources()
	case communityView:
		body = m.viewCommunity()
	case settingsView:
		body = m.viewSettings()
	case helpView:
		body = m.viewHelp()
	}

	if m.mode != authView && m.mode != quizView {
		body = m.tabBar() + "\n" + body
	}
	if m.err != nil {
		body += "\n" + m.th.errText.Render("Error: "+m.err.Error())
	} else if m.status != "" {
		body += "\n" + m.th.meta.Render(m.status)
	}

	if m.confirmDel != nil {
		return m.viewDeleteConfirm()
	}
	if m.pin.open {
		return m.viewPINModal()
	}
	return body
}

func (m Model) tabBar() string {
	var bar string
	for _, s := range sections {
		if s == m.mode {
			bar += m.th.tabActive.Render(sectionNames[s])
		} else {
			bar += m.th.tab.Render(sectionNames[s])
		}
	}
	return bar + m.th.meta.Render("  (ctrl+t to switch)")
}
