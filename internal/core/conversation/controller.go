// Package conversation orchestrates sending a user message: guard
// against concurrent sends, optimistic local append, remote chat call,
// and routing the reply (or the fixed apology) through the typewriter.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bigsister-app/bigsister/internal/core/models"
	"github.com/bigsister-app/bigsister/internal/core/session"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
)

// FallbackMessage is the fixed, non-technical apology substituted for a
// failed reply. The user must never see a raw error in the chat.
const FallbackMessage = "Sweetheart, my thoughts got a little tangled just now and I couldn’t finish what I wanted to say.\n\nIt’s nothing you did — sometimes the wires behind me get a bit messy.\n\nCould you try again in a little while? 💜"

var (
	// ErrBusy means a previous send's reveal has not completed yet.
	// Callers are expected to disable input while IsRendering is true.
	ErrBusy = errors.New("a reply is still being revealed")

	// ErrNoSession means no current session is selected.
	ErrNoSession = errors.New("no session selected")

	// ErrSessionClosed means the current session no longer accepts user
	// input; it remains readable.
	ErrSessionClosed = errors.New("this session has ended")
)

// Chatter is the remote chat endpoint the controller needs.
type Chatter interface {
	Chat(ctx context.Context, sessionID, message string) (string, error)
}

// Display is the conversation's render surface. WriteReveal and
// RevealDone follow the typewriter sink contract.
type Display interface {
	// AppendMessage shows a message immediately, without reveal.
	AppendMessage(msg models.Message)
	// ShowHistory replaces the visible transcript.
	ShowHistory(messages []models.Message)
	WriteReveal(prefix string)
	RevealDone(full string)
}

// Controller drives one conversation surface.
type Controller struct {
	store    *session.Store
	chatter  Chatter
	renderer *typewriter.Renderer
	display  Display
	sink     typewriter.Sink

	mu        sync.Mutex
	rendering bool
	epoch     int

	// revealMu orders reveal starts against session switches: the
	// epoch check and the Reveal call happen as one unit, so a switch
	// either lands before the check (the reveal is skipped) or after
	// the Reveal (its Cancel kills the reveal). It is never taken from
	// a renderer callback.
	revealMu sync.Mutex
}

// New wires a controller to its store, chat endpoint, renderer, and
// render surface.
func New(store *session.Store, chatter Chatter, renderer *typewriter.Renderer, display Display) *Controller {
	c := &Controller{
		store:    store,
		chatter:  chatter,
		renderer: renderer,
		display:  display,
	}
	c.sink = &revealSink{c: c}
	return c
}

// IsRendering reports whether a send is in flight. It is true from the
// instant a send is accepted until its reveal (or fallback reveal)
// completes.
func (c *Controller) IsRendering() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendering
}

// SendUserMessage appends the user's message optimistically, calls the
// chat endpoint, and reveals the reply. While a previous send is
// rendering, or when no active session is selected, the call does
// nothing and reports why.
func (c *Controller) SendUserMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	current, ok := c.store.Current()
	if !ok {
		return ErrNoSession
	}
	if !current.IsActive {
		return ErrSessionClosed
	}

	c.mu.Lock()
	if c.rendering {
		c.mu.Unlock()
		return ErrBusy
	}
	c.rendering = true
	epoch := c.epoch
	c.mu.Unlock()

	userMsg := models.Message{
		LocalID:   uuid.NewString(),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	_ = c.store.AppendLocal(current.ID, userMsg)
	c.display.AppendMessage(userMsg)

	reply, err := c.chatter.Chat(ctx, current.ID, text)
	if err != nil {
		reply = FallbackMessage
	}

	assistantMsg := models.Message{
		LocalID:   uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
	_ = c.store.AppendLocal(current.ID, assistantMsg)

	c.revealMu.Lock()
	defer c.revealMu.Unlock()
	c.mu.Lock()
	if c.epoch != epoch {
		// The user switched sessions while the call was in flight. The
		// message is in the cache; revealing it into the new view would
		// be wrong.
		c.rendering = false
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.renderer.Reveal(reply, c.sink)
	return nil
}

// OpenSession switches the surface to a session: any in-flight reveal
// is cancelled, the authoritative history is loaded, and all messages
// render immediately. Incremental reveal is reserved for freshly
// produced replies.
func (c *Controller) OpenSession(ctx context.Context, id string) error {
	c.revealMu.Lock()
	c.renderer.Cancel(c.sink)
	c.mu.Lock()
	c.rendering = false
	c.epoch++
	c.mu.Unlock()
	c.revealMu.Unlock()

	messages, err := c.store.LoadMessages(ctx, id)
	if err != nil {
		return err
	}
	c.display.ShowHistory(messages)
	return nil
}

func (c *Controller) revealDone() {
	c.mu.Lock()
	c.rendering = false
	c.mu.Unlock()
}

// revealSink forwards frames to the display and clears the rendering
// guard on completion. Completion of the reveal is the sole trigger
// that clears it.
type revealSink struct {
	c *Controller
}

func (s *revealSink) WriteReveal(prefix string) {
	s.c.display.WriteReveal(prefix)
}

func (s *revealSink) RevealDone(full string) {
	s.c.revealDone()
	s.c.display.RevealDone(full)
}
