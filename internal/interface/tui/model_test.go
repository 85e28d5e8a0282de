package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/auth"
	"github.com/bigsister-app/bigsister/internal/core/config"
	"github.com/bigsister-app/bigsister/internal/core/confirm"
	"github.com/bigsister-app/bigsister/internal/core/journal"
	"github.com/bigsister-app/bigsister/internal/core/models"
	"github.com/bigsister-app/bigsister/internal/core/session"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
)

// The journal hands the map to whatever panel the UI attaches.
var _ journal.MapPicker = (*mapPanel)(nil)

func newTestModel(t *testing.T) Model {
	t.Helper()
	srv := httptest.NewServer(http.NewServeMux())
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	sessions := session.NewStore(client)
	prompt := confirm.New()

	return New(Deps{
		Client:   client,
		Sessions: sessions,
		Renderer: typewriter.New(time.Millisecond),
		Gate:     auth.NewGate(client, prompt, sessions),
		Prompt:   prompt,
		Cfg: &config.Config{
			ServerURL:          srv.URL,
			TypingInterval:     time.Millisecond,
			ReflectionTemplate: journal.DefaultReflectionTemplate,
		},
	})
}

func TestMapPanelReconciliation(t *testing.T) {
	panel := newMapPanel(newEvents())

	panel.SetMarker(48.85, 2.35)
	panel.Recenter(48.85, 2.35)
	marker, center, zoom := panel.snapshot()
	if marker == nil || marker.Lat != 48.85 || marker.Lng != 2.35 {
		t.Fatalf("marker = %+v, want the pinned location", marker)
	}
	if center != (models.LatLng{Lat: 48.85, Lng: 2.35}) || zoom != markerZoom {
		t.Errorf("center = %+v zoom = %d, want recentered on the pin", center, zoom)
	}

	panel.ClearMarker()
	panel.ResetWorldView()
	marker, center, zoom = panel.snapshot()
	if marker != nil {
		t.Error("marker survived ClearMarker")
	}
	if center != (models.LatLng{Lat: 20, Lng: 0}) || zoom != worldZoom {
		t.Errorf("center = %+v zoom = %d, want the world view", center, zoom)
	}
}

func TestSessionDeleteAsksFirst(t *testing.T) {
	m := newTestModel(t)
	m.chat.sessions = []models.Session{{ID: "s1", Name: "Monday"}}

	cmd := m.deleteSession(m.chat.sessions[0])
	done := make(chan struct{})
	go func() {
		if msg := cmd(); msg != nil {
			t.Errorf("declined delete produced %T, want nothing", msg)
		}
		close(done)
	}()

	// The command blocks on the confirmation overlay; answer no. Model
	// construction may have emitted earlier events (AttachPicker's
	// initial reconcile sends mapChangedMsg), so skip past those.
	deadline := time.After(2 * time.Second)
	for answered := false; !answered; {
		select {
		case msg := <-m.events.ch:
			ask, ok := msg.(deleteConfirmMsg)
			if !ok {
				continue
			}
			if ask.title != "Monday" {
				t.Errorf("confirmation names %q, want the session name", ask.title)
			}
			ask.reply <- false
			answered = true
		case <-deadline:
			t.Fatal("delete never asked for confirmation")
		}
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("declined delete never returned")
	}
}

func TestPINFlowResolutionClearsBusy(t *testing.T) {
	m := newTestModel(t)
	m.mode = settingsView
	m.authBusy = true
	m.pin.open = true

	next, _ := m.Update(pinFlowDoneMsg{what: "PIN changed"})
	got := next.(Model)
	if got.authBusy || got.pin.open {
		t.Error("finished flow left the code prompt armed")
	}
	if got.status != "PIN changed" {
		t.Errorf("status = %q", got.status)
	}

	m.authBusy = true
	m.pin.open = true
	next, _ = m.Update(pinFlowDoneMsg{what: "PIN changed", err: confirm.ErrCancelled})
	got = next.(Model)
	if got.authBusy || got.pin.open {
		t.Error("cancelled flow left the code prompt armed")
	}
	if got.err != nil {
		t.Errorf("cancelling surfaced as error %v", got.err)
	}
	if got.status != "" {
		t.Errorf("cancelling produced status %q, want none", got.status)
	}
}
