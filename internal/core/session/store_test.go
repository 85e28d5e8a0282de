package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

// fakeService is a minimal in-memory stand-in for the remote service.
type fakeService struct {
	mux        *http.ServeMux
	sessions   []map[string]any
	messages   map[string][]models.Message
	failRename bool
	failDelete bool
}

func newFakeService() *fakeService {
	f := &fakeService{
		mux:      http.NewServeMux(),
		messages: map[string][]models.Message{},
	}
	f.mux.HandleFunc("GET /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.sessions)
	})
	f.mux.HandleFunc("POST /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		s := map[string]any{
			"id": "s1", "name": "New Session", "is_active": true,
			"initial_message": map[string]any{"role": "assistant", "content": "Hi there."},
		}
		f.sessions = append(f.sessions, s)
		_ = json.NewEncoder(w).Encode(s)
	})
	f.mux.HandleFunc("PUT /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.failRename {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}
	})
	f.mux.HandleFunc("DELETE /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.failDelete {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}
	})
	f.mux.HandleFunc("GET /api/sessions/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.messages[r.PathValue("id")])
	})
	return f
}

func newTestStore(t *testing.T, f *fakeService) *Store {
	t.Helper()
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(client)
}

func TestCreateSetsCurrentAndKeepsSeededGreeting(t *testing.T) {
	store := newTestStore(t, newFakeService())

	created, err := store.Create(context.Background(), api.Seed{QuizAnswers: []string{"Q: A"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created.IsActive {
		t.Error("new session should be active")
	}
	if len(created.Messages) != 1 || created.Messages[0].Role != models.RoleAssistant {
		t.Fatalf("Create() messages = %+v, want exactly one assistant greeting", created.Messages)
	}
	if store.CurrentID() != created.ID {
		t.Errorf("CurrentID() = %q, want %q", store.CurrentID(), created.ID)
	}
}

func TestRenameFailureLeavesCacheUntouched(t *testing.T) {
	f := newFakeService()
	f.sessions = []map[string]any{{"id": "s1", "name": "Original", "is_active": true}}
	store := newTestStore(t, f)
	if _, err := store.List(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.failRename = true
	if err := store.Rename(context.Background(), "s1", "Renamed"); err == nil {
		t.Fatal("Rename() succeeded against a failing service")
	}

	got, _ := store.Get("s1")
	if got.Name != "Original" {
		t.Errorf("cached name = %q, want %q after failed rename", got.Name, "Original")
	}
}

func TestDeleteFailureLeavesCacheUntouched(t *testing.T) {
	f := newFakeService()
	f.sessions = []map[string]any{{"id": "s1", "name": "Keep", "is_active": true}}
	store := newTestStore(t, f)
	if _, err := store.List(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.failDelete = true
	if err := store.Delete(context.Background(), "s1"); err == nil {
		t.Fatal("Delete() succeeded against a failing service")
	}
	if _, ok := store.Get("s1"); !ok {
		t.Error("session vanished from cache after failed delete")
	}
}

func TestDeleteClearsCurrentPointer(t *testing.T) {
	f := newFakeService()
	f.sessions = []map[string]any{{"id": "s1", "name": "Gone", "is_active": true}}
	store := newTestStore(t, f)
	if _, err := store.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadMessages(context.Background(), "s1"); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatal(err)
	}
	if store.CurrentID() != "" {
		t.Errorf("CurrentID() = %q after deleting the current session, want empty", store.CurrentID())
	}
}

func TestLoadMessagesReplacesNeverMerges(t *testing.T) {
	f := newFakeService()
	f.sessions = []map[string]any{{"id": "s1", "name": "Chat", "is_active": true}}
	f.messages["s1"] = []models.Message{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi"},
	}
	store := newTestStore(t, f)
	if _, err := store.List(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Diverge the cache with an optimistic append the server never saw.
	if err := store.AppendLocal("s1", models.Message{Role: models.RoleUser, Content: "lost"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadMessages(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadMessages() returned %d messages, want 2 (authoritative)", len(got))
	}
	cached, _ := store.Get("s1")
	if len(cached.Messages) != 2 || cached.Messages[1].Content != "hi" {
		t.Errorf("cache = %+v, want the server's exact sequence", cached.Messages)
	}
	if store.CurrentID() != "s1" {
		t.Errorf("CurrentID() = %q, want %q", store.CurrentID(), "s1")
	}
}

func TestListPreservesLoadedHistories(t *testing.T) {
	f := newFakeService()
	f.sessions = []map[string]any{{"id": "s1", "name": "Chat", "is_active": true}}
	f.messages["s1"] = []models.Message{{Role: models.RoleUser, Content: "hello"}}
	store := newTestStore(t, f)
	if _, err := store.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadMessages(context.Background(), "s1"); err != nil {
		t.Fatal(err)
	}

	listed, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || len(listed[0].Messages) != 1 {
		t.Errorf("relisting dropped loaded history: %+v", listed)
	}
}

func TestAppendLocalUnknownSession(t *testing.T) {
	store := newTestStore(t, newFakeService())
	err := store.AppendLocal("nope", models.Message{Role: models.RoleUser, Content: "x"})
	if err != ErrNoSuchSession {
		t.Errorf("AppendLocal() error = %v, want ErrNoSuchSession", err)
	}
}
