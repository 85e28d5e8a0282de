package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestUnauthorizedFiresHook(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	fired := 0
	c.OnUnauthorized(func() { fired++ })

	_, err := c.ListSessions(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, fired)
}

func TestCheckAuthDoesNotFireHook(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	fired := 0
	c.OnUnauthorized(func() { fired++ })

	_, err := c.CheckAuth(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, fired, "auth check must not force a logout")
}

func TestRemoteErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no message provided"})
	}))

	_, err := c.Chat(context.Background(), "s1", "")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, "no message provided", remote.Message)
}

func TestCookiePropagation(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		_ = json.NewEncoder(w).Encode(map[string]string{"username": "ana"})
	})
	mux.HandleFunc("GET /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("session"); err == nil && cookie.Value == "abc" {
			sawCookie = true
		}
		_, _ = w.Write([]byte("[]"))
	})

	c := newTestClient(t, mux)
	name, err := c.Login(context.Background(), "ana", "1234")
	require.NoError(t, err)
	assert.Equal(t, "ana", name)

	_, err = c.ListSessions(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "session cookie should ride along on later requests")
}

func TestCreateSessionCarriesSeededGreeting(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var seed Seed
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seed))
		assert.Len(t, seed.QuizAnswers, 2)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "s42",
			"name":      "Check-in",
			"is_active": true,
			"initial_message": map[string]any{
				"role":    "assistant",
				"content": "Hi there, thanks for checking in.",
			},
		})
	}))

	s, err := c.CreateSession(context.Background(), Seed{QuizAnswers: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "s42", s.ID)
	assert.True(t, s.IsActive)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, models.RoleAssistant, s.Messages[0].Role)
}

func TestJournalLocationRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.InDelta(t, 51.5, p["lat"], 0.001)
		assert.InDelta(t, -0.1, p["lng"], 0.001)
		p["id"] = "j7"
		_ = json.NewEncoder(w).Encode(p)
	}))

	entry := models.JournalEntry{
		Title:    "Walk",
		Content:  "Cleared my head by the river.",
		Mood:     models.MoodCalm,
		Location: &models.LatLng{Lat: 51.5, Lng: -0.1},
	}
	saved, err := c.CreateJournal(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "j7", saved.ID)
	require.NotNil(t, saved.Location)
	assert.InDelta(t, 51.5, saved.Location.Lat, 0.001)
}

func TestJournalWithoutLocationOmitsCoordinates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		_, hasLat := p["lat"]
		assert.False(t, hasLat, "lat should be omitted when no location is set")
		p["id"] = "j8"
		_ = json.NewEncoder(w).Encode(p)
	}))

	saved, err := c.CreateJournal(context.Background(), models.JournalEntry{
		Title: "t", Content: "c", Mood: models.MoodNeutral,
	})
	require.NoError(t, err)
	assert.Nil(t, saved.Location)
}
