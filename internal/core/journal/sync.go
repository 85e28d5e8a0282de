// Package journal reconciles journal entries between the editor
// surface, an optional map-picker surface, and the remote service, and
// can seed a reflection conversation from an entry.
package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cbroglie/mustache"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
	"github.com/bigsister-app/bigsister/internal/core/session"
)

// DefaultReflectionTemplate builds the context a reflection session is
// seeded with. Overridable via reflection_prompt.txt next to the config.
const DefaultReflectionTemplate = `Journal Title: "{{title}}". Mood: {{mood}}.{{#has_location}} Written near {{lat}}, {{lng}}.{{/has_location}} Content: "{{content}}"`

// ErrDeleteDeclined is returned when the user answers no to the delete
// confirmation. No network call is made.
var ErrDeleteDeclined = errors.New("delete not confirmed")

// MapPicker is the externally supplied map surface. The zero state is a
// world view with no marker.
type MapPicker interface {
	SetMarker(lat, lng float64)
	ClearMarker()
	Recenter(lat, lng float64)
	ResetWorldView()
}

// Confirmer asks the user a plain yes/no question. Entry deletion uses
// this, not the confirmation-code prompt.
type Confirmer interface {
	ConfirmDelete(title string) bool
}

// Sync owns the client side of journal state.
type Sync struct {
	client    *api.Client
	sessions  *session.Store
	confirmer Confirmer
	template  string

	mu      sync.Mutex
	picker  MapPicker
	current *models.JournalEntry
}

// New creates a Sync. template may be empty to use the default
// reflection template; the picker is attached later, once its surface
// exists.
func New(client *api.Client, sessions *session.Store, confirmer Confirmer, template string) *Sync {
	if template == "" {
		template = DefaultReflectionTemplate
	}
	return &Sync{
		client:    client,
		sessions:  sessions,
		confirmer: confirmer,
		template:  template,
	}
}

// AttachPicker supplies the map-picker surface once it exists and
// immediately reconciles it with the selected entry. Reconciliation
// before attachment is a no-op rather than a failure.
func (s *Sync) AttachPicker(p MapPicker) {
	s.mu.Lock()
	s.picker = p
	entry := s.current
	s.mu.Unlock()
	s.reconcilePicker(entry)
}

// List fetches entry summaries ordered by recency.
func (s *Sync) List(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := s.client.ListJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return entries, nil
}

// Load fetches one entry, selects it, and reconciles the picker: a
// located entry gets a marker and a recenter, an unlocated one clears
// the marker and resets to the world view.
func (s *Sync) Load(ctx context.Context, id string) (models.JournalEntry, error) {
	entry, err := s.client.GetJournal(ctx, id)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("load entry: %w", err)
	}

	s.mu.Lock()
	s.current = &entry
	s.mu.Unlock()
	s.reconcilePicker(&entry)
	return entry, nil
}

// Deselect clears the selected entry and resets the picker, matching a
// fresh editor.
func (s *Sync) Deselect() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.reconcilePicker(nil)
}

// Current returns the selected entry, if any.
func (s *Sync) Current() (models.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.JournalEntry{}, false
	}
	return *s.current, true
}

// Save persists the entry: create when it has no id yet, update
// otherwise. Invalid entries are rejected locally, before any network
// call. The saved entry becomes the selection.
func (s *Sync) Save(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.JournalEntry{}, err
	}
	if !models.ValidMood(entry.Mood) {
		entry.Mood = models.MoodNeutral
	}

	var (
		saved models.JournalEntry
		err   error
	)
	if entry.ID == "" {
		saved, err = s.client.CreateJournal(ctx, entry)
	} else {
		saved, err = s.client.UpdateJournal(ctx, entry)
	}
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("save entry: %w", err)
	}

	s.mu.Lock()
	s.current = &saved
	s.mu.Unlock()
	return saved, nil
}

// Delete removes an entry after an explicit yes/no confirmation. When
// declined, nothing is sent.
func (s *Sync) Delete(ctx context.Context, entry models.JournalEntry) error {
	if s.confirmer != nil && !s.confirmer.ConfirmDelete(entry.Title) {
		return ErrDeleteDeclined
	}
	if err := s.client.DeleteJournal(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == entry.ID {
		s.current = nil
	}
	s.mu.Unlock()
	s.reconcilePicker(nil)
	return nil
}

// Reflect starts a new session seeded with a reflection context built
// from the entry. Reflection always creates a fresh session.
func (s *Sync) Reflect(ctx context.Context, entry models.JournalEntry) (models.Session, error) {
	seedText, err := s.ReflectionContext(entry)
	if err != nil {
		return models.Session{}, err
	}
	created, err := s.sessions.Create(ctx, api.Seed{ReflectionContext: seedText})
	if err != nil {
		return models.Session{}, err
	}
	return created, nil
}

// ReflectionContext renders the reflection template for an entry.
func (s *Sync) ReflectionContext(entry models.JournalEntry) (string, error) {
	data := map[string]any{
		"title":        entry.Title,
		"content":      entry.Content,
		"mood":         string(entry.Mood),
		"has_location": entry.Location != nil,
	}
	if entry.Location != nil {
		data["lat"] = fmt.Sprintf("%.4f", entry.Location.Lat)
		data["lng"] = fmt.Sprintf("%.4f", entry.Location.Lng)
	}
	rendered, err := mustache.Render(s.template, data)
	if err != nil {
		return "", fmt.Errorf("render reflection context: %w", err)
	}
	return rendered, nil
}

func (s *Sync) reconcilePicker(entry *models.JournalEntry) {
	s.mu.Lock()
	picker := s.picker
	s.mu.Unlock()
	if picker == nil {
		return
	}
	if entry != nil && entry.Location != nil {
		picker.SetMarker(entry.Location.Lat, entry.Location.Lng)
		picker.Recenter(entry.Location.Lat, entry.Location.Lng)
		return
	}
	picker.ClearMarker()
	picker.ResetWorldView()
}
