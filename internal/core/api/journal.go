package api

import (
	"context"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

// journalPayload is the wire form of a journal entry. Coordinates travel
// as flat lat/lng fields, absent when the entry has no location.
type journalPayload struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func toJournalPayload(e models.JournalEntry) journalPayload {
	p := journalPayload{
		ID:      e.ID,
		Title:   e.Title,
		Content: e.Content,
		Mood:    string(e.Mood),
	}
	if e.Location != nil {
		p.Lat = &e.Location.Lat
		p.Lng = &e.Location.Lng
	}
	return p
}

func (p journalPayload) toModel() models.JournalEntry {
	e := models.JournalEntry{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Mood:      models.Mood(p.Mood),
		Timestamp: p.Timestamp,
	}
	if p.Lat != nil && p.Lng != nil {
		e.Location = &models.LatLng{Lat: *p.Lat, Lng: *p.Lng}
	}
	return e
}

// ListJournal fetches entry summaries ordered by recency.
func (c *Client) ListJournal(ctx context.Context) ([]models.JournalEntry, error) {
	var payload []journalPayload
	if err := c.get(ctx, "/api/journal", &payload); err != nil {
		return nil, err
	}
	entries := make([]models.JournalEntry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, p.toModel())
	}
	return entries, nil
}

// GetJournal fetches one entry in full.
func (c *Client) GetJournal(ctx context.Context, id string) (models.JournalEntry, error) {
	var payload journalPayload
	if err := c.get(ctx, "/api/journal/"+id, &payload); err != nil {
		return models.JournalEntry{}, err
	}
	return payload.toModel(), nil
}

// CreateJournal persists a new entry and returns it with its server-assigned id.
func (c *Client) CreateJournal(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	var payload journalPayload
	if err := c.post(ctx, "/api/journal", toJournalPayload(entry), &payload); err != nil {
		return models.JournalEntry{}, err
	}
	return payload.toModel(), nil
}

// UpdateJournal overwrites an existing entry.
func (c *Client) UpdateJournal(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	var payload journalPayload
	if err := c.put(ctx, "/api/journal/"+entry.ID, toJournalPayload(entry), &payload); err != nil {
		return models.JournalEntry{}, err
	}
	return payload.toModel(), nil
}

// DeleteJournal removes an entry.
func (c *Client) DeleteJournal(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/journal/"+id)
}

// MoodPoint is one anonymized mood observation on the shared map.
type MoodPoint struct {
	Lat  float64     `json:"lat"`
	Lng  float64     `json:"lng"`
	Mood models.Mood `json:"mood"`
}

// Heatmap fetches the anonymized mood points of all users.
func (c *Client) Heatmap(ctx context.Context) ([]MoodPoint, error) {
	var points []MoodPoint
	if err := c.get(ctx, "/api/heatmap", &points); err != nil {
		return nil, err
	}
	return points, nil
}
