package models

import (
	"fmt"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. Messages are immutable once appended;
// ordering within a session is insertion order.
type Message struct {
	LocalID   string    `json:"-"` // client-assigned, set on optimistic appends
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one conversation thread with the companion.
// The ID is assigned by the server at creation.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
	Messages  []Message `json:"messages,omitempty"`
}

// Mood labels a journal entry's emotional tone.
type Mood string

const (
	MoodHappy   Mood = "Happy"
	MoodCalm    Mood = "Calm"
	MoodAnxious Mood = "Anxious"
	MoodSad     Mood = "Sad"
	MoodAngry   Mood = "Angry"
	MoodNeutral Mood = "Neutral"
)

// Moods lists all moods in display order.
var Moods = []Mood{MoodHappy, MoodCalm, MoodAnxious, MoodSad, MoodAngry, MoodNeutral}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// JournalEntry is a single journal entry. The ID is assigned by the server
// on first save; a zero ID means the entry has never been persisted.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	Location  *LatLng   `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that the entry can be persisted. Location is optional
// and independent of text validity.
func (e *JournalEntry) Validate() error {
	if e.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if e.Content == "" {
		return &ValidationError{Field: "content", Reason: "is required"}
	}
	return nil
}

// ValidMood reports whether m is one of the known mood labels.
func ValidMood(m Mood) bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}
