package tui

import (
	"testing"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

func TestParseJournalFilter(t *testing.T) {
	f := parseJournalFilter("mood:Sad rough day")
	if f.mood != "sad" {
		t.Errorf("mood = %q", f.mood)
	}
	if f.text != "rough day" {
		t.Errorf("text = %q", f.text)
	}
	if f.hasAfter || f.hasBefore {
		t.Error("no date filters expected")
	}
}

func TestParseJournalFilterDates(t *testing.T) {
	f := parseJournalFilter("after:2026-01-01 before:2026-06-01")
	if !f.hasAfter || !f.hasBefore {
		t.Fatalf("filters = %+v", f)
	}
	if f.after.Year() != 2026 || f.after.Month() != time.January {
		t.Errorf("after = %v", f.after)
	}
	if f.before.Month() != time.June {
		t.Errorf("before = %v", f.before)
	}
}

func TestJournalFiltersMatch(t *testing.T) {
	entry := models.JournalEntry{
		Title:     "A better morning",
		Mood:      models.MoodCalm,
		Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty matches", "", true},
		{"title substring", "morning", true},
		{"title case-insensitive", "BETTER", true},
		{"title miss", "evening", false},
		{"mood match", "mood:calm", true},
		{"mood miss", "mood:sad", false},
		{"after match", "after:2026-01-01", true},
		{"after miss", "after:2026-04-01", false},
		{"before miss", "before:2026-01-01", false},
		{"combined", "mood:calm after:2026-01-01 morning", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseJournalFilter(tt.query)
			if got := f.matches(entry); got != tt.want {
				t.Errorf("matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestVisibleLen(t *testing.T) {
	if got := visibleLen("plain"); got != 5 {
		t.Errorf("plain = %d", got)
	}
	styled := "\x1b[1mBold\x1b[0m"
	if got := visibleLen(styled); got != 4 {
		t.Errorf("styled = %d", got)
	}
}
