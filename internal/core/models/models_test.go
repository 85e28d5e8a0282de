package models

import (
	"errors"
	"testing"
)

func TestJournalEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   JournalEntry
		wantErr bool
	}{
		{
			name: "valid entry",
			entry: JournalEntry{
				Title:   "A long day",
				Content: "Everything felt heavy today.",
				Mood:    MoodSad,
			},
			wantErr: false,
		},
		{
			name: "valid entry with location",
			entry: JournalEntry{
				Title:    "By the lake",
				Content:  "Calmer out here.",
				Mood:     MoodCalm,
				Location: &LatLng{Lat: 46.8, Lng: 8.2},
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			entry:   JournalEntry{Content: "x"},
			wantErr: true,
		},
		{
			name:    "missing content",
			entry:   JournalEntry{Title: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Validate() returned %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestValidMood(t *testing.T) {
	for _, m := range Moods {
		if !ValidMood(m) {
			t.Errorf("ValidMood(%q) = false, want true", m)
		}
	}
	if ValidMood("Elated") {
		t.Error("ValidMood accepted an unknown label")
	}
}
