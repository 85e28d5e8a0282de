package tui

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// parseJournalFilter extracts filters from a journal filter string
// Supports:
//   - mood:<name> - filter by mood
//   - after:yesterday, after:2026-01-01 - only entries after this date
//   - before:last-week - only entries before this date
//
// Remaining tokens match against entry titles.
func parseJournalFilter(query string) journalFilters {
	filters := journalFilters{}

	// Initialize date parser with English rules
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	tokens := strings.Fields(query)
	var textParts []string

	for _, token := range tokens {
		if strings.HasPrefix(token, "mood:") {
			filters.mood = strings.ToLower(strings.TrimPrefix(token, "mood:"))
			continue
		}

		if strings.HasPrefix(token, "after:") {
			dateStr := strings.TrimPrefix(token, "after:")
			if parsed := parseFilterDate(w, dateStr); parsed != nil {
				filters.after = *parsed
				filters.hasAfter = true
			}
			continue
		}

		if strings.HasPrefix(token, "before:") {
			dateStr := strings.TrimPrefix(token, "before:")
			if parsed := parseFilterDate(w, dateStr); parsed != nil {
				filters.before = *parsed
				filters.hasBefore = true
			}
			continue
		}

		textParts = append(textParts, token)
	}

	filters.text = strings.Join(textParts, " ")
	return filters
}

// parseFilterDate parses explicit date formats first, then falls back
// to natural language ("yesterday", "last-week").
func parseFilterDate(w *when.Parser, dateStr string) *time.Time {
	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"01/02/2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	// Natural-language dates often use dashes for spaces ("last-week")
	result, err := w.Parse(strings.ReplaceAll(dateStr, "-", " "), time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	return nil
}
