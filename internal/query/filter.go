// Package query provides the pure entry filtering and aggregation engine.
// Everything here is synchronous and side-effect free, operating over
// entry snapshots already fetched from the store.
package query

import (
	"strings"

	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/richtext"
)

// AnyJournal and AnyMood are the wildcard filter values used by the UI's
// "all" selectors. The empty string behaves the same.
const (
	AnyJournal = "all"
	AnyMood    = "all"
)

// DateRange bounds entry calendar dates, inclusive. Empty bounds are open.
type DateRange struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// Criteria is a multi-criterion entry filter. Criteria categories combine
// conjunctively; the tags and emotions multi-selects match disjunctively
// within themselves. The zero value matches everything.
type Criteria struct {
	Text          string
	JournalID     string
	FavoritesOnly bool
	Tags          []string
	Emotions      []string
	Mood          string
	Dates         DateRange
}

// Filter returns the subsequence of entries satisfying every active
// criterion, in input order. Entries missing optional fields simply fail
// the criteria that reference them.
func Filter(entries []*models.JournalEntry, c Criteria) []*models.JournalEntry {
	out := make([]*models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, c) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether a single entry satisfies all active criteria.
func Matches(e *models.JournalEntry, c Criteria) bool {
	return matchesText(e, c.Text) &&
		matchesJournal(e, c.JournalID) &&
		(!c.FavoritesOnly || e.IsFavorite) &&
		matchesTags(e, c.Tags) &&
		matchesEmotions(e, c.Emotions) &&
		matchesMood(e, c.Mood) &&
		matchesDates(e, c.Dates)
}

func matchesText(e *models.JournalEntry, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Content), needle) {
		return true
	}
	// Rich-text markup can split visible words; match the extracted text too.
	if strings.Contains(strings.ToLower(richtext.ExtractText(e.Content)), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(e.SummaryText()), needle)
}

func matchesJournal(e *models.JournalEntry, journalID string) bool {
	if journalID == "" || journalID == AnyJournal {
		return true
	}
	return e.JournalID == journalID
}

// matchesTags matches disjunctively against the union of user tags and
// AI-suggested auto tags.
func matchesTags(e *models.JournalEntry, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range e.Tags {
			if have == want {
				return true
			}
		}
		for _, have := range e.AutoTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func matchesEmotions(e *models.JournalEntry, emotions []string) bool {
	if len(emotions) == 0 {
		return true
	}
	for _, want := range emotions {
		for _, have := range e.Emotions {
			if have == want {
				return true
			}
		}
	}
	return false
}

func matchesMood(e *models.JournalEntry, mood string) bool {
	if mood == "" || mood == AnyMood {
		return true
	}
	return string(e.Mood) == mood
}

func matchesDates(e *models.JournalEntry, r DateRange) bool {
	if r.Start == "" && r.End == "" {
		return true
	}
	date, ok := e.DateTime()
	if !ok {
		// No usable date never matches an active date criterion.
		return false
	}
	if r.Start != "" {
		if start, err := parseDate(r.Start); err == nil && date.Before(start) {
			return false
		}
	}
	if r.End != "" {
		if end, err := parseDate(r.End); err == nil && date.After(end) {
			return false
		}
	}
	return true
}

// AllTags returns the distinct tags in use across entries, unioning user
// tags and auto tags, in first-seen order.
func AllTags(entries []*models.JournalEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		for _, tag := range e.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
		for _, tag := range e.AutoTags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}

// AllEmotions returns the distinct detected emotions, in first-seen order.
func AllEmotions(entries []*models.JournalEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		for _, emotion := range e.Emotions {
			if !seen[emotion] {
				seen[emotion] = true
				out = append(out, emotion)
			}
		}
	}
	return out
}

// AllMoods returns the distinct moods actually set on entries, in
// first-seen order. Unset moods are skipped.
func AllMoods(entries []*models.JournalEntry) []models.Mood {
	seen := make(map[models.Mood]bool)
	var out []models.Mood
	for _, e := range entries {
		if e.Mood == "" || seen[e.Mood] {
			continue
		}
		seen[e.Mood] = true
		out = append(out, e.Mood)
	}
	return out
}
