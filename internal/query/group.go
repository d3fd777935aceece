package query

import (
	"fmt"
	"sort"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/models"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}

// MonthKey identifies a calendar month bucket, derived from an entry's
// date field (not created_date).
type MonthKey struct {
	Year  int
	Month time.Month
}

// Label formats the key for display, e.g. "January 2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}

// MonthGroup is one month bucket of entries.
type MonthGroup struct {
	Key     MonthKey
	Entries []*models.JournalEntry
}

// GroupByMonth partitions entries into month+year buckets. Every entry
// with a parseable date lands in exactly one bucket; entries within a
// bucket keep input order, and buckets are emitted in first-encountered
// order (callers pre-sort by date descending for newest-first display).
// Entries without a usable date are collected into a trailing zero-key
// bucket so the partition stays complete.
func GroupByMonth(entries []*models.JournalEntry) []MonthGroup {
	index := make(map[MonthKey]int)
	var groups []MonthGroup
	var undated []*models.JournalEntry

	for _, e := range entries {
		date, ok := e.DateTime()
		if !ok {
			undated = append(undated, e)
			continue
		}
		key := MonthKey{Year: date.Year(), Month: date.Month()}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Key: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	if len(undated) > 0 {
		groups = append(groups, MonthGroup{Entries: undated})
	}
	return groups
}

// Memory is an entry resurfaced by OnThisDay, with how long ago it was
// written.
type Memory struct {
	Entry    *models.JournalEntry
	YearsAgo int
}

// OnThisDay returns entries whose date matches today's calendar month and
// day but whose year is strictly earlier, most recent year first. An
// empty result means "no section", not an error.
func OnThisDay(entries []*models.JournalEntry, today time.Time) []Memory {
	var memories []Memory
	for _, e := range entries {
		date, ok := e.DateTime()
		if !ok {
			continue
		}
		if date.Month() == today.Month() && date.Day() == today.Day() && date.Year() < today.Year() {
			memories = append(memories, Memory{
				Entry:    e,
				YearsAgo: today.Year() - date.Year(),
			})
		}
	}
	sort.SliceStable(memories, func(i, k int) bool {
		return memories[i].YearsAgo < memories[k].YearsAgo
	})
	return memories
}

// WithinRange keeps entries whose date falls in [start, end] inclusive.
// Used by the insights surface for week/month/year windows.
func WithinRange(entries []*models.JournalEntry, start, end time.Time) []*models.JournalEntry {
	var out []*models.JournalEntry
	for _, e := range entries {
		date, ok := e.DateTime()
		if !ok {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Located keeps entries that carry a location, for the map view.
func Located(entries []*models.JournalEntry) []*models.JournalEntry {
	var out []*models.JournalEntry
	for _, e := range entries {
		if e.Location != nil {
			out = append(out, e)
		}
	}
	return out
}

// MoodCounts tallies entries per mood. Unset moods are not counted; an
// empty input yields an empty map, never a division by zero downstream.
func MoodCounts(entries []*models.JournalEntry) map[models.Mood]int {
	counts := make(map[models.Mood]int)
	for _, e := range entries {
		if e.Mood != "" {
			counts[e.Mood]++
		}
	}
	return counts
}

// CountByJournal tallies entries per journal id, including dangling
// references. Journal cards resolve names separately.
func CountByJournal(entries []*models.JournalEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.JournalID]++
	}
	return counts
}
