// Package query tests for entry filtering.
package query

import (
	"testing"

	"github.com/Mohameddacar/xasuusqor/internal/models"
)

func sampleEntries() []*models.JournalEntry {
	summary := "a walk by the sea"
	return []*models.JournalEntry{
		{
			ID: "e1", JournalID: "j1", Title: "Beach day",
			Content: "<p>We spent the day at the <b>bea</b>ch.</p>",
			Date:    "2024-06-15", Mood: models.MoodGreat,
			Tags: []string{"beach", "family"}, Emotions: []string{"joy"},
			IsFavorite: true, Summary: &summary,
		},
		{
			ID: "e2", JournalID: "j1", Title: "Long week",
			Content: "<p>Work was difficult this week.</p>",
			Date:    "2024-06-20", Mood: models.MoodLow,
			AutoTags: []string{"work"}, Emotions: []string{"stress"},
		},
		{
			ID: "e3", JournalID: "j2", Title: "Quiet evening",
			Content: "<p>Read a book.</p>",
			Mood:    models.MoodOkay,
		},
	}
}

func ids(entries []*models.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestFilterZeroCriteriaMatchesEverything(t *testing.T) {
	entries := sampleEntries()
	got := Filter(entries, Criteria{})
	if len(got) != len(entries) {
		t.Errorf("zero criteria matched %d of %d entries", len(got), len(entries))
	}
	for i := range got {
		if got[i].ID != entries[i].ID {
			t.Error("Filter must preserve input order")
		}
	}
}

func TestFilterCriteria(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"text in content", Criteria{Text: "beach"}, []string{"e1"}},
		{"text case-insensitive", Criteria{Text: "BEACH"}, []string{"e1"}},
		{"text in summary", Criteria{Text: "by the sea"}, []string{"e1"}},
		{"text ignores markup", Criteria{Text: "<b>"}, nil},
		{"journal", Criteria{JournalID: "j2"}, []string{"e3"}},
		{"journal wildcard", Criteria{JournalID: AnyJournal}, []string{"e1", "e2", "e3"}},
		{"favorites", Criteria{FavoritesOnly: true}, []string{"e1"}},
		{"mood", Criteria{Mood: "low"}, []string{"e2"}},
		{"mood wildcard", Criteria{Mood: AnyMood}, []string{"e1", "e2", "e3"}},
		{"tags match user or auto tags", Criteria{Tags: []string{"family", "work"}}, []string{"e1", "e2"}},
		{"emotions OR within", Criteria{Emotions: []string{"joy", "stress"}}, []string{"e1", "e2"}},
		{"criteria AND across", Criteria{JournalID: "j1", Mood: "great"}, []string{"e1"}},
		{"date range", Criteria{Dates: DateRange{Start: "2024-06-16", End: "2024-06-30"}}, []string{"e2"}},
		{"date range excludes undated", Criteria{Dates: DateRange{Start: "2024-01-01"}}, []string{"e1", "e2"}},
		{"no match", Criteria{Text: "beach", Mood: "low"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(entries, tt.criteria))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAllTagsFirstSeenOrder(t *testing.T) {
	entries := []*models.JournalEntry{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"a"}, AutoTags: []string{"c"}},
	}
	got := AllTags(entries)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("AllTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AllTags = %v, want %v", got, want)
		}
	}
}

func TestAllMoods(t *testing.T) {
	entries := sampleEntries()
	got := AllMoods(entries)
	want := []models.Mood{models.MoodGreat, models.MoodLow, models.MoodOkay}
	if len(got) != len(want) {
		t.Fatalf("AllMoods = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AllMoods = %v, want %v", got, want)
		}
	}
}
