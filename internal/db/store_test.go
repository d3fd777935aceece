// Package db tests for the SQLite-backed store.
package db

import (
	"context"
	"testing"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	database, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	migrator := NewMigrator(database.DB)
	if err := migrator.Initialize(); err != nil {
		t.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	s := NewStore(database)
	cleanup := func() {
		s.Close()
	}
	return s, cleanup
}

func TestMigratorUpIsIdempotent(t *testing.T) {
	database, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer database.Close()

	migrator := NewMigrator(database.DB)
	if err := migrator.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("first Up failed: %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("second Up should be a no-op, got: %v", err)
	}

	version, err := migrator.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version < 1 {
		t.Errorf("CurrentVersion = %d, want >= 1", version)
	}
}

func TestStoreJournalRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateJournal(ctx, &models.Journal{
		Name:  "Travel",
		Color: "#8B7355",
		Icon:  "Plane",
	})
	if err != nil {
		t.Fatalf("CreateJournal failed: %v", err)
	}
	if created.ID == "" {
		t.Error("CreateJournal should assign an id")
	}

	journals, err := s.ListJournals(ctx, store.SortSpec{})
	if err != nil {
		t.Fatalf("ListJournals failed: %v", err)
	}
	if len(journals) != 1 {
		t.Fatalf("got %d journals, want 1", len(journals))
	}
	got := journals[0]
	if got.Name != "Travel" || got.Color != "#8B7355" || got.Icon != "Plane" {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	name := "Adventures"
	updated, err := s.UpdateJournal(ctx, created.ID, store.JournalPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateJournal failed: %v", err)
	}
	if updated.Name != "Adventures" || updated.Icon != "Plane" {
		t.Errorf("partial merge mismatch: %+v", updated)
	}

	if _, err := s.UpdateJournal(ctx, "missing", store.JournalPatch{}); !errors.Is(err, errors.ErrJournalNotFound) {
		t.Errorf("UpdateJournal on missing id: got %v, want JOURNAL_NOT_FOUND", err)
	}
}

func TestStoreEntryRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	summary := "short summary"
	created, err := s.CreateEntry(ctx, &models.JournalEntry{
		JournalID: "j1",
		Title:     "A good day",
		Content:   "<p>We walked along the shore.</p>",
		Summary:   &summary,
		Date:      "2024-06-15",
		Mood:      models.MoodGreat,
		Tags:      []string{"beach", "family"},
		Emotions:  []string{"joy"},
		MediaAttachments: []models.MediaAttachment{
			{URL: "/files/abc.jpg", Type: models.MediaImage, Caption: "the shore"},
		},
		Location: &models.Location{Latitude: 2.04, Longitude: 45.32, City: "Mogadishu"},
		Source:   models.SourceWeb,
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	entries, err := s.ListEntries(ctx, store.SortSpec{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]

	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}
	if got.SummaryText() != summary {
		t.Errorf("Summary = %q, want %q", got.SummaryText(), summary)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "beach" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if len(got.MediaAttachments) != 1 || got.MediaAttachments[0].Caption != "the shore" {
		t.Errorf("MediaAttachments = %+v", got.MediaAttachments)
	}
	if got.Location == nil || got.Location.City != "Mogadishu" {
		t.Errorf("Location = %+v", got.Location)
	}

	favorite := true
	updated, err := s.UpdateEntry(ctx, created.ID, store.EntryPatch{IsFavorite: &favorite})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if !updated.IsFavorite {
		t.Error("IsFavorite should be true after patch")
	}
	if updated.Title != "A good day" || len(updated.Tags) != 2 {
		t.Error("unpatched fields must survive the update")
	}

	if err := s.DeleteEntry(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := s.DeleteEntry(ctx, created.ID); !errors.Is(err, errors.ErrEntryNotFound) {
		t.Errorf("second delete: got %v, want ENTRY_NOT_FOUND", err)
	}
}

func TestStoreEntrySortOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	dates := []string{"2024-02-10", "2024-01-05", "2024-03-20"}
	for _, d := range dates {
		if _, err := s.CreateEntry(ctx, &models.JournalEntry{Title: "e", Content: "c", Date: d}); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	entries, err := s.ListEntries(ctx, store.SortSpec{Field: store.SortByDate, Desc: true})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	want := []string{"2024-03-20", "2024-02-10", "2024-01-05"}
	for i, e := range entries {
		if e.Date != want[i] {
			t.Errorf("entries[%d].Date = %q, want %q", i, e.Date, want[i])
		}
	}

	// Zero spec returns insertion order.
	entries, _ = s.ListEntries(ctx, store.SortSpec{})
	for i, e := range entries {
		if e.Date != dates[i] {
			t.Errorf("insertion order entries[%d].Date = %q, want %q", i, e.Date, dates[i])
		}
	}
}

func TestStoreDeleteJournalKeepsEntries(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	journal, err := s.CreateJournal(ctx, &models.Journal{Name: "Travel"})
	if err != nil {
		t.Fatalf("CreateJournal failed: %v", err)
	}
	if _, err := s.CreateEntry(ctx, &models.JournalEntry{
		JournalID: journal.ID, Title: "Trip", Content: "c", Date: "2024-05-01",
	}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if err := s.DeleteJournal(ctx, journal.ID); err != nil {
		t.Fatalf("DeleteJournal failed: %v", err)
	}

	entries, _ := s.ListEntries(ctx, store.SortSpec{})
	if len(entries) != 1 || entries[0].JournalID != journal.ID {
		t.Error("entries must survive journal deletion with their dangling journal_id")
	}
}

func TestStoreGoalRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	target := "2024-12-31"
	created, err := s.CreateGoal(ctx, &models.Goal{
		Title:      "Run a 10k",
		Category:   models.CategoryHealth,
		Progress:   30,
		TargetDate: &target,
		Status:     models.GoalActive,
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	progress := 100
	status := models.GoalCompleted
	updated, err := s.UpdateGoal(ctx, created.ID, store.GoalPatch{Progress: &progress, Status: &status})
	if err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if updated.Progress != 100 || updated.Status != models.GoalCompleted {
		t.Errorf("UpdateGoal = %+v", updated)
	}
	if updated.TargetDate == nil || *updated.TargetDate != target {
		t.Error("unpatched target_date must survive")
	}

	if _, err := s.UpdateGoal(ctx, "missing", store.GoalPatch{}); !errors.Is(err, errors.ErrGoalNotFound) {
		t.Errorf("UpdateGoal on missing id: got %v, want GOAL_NOT_FOUND", err)
	}
}

func TestStoreEnsureUser(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := s.GetUser(ctx); err == nil {
		t.Error("GetUser on a fresh database should fail")
	}

	seed := &models.User{
		Name:             "Test User",
		Email:            "test@example.com",
		SubscriptionPlan: models.PlanPremium,
		MemberSince:      time.Now().UTC(),
	}
	if err := s.EnsureUser(ctx, seed); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	user, err := s.GetUser(ctx)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Email != "test@example.com" || !user.IsPremium() {
		t.Errorf("GetUser = %+v", user)
	}

	// Second seed must not overwrite.
	other := &models.User{Name: "Other", Email: "other@example.com", SubscriptionPlan: models.PlanFree}
	if err := s.EnsureUser(ctx, other); err != nil {
		t.Fatalf("second EnsureUser failed: %v", err)
	}
	user, _ = s.GetUser(ctx)
	if user.Email != "test@example.com" {
		t.Error("EnsureUser must not replace an existing user")
	}
}
