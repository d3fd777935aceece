// Package store defines the persistence contract for journals, entries,
// goals and the session user, plus the in-memory reference implementation.
// The SQLite-backed implementation in internal/db satisfies the same
// interfaces; consumers receive a Store explicitly and never touch shared
// package state.
package store

import (
	"context"
	"strings"

	"github.com/Mohameddacar/xasuusqor/internal/models"
)

// SortField names a sortable record field.
type SortField string

const (
	SortNone          SortField = ""
	SortByCreatedDate SortField = "created_date"
	SortByDate        SortField = "date"
	SortByName        SortField = "name"
)

// SortSpec is a typed sort specification. The zero value means stable
// insertion order.
type SortSpec struct {
	Field SortField
	Desc  bool
}

// ParseSortDirective translates the legacy string convention used by the
// HTTP API ("-created_date", "-date", "name") into a SortSpec. Unknown
// fields yield the zero spec.
func ParseSortDirective(s string) SortSpec {
	desc := strings.HasPrefix(s, "-")
	field := strings.TrimPrefix(s, "-")
	switch SortField(field) {
	case SortByCreatedDate, SortByDate, SortByName:
		return SortSpec{Field: SortField(field), Desc: desc}
	}
	return SortSpec{}
}

// JournalPatch carries a partial update for a journal. Nil fields keep
// their prior values (shallow merge, never replace).
type JournalPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *models.JournalIcon
	IsDefault   *bool
}

// EntryPatch carries a partial update for a journal entry.
type EntryPatch struct {
	JournalID        *string
	Title            *string
	Content          *string
	Summary          *string
	Date             *string
	Mood             *models.Mood
	Tags             *[]string
	AutoTags         *[]string
	Emotions         *[]string
	KeyThemes        *[]string
	MediaAttachments *[]models.MediaAttachment
	AudioURL         *string
	Location         *models.Location
	TemplateUsed     *string
	IsFavorite       *bool
	Source           *models.EntrySource
}

// GoalPatch carries a partial update for a goal.
type GoalPatch struct {
	Title       *string
	Description *string
	Category    *models.GoalCategory
	Progress    *int
	TargetDate  *string
	Status      *models.GoalStatus
}

// JournalStore defines persistence operations for journals.
type JournalStore interface {
	// ListJournals returns a snapshot of all journals in the given order.
	ListJournals(ctx context.Context, sort SortSpec) ([]*models.Journal, error)

	// CreateJournal assigns id and created_date, stores the journal and
	// returns the stored record.
	CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error)

	// UpdateJournal merges the patch into the journal with the given id.
	// Returns JOURNAL_NOT_FOUND for an unknown id.
	UpdateJournal(ctx context.Context, id string, patch JournalPatch) (*models.Journal, error)

	// DeleteJournal removes the journal. Entries referencing it are left
	// intact with their dangling journal_id.
	DeleteJournal(ctx context.Context, id string) error
}

// EntryStore defines persistence operations for journal entries.
type EntryStore interface {
	ListEntries(ctx context.Context, sort SortSpec) ([]*models.JournalEntry, error)
	CreateEntry(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, patch EntryPatch) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// GoalStore defines persistence operations for goals.
type GoalStore interface {
	ListGoals(ctx context.Context, sort SortSpec) ([]*models.Goal, error)
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	UpdateGoal(ctx context.Context, id string, patch GoalPatch) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// UserStore exposes the single read-only session user.
type UserStore interface {
	GetUser(ctx context.Context) (*models.User, error)
}

// Store combines all entity stores.
type Store interface {
	JournalStore
	EntryStore
	GoalStore
	UserStore

	// Close releases store resources.
	Close() error
}
