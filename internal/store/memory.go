package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/uuid"
)

// Memory is the in-memory reference store. It emulates a remote entity
// store with the same contract as the SQLite implementation: volatile,
// process-lifetime only, safe for concurrent use. A list running alongside
// an unrelated write sees a consistent snapshot; same-record
// read-after-write holds for the single session that performed the write.
type Memory struct {
	mu       sync.RWMutex
	journals []*models.Journal
	entries  []*models.JournalEntry
	goals    []*models.Goal
	user     *models.User

	now func() time.Time
}

// NewMemory creates an empty in-memory store with the given session user.
func NewMemory(user *models.User) *Memory {
	return &Memory{
		user: user,
		now:  time.Now,
	}
}

var _ Store = (*Memory)(nil)

// =====================================================
// Journal operations
// =====================================================

// ListJournals returns a snapshot of all journals.
func (m *Memory) ListJournals(ctx context.Context, spec SortSpec) ([]*models.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Journal, len(m.journals))
	for i, j := range m.journals {
		out[i] = cloneJournal(j)
	}
	sortJournals(out, spec)
	return out, nil
}

// CreateJournal assigns id and created_date and stores the journal.
func (m *Memory) CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	journal.ID = uuid.New()
	journal.CreatedDate = m.now().UTC()
	m.journals = append(m.journals, cloneJournal(journal))
	return cloneJournal(journal), nil
}

// UpdateJournal merges the patch into the stored journal.
func (m *Memory) UpdateJournal(ctx context.Context, id string, patch JournalPatch) (*models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.journals {
		if j.ID == id {
			patch.Apply(j)
			return cloneJournal(j), nil
		}
	}
	return nil, errors.Newf(errors.ErrJournalNotFound, "journal not found: %s", id)
}

// DeleteJournal removes the journal. Entries keep their journal_id.
func (m *Memory) DeleteJournal(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, j := range m.journals {
		if j.ID == id {
			m.journals = append(m.journals[:i], m.journals[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrJournalNotFound, "journal not found: %s", id)
}

// =====================================================
// Entry operations
// =====================================================

// ListEntries returns a snapshot of all entries.
func (m *Memory) ListEntries(ctx context.Context, spec SortSpec) ([]*models.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.JournalEntry, len(m.entries))
	for i, e := range m.entries {
		out[i] = cloneEntry(e)
	}
	sortEntries(out, spec)
	return out, nil
}

// CreateEntry assigns id and created_date and stores the entry.
func (m *Memory) CreateEntry(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedDate = m.now().UTC()
	m.entries = append(m.entries, cloneEntry(entry))
	return cloneEntry(entry), nil
}

// UpdateEntry merges the patch into the stored entry.
func (m *Memory) UpdateEntry(ctx context.Context, id string, patch EntryPatch) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.ID == id {
			patch.Apply(e)
			return cloneEntry(e), nil
		}
	}
	return nil, errors.Newf(errors.ErrEntryNotFound, "entry not found: %s", id)
}

// DeleteEntry removes the entry.
func (m *Memory) DeleteEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrEntryNotFound, "entry not found: %s", id)
}

// =====================================================
// Goal operations
// =====================================================

// ListGoals returns a snapshot of all goals.
func (m *Memory) ListGoals(ctx context.Context, spec SortSpec) ([]*models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Goal, len(m.goals))
	for i, g := range m.goals {
		out[i] = cloneGoal(g)
	}
	sortGoals(out, spec)
	return out, nil
}

// CreateGoal assigns id and created_date and stores the goal.
func (m *Memory) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	goal.ID = uuid.New()
	goal.CreatedDate = m.now().UTC()
	m.goals = append(m.goals, cloneGoal(goal))
	return cloneGoal(goal), nil
}

// UpdateGoal merges the patch into the stored goal.
func (m *Memory) UpdateGoal(ctx context.Context, id string, patch GoalPatch) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.goals {
		if g.ID == id {
			patch.Apply(g)
			return cloneGoal(g), nil
		}
	}
	return nil, errors.Newf(errors.ErrGoalNotFound, "goal not found: %s", id)
}

// DeleteGoal removes the goal.
func (m *Memory) DeleteGoal(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, g := range m.goals {
		if g.ID == id {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrGoalNotFound, "goal not found: %s", id)
}

// =====================================================
// User
// =====================================================

// GetUser returns the session user.
func (m *Memory) GetUser(ctx context.Context) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, errors.New(errors.ErrNotFound, "no session user configured")
	}
	u := *m.user
	return &u, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}

// =====================================================
// Cloning and sorting
// =====================================================

func cloneJournal(j *models.Journal) *models.Journal {
	out := *j
	return &out
}

func cloneEntry(e *models.JournalEntry) *models.JournalEntry {
	out := *e
	out.Tags = append([]string(nil), e.Tags...)
	out.AutoTags = append([]string(nil), e.AutoTags...)
	out.Emotions = append([]string(nil), e.Emotions...)
	out.KeyThemes = append([]string(nil), e.KeyThemes...)
	out.MediaAttachments = append([]models.MediaAttachment(nil), e.MediaAttachments...)
	if e.Summary != nil {
		summary := *e.Summary
		out.Summary = &summary
	}
	if e.AudioURL != nil {
		url := *e.AudioURL
		out.AudioURL = &url
	}
	if e.Location != nil {
		loc := *e.Location
		out.Location = &loc
	}
	if e.TemplateUsed != nil {
		name := *e.TemplateUsed
		out.TemplateUsed = &name
	}
	return &out
}

func cloneGoal(g *models.Goal) *models.Goal {
	out := *g
	if g.TargetDate != nil {
		date := *g.TargetDate
		out.TargetDate = &date
	}
	return &out
}

func sortJournals(journals []*models.Journal, spec SortSpec) {
	switch spec.Field {
	case SortByCreatedDate:
		sort.SliceStable(journals, func(i, k int) bool {
			if spec.Desc {
				return journals[i].CreatedDate.After(journals[k].CreatedDate)
			}
			return journals[i].CreatedDate.Before(journals[k].CreatedDate)
		})
	case SortByName:
		sort.SliceStable(journals, func(i, k int) bool {
			if spec.Desc {
				return journals[i].Name > journals[k].Name
			}
			return journals[i].Name < journals[k].Name
		})
	}
}

func sortEntries(entries []*models.JournalEntry, spec SortSpec) {
	switch spec.Field {
	case SortByCreatedDate:
		sort.SliceStable(entries, func(i, k int) bool {
			if spec.Desc {
				return entries[i].CreatedDate.After(entries[k].CreatedDate)
			}
			return entries[i].CreatedDate.Before(entries[k].CreatedDate)
		})
	case SortByDate:
		// Calendar dates in YYYY-MM-DD order lexicographically.
		sort.SliceStable(entries, func(i, k int) bool {
			if spec.Desc {
				return entries[i].Date > entries[k].Date
			}
			return entries[i].Date < entries[k].Date
		})
	}
}

func sortGoals(goals []*models.Goal, spec SortSpec) {
	switch spec.Field {
	case SortByCreatedDate:
		sort.SliceStable(goals, func(i, k int) bool {
			if spec.Desc {
				return goals[i].CreatedDate.After(goals[k].CreatedDate)
			}
			return goals[i].CreatedDate.Before(goals[k].CreatedDate)
		})
	}
}
