package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/store"
	"github.com/Mohameddacar/xasuusqor/internal/uuid"
)

// timeLayout is the storage format for server-assigned timestamps. UTC
// RFC3339 sorts lexicographically in chronological order, so ORDER BY on
// the raw column is correct.
const timeLayout = time.RFC3339

// Store is the SQLite-backed persistence store.
type Store struct {
	db *DB

	// Prepared statement cache for frequently used queries.
	stmtCache sync.Map // map[string]*sql.Stmt

	now func() time.Time
}

// NewStore creates a Store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db, now: time.Now}
}

var _ store.Store = (*Store)(nil)

// prepare gets or creates a prepared statement from the cache.
func (s *Store) prepare(query string) (*sql.Stmt, error) {
	if stmt, ok := s.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	actual, loaded := s.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		// Another goroutine already prepared this, close our duplicate.
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}
	return stmt, nil
}

// Close closes cached statements and the underlying database.
func (s *Store) Close() error {
	s.stmtCache.Range(func(key, value interface{}) bool {
		value.(*sql.Stmt).Close()
		return true
	})
	return s.db.Close()
}

// orderClause builds the ORDER BY for a sort spec, restricted to the
// fields the table actually has. Unsupported fields fall back to
// insertion order, matching the in-memory store.
func orderClause(spec store.SortSpec, fields ...store.SortField) string {
	supported := false
	for _, f := range fields {
		if f == spec.Field {
			supported = true
			break
		}
	}
	if !supported {
		return " ORDER BY rowid ASC"
	}
	dir := "ASC"
	if spec.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, rowid ASC", spec.Field, dir)
}

func marshalStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func unmarshalStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, _ := time.Parse(timeLayout, raw)
	return t
}

// =====================================================
// Journal operations
// =====================================================

const journalColumns = "id, name, description, color, icon, is_default, created_date"

// ListJournals returns all journals in the given order.
func (s *Store) ListJournals(ctx context.Context, spec store.SortSpec) ([]*models.Journal, error) {
	query := "SELECT " + journalColumns + " FROM journals" + orderClause(spec, store.SortByCreatedDate, store.SortByName)
	stmt, err := s.prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to list journals", err)
	}
	defer rows.Close()

	journals := []*models.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

// CreateJournal assigns id and created_date and inserts the journal.
func (s *Store) CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	journal.ID = uuid.New()
	journal.CreatedDate = s.now().UTC()

	query := `
	INSERT INTO journals (id, name, description, color, icon, is_default, created_date)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, journal.ID, journal.Name, journal.Description,
		journal.Color, string(journal.Icon), journal.IsDefault, formatTime(journal.CreatedDate))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to create journal", err)
	}
	return journal, nil
}

// UpdateJournal merges the patch into the stored journal.
func (s *Store) UpdateJournal(ctx context.Context, id string, patch store.JournalPatch) (*models.Journal, error) {
	journal, err := s.getJournal(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(journal)

	query := `
	UPDATE journals SET name = ?, description = ?, color = ?, icon = ?, is_default = ?
	WHERE id = ?
	`
	_, err = s.db.ExecContext(ctx, query, journal.Name, journal.Description, journal.Color,
		string(journal.Icon), journal.IsDefault, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to update journal", err)
	}
	return journal, nil
}

// DeleteJournal removes the journal. Entries keep their journal_id; the
// dangling reference resolves to "Unknown journal" at read time.
func (s *Store) DeleteJournal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM journals WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to delete journal", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Newf(apperrors.ErrJournalNotFound, "journal not found: %s", id)
	}
	return nil
}

func (s *Store) getJournal(ctx context.Context, id string) (*models.Journal, error) {
	stmt, err := s.prepare("SELECT " + journalColumns + " FROM journals WHERE id = ?")
	if err != nil {
		return nil, err
	}
	j, err := scanJournal(stmt.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.Newf(apperrors.ErrJournalNotFound, "journal not found: %s", id)
	}
	return j, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJournal(row rowScanner) (*models.Journal, error) {
	var j models.Journal
	var icon, createdDate string
	if err := row.Scan(&j.ID, &j.Name, &j.Description, &j.Color, &icon,
		&j.IsDefault, &createdDate); err != nil {
		return nil, err
	}
	j.Icon = models.JournalIcon(icon)
	j.CreatedDate = parseTime(createdDate)
	return &j, nil
}

// =====================================================
// Entry operations
// =====================================================

const entryColumns = `id, journal_id, title, content, summary, date, mood,
	tags, auto_tags, emotions, key_themes, media_attachments,
	audio_url, location, template_used, is_favorite, source, created_date`

// ListEntries returns all entries in the given order.
func (s *Store) ListEntries(ctx context.Context, spec store.SortSpec) ([]*models.JournalEntry, error) {
	query := "SELECT " + entryColumns + " FROM entries" + orderClause(spec, store.SortByCreatedDate, store.SortByDate)
	stmt, err := s.prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to list entries", err)
	}
	defer rows.Close()

	entries := []*models.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateEntry assigns id and created_date and inserts the entry.
func (s *Store) CreateEntry(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	entry.ID = uuid.New()
	entry.CreatedDate = s.now().UTC()

	mediaJSON, err := json.Marshal(entry.MediaAttachments)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to encode media attachments", err)
	}
	if entry.MediaAttachments == nil {
		mediaJSON = []byte("[]")
	}
	var locationJSON interface{}
	if entry.Location != nil {
		data, err := json.Marshal(entry.Location)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to encode location", err)
		}
		locationJSON = string(data)
	}

	query := `
	INSERT INTO entries (id, journal_id, title, content, summary, date, mood,
		tags, auto_tags, emotions, key_themes, media_attachments,
		audio_url, location, template_used, is_favorite, source, created_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.ID, entry.JournalID, entry.Title, entry.Content,
		nullableString(entry.Summary), entry.Date, string(entry.Mood),
		marshalStrings(entry.Tags), marshalStrings(entry.AutoTags),
		marshalStrings(entry.Emotions), marshalStrings(entry.KeyThemes),
		string(mediaJSON), nullableString(entry.AudioURL), locationJSON,
		nullableString(entry.TemplateUsed), entry.IsFavorite,
		string(entry.Source), formatTime(entry.CreatedDate))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to create entry", err)
	}
	return entry, nil
}

// UpdateEntry merges the patch into the stored entry.
func (s *Store) UpdateEntry(ctx context.Context, id string, patch store.EntryPatch) (*models.JournalEntry, error) {
	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(entry)

	mediaJSON, err := json.Marshal(entry.MediaAttachments)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to encode media attachments", err)
	}
	if entry.MediaAttachments == nil {
		mediaJSON = []byte("[]")
	}
	var locationJSON interface{}
	if entry.Location != nil {
		data, err := json.Marshal(entry.Location)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to encode location", err)
		}
		locationJSON = string(data)
	}

	query := `
	UPDATE entries SET journal_id = ?, title = ?, content = ?, summary = ?, date = ?,
		mood = ?, tags = ?, auto_tags = ?, emotions = ?, key_themes = ?,
		media_attachments = ?, audio_url = ?, location = ?, template_used = ?,
		is_favorite = ?, source = ?
	WHERE id = ?
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.JournalID, entry.Title, entry.Content, nullableString(entry.Summary),
		entry.Date, string(entry.Mood),
		marshalStrings(entry.Tags), marshalStrings(entry.AutoTags),
		marshalStrings(entry.Emotions), marshalStrings(entry.KeyThemes),
		string(mediaJSON), nullableString(entry.AudioURL), locationJSON,
		nullableString(entry.TemplateUsed), entry.IsFavorite, string(entry.Source), id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to update entry", err)
	}
	return entry, nil
}

// DeleteEntry removes the entry.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to delete entry", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Newf(apperrors.ErrEntryNotFound, "entry not found: %s", id)
	}
	return nil
}

func (s *Store) getEntry(ctx context.Context, id string) (*models.JournalEntry, error) {
	stmt, err := s.prepare("SELECT " + entryColumns + " FROM entries WHERE id = ?")
	if err != nil {
		return nil, err
	}
	e, err := scanEntry(stmt.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.Newf(apperrors.ErrEntryNotFound, "entry not found: %s", id)
	}
	return e, err
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var e models.JournalEntry
	var summary, audioURL, location, templateUsed sql.NullString
	var mood, tags, autoTags, emotions, keyThemes, media, source, createdDate string

	if err := row.Scan(&e.ID, &e.JournalID, &e.Title, &e.Content, &summary,
		&e.Date, &mood, &tags, &autoTags, &emotions, &keyThemes, &media,
		&audioURL, &location, &templateUsed, &e.IsFavorite, &source,
		&createdDate); err != nil {
		return nil, err
	}

	e.Mood = models.Mood(mood)
	e.Tags = unmarshalStrings(tags)
	e.AutoTags = unmarshalStrings(autoTags)
	e.Emotions = unmarshalStrings(emotions)
	e.KeyThemes = unmarshalStrings(keyThemes)
	e.Source = models.EntrySource(source)
	e.CreatedDate = parseTime(createdDate)

	if media != "" && media != "[]" {
		if err := json.Unmarshal([]byte(media), &e.MediaAttachments); err != nil {
			return nil, fmt.Errorf("corrupt media_attachments for entry %s: %w", e.ID, err)
		}
	}
	if summary.Valid {
		e.Summary = &summary.String
	}
	if audioURL.Valid {
		e.AudioURL = &audioURL.String
	}
	if templateUsed.Valid {
		e.TemplateUsed = &templateUsed.String
	}
	if location.Valid && location.String != "" {
		var loc models.Location
		if err := json.Unmarshal([]byte(location.String), &loc); err != nil {
			return nil, fmt.Errorf("corrupt location for entry %s: %w", e.ID, err)
		}
		e.Location = &loc
	}
	return &e, nil
}

// =====================================================
// Goal operations
// =====================================================

const goalColumns = "id, title, description, category, progress, target_date, status, created_date"

// ListGoals returns all goals in the given order.
func (s *Store) ListGoals(ctx context.Context, spec store.SortSpec) ([]*models.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals" + orderClause(spec, store.SortByCreatedDate)
	stmt, err := s.prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to list goals", err)
	}
	defer rows.Close()

	goals := []*models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// CreateGoal assigns id and created_date and inserts the goal.
func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.ID = uuid.New()
	goal.CreatedDate = s.now().UTC()

	query := `
	INSERT INTO goals (id, title, description, category, progress, target_date, status, created_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, goal.ID, goal.Title, goal.Description,
		string(goal.Category), goal.Progress, nullableString(goal.TargetDate),
		string(goal.Status), formatTime(goal.CreatedDate))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to create goal", err)
	}
	return goal, nil
}

// UpdateGoal merges the patch into the stored goal.
func (s *Store) UpdateGoal(ctx context.Context, id string, patch store.GoalPatch) (*models.Goal, error) {
	goal, err := s.getGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(goal)

	query := `
	UPDATE goals SET title = ?, description = ?, category = ?, progress = ?,
		target_date = ?, status = ?
	WHERE id = ?
	`
	_, err = s.db.ExecContext(ctx, query, goal.Title, goal.Description,
		string(goal.Category), goal.Progress, nullableString(goal.TargetDate),
		string(goal.Status), id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to update goal", err)
	}
	return goal, nil
}

// DeleteGoal removes the goal.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to delete goal", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Newf(apperrors.ErrGoalNotFound, "goal not found: %s", id)
	}
	return nil
}

func (s *Store) getGoal(ctx context.Context, id string) (*models.Goal, error) {
	stmt, err := s.prepare("SELECT " + goalColumns + " FROM goals WHERE id = ?")
	if err != nil {
		return nil, err
	}
	g, err := scanGoal(stmt.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.Newf(apperrors.ErrGoalNotFound, "goal not found: %s", id)
	}
	return g, err
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var g models.Goal
	var targetDate sql.NullString
	var category, status, createdDate string
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &category, &g.Progress,
		&targetDate, &status, &createdDate); err != nil {
		return nil, err
	}
	g.Category = models.GoalCategory(category)
	g.Status = models.GoalStatus(status)
	g.CreatedDate = parseTime(createdDate)
	if targetDate.Valid {
		g.TargetDate = &targetDate.String
	}
	return &g, nil
}

// =====================================================
// User
// =====================================================

// GetUser returns the session user.
func (s *Store) GetUser(ctx context.Context) (*models.User, error) {
	stmt, err := s.prepare("SELECT id, name, email, subscription_plan, member_since FROM users LIMIT 1")
	if err != nil {
		return nil, err
	}

	var u models.User
	var plan, memberSince string
	err = stmt.QueryRowContext(ctx).Scan(&u.ID, &u.Name, &u.Email, &plan, &memberSince)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrNotFound, "no session user configured")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "failed to load user", err)
	}
	u.SubscriptionPlan = models.SubscriptionPlan(plan)
	u.MemberSince = parseTime(memberSince)
	return &u, nil
}

// EnsureUser inserts the session user if the users table is empty.
// Called at startup so a fresh database has a usable session.
func (s *Store) EnsureUser(ctx context.Context, user *models.User) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to count users", err)
	}
	if count > 0 {
		return nil
	}
	if user.ID == "" {
		user.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, subscription_plan, member_since) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, string(user.SubscriptionPlan), formatTime(user.MemberSince))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to seed user", err)
	}
	return nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
