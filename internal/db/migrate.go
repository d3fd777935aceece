package db

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration represents an applied schema migration.
type Migration struct {
	Version     int
	AppliedAt   time.Time
	Description string
}

// Migrator applies the embedded schema migrations in version order.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new Migrator instance.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Initialize creates the schema_migrations table if it doesn't exist.
func (m *Migrator) Initialize() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY CHECK(version > 0),
		applied_at INTEGER NOT NULL CHECK(applied_at > 0),
		description TEXT NOT NULL CHECK(length(description) > 0)
	);`
	_, err := m.db.Exec(query)
	return err
}

// CurrentVersion returns the current schema version, 0 for a fresh database.
func (m *Migrator) CurrentVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// AppliedMigrations returns all applied migrations in version order.
func (m *Migrator) AppliedMigrations() ([]Migration, error) {
	rows, err := m.db.Query("SELECT version, applied_at, description FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var migrations []Migration
	for rows.Next() {
		var mig Migration
		var appliedAt int64
		if err := rows.Scan(&mig.Version, &appliedAt, &mig.Description); err != nil {
			return nil, err
		}
		mig.AppliedAt = time.Unix(appliedAt, 0)
		migrations = append(migrations, mig)
	}
	return migrations, rows.Err()
}

// Up applies all pending embedded migrations.
func (m *Migrator) Up() error {
	if err := m.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize migrations table: %w", err)
	}

	current, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	type pending struct {
		version     int
		description string
		name        string
	}
	var todo []pending
	for _, entry := range entries {
		version, description, err := parseMigrationName(entry.Name())
		if err != nil {
			return err
		}
		if version > current {
			todo = append(todo, pending{version, description, entry.Name()})
		}
	}
	sort.Slice(todo, func(i, k int) bool { return todo[i].version < todo[k].version })

	for _, mig := range todo {
		script, err := migrationFS.ReadFile("migrations/" + mig.name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", mig.name, err)
		}

		tx, err := m.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(script)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", mig.version, mig.description, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
			mig.version, time.Now().Unix(), mig.description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", mig.version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// parseMigrationName splits "0001_create_journals.sql" into version and
// description.
func parseMigrationName(name string) (int, string, error) {
	base := strings.TrimSuffix(name, ".sql")
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("malformed migration file name: %s", name)
	}
	version, err := strconv.Atoi(parts[0])
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("malformed migration version in %s", name)
	}
	return version, strings.ReplaceAll(parts[1], "_", " "), nil
}
