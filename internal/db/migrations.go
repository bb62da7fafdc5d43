package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// Migration represents a single schema change.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema: users, competitions, task_status, tags, tasks, task_tags",
		SQL:         migration001SQL,
	},
}

const migration001SQL = `
CREATE TABLE competitions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    start_date DATETIME NOT NULL,
    end_date   DATETIME NOT NULL
);

CREATE TABLE users (
    id                     TEXT PRIMARY KEY,
    username               TEXT NOT NULL UNIQUE,
    full_name              TEXT NOT NULL DEFAULT '',
    current_competition_id INTEGER REFERENCES competitions(id),
    created_at             DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE task_status (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);

CREATE TABLE tags (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE tasks (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    assignee_id      TEXT NOT NULL REFERENCES users(id),
    status_id        INTEGER NOT NULL REFERENCES task_status(id),
    due_date         DATETIME,
    estimated_points INTEGER,
    awarded_points   INTEGER NOT NULL DEFAULT 0,
    metadata         TEXT NOT NULL DEFAULT '',
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE task_tags (
    task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
    tag_id  INTEGER NOT NULL REFERENCES tags(id),
    PRIMARY KEY (task_id, tag_id)
);

CREATE INDEX idx_tasks_assignee ON tasks(assignee_id, created_at DESC);
CREATE INDEX idx_tasks_status ON tasks(status_id);
`

// Migrate runs all pending migrations inside transactions.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at DATETIME)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)`, migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", migration.Version, err)
		}

		currentVersion = migration.Version
	}

	return nil
}

// CurrentVersion returns the current schema version (0 if no migrations applied).
func CurrentVersion(db *sql.DB) (int, error) {
	if db == nil {
		return 0, errors.New("db is nil")
	}

	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	var version int
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("query schema_version: %w", err)
	}
	return version, nil
}

// Seed inserts the fixed workflow statuses and urgency tags. It is
// idempotent: existing rows are left untouched.
func Seed(db *sql.DB) error {
	statuses := []struct {
		code string
		name string
	}{
		{"todo", "К выполнению"},
		{"in_progress", "В работе"},
		{"done", "Выполнено"},
	}
	for _, s := range statuses {
		if _, err := db.Exec(`INSERT INTO task_status (code, name) VALUES (?, ?) ON CONFLICT(code) DO NOTHING`, s.code, s.name); err != nil {
			return fmt.Errorf("seed status %q: %w", s.code, err)
		}
	}

	urgencyTags := []string{"несрочно", "срочно", "очень срочно"}
	for _, name := range urgencyTags {
		if _, err := db.Exec(`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
	}

	return nil
}
