package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection with WAL journaling and
// foreign key enforcement enabled.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Work days: the aggregate root, one row per tracked working period
CREATE TABLE IF NOT EXISTS work_days (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('not_started', 'active', 'ended')),
    started_at TIMESTAMP,
    ended_at TIMESTAMP,
    initial_activity TEXT NOT NULL DEFAULT '',
    current_activity TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_owner_work_days ON work_days(owner_id);
CREATE INDEX IF NOT EXISTS idx_owner_status ON work_days(owner_id, status);
CREATE INDEX IF NOT EXISTS idx_work_day_started ON work_days(started_at);

-- Meetings: nested timers owned by a work day
CREATE TABLE IF NOT EXISTS meetings (
    id TEXT PRIMARY KEY,
    work_day_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    meeting_type TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    attendee_count INTEGER NOT NULL DEFAULT 0 CHECK(attendee_count >= 0),
    status TEXT NOT NULL CHECK(status IN ('running', 'stopped')),
    started_at TIMESTAMP NOT NULL,
    stopped_at TIMESTAMP,
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (work_day_id) REFERENCES work_days(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_work_day_meetings ON meetings(work_day_id);

-- Time entries: append-only manual log, owned by a work day
CREATE TABLE IF NOT EXISTS time_entries (
    id TEXT PRIMARY KEY,
    work_day_id TEXT NOT NULL,
    description TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
    recorded_at TIMESTAMP NOT NULL,
    commit_hash TEXT NOT NULL DEFAULT '',
    jira_ticket TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    billable INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (work_day_id) REFERENCES work_days(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_work_day_entries ON time_entries(work_day_id);

-- API keys for owner resolution
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_owner_keys ON api_keys(owner_id);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
