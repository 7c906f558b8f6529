package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "activities: append-only cognitive energy log",
		SQL: `
CREATE TABLE activities (
    id          INTEGER PRIMARY KEY,
    user_id     TEXT NOT NULL,
    activity_id TEXT NOT NULL,
    domain      TEXT NOT NULL CHECK (domain IN ('work', 'health', 'social', 'learning')),
    cost        REAL NOT NULL,
    created_at  INTEGER NOT NULL
);

CREATE INDEX idx_activities_user_time ON activities(user_id, created_at);
`,
	},
	{
		Version:     2,
		Description: "calendar_events: ingested calendar feed",
		SQL: `
CREATE TABLE calendar_events (
    id             TEXT PRIMARY KEY,
    user_id        TEXT NOT NULL,
    title          TEXT NOT NULL DEFAULT '',
    start_time     INTEGER NOT NULL,
    end_time       INTEGER NOT NULL,
    is_meeting     INTEGER NOT NULL DEFAULT 0,
    is_focus_block INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_events_user_start ON calendar_events(user_id, start_time);
`,
	},
	{
		Version:     3,
		Description: "budget_samples: historical budget-ratio observations",
		SQL: `
CREATE TABLE budget_samples (
    id               INTEGER PRIMARY KEY,
    user_id          TEXT NOT NULL,
    cognitive_budget REAL NOT NULL,
    created_at       INTEGER NOT NULL
);

CREATE INDEX idx_samples_user_time ON budget_samples(user_id, created_at DESC);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
