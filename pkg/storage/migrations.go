package storage

import (
	"database/sql"
	"fmt"
)

// MigrationVersion tracks the current database schema version.
const MigrationVersion = 1

// InitializeDatabase creates the SQLite schema for the intent journal and
// records the applied migration version.
func InitializeDatabase(db *sql.DB) error {
	migrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version INTEGER NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}

	if currentVersion < 1 {
		if err := applyMigration1(db); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}
	}

	return nil
}

// applyMigration1 creates the sessions and intents tables.
func applyMigration1(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// One row per replayed scenario run
	sessionsTable := `
	CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		intent_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);`

	if _, err := tx.Exec(sessionsTable); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	if _, err := tx.Exec("CREATE INDEX idx_sessions_scenario ON sessions(scenario, created_at DESC);"); err != nil {
		return fmt.Errorf("failed to create session index: %w", err)
	}

	// Intents table - append-only, ordered by seq within a session
	intentsTable := `
	CREATE TABLE intents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		type TEXT NOT NULL,
		annotation_id TEXT,
		payload TEXT,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (session_id, seq),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);`

	if _, err := tx.Exec(intentsTable); err != nil {
		return fmt.Errorf("failed to create intents table: %w", err)
	}

	intentsIndexes := []string{
		"CREATE INDEX idx_intents_type ON intents(type);",
		"CREATE INDEX idx_intents_annotation_id ON intents(annotation_id);",
	}

	for _, idx := range intentsIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create intent index: %w", err)
		}
	}

	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", 1); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}
