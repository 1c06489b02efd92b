package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dshills/annotate/pkg/domain/types"
	"github.com/dshills/annotate/pkg/intent"
)

// ErrSessionNotFound is returned when a session ID has no journal rows.
var ErrSessionNotFound = errors.New("session not found")

// Session summarizes one journaled scenario run.
type Session struct {
	ID          string    `json:"id"`
	Scenario    string    `json:"scenario"`
	IntentCount int       `json:"intentCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Entry is one journaled intent.
type Entry struct {
	Session      string             `json:"session"`
	Seq          int                `json:"seq"`
	Type         intent.Type        `json:"type"`
	AnnotationID types.AnnotationID `json:"annotationId,omitempty"`
	Payload      json.RawMessage    `json:"payload,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// SQLiteJournal stores dispatched intents in SQLite.
type SQLiteJournal struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteJournal opens or creates the journal database at dbPath.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteJournal{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Append records a session and its intents in order. Appending to an
// existing session continues its sequence numbers.
func (j *SQLiteJournal) Append(ctx context.Context, session, scenario string, ins []intent.Intent) error {
	if session == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, scenario, intent_count, created_at)
		VALUES (?, ?, 0, ?)
		ON CONFLICT(id) DO NOTHING
	`, session, scenario, j.now())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) FROM intents WHERE session_id = ?", session).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to read session sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO intents (session_id, seq, type, annotation_id, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare intent insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, in := range ins {
		seq++

		var annotationID sql.NullString
		if id := in.AnnotationID(); !id.IsZero() {
			annotationID.Valid = true
			annotationID.String = id.String()
		}

		var payload sql.NullString
		if in.Payload != nil {
			data, err := json.Marshal(in.Payload)
			if err != nil {
				return fmt.Errorf("failed to marshal %s payload: %w", in.Type, err)
			}
			payload.Valid = true
			payload.String = string(data)
		}

		createdAt := in.Timestamp
		if createdAt.IsZero() {
			createdAt = j.now()
		}

		if _, err := stmt.ExecContext(ctx, session, seq, string(in.Type), annotationID, payload, createdAt); err != nil {
			return fmt.Errorf("failed to save intent %d: %w", seq, err)
		}
	}

	_, err = tx.ExecContext(ctx, "UPDATE sessions SET intent_count = ? WHERE id = ?", seq, session)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Sessions returns every journaled session, most recent first.
func (j *SQLiteJournal) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, scenario, intent_count, created_at
		FROM sessions
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Scenario, &s.IntentCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// List returns the intents journaled for session in dispatch order.
func (j *SQLiteJournal) List(ctx context.Context, session string) ([]Entry, error) {
	var exists int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", session).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, session)
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id, seq, type, annotation_id, payload, created_at
		FROM intents
		WHERE session_id = ?
		ORDER BY seq
	`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query intents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var annotationID, payload sql.NullString

		if err := rows.Scan(&e.Session, &e.Seq, &e.Type, &annotationID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan intent: %w", err)
		}

		if annotationID.Valid {
			e.AnnotationID = types.AnnotationID(annotationID.String)
		}
		if payload.Valid {
			e.Payload = json.RawMessage(payload.String)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intents: %w", err)
	}

	return entries, nil
}
