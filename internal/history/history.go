// Package history records every interaction durably.
//
// The log complements the line-oriented text log: it is queryable after
// the fact ("what did I actually say?") via the history subcommand.
// Rows are grouped by session, one session per process run.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Sources for interaction rows.
const (
	SourceUser   = "user"   // transcribed utterances, raw and normalized
	SourceNova   = "nova"   // spoken responses
	SourceSystem = "system" // diagnostics
)

// Entry is one recorded interaction.
type Entry struct {
	ID        string
	SessionID string
	Timestamp time.Time
	Source    string
	Message   string
}

// Log is a durable interaction log backed by SQLite.
type Log struct {
	db      *sql.DB
	session string
}

// Open creates or opens the history database at the given path and
// starts a new session. Pragmas and schema are applied automatically;
// the call is idempotent.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to history database: %w", err)
	}

	// Single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Log{db: db, session: uuid.NewString()}, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Session returns the identifier stamped on rows written by this Log.
func (l *Log) Session() string {
	return l.session
}

// Append records one interaction. Source must be one of the Source
// constants; the timestamp is taken at call time.
func (l *Log) Append(ctx context.Context, source, message string) error {
	switch source {
	case SourceUser, SourceNova, SourceSystem:
	default:
		return fmt.Errorf("unknown interaction source %q", source)
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO interactions (id, session_id, ts, source, message)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(),
		l.session,
		time.Now().UTC().Format(time.RFC3339Nano),
		source,
		message,
	)
	if err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

// Recent returns up to limit interactions across all sessions, newest
// first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, session_id, ts, source, message
		FROM interactions
		ORDER BY ts DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.SessionID, &ts, &e.Source, &e.Message); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
