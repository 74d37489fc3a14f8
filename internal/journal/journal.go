package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one journaled mutation.
type Entry struct {
	Seq   int64
	Op    string
	Table string
	ID    string // 16-hex record identifier
	At    time.Time
}

// Journal is a SQLite-backed mutation log. It satisfies the store's
// Journal interface via Record.
type Journal struct {
	db    *sql.DB
	clock *clock
	log   *slog.Logger
}

// Option configures a Journal at Open time.
type Option func(*Journal)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// Open creates or opens a journal database at the given path. Applies
// required pragmas and the schema; resumes the seq clock from the highest
// journaled entry. Idempotent - safe to call on an existing journal.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite supports one writer at a time; keep a single connection to
	// avoid SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure journal: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	var last int64
	if err := db.QueryRow("SELECT COALESCE(MAX(seq), 0) FROM mutations").Scan(&last); err != nil {
		db.Close()
		return nil, fmt.Errorf("resume journal seq: %w", err)
	}

	j := &Journal{
		db:    db,
		clock: newClockAt(last),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append journals one mutation and returns its assigned seq.
func (j *Journal) Append(ctx context.Context, op, table, idHex string) (int64, error) {
	seq := j.clock.next()
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO mutations (seq, op, tbl, record_id, at)
		VALUES (?, ?, ?, ?, ?)
	`, seq, op, table, idHex, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	return seq, nil
}

// Record implements the store's mutation notification. An append failure
// is logged and swallowed; the mutation it describes has already
// committed to the filesystem.
func (j *Journal) Record(op, table, idHex string) {
	if _, err := j.Append(context.Background(), op, table, idHex); err != nil {
		j.log.Warn("journal append failed", "op", op, "table", table, "id", idHex, "err", err)
	}
}

// Entries returns every journaled mutation in seq order.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	return j.query(ctx, `
		SELECT seq, op, tbl, record_id, at
		FROM mutations
		ORDER BY seq ASC
	`)
}

// EntriesForTable returns the journaled mutations of one table in seq
// order.
func (j *Journal) EntriesForTable(ctx context.Context, table string) ([]Entry, error) {
	return j.query(ctx, `
		SELECT seq, op, tbl, record_id, at
		FROM mutations
		WHERE tbl = ?
		ORDER BY seq ASC
	`, table)
}

func (j *Journal) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.Seq, &e.Op, &e.Table, &e.ID, &at); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
