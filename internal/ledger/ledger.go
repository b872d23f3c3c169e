// Package ledger records which exports have been converted, where the
// notes went, and what the source looked like at the time. It backs the
// skip-unchanged logic and the list command's status column.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS conversions (
	source_path  TEXT PRIMARY KEY,
	source_mtime INTEGER NOT NULL,
	source_size  INTEGER NOT NULL,
	note_path    TEXT NOT NULL,
	title        TEXT NOT NULL,
	converted_at TEXT NOT NULL
);
`

// Entry is one conversion record.
type Entry struct {
	SourcePath  string
	SourceMtime int64
	SourceSize  int64
	NotePath    string
	Title       string
	ConvertedAt time.Time
}

// Ledger wraps the sqlite database.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database, creating parent directories
// and the schema as needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record inserts or replaces the entry for an export.
func (l *Ledger) Record(e Entry) error {
	_, err := l.db.Exec(`
		INSERT INTO conversions (source_path, source_mtime, source_size, note_path, title, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			source_mtime = excluded.source_mtime,
			source_size  = excluded.source_size,
			note_path    = excluded.note_path,
			title        = excluded.title,
			converted_at = excluded.converted_at`,
		e.SourcePath, e.SourceMtime, e.SourceSize, e.NotePath, e.Title,
		e.ConvertedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record conversion: %w", err)
	}
	return nil
}

// Get returns the entry for an export path, or nil when none exists.
func (l *Ledger) Get(sourcePath string) (*Entry, error) {
	row := l.db.QueryRow(`
		SELECT source_path, source_mtime, source_size, note_path, title, converted_at
		FROM conversions WHERE source_path = ?`, sourcePath)

	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup conversion: %w", err)
	}
	return e, nil
}

// UpToDate reports whether an export was already converted and has not
// changed since, judged by mtime and size.
func (l *Ledger) UpToDate(sourcePath string, mtime, size int64) (bool, error) {
	e, err := l.Get(sourcePath)
	if err != nil || e == nil {
		return false, err
	}
	return e.SourceMtime == mtime && e.SourceSize == size, nil
}

// All returns every recorded conversion, most recent first.
func (l *Ledger) All() ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT source_path, source_mtime, source_size, note_path, title, converted_at
		FROM conversions ORDER BY converted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list conversions: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded conversions.
func (l *Ledger) Count() (int, error) {
	var n int
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count conversions: %w", err)
	}
	return n, nil
}

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var convertedAt string
	if err := scan(&e.SourcePath, &e.SourceMtime, &e.SourceSize, &e.NotePath, &e.Title, &convertedAt); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, convertedAt); err == nil {
		e.ConvertedAt = ts
	}
	return &e, nil
}
