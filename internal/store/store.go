// Package store implements every corpus provider interface over a single
// SQLite database. Entities are written once during import and read-only
// during queries.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bcnav/internal/ref"
	"bcnav/internal/sqlite"
)

// Store is the SQLite-backed corpus store. It satisfies
// corpus.TextProvider, corpus.LexiconProvider, corpus.CrossReferenceStore,
// corpus.SourceProvider and corpus.RemedyProvider.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the corpus database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory opens an in-memory corpus database. Intended for tests.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

func (s *Store) init() error {
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return s.seedBooks()
}

// seedBooks populates the books table from the canonical enumeration.
func (s *Store) seedBooks() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO books (name, testament, ord, chapters) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range ref.Canon {
		if _, err := stmt.Exec(b.Name, string(b.Testament), b.Order, b.Chapters); err != nil {
			return fmt.Errorf("failed to seed book %s: %w", b.Name, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for collaborators (importer, tests).
func (s *Store) DB() *sql.DB {
	return s.db
}

// ImportLog records one import run.
type ImportLog struct {
	ID          int64
	ImportType  string
	Status      string
	Records     int
	StartedAt   time.Time
	CompletedAt time.Time
	Error       string
}

// LogImport records the outcome of an import run.
func (s *Store) LogImport(ctx context.Context, log ImportLog) error {
	completed := ""
	if !log.CompletedAt.IsZero() {
		completed = log.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_logs (import_type, status, records, started_at, completed_at, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		log.ImportType, log.Status, log.Records,
		log.StartedAt.UTC().Format(time.RFC3339), completed, log.Error)
	return err
}

// ImportLogs returns all recorded import runs, newest first.
func (s *Store) ImportLogs(ctx context.Context) ([]ImportLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, import_type, status, records, started_at, completed_at, error
		 FROM import_logs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []ImportLog
	for rows.Next() {
		var l ImportLog
		var started, completed string
		if err := rows.Scan(&l.ID, &l.ImportType, &l.Status, &l.Records, &started, &completed, &l.Error); err != nil {
			return nil, err
		}
		l.StartedAt, _ = time.Parse(time.RFC3339, started)
		if completed != "" {
			l.CompletedAt, _ = time.Parse(time.RFC3339, completed)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
