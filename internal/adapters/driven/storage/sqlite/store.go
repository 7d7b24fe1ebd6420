package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Store is a SQLite-backed run ledger.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.RunStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kb/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kb", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_name.up.sql newer than the recorded schema
// version, each in its own transaction together with its version row.
func (s *Store) migrate(fsys embed.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := s.applyMigration(fsys, m); err != nil {
			return err
		}
	}
	return nil
}

type migration struct {
	version int
	file    string
}

func pendingMigrations(fsys fs.FS, after int) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		if version > after {
			out = append(out, migration{version: version, file: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func (s *Store) applyMigration(fsys fs.FS, m migration) error {
	content, err := fs.ReadFile(fsys, m.file)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", m.file, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %s: %w", m.file, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("executing migration %s: %w", m.file, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.file, err)
	}
	return tx.Commit()
}

// SaveRun stores or updates a run.
func (s *Store) SaveRun(ctx context.Context, run domain.IndexRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is empty", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_runs (id, index_name, status, documents, fallback_documents, vectors, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			index_name = excluded.index_name,
			status = excluded.status,
			documents = excluded.documents,
			fallback_documents = excluded.fallback_documents,
			vectors = excluded.vectors,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, run.ID, run.IndexName, string(run.Status), run.Documents, run.FallbackDocuments, run.Vectors,
		nullString(run.Error), run.StartedAt.UTC(), nullTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.IndexRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, index_name, status, documents, fallback_documents, vectors, error, started_at, finished_at
		FROM index_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
// A non-positive limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.IndexRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, index_name, status, documents, fallback_documents, vectors, error, started_at, finished_at
		FROM index_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.IndexRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// SaveDocuments records the documents collected by a run.
// Documents are appended after any already recorded for the same run.
func (s *Store) SaveDocuments(ctx context.Context, docs []domain.CollectedDocument) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO collected_documents (run_id, position, url, title, word_count, scraped_at, from_fallback)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM collected_documents WHERE run_id = ?), ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.RunID, d.RunID, d.URL, d.Title, d.WordCount,
			nullTime(d.ScrapedAt), d.FromFallback); err != nil {
			return fmt.Errorf("saving document %s: %w", d.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing documents: %w", err)
	}
	return nil
}

// ListDocuments returns the documents recorded for a run in collection order.
func (s *Store) ListDocuments(ctx context.Context, runID string) ([]domain.CollectedDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, url, title, word_count, scraped_at, from_fallback
		FROM collected_documents WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.CollectedDocument{}
	for rows.Next() {
		var d domain.CollectedDocument
		var scrapedAt sql.NullTime
		if err := rows.Scan(&d.RunID, &d.URL, &d.Title, &d.WordCount, &scrapedAt, &d.FromFallback); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if scrapedAt.Valid {
			d.ScrapedAt = scrapedAt.Time
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.IndexRun, error) {
	var run domain.IndexRun
	var status string
	var runErr sql.NullString
	var startedAt, finishedAt sql.NullTime

	if err := row.Scan(&run.ID, &run.IndexName, &status, &run.Documents, &run.FallbackDocuments,
		&run.Vectors, &runErr, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	run.Error = runErr.String
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
