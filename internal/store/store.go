// Package store persists manuscripts as projects in SQLite.
//
// A project row holds the manuscript header (title, course, style) and
// owns its chapters. Save replaces the chapter set in one transaction, so
// a reader never observes a half-written project.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	tccexport "github.com/alnah/go-tccexport"
)

// Sentinel errors for store operations.
var (
	ErrNotFound = errors.New("project not found")
	ErrOpen     = errors.New("failed to open project store")
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    course     TEXT NOT NULL DEFAULT '',
    style      TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chapters (
    id         TEXT NOT NULL,
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL DEFAULT '',
    generated  INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0,
    position   INTEGER NOT NULL,
    PRIMARY KEY (project_id, id)
);
CREATE INDEX IF NOT EXISTS idx_chapters_project ON chapters(project_id, position);
CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at DESC);
`

// Project is a stored manuscript with its bookkeeping.
type Project struct {
	ID         string
	Manuscript tccexport.Manuscript
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Snapshot returns a copy of the project's manuscript.
func (p *Project) Snapshot(ctx context.Context) (tccexport.Manuscript, error) {
	if err := ctx.Err(); err != nil {
		return tccexport.Manuscript{}, err
	}
	return p.Manuscript.Clone(), nil
}

var _ tccexport.ManuscriptSource = (*Project)(nil)

// Summary is one row of List.
type Summary struct {
	ID         string
	Title      string
	CourseName string
	Chapters   int
	UpdatedAt  time.Time
}

// Store is a SQLite-backed project repository. Safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type storeConfig struct {
	busyTimeout int
	now         func() time.Time
}

// Option configures a Store.
type Option func(*storeConfig)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 5000.
func WithBusyTimeout(ms int) Option {
	return func(c *storeConfig) { c.busyTimeout = ms }
}

// WithClock sets the time source used for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) { c.now = now }
}

// Open opens (creating if needed) the store at path and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := storeConfig{busyTimeout: 5000, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if path == ":memory:" {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrOpen, p, err)
		}
	}
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: schema: %w", ErrOpen, err)
		}
	}

	return &Store{db: db, now: cfg.now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the manuscript under id, replacing any previous version, and
// returns the project ID. An empty id creates a new project. Chapters
// without an ID are assigned one.
func (s *Store) Save(ctx context.Context, id string, m tccexport.Manuscript) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, title, course, style, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			course = excluded.course,
			style = excluded.style,
			updated_at = excluded.updated_at`,
		id, m.Title, m.CourseName, m.Style, now, now)
	if err != nil {
		return "", fmt.Errorf("save project %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE project_id = ?`, id); err != nil {
		return "", fmt.Errorf("clear chapters of %s: %w", id, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chapters (id, project_id, title, content, generated, sort_order, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare chapter insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range m.Chapters {
		chID := ch.ID
		if chID == "" {
			chID = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, chID, id, ch.Title, ch.ContentMarkup, ch.Generated, ch.Order, i); err != nil {
			return "", fmt.Errorf("save chapter %q: %w", ch.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return id, nil
}

// Get loads a project with its chapters in stored position.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	p := &Project{ID: id}
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT title, course, style, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.Manuscript.Title, &p.Manuscript.CourseName, &p.Manuscript.Style, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	p.CreatedAt = time.UnixMilli(created).UTC()
	p.UpdatedAt = time.UnixMilli(updated).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, generated, sort_order
		FROM chapters WHERE project_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load chapters of %s: %w", id, err)
	}
	defer rows.Close()

	p.Manuscript.Chapters = []tccexport.Chapter{}
	for rows.Next() {
		var ch tccexport.Chapter
		if err := rows.Scan(&ch.ID, &ch.Title, &ch.ContentMarkup, &ch.Generated, &ch.Order); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		p.Manuscript.Chapters = append(p.Manuscript.Chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load chapters of %s: %w", id, err)
	}
	return p, nil
}

// List returns project summaries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.course, p.updated_at, COUNT(c.id)
		FROM projects p LEFT JOIN chapters c ON c.project_id = p.id
		GROUP BY p.id
		ORDER BY p.updated_at DESC, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var updated int64
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.CourseName, &updated, &sum.Chapters); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a project and its chapters.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Source returns a ManuscriptSource reading project id at snapshot time.
func (s *Store) Source(id string) tccexport.ManuscriptSource {
	return projectSource{store: s, id: strings.TrimSpace(id)}
}

type projectSource struct {
	store *Store
	id    string
}

func (ps projectSource) Snapshot(ctx context.Context) (tccexport.Manuscript, error) {
	p, err := ps.store.Get(ctx, ps.id)
	if err != nil {
		return tccexport.Manuscript{}, err
	}
	return p.Manuscript, nil
}
