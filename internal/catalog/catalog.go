// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite record of the page files an export wrote:
// where each page landed, how large it was and when it was written. The
// exporter never reads it back; every run rewrites its pages from scratch.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/confluence-export/pkg/types"
)

// FileName is the catalog database's name under the output root.
const FileName = "catalog.db"

// Store wraps the catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates outputDir/catalog.db and ensures the schema.
func Open(outputDir string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(outputDir, FileName)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			space_key TEXT NOT NULL,
			page_id TEXT NOT NULL,
			title TEXT NOT NULL,
			path TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			exported_at TEXT NOT NULL,
			PRIMARY KEY (space_key, page_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_space ON pages(space_key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one exported page.
func (s *Store) Record(ctx context.Context, p types.ExportedPage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (space_key, page_id, title, path, bytes, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(space_key, page_id) DO UPDATE SET
			title=excluded.title, path=excluded.path,
			bytes=excluded.bytes, exported_at=excluded.exported_at`,
		p.SpaceKey, p.PageID, p.Title, p.Path, p.Bytes,
		p.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording page %s/%s: %w", p.SpaceKey, p.PageID, err)
	}
	return nil
}

// Entries returns recorded pages ordered by space and title. An empty
// spaceKey returns every space.
func (s *Store) Entries(ctx context.Context, spaceKey string) ([]types.ExportedPage, error) {
	query := `SELECT space_key, page_id, title, path, bytes, exported_at FROM pages`
	var args []any
	if spaceKey != "" {
		query += ` WHERE space_key = ?`
		args = append(args, spaceKey)
	}
	query += ` ORDER BY space_key, title, page_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []types.ExportedPage
	for rows.Next() {
		var (
			p          types.ExportedPage
			exportedAt string
		)
		if err := rows.Scan(&p.SpaceKey, &p.PageID, &p.Title, &p.Path, &p.Bytes, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, exportedAt); parseErr == nil {
			p.ExportedAt = t
		}
		entries = append(entries, p)
	}
	return entries, rows.Err()
}

// ExportYAML writes the entries for spaceKey (or all spaces) to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, spaceKey string, w io.Writer) error {
	entries, err := s.Entries(ctx, spaceKey)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []types.ExportedPage{}
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
