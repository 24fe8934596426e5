// Package cache implements the offline cache worker: a sqlite-backed
// response store and an http.RoundTripper applying cache-first or
// network-first strategies per request path.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store persists HTTP responses keyed by (generation, method, URL).
type Store struct {
	*sql.DB
}

// Open creates or opens the cache database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}

	s := &Store{DB: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory cache store (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory cache database: %w", err)
	}
	s := &Store{DB: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
    generation TEXT NOT NULL,
    method TEXT NOT NULL,
    url TEXT NOT NULL,
    status INTEGER NOT NULL,
    headers TEXT NOT NULL DEFAULT '{}',
    body BLOB NOT NULL,
    stored_at DATETIME NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY(generation, method, url)
);

CREATE INDEX IF NOT EXISTS idx_cache_generation ON cache_entries(generation);
`

// Entry is one stored response.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

// Put stores or replaces the response for a request.
func (s *Store) Put(ctx context.Context, generation, method, url string, e Entry) error {
	headers, err := json.Marshal(e.Header)
	if err != nil {
		return fmt.Errorf("encoding headers: %w", err)
	}
	_, err = s.ExecContext(ctx, `
		INSERT INTO cache_entries (generation, method, url, status, headers, body, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(generation, method, url) DO UPDATE SET
			status = excluded.status,
			headers = excluded.headers,
			body = excluded.body,
			stored_at = excluded.stored_at`,
		generation, method, url, e.Status, string(headers), e.Body)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Get returns the stored response for a request, or nil when absent.
func (s *Store) Get(ctx context.Context, generation, method, url string) (*Entry, error) {
	var e Entry
	var headers string
	err := s.QueryRowContext(ctx,
		`SELECT status, headers, body FROM cache_entries WHERE generation = ? AND method = ? AND url = ?`,
		generation, method, url).Scan(&e.Status, &headers, &e.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}
	e.Header = http.Header{}
	if err := json.Unmarshal([]byte(headers), &e.Header); err != nil {
		return nil, fmt.Errorf("decoding headers: %w", err)
	}
	return &e, nil
}

// DeleteOtherGenerations removes every entry whose generation tag
// differs from keep. Returns the number of deleted entries.
func (s *Store) DeleteOtherGenerations(ctx context.Context, keep string) (int64, error) {
	res, err := s.ExecContext(ctx, `DELETE FROM cache_entries WHERE generation != ?`, keep)
	if err != nil {
		return 0, fmt.Errorf("deleting stale generations: %w", err)
	}
	return res.RowsAffected()
}

// Generations lists the distinct generation tags currently stored.
func (s *Store) Generations(ctx context.Context) ([]string, error) {
	rows, err := s.QueryContext(ctx, `SELECT DISTINCT generation FROM cache_entries ORDER BY generation`)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()
	var gens []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}
