// Package store provides a SQLite-backed store for editor state that should
// survive restarts: the last cursor position per file and the recent search
// patterns offered by the search prompt.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS file_state (
	path     TEXT PRIMARY KEY,
	line     INTEGER NOT NULL,
	col      INTEGER NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS search_history (
	pattern  TEXT PRIMARY KEY,
	used     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_state_updated ON file_state(updated);
CREATE INDEX IF NOT EXISTS idx_search_used ON search_history(used);
`

// retention is how long unvisited file state is kept before purge.
const retention = 90 * 24 * time.Hour

// Store is the SQLite-backed editor state store. All methods are safe to
// call on a nil receiver; persistence simply degrades to no-ops, so the
// editor works without a writable data directory.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the state database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	s.purgeStale()
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// --- File state ---

// Cursor returns the stored cursor position for path. Safe on nil (miss).
func (s *Store) Cursor(path string) (line, col int, ok bool) {
	if s == nil || path == "" {
		return 0, 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.QueryRow(
		"SELECT line, col FROM file_state WHERE path = ?",
		path,
	).Scan(&line, &col)
	if err != nil {
		return 0, 0, false
	}
	return line, col, true
}

// SetCursor records the cursor position for path. No-op on nil receiver.
func (s *Store) SetCursor(path string, line, col int) {
	if s == nil || path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO file_state (path, line, col, updated) VALUES (?, ?, ?, ?)",
		path, line, col, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to store cursor position")
	}
}

// --- Search history ---

// AddSearch records a search pattern, refreshing its recency. No-op on nil.
func (s *Store) AddSearch(pattern string) {
	if s == nil || pattern == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO search_history (pattern, used) VALUES (?, ?)",
		pattern, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to store search pattern")
	}
}

// RecentSearches returns up to n patterns, most recent first. Safe on nil.
func (s *Store) RecentSearches(n int) []string {
	if s == nil || n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT pattern FROM search_history ORDER BY used DESC LIMIT ?", n,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// purgeStale removes file state not touched within the retention window.
func (s *Store) purgeStale() {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := s.db.Exec("DELETE FROM file_state WHERE updated <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale file state")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale file state")
	}
}
