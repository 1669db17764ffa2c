// Package store provides SQLite-backed local persistence: code drafts,
// cached AI reviews and the session credential. Everything here is a
// best-effort cache; the judge owns the authoritative records.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ScratchScope is the draft scope used by the standalone playground,
// where no problem identity exists.
const ScratchScope = "playground"

// Per-language starter templates returned when no draft exists.
var defaultDrafts = map[string]string{
	"python": "# Write your solution here\n",
	"cpp":    "// Write your solution here\n",
}

// DefaultDraft returns the starter template for a language. Languages
// without a template fall back to the python comment style.
func DefaultDraft(language string) string {
	if d, ok := defaultDrafts[language]; ok {
		return d
	}
	return defaultDrafts["python"]
}

// Store provides SQLite-backed persistence for local workspace state.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	access  string
	refresh string
}

// Open opens the SQLite database at dbPath and creates tables if they
// don't exist. The cached credential row is loaded eagerly.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	s := &Store{db: db}
	if err := s.loadCredentials(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		scope TEXT NOT NULL,
		language TEXT NOT NULL,
		code TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, language)
	);

	CREATE TABLE IF NOT EXISTS reviews (
		scope TEXT PRIMARY KEY,
		review TEXT NOT NULL,
		remaining INTEGER,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// LoadDraft returns the last saved code for (scope, language), or the
// language's starter template if nothing was saved yet.
func (s *Store) LoadDraft(scope, language string) (string, error) {
	row := s.db.QueryRow(
		`SELECT code FROM drafts WHERE scope = ? AND language = ?`,
		scope, language,
	)

	var code string
	err := row.Scan(&code)
	if err == sql.ErrNoRows {
		return DefaultDraft(language), nil
	}
	if err != nil {
		return "", fmt.Errorf("scan draft: %w", err)
	}
	return code, nil
}

// SaveDraft upserts the draft for (scope, language). Last write wins.
func (s *Store) SaveDraft(scope, language, code string) error {
	_, err := s.db.Exec(
		`INSERT INTO drafts (scope, language, code, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(scope, language) DO UPDATE SET
		   code = excluded.code, updated_at = excluded.updated_at`,
		scope, language, code, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// SaveReview caches the last successful AI review for a problem scope.
func (s *Store) SaveReview(scope, review string, remaining int) error {
	_, err := s.db.Exec(
		`INSERT INTO reviews (scope, review, remaining, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(scope) DO UPDATE SET
		   review = excluded.review, remaining = excluded.remaining,
		   updated_at = excluded.updated_at`,
		scope, review, remaining, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

// LoadReview returns the cached review for a problem scope. remaining
// is -1 when no quota was recorded. ok is false when nothing is cached.
func (s *Store) LoadReview(scope string) (review string, remaining int, ok bool, err error) {
	row := s.db.QueryRow(
		`SELECT review, COALESCE(remaining, -1) FROM reviews WHERE scope = ?`,
		scope,
	)

	err = row.Scan(&review, &remaining)
	if err == sql.ErrNoRows {
		return "", -1, false, nil
	}
	if err != nil {
		return "", -1, false, fmt.Errorf("scan review: %w", err)
	}
	return review, remaining, true, nil
}

// ----------------------------------------------------------------------------
// Credential storage (implements api.CredentialStore)
// ----------------------------------------------------------------------------

func (s *Store) loadCredentials() error {
	row := s.db.QueryRow(`SELECT access_token, refresh_token FROM credentials WHERE id = 1`)

	var access, refresh string
	err := row.Scan(&access, &refresh)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan credentials: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()
	return nil
}

// AccessToken returns the cached access token, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// RefreshToken returns the persisted renewal credential.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// SetTokens persists a new token pair.
func (s *Store) SetTokens(access, refresh string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (id, access_token, refresh_token, updated_at)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   access_token = excluded.access_token,
		   refresh_token = excluded.refresh_token,
		   updated_at = excluded.updated_at`,
		access, refresh, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()
	return nil
}

// ClearTokens erases the persisted credential state.
func (s *Store) ClearTokens() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = "", ""
	s.mu.Unlock()
	return nil
}
