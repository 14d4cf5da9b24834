package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is the persisted identity.
type Record struct {
	Token     string
	ExpiresAt time.Time
}

// Storage is the durable key-value slot holding the identity token.
type Storage interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context) error
}

// sessionKey is the single key the identity lives under.
const sessionKey = "passengerID"

// SQLiteStorage keeps the identity in a small SQLite file next to the user's config.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the session database at path.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error { return s.db.Close() }

func (s *SQLiteStorage) Load(ctx context.Context) (Record, bool, error) {
	var (
		rec     Record
		expires int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM session WHERE key = ?`, sessionKey,
	).Scan(&rec.Token, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("load session: %w", err)
	}
	rec.ExpiresAt = time.Unix(expires, 0)
	return rec, true, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, sessionKey, rec.Token, rec.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, sessionKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryPath selects MemoryStorage in place of a database file.
const MemoryPath = ":memory:"

// MemoryStorage keeps the identity for the life of the process only.
type MemoryStorage struct {
	mu    sync.Mutex
	rec   Record
	found bool
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load(context.Context) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.found, nil
}

func (m *MemoryStorage) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.found = rec, true
	return nil
}

func (m *MemoryStorage) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.found = Record{}, false
	return nil
}
