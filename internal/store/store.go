// Package store implements the persistence collaborator: a key-value store
// holding one JSON-serialized value per collection. Writes replace the whole
// collection, which keeps them atomic at collection granularity; the rest of
// the application never does partial updates.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mediswift/internal/logging"

	_ "modernc.org/sqlite"
)

// Collection keys. Every persisted collection has exactly one row.
const (
	KeyUsers         = "mediswift_users"
	KeySession       = "mediswift_currentUser"
	KeyCart          = "mediswift_cart"
	KeyWishlist      = "mediswift_wishlist"
	KeyProducts      = "mediswift_products"
	KeyOrders        = "mediswift_orders"
	KeyPrescriptions = "mediswift_prescriptions"
	KeyAddresses     = "mediswift_addresses"
	KeyAppointments  = "mediswift_appointments"
	KeyChatHistory   = "mediswift_chat_history"
	KeyVisited       = "mediswift_visited"
)

// LocalStore is a SQLite-backed collection store. A single table maps
// namespaced keys to serialized collections.
type LocalStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewLocalStore initializes the SQLite database at the given path.
func NewLocalStore(path string) (*LocalStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewLocalStore")
	defer timer.Stop()

	logging.Store("Initializing LocalStore at path: %s", path)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to create directory %s: %v", dir, err)
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &LocalStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to initialize schema: %v", err)
		db.Close()
		return nil, err
	}

	logging.Store("LocalStore initialization complete")
	return s, nil
}

// initialize creates the collections table.
func (s *LocalStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}
	return nil
}

// Get returns the serialized collection for key. Missing keys return
// ok=false and an empty string, never an error; callers substitute their
// documented empty default.
func (s *LocalStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the serialized collection for key, replacing any previous
// value. Durable until the next Set or Clear.
func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	logging.StoreDebug("Wrote collection %s (%d bytes)", key, len(value))
	return nil
}

// Clear removes a single key. Used on logout to drop only the session.
func (s *LocalStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM collections WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", key, err)
	}
	logging.Store("Cleared collection %s", key)
	return nil
}

// Close closes the database connection.
func (s *LocalStore) Close() error {
	logging.Store("Closing LocalStore database connection")
	return s.db.Close()
}
