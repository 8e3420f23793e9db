// Package settings persists application configuration values, most
// importantly the backup settings, in a small SQLite key-value store.
// Callers re-read before every operation that depends on a value, so edits
// made by another surface are observed on the next call.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"litepad/internal/models"
)

const (
	busyTimeoutMS = 5000
	maxOpenConns  = 1
	maxIdleConns  = 1

	backupSettingsKey = "backupSettings"
)

const (
	DefaultMaxBackups         = 5
	DefaultAutoBackupInterval = 30
)

// Store wraps the SQLite settings database.
type Store struct {
	db *sql.DB
}

// Open opens the settings database and bootstraps the schema.
func Open(path string) (*Store, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("settings db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	return nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

// Get returns the raw value for key, or sql.ErrNoRows when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores the raw value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

// GetBackupSettings returns the stored backup settings, falling back to
// defaults when the key is unset or its value does not parse. This mirrors
// how the frontend treats the settings store: absent or corrupt
// configuration degrades to defaults, never to an error.
func (s *Store) GetBackupSettings() (models.BackupSettings, error) {
	raw, err := s.Get(backupSettingsKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultBackupSettings(), nil
		}
		return models.BackupSettings{}, fmt.Errorf("read backup settings: %w", err)
	}

	var settings models.BackupSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return DefaultBackupSettings(), nil
	}
	return settings, nil
}

// SetBackupSettings persists the backup settings.
func (s *Store) SetBackupSettings(settings models.BackupSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode backup settings: %w", err)
	}
	return s.Set(backupSettingsKey, string(raw))
}

// DefaultBackupSettings returns the out-of-the-box backup configuration:
// archives under the user's documents area, five retained, auto-backup off.
func DefaultBackupSettings() models.BackupSettings {
	return models.BackupSettings{
		BackupDirectory:    DefaultBackupDirectory(),
		MaxBackups:         DefaultMaxBackups,
		AutoBackupEnabled:  false,
		AutoBackupInterval: DefaultAutoBackupInterval,
	}
}

// DefaultBackupDirectory returns Documents/LitePad/Backups under the user's
// home, or empty when the home directory cannot be determined.
func DefaultBackupDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Documents", "LitePad", "Backups")
}
