package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// settingsTable is the name of the table for saved settings. It is created by
// the embedded migrations, not by this file.
const settingsTable = "heatmap_settings"

// SettingsStoreImpl implements the SettingsStore interface over a local
// SQLite database. Settings are per-machine preferences, so unlike the
// dataset cache they never live in a shared server backend.
type SettingsStoreImpl struct {
	db     *sql.DB
	dbPath string
}

var _ contract.SettingsStore = &SettingsStoreImpl{} // Compile-time check

// NewSettingsStore opens the settings database at dbPath, creating and
// migrating it as needed. An empty dbPath uses the default location.
func NewSettingsStore(dbPath string) (contract.SettingsStore, error) {
	if dbPath == "" {
		dbPath = contract.GetSettingsDBFilePath()
	}

	if err := MigrateSettings(dbPath, -1); err != nil {
		return nil, fmt.Errorf("failed to migrate settings database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database at %q: %w. Check that the directory is writable", dbPath, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to settings database: %w", err)
	}

	return &SettingsStoreImpl{db: db, dbPath: dbPath}, nil
}

// Get returns the value for key, or nil when the key has never been saved.
func (ss *SettingsStoreImpl) Get(key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf(`SELECT setting_value FROM %q WHERE setting_key = ?`, settingsTable)
	if err := ss.db.QueryRow(query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Update inserts or replaces the value for key. A nil value deletes the key.
func (ss *SettingsStoreImpl) Update(key string, value []byte) error {
	if value == nil {
		query := fmt.Sprintf(`DELETE FROM %q WHERE setting_key = ?`, settingsTable)
		_, err := ss.db.Exec(query, key)
		return err
	}
	query := fmt.Sprintf(`INSERT OR REPLACE INTO %q (setting_key, setting_value, updated_at) VALUES (?, ?, ?)`, settingsTable)
	_, err := ss.db.Exec(query, key, value, time.Now().Unix())
	return err
}

// ListKeys returns all saved setting keys in sorted order.
func (ss *SettingsStoreImpl) ListKeys() ([]string, error) {
	query := fmt.Sprintf(`SELECT setting_key FROM %q ORDER BY setting_key`, settingsTable)
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// GetStatus returns status information about the settings store.
func (ss *SettingsStoreImpl) GetStatus() (schema.SettingsStatus, error) {
	status := schema.SettingsStatus{
		Backend:   string(schema.SQLiteBackend),
		Connected: ss.db != nil,
	}
	if ss.db == nil {
		return status, nil
	}
	keys, err := ss.ListKeys()
	if err != nil {
		return status, err
	}
	status.Keys = keys
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SettingsStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
