package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager. cacheBackend may be the
// none backend to disable durable dataset caching; the settings store is
// always local SQLite and is opened regardless.
func InitStores(cacheBackend schema.CacheBackend, cacheConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		cacheStore, err := NewCacheStore(cacheTable, cacheBackend, cacheConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize dataset cache: %w", err)
			return
		}

		settingsStore, err := NewSettingsStore("")
		if err != nil {
			_ = cacheStore.Close()
			initErr = fmt.Errorf("failed to initialize settings store: %w", err)
			return
		}

		Manager.Lock()
		Manager.cache = cacheStore
		Manager.settings = settingsStore
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.cache != nil {
			_ = Manager.cache.Close()
		}
		if Manager.settings != nil {
			_ = Manager.settings.Close()
		}
	})
}

// ClearCache clears the durable cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.CacheBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		// A custom connection string points at the SQLite file, matching
		// how NewCacheStore resolves the path.
		path := connStr
		if path == "" {
			path = dbFilePath
		}
		if path == "" {
			return fmt.Errorf("no SQLite database file path to clear")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", path, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, cacheTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, cacheTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearSettings deletes the local settings database file.
func ClearSettings(dbFilePath string) error {
	if dbFilePath == "" {
		dbFilePath = contract.GetSettingsDBFilePath()
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove settings database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, schema.CacheBackend(driverNameToBackend(driverName))))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}

// driverNameToBackend maps a SQL driver name back to its backend identifier.
func driverNameToBackend(driverName string) string {
	switch driverName {
	case "mysql":
		return string(schema.MySQLBackend)
	case "pgx":
		return string(schema.PostgreSQLBackend)
	default:
		return string(schema.SQLiteBackend)
	}
}
