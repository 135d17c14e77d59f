package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Open connects to the link store. Remote libsql URLs require the store
// access token; anything else is treated as a local SQLite file path.
func Open(storeURL, authToken string) (*sql.DB, error) {
	if isRemote(storeURL) {
		return openRemote(storeURL, authToken)
	}
	return openLocal(storeURL)
}

func isRemote(storeURL string) bool {
	return strings.HasPrefix(storeURL, "libsql://") ||
		strings.HasPrefix(storeURL, "wss://") ||
		strings.HasPrefix(storeURL, "https://")
}

func openRemote(storeURL, authToken string) (*sql.DB, error) {
	if authToken == "" {
		return nil, fmt.Errorf("remote store %q requires an access token", storeURL)
	}

	db, err := sql.Open("libsql", storeURL+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func openLocal(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite pragmas for performance; foreign_keys enables the
	// link → clicks delete cascade.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA cache_size=-20000", // 20MB
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
