// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. databaseType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite, cgo-free).
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "postgres":
		return sql.Open("postgres", databaseURL)
	case "sqlite":
		// Foreign keys are off by default in sqlite and cascades depend on
		// them. busy_timeout keeps concurrent writers from failing fast with
		// SQLITE_BUSY instead of waiting for the lock.
		dsn := databaseURL
		if !strings.Contains(dsn, "_pragma=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)"
		}
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; a single pooled connection serializes
		// transactions instead of surfacing SQLITE_BUSY upgrade conflicts.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}
