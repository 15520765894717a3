// Package db opens the SQLite bindings database and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/anirecbot/anirec/internal/config"
)

// Open opens (creating if necessary) the SQLite database at the configured
// path and verifies the connection. Concurrent slash-command handlers share
// one *sql.DB; the busy timeout keeps same-key upserts from failing under
// writer contention.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return conn, nil
}

// DSN builds a SQLite connection string from config.
func DSN(cfg config.SQLiteConfig) string {
	path := cfg.Path
	if path == "" {
		path = config.DefaultSQLitePath
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}
