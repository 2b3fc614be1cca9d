package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by this package. It is
// go-sqlite3 with a cosine_distance(a, b) SQL function over vector blobs.
const DriverName = "sqlite3_vectors"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("cosine_distance", cosineDistanceBlob, true)
		},
	})
}

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection and write transactions
// take the database lock up front so concurrent pipelines queue instead of
// failing with SQLITE_BUSY.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn(path))
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func dsn(path string) string {
	params := "_foreign_keys=on&_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return "file:" + path + "?" + params
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS notebooks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			summary TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS notebooks_user_idx ON notebooks (user_id);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			notebook_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (notebook_id) REFERENCES notebooks(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			notebook_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT,
			kind TEXT NOT NULL CHECK (kind IN ('text', 'link', 'file')),
			origin TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'fetched' CHECK (status IN ('fetched', 'embedded', 'failed')),
			summary TEXT,
			error TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			FOREIGN KEY (notebook_id) REFERENCES notebooks(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS sources_notebook_idx ON sources (notebook_id);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			source_id TEXT NOT NULL,
			notebook_id TEXT NOT NULL,
			text TEXT NOT NULL,
			position INTEGER NOT NULL,
			vector BLOB NOT NULL,
			model TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (source_id) REFERENCES sources(id) ON DELETE CASCADE,
			UNIQUE (source_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS chunks_notebook_idx ON chunks (notebook_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// Transaction runs fn inside a transaction, committing if fn returns nil
// and rolling back otherwise.
func Transaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows written by hand or by older tools may use SQLite's default format.
		t, err = time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
		}
	}
	return t, nil
}
