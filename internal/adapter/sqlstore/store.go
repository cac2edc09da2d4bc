// Package sqlstore persists result-cache field sets in SQLite or PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/climate-design-engine/internal/cache"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const schema = `CREATE TABLE IF NOT EXISTS climate_cache_fields (
	source_key TEXT NOT NULL,
	field      TEXT NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (source_key, field)
)`

// Store is a cache.FieldStore backed by one row per (source key, field).
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

type fieldRow struct {
	Field string `db:"field"`
	Value string `db:"value"`
}

// Open connects to the database and creates the cache table if needed.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	if driver == DriverSQLite {
		var err error
		if dsn, err = BuildSQLiteDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One writer at a time, and ":memory:" is per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	logger.Info("sql cache store ready", "driver", driver)
	return &Store{db: db, logger: logger}, nil
}

// BuildSQLiteDSN turns a file path into a go-sqlite3 DSN with WAL and a busy
// timeout, creating the parent directory. DSNs already starting with "file:"
// get the parameters appended; ":memory:" passes through.
func BuildSQLiteDSN(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return ":memory:", nil
	}

	params := []string{
		"_busy_timeout=5000",
		"_journal_mode=WAL",
	}

	if strings.HasPrefix(path, "file:") {
		if strings.Contains(path, "mode=memory") {
			return path, nil
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}

func (s *Store) Load(ctx context.Context, key string) (map[string]string, error) {
	var rows []fieldRow
	query := s.db.Rebind(`SELECT field, value FROM climate_cache_fields WHERE source_key = ?`)
	if err := s.db.SelectContext(ctx, &rows, query, key); err != nil {
		return nil, fmt.Errorf("select cache fields: %w", err)
	}
	if len(rows) == 0 {
		return nil, cache.ErrNotFound
	}

	fields := make(map[string]string, len(rows))
	for _, r := range rows {
		fields[r.Field] = r.Value
	}
	return fields, nil
}

// Save replaces every field of key in one transaction, so readers never see
// a mix of two writes.
func (s *Store) Save(ctx context.Context, key string, fields map[string]string) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM climate_cache_fields WHERE source_key = ?`), key); err != nil {
		return fmt.Errorf("clear cache entry: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO climate_cache_fields (source_key, field, value) VALUES (?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for field, value := range fields {
		if _, err := stmt.ExecContext(ctx, key, field, value); err != nil {
			return fmt.Errorf("insert cache field %s: %w", field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache write: %w", err)
	}
	s.logger.Debug("cache entry stored", "source_key", key, "fields", len(fields))
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("cache database unreachable: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
