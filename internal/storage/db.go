package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Domain errors
var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"

	sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		date TEXT PRIMARY KEY,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locked_months (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		PRIMARY KEY (year, month)
	)`,
}

// DB wraps the connection pool together with the SQL dialect in use.
type DB struct {
	conn   *sql.DB
	driver string
}

// Open connects to the database and makes sure the schema exists.
// PRE: driver is "sqlite" or "postgres"; path is a file path or a postgres DSN
// POST: events and locked_months tables exist
func Open(ctx context.Context, driver, path string) (*DB, error) {
	var dsn string
	switch driver {
	case driverSQLite:
		if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = path
		if !strings.Contains(dsn, "?") {
			dsn += "?" + sqlitePragmas
		}
	case driverPostgres:
		dsn = path
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.init(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// rebind rewrites '?' placeholders into the driver's bind style
func (db *DB) rebind(query string) string {
	if db.driver != driverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.rebind(query), args...)
}
