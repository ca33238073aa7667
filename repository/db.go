package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrUnknownDialect = errors.New("unknown database driver")
)

// Dialect identifies the SQL flavour of a database
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a DB_DRIVER value onto a Dialect
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3", "":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDialect, driver)
	}
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// Placeholder returns the bind-parameter format of the dialect
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// DB is a database handle that knows its dialect
type DB struct {
	*sql.DB
	dialect Dialect
	sb      squirrel.StatementBuilderType
}

// Open connects to the database named by driver and dsn
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == DialectSQLite {
		// sqlite allows a single writer and ":memory:" is per connection
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{
		DB:      conn,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}, nil
}

// Dialect returns the SQL flavour of the database
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// dayExpr formats a timestamp column as YYYY-MM-DD in UTC
func (d Dialect) dayExpr(column string) string {
	if d == DialectPostgres {
		return "TO_CHAR(" + column + " AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "DATE(" + column + ")"
}

// Builder returns a statement builder using the dialect's placeholders
func (db *DB) Builder() squirrel.StatementBuilderType {
	return db.sb
}

func (db *DB) exec(ctx context.Context, stmt squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.ExecContext(ctx, query, args...)
}

func (db *DB) query(ctx context.Context, stmt squirrel.Sqlizer) (*sql.Rows, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.QueryContext(ctx, query, args...)
}

func (db *DB) queryRow(ctx context.Context, stmt squirrel.Sqlizer) rowScanner {
	query, args, err := stmt.ToSql()
	if err != nil {
		return errRow{fmt.Errorf("failed to build query: %w", err)}
	}
	return db.QueryRowContext(ctx, query, args...)
}

type rowScanner interface {
	Scan(dest ...any) error
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// InitSchema creates all tables and indexes if they do not exist
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range Schema(db.dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Schema returns the DDL statements for a dialect
func Schema(d Dialect) []string {
	id, ts, float, uid := "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP", "REAL", "TEXT"
	if d == DialectPostgres {
		id, ts, float, uid = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ", "DOUBLE PRECISION", "UUID"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			registration_date ` + ts + ` NOT NULL,
			last_activity ` + ts + ` NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			total_requests INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS user_requests (
			id ` + id + `,
			user_id BIGINT NOT NULL REFERENCES users (user_id),
			request_type TEXT NOT NULL,
			request_text TEXT NOT NULL DEFAULT '',
			response_text TEXT NOT NULL DEFAULT '',
			timestamp ` + ts + ` NOT NULL,
			processing_time ` + float + ` NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'completed'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_requests_timestamp ON user_requests (timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_user_requests_user_id ON user_requests (user_id)`,
		`CREATE TABLE IF NOT EXISTS system_events (
			id ` + id + `,
			event_type TEXT NOT NULL,
			event_data TEXT NOT NULL DEFAULT '',
			timestamp ` + ts + ` NOT NULL,
			user_id BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS admin_notes (
			id ` + id + `,
			user_id BIGINT NOT NULL REFERENCES users (user_id),
			note_text TEXT NOT NULL,
			admin_id BIGINT NOT NULL,
			timestamp ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id ` + uid + ` PRIMARY KEY,
			user_id BIGINT NOT NULL,
			filename TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			size BIGINT NOT NULL,
			storage_path TEXT NOT NULL,
			operation TEXT NOT NULL,
			created_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents (user_id)`,
	}
}
