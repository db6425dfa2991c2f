package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/JonnyRank/bigdataball-data/db"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects through the otel-instrumented sqlx wrapper and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	conn, err := otelsqlx.Open(driver, normalizeDSN(driver, dsn),
		otelsql.WithDBSystem(dbSystem(driver)),
		otelsql.WithDBName(dbName(driver, dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one writer; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return conn, nil
}

// Migrate applies every embedded migration not yet recorded on conn.
func Migrate(conn *sqlx.DB, driver string) error {
	return MigrateFS(conn, driver, db.Migrations, "migrations")
}

// MigrateFS applies migrations from an arbitrary filesystem directory.
func MigrateFS(conn *sqlx.DB, driver string, fsys fs.FS, dir string) error {
	m, err := NewMigrator(conn, driver, fsys, dir)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// NewMigrator binds a migrate instance to an open connection. Closing the
// returned migrator closes conn as well.
func NewMigrator(conn *sqlx.DB, driver string, fsys fs.FS, dir string) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	var target database.Driver
	switch driver {
	case DriverSQLite:
		target, err = sqlite3.WithInstance(conn.DB, &sqlite3.Config{})
	case DriverPostgres:
		target, err = postgres.WithInstance(conn.DB, &postgres.Config{})
	default:
		err = fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// IsMissingTable reports whether err was caused by querying a relation that does not exist.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	return strings.Contains(err.Error(), "no such table")
}

func dbSystem(driver string) string {
	if driver == DriverPostgres {
		return "postgresql"
	}
	return "sqlite"
}
