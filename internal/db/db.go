package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the store and brings its schema up to date. driver is
// one of DriverSQLite (dsn is a file path or ":memory:") or DriverPostgres
// (dsn is a connection URL).
func Open(driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db path is required")
	}

	var (
		conn *sqlx.DB
		err  error
	)
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		conn, err = openSQLite(dsn)
	case DriverPostgres:
		conn, err = openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := applyMigrations(conn, driver); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// sqlite serialises writers anyway; a single connection also keeps
	// ":memory:" databases from splitting across the pool.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return conn, nil
}

func openPostgres(url string) (*sqlx.DB, error) {
	conn, err := sqlx.Connect("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return conn, nil
}

func applyMigrations(conn *sqlx.DB, driver string) error {
	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	defer source.Close()

	var target database.Driver
	switch driver {
	case DriverPostgres:
		target, err = migratepgx.WithInstance(conn.DB, &migratepgx.Config{})
	default:
		target, err = migratesqlite.WithInstance(conn.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	// The migrate instance is not closed: that would close conn as well.
	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
