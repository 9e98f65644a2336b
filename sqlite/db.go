// Package sqlite implements daynight's Database interface on an in-memory
// SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"

	"github.com/teteukt/daynight"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var Migrations embed.FS

type database struct {
	conn *sql.DB
}

var _ daynight.Database = (*database)(nil)

// Open creates a private in-memory database. It lives as long as the
// returned handle is open.
func Open() (*database, error) {
	url := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps the memory database alive and serializes writers
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &database{
		conn: conn,
	}, nil
}

func (db *database) DB() *sql.DB {
	return db.conn
}

func (db *database) Migrate(migrations embed.FS) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (db *database) Close() error {
	return db.conn.Close()
}
