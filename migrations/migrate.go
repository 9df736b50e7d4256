// Package migrations embeds and applies the database schemas: the PostgreSQL
// registry schema of the server and the SQLite replica schema of the client.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

const (
	clientDir = "client"
	serverDir = "server"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// MigrateServer applies the registry schema to a PostgreSQL database opened
// with the pgx driver.
func MigrateServer(db *sql.DB) error {
	return migrate(db, goose.DialectPostgres, serverDir)
}

// MigrateClient applies the replica schema to a SQLite database. Both the
// mattn and the modernc drivers speak the sqlite3 dialect.
func MigrateClient(db *sql.DB) error {
	return migrate(db, goose.DialectSQLite3, clientDir)
}

func migrate(db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
