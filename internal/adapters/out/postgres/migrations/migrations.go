// Package migrations holds the Postgres schema of the local ledger.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var SQL embed.FS

const dir = "sql"

func setup() error {
	goose.SetBaseFS(SQL)
	return goose.SetDialect("postgres")
}

// Up migrates the schema to the latest version.
func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// Down rolls back a single migration.
func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Down(db, dir)
}

// Status prints migration status.
func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Status(db, dir)
}
