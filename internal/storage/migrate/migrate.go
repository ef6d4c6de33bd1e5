// Package migrate applies the panel-state schema (the per-repository
// view-mode and branch-override table) from embedded goose migrations.
package migrate

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const (
	migrationsDir = "sql"
	dialect       = "sqlite"
)

func init() {
	goose.SetBaseFS(embeddedMigrations)
}

// Up brings the database to the latest schema version.
func Up(db *sql.DB) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
