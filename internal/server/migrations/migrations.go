// Package migrations embeds the goose SQL migrations for the server schema.
// The statements stick to the SQL shared by PostgreSQL and SQLite so tests can
// run them against an in-memory database.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

// Up applies every pending migration to db using the given goose dialect
// ("pgx" in production, "sqlite3" in tests).
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
