package database

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"bloghub/migrations"
)

// Migrate applies all pending schema migrations from the embedded filesystem.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
