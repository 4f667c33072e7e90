package database

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var Schema string

// EnsureSchema creates any missing tables and indexes. It is idempotent.
func EnsureSchema(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, Schema)
	return err
}
