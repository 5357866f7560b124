package migrations

import (
	"context"
	"embed"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/louisbranch/lusion/internal/logger"
)

//go:embed *.sql
var files embed.FS

// Apply runs every embedded migration file that has not been applied yet,
// in lexical order. Applied versions are tracked in schema_migrations and
// each file runs inside its own transaction.
func Apply(ctx context.Context, db *sqlx.DB) error {
	const bookkeeping = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.ExecContext(ctx, bookkeeping); err != nil {
		return err
	}

	entries, err := files.ReadDir(".")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(ctx, db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		sql, err := files.ReadFile(name)
		if err != nil {
			return err
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sql)); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		logger.Log.Infow("applied migration", "version", name)
	}

	return nil
}

func isApplied(ctx context.Context, db *sqlx.DB, version string) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version)
	return exists, err
}
