package repository

import (
	"context"
	"database/sql"
	"fmt"

	"neighborhelp-backend/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies every pending goose migration to the database at dsn
func RunMigrations(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		return nil
	})
}

// RollbackMigration reverts the most recently applied migration
func RollbackMigration(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		if err := goose.DownContext(ctx, db, "."); err != nil {
			return fmt.Errorf("rollback error: %w", err)
		}
		return nil
	})
}

// MigrationVersion reports the current schema version
func MigrationVersion(ctx context.Context, dsn string) (int64, error) {
	var version int64
	err := withGoose(dsn, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("version error: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(dsn string, fn func(db *sql.DB) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}

	return fn(db)
}
