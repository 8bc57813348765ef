package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var dbMigrations embed.FS

// Migrate applies all pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	src, err := iofs.New(dbMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	dst, err := migratepgx.WithInstance(s.db.DB, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "pgx5", dst)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		s.logger.Info(ctx, "database schema up to date")
	case err != nil:
		s.logger.Error(ctx, "failed to apply migrations", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	default:
		s.logger.Info(ctx, "database migrations applied")
	}
	return nil
}
