package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forms-server/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUniqueViolation = errors.New("unique violation")
	// ErrConflict is returned when a row changed state between read and write.
	ErrConflict = errors.New("conflict")
	// ErrChoicesReferenced is returned when a choice replacement would orphan responses.
	ErrChoicesReferenced = errors.New("choices referenced by responses")
)

const pgUniqueViolation = "23505"

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

func New(connectionString string, logger *observability.Logger, opts Options) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	return Store{db: db, logger: logger}, nil
}

// NewFromDB wraps an existing connection.
func NewFromDB(db *sqlx.DB, logger *observability.Logger) Store {
	return Store{db: db, logger: logger}
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit transaction", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
