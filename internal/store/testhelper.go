package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"forms-server/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDBType represents the type of database to use for testing
type TestDBType string

const (
	TestDBTypePostgres TestDBType = "postgres"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	logger *observability.Logger
	Store  Store
	dbType TestDBType
}

// SetupTestDB connects to the test database, applies migrations and clears
// all tables. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T, dbType TestDBType) *TestDB {
	t.Helper()

	if dbType == "" {
		dbType = TestDBType(os.Getenv("TEST_DB_TYPE"))
		if dbType == "" {
			dbType = TestDBTypePostgres
		}
	}
	if dbType != TestDBTypePostgres {
		t.Fatalf("unsupported database type: %s", dbType)
	}

	logger := observability.NewLogger()

	db, err := setupPostgresDB(t)
	if err != nil {
		t.Skipf("skipping store test, database unavailable: %v", err)
	}

	store := Store{db: db, logger: logger}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tdb := &TestDB{
		db:     db,
		logger: logger,
		Store:  store,
		dbType: dbType,
	}
	tdb.Truncate(t)
	return tdb
}

// setupPostgresDB opens a connection described by TEST_DB_* variables
func setupPostgresDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOrDefault("TEST_DB_USER", "forms_user"),
		envOrDefault("TEST_DB_PASSWORD", "forms_password"),
		envOrDefault("TEST_DB_HOST", "localhost"),
		envOrDefault("TEST_DB_PORT", "5432"),
		envOrDefault("TEST_DB_NAME", "forms_test"))

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		tables = []string{
			"question_analytics",
			"form_analytics",
			"question_responses",
			"form_submissions",
			"question_choices",
			"questions",
			"form_settings",
			"forms",
			"workspaces",
			"users",
		}
	}

	for _, table := range tables {
		if _, err := tdb.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

// MustExec executes SQL and fails the test if there's an error
func (tdb *TestDB) MustExec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := tdb.db.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v", err)
	}
}

// Count returns the number of rows matching query
func (tdb *TestDB) Count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := tdb.db.Get(&n, query, args...); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
