// Package db provides database utilities for integration testing
package db

import (
	"branchloan/internal/config"
	"branchloan/internal/database"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDatabaseURLEnv overrides the .env.test connection settings
const TestDatabaseURLEnv = "TEST_DATABASE_URL"

// CleanupTestDB drops all tables in the test database
func CleanupTestDB(db *sql.DB) error {
	// Get all table names
	rows, err := db.Query(`
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`)
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over table names: %w", err)
	}

	if len(tables) == 0 {
		return nil
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", strings.Join(tables, ", "))); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}

// SetupTestDB connects to the test database, resets it and applies the
// migrations. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := LoadTestConfig(t)
	if url := os.Getenv(TestDatabaseURLEnv); url != "" {
		cfg.Database.URL = url
	}

	db, err := database.Connect(cfg.Database)
	require.NoError(t, err, "Failed to open test database")

	if err := database.Ping(context.Background(), db, 2*time.Second); err != nil {
		db.Close()
		t.Skipf("postgres not reachable at %s: %v", redact(cfg.Database), err)
	}

	// Clean up any existing tables
	require.NoError(t, CleanupTestDB(db), "Failed to cleanup test database")

	// Run migrations using the same setup as the main app
	require.NoError(t, database.RunMigrations(cfg.Database), "Failed to run migrations")

	t.Cleanup(func() {
		if err := CleanupTestDB(db); err != nil {
			t.Errorf("Failed to cleanup test database: %v", err)
		}
		db.Close()
	})

	return db
}

func redact(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
}
