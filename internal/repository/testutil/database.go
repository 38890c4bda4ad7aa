package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/forkqa/webnextgen/internal/config"
	"github.com/forkqa/webnextgen/internal/database"
)

// TestDatabase represents an isolated test database
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	masterDB   *sql.DB
}

// SetupTestDatabase creates an isolated schema with the report tables
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	// Load the report database configuration from environment
	connConfig, err := config.LoadReportDBConfig(func(key string) string {
		switch key {
		case "REPORT_DB_USER":
			return getEnvOrDefault("REPORT_DB_USER", "postgres")
		case "REPORT_DB_PASSWORD":
			return getEnvOrDefault("REPORT_DB_PASSWORD", "postgres")
		case "REPORT_DB_NAME":
			return getEnvOrDefault("REPORT_DB_NAME", "postgres")
		case "REPORT_DB_HOST":
			return getEnvOrDefault("REPORT_DB_HOST", "localhost")
		default:
			return ""
		}
	})
	if err != nil {
		t.Fatalf("Failed to load report database config: %v", err)
	}

	masterConnStr := connConfig.ConnectionString()
	masterDB, err := database.Open(masterConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to master database: %v", err)
	}

	// Generate unique schema name for this test
	schemaName := fmt.Sprintf("test_schema_%d_%d", time.Now().UnixNano(), rand.Intn(10000))

	if _, err := masterDB.Exec(fmt.Sprintf("CREATE SCHEMA %s", schemaName)); err != nil {
		masterDB.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Connect to the same database but set search_path to the test schema
	testDB, err := database.Open(fmt.Sprintf("%s search_path=%s", masterConnStr, schemaName))
	if err != nil {
		masterDB.Exec(fmt.Sprintf("DROP SCHEMA %s CASCADE", schemaName))
		masterDB.Close()
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	testDatabase := &TestDatabase{
		DB:         testDB,
		SchemaName: schemaName,
		masterDB:   masterDB,
	}

	if err := database.Migrate(testDB); err != nil {
		testDatabase.Teardown(t)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return testDatabase
}

// Teardown cleans up the test database schema
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}

	if td.masterDB != nil {
		_, err := td.masterDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName))
		if err != nil {
			t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
		}
		td.masterDB.Close()
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
