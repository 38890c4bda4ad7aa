package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/forkqa/webnextgen/internal/config"
)

var DB *sql.DB

// Connect establishes a connection to the report database
func Connect(cfg *config.ReportDBConfig) error {
	db, err := Open(cfg.ConnectionString())
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open opens and pings a PostgreSQL connection pool
func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
