package config

import (
	"fmt"
)

// ReportDBConfig holds the PostgreSQL connection used to record smoke runs
type ReportDBConfig struct {
	User     string
	Password string
	Database string
	Host     string
}

// ReportDBConfigured reports whether any report database variable is set
func ReportDBConfigured(getenv func(string) string) bool {
	for _, key := range []string{"REPORT_DB_USER", "REPORT_DB_PASSWORD", "REPORT_DB_NAME", "REPORT_DB_HOST"} {
		if getenv(key) != "" {
			return true
		}
	}
	return false
}

// LoadReportDBConfig loads the report database configuration from environment variables
func LoadReportDBConfig(getenv func(string) string) (*ReportDBConfig, error) {
	config := &ReportDBConfig{
		User:     getenv("REPORT_DB_USER"),
		Password: getenv("REPORT_DB_PASSWORD"),
		Database: getenv("REPORT_DB_NAME"),
		Host:     getenv("REPORT_DB_HOST"),
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("REPORT_DB_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("REPORT_DB_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("REPORT_DB_NAME is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("REPORT_DB_HOST is required")
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *ReportDBConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
}
