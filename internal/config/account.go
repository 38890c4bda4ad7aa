package config

import "fmt"

// AccountConfig holds the credentials of the test user
type AccountConfig struct {
	Email    string
	Password string
}

// LoadAccountConfig loads the test account from environment variables
func LoadAccountConfig(getenv func(string) string) (*AccountConfig, error) {
	config := &AccountConfig{
		Email:    getenv("TEST_USER_EMAIL"),
		Password: getenv("TEST_USER_PASSWORD"),
	}

	if config.Email == "" {
		return nil, fmt.Errorf("TEST_USER_EMAIL is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("TEST_USER_PASSWORD is required")
	}

	return config, nil
}
