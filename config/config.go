// Package config loads and validates application configuration from
// environment variables. Every problem found while loading is collected and
// reported at once rather than failing on the first missing key.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxConns int
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
}

// GithubConfig holds the client credentials used by the GitHub repositories
// pass-through endpoint.
type GithubConfig struct {
	ClientID     string
	ClientSecret string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *DBConfig
	Auth   *AuthConfig
	Github *GithubConfig
	Server *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig reads and validates all environment variables and returns the
// populated AppConfig, or a single error aggregating every problem found.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbCfg := &DBConfig{
		Host:     getOptionalEnv("DB_HOST", "localhost"),
		Port:     getOptionalEnvInt("DB_PORT", 5432, &errs),
		User:     getRequiredEnv("DB_USER", &errs),
		Password: getRequiredEnv("DB_PASSWORD", &errs),
		DBName:   getRequiredEnv("DB_NAME", &errs),
		MaxConns: getOptionalEnvInt("DB_MAX_CONNS", 10, &errs),
	}
	if dbCfg.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be at least 1, got %d", dbCfg.MaxConns))
	}

	authCfg := &AuthConfig{
		JWTSecret: getRequiredEnv("JWT_SECRET", &errs),
		// Tokens are long-lived by default; clients hold them for days.
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", 100*time.Hour, &errs),
	}

	githubCfg := &GithubConfig{
		ClientID:     getOptionalEnv("GITHUB_CLIENT_ID", ""),
		ClientSecret: getOptionalEnv("GITHUB_CLIENT_SECRET", ""),
	}

	serverCfg := &ServerConfig{
		Port: getOptionalEnv("PORT", "5000"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:     dbCfg,
		Auth:   authCfg,
		Github: githubCfg,
		Server: serverCfg,
	}, nil
}
