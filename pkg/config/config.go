package config

import (
	"os"
	"strings"

	"github.com/tair/user-service/pkg/database"
)

// Repository backends selectable via REPO_BACKEND.
const (
	BackendGorm     = "gorm"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the user service configuration
type Config struct {
	HTTPPort     string
	Environment  string
	LogLevel     string
	RepoBackend  string
	Database     database.Config
	RedisAddr    string
	KafkaBrokers []string
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		RepoBackend: getEnv("REPO_BACKEND", BackendGorm),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "userdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr: getEnv("REDIS_ADDR", ""),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
