package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitraf/p2k12/internal/logger"
)

type Config struct {
	// Database Configuration
	DatabasePath string

	// SMTP Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromAddress  string

	// Membership self-service
	SecretPath string
	BaseURL    string

	// Bank statement ingestion
	StatementFile string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("P2K12_SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid P2K12_SMTP_PORT: %w", err)
	}

	config := &Config{
		DatabasePath:  getEnv("P2K12_DB_PATH", "p2k12.db"),
		SMTPHost:      getEnv("P2K12_SMTP_HOST", ""),
		SMTPPort:      port,
		SMTPUsername:  getEnv("P2K12_SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("P2K12_SMTP_PASSWORD", ""),
		FromName:      getEnv("P2K12_FROM_NAME", "Bitraf"),
		FromAddress:   getEnv("P2K12_FROM_ADDRESS", "post@bitraf.no"),
		SecretPath:    getEnv("P2K12_SECRET_PATH", "/var/lib/p2k12/secret"),
		BaseURL:       getEnv("P2K12_BASE_URL", "http://p2k12.bitraf.no"),
		StatementFile: getEnv("P2K12_STATEMENT_FILE", "Innbetalinger.txt"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		// Logs go to stderr so that process-payments' SQL stream can be
		// redirected from stdout without log lines mixed in.
		LogOutput: getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("P2K12_DB_PATH is required")
	}
	if c.FromAddress == "" {
		return fmt.Errorf("P2K12_FROM_ADDRESS is required")
	}
	return nil
}

// SMTPConfigured reports whether the shared SMTP submission credentials are set.
// Mail-sending jobs require this unless running with --dry-run.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
