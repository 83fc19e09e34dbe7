package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database      DatabaseConfig
	JWT           JWTConfig
	App           AppConfig
	SMTP          SMTPConfig
	Storage       StorageConfig
	PasswordReset PasswordResetConfig
	RateLimit     RateLimitConfig
	Jobs          JobsConfig
	Organization  OrganizationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SMTPConfig holds outgoing mail configuration. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type StorageConfig struct {
	Type     string
	BasePath string
}

type PasswordResetConfig struct {
	TokenTTL time.Duration
}

// RateLimitConfig applies to the unauthenticated endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type JobsConfig struct {
	ResetTokenPurgeInterval time.Duration
}

// OrganizationConfig is printed on generated documents and emails.
type OrganizationConfig struct {
	Name    string
	Address string
	Contact string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	} else if err != nil {
		slog.Info("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "avopro_hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("EMAIL_FROM", "no-reply@avopro.com"),
		FromName: getEnv("EMAIL_FROM_NAME", "AVOPRO HR"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
	}

	resetTTL, err := time.ParseDuration(getEnv("PASSWORD_RESET_TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_TOKEN_TTL: %w", err)
	}
	config.PasswordReset = PasswordResetConfig{TokenTTL: resetTTL}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	config.RateLimit = RateLimitConfig{RequestsPerSecond: rps, Burst: burst}

	purgeInterval, err := time.ParseDuration(getEnv("RESET_TOKEN_PURGE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_PURGE_INTERVAL: %w", err)
	}
	config.Jobs = JobsConfig{ResetTokenPurgeInterval: purgeInterval}

	config.Organization = OrganizationConfig{
		Name:    getEnv("ORG_NAME", "AVOPRO EPZ LIMITED"),
		Address: getEnv("ORG_ADDRESS", "P.O. Box 12345 - 00100, Nairobi, Kenya"),
		Contact: getEnv("ORG_CONTACT", "Email: hr@avopro.com | Phone: +254 700 000 000"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps App.LogLevel onto slog levels, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
