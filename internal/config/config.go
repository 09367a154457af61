package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Tenant       TenantDefaults
	Redis        RedisConfig
	Subscription SubscriptionConfig
}

type DatabaseConfig struct {
	Driver   string // postgres or memory
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// TenantDefaults apply when a company has not configured its own values.
type TenantDefaults struct {
	Timezone      string
	WorkStartTime string
	LeaveQuota    int
}

type RedisConfig struct {
	URL string // empty disables the subscription cache
}

type SubscriptionConfig struct {
	CacheTTL      time.Duration
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using environment only")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   getEnv("STORAGE_DRIVER", "postgres"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_core"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Tenant defaults
	leaveQuota, err := strconv.Atoi(getEnv("DEFAULT_LEAVE_QUOTA", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LEAVE_QUOTA: %w", err)
	}
	config.Tenant = TenantDefaults{
		Timezone:      getEnv("DEFAULT_TIMEZONE", "Asia/Jakarta"),
		WorkStartTime: getEnv("DEFAULT_WORK_START", "08:00"),
		LeaveQuota:    leaveQuota,
	}

	// Subscription gate
	config.Redis = RedisConfig{URL: getEnv("REDIS_URL", "")}
	cacheTTL, err := time.ParseDuration(getEnv("SUBSCRIPTION_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_CACHE_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("SUBSCRIPTION_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_SWEEP_INTERVAL: %w", err)
	}
	config.Subscription = SubscriptionConfig{CacheTTL: cacheTTL, SweepInterval: sweepInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if !validator.IsValidTimezone(c.Tenant.Timezone) {
		return fmt.Errorf("DEFAULT_TIMEZONE %q is not a valid IANA zone", c.Tenant.Timezone)
	}
	if !validator.IsValidClock(c.Tenant.WorkStartTime) {
		return fmt.Errorf("DEFAULT_WORK_START must use HH:MM format")
	}
	if c.Tenant.LeaveQuota < 0 {
		return fmt.Errorf("DEFAULT_LEAVE_QUOTA must be non-negative")
	}
	if c.Subscription.SweepInterval <= 0 {
		return fmt.Errorf("SUBSCRIPTION_SWEEP_INTERVAL must be positive")
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

// SlogLevel maps LOG_LEVEL onto slog, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
