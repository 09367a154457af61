package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "memory", Host: "localhost", Port: 5432, User: "postgres", Name: "hris_core", SSLMode: "disable"},
		JWT:      JWTConfig{Secret: "secret", AccessExpiration: "1h"},
		App:      AppConfig{Port: 8080, Env: "test", LogLevel: "debug"},
		Tenant:   TenantDefaults{Timezone: "Asia/Jakarta", WorkStartTime: "08:00", LeaveQuota: 12},
		Subscription: SubscriptionConfig{
			CacheTTL:      time.Minute,
			SweepInterval: time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid memory", func(c *Config) {}, false},
		{"postgres without password", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"postgres with password", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Password = "pw" }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"bad expiration", func(c *Config) { c.JWT.AccessExpiration = "forever" }, true},
		{"bad timezone", func(c *Config) { c.Tenant.Timezone = "Mars/Olympus" }, true},
		{"bad work start", func(c *Config) { c.Tenant.WorkStartTime = "8am" }, true},
		{"negative quota", func(c *Config) { c.Tenant.LeaveQuota = -1 }, true},
		{"zero sweep interval", func(c *Config) { c.Subscription.SweepInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	c := validConfig()
	c.Database.Password = "pw"

	assert.Equal(t, "postgres://postgres:pw@localhost:5432/hris_core?sslmode=disable", c.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	c := validConfig()
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())

	c.App.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DEFAULT_LEAVE_QUOTA", "10")
	t.Setenv("SUBSCRIPTION_SWEEP_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 10, cfg.Tenant.LeaveQuota)
	assert.Equal(t, 30*time.Minute, cfg.Subscription.SweepInterval)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
