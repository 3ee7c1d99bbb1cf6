package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	_ = os.Unsetenv("PORT")
	_ = os.Unsetenv("ENV")
	_ = os.Unsetenv("DATABASE_URL")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.FeedEnabled)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, time.Duration(0), cfg.RelayerTimeout, "relayer submissions default to context-bound, no client timer")
}

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://test:5432/testdb")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://example.com,http://test.com")
	t.Setenv("CHAIN_ID", "80001")
	t.Setenv("RELAYER_URL", "http://relayer:9545")
	t.Setenv("RELAYER_TIMEOUT", "5m")
	t.Setenv("FEED_ENABLED", "false")
	t.Setenv("FEED_TIMEOUT", "10s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "postgres://test:5432/testdb", cfg.DatabaseURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.Equal(t, 80001, cfg.ChainID)
	assert.Equal(t, "http://relayer:9545", cfg.RelayerURL)
	assert.Equal(t, 5*time.Minute, cfg.RelayerTimeout)
	assert.False(t, cfg.FeedEnabled)
	assert.Equal(t, 10*time.Second, cfg.FeedTimeout)
}

func TestConfig_IsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Env: tt.env}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		expected bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Env: tt.env}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	assert.Equal(t, "test_value", getEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT_VAR", "default"))
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue bool
		expected     bool
	}{
		{"true value", "true", true, false, true},
		{"false value", "false", true, true, false},
		{"1 value", "1", true, false, true},
		{"0 value", "0", true, true, false},
		{"invalid value uses default", "invalid", true, true, true},
		{"unset uses default true", "", false, true, true},
		{"unset uses default false", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv("TEST_BOOL", tt.envValue)
			} else {
				_ = os.Unsetenv("TEST_BOOL")
			}
			assert.Equal(t, tt.expected, getBoolEnv("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("TEST_INT", "42")

	assert.Equal(t, 42, getIntEnv("TEST_INT", 7))
	assert.Equal(t, 7, getIntEnv("NON_EXISTENT_INT", 7))

	t.Setenv("TEST_INT", "not-a-number")
	assert.Equal(t, 7, getIntEnv("TEST_INT", 7))
}
