package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Session tokens for connected wallets
	JWTSecret  string
	SessionTTL time.Duration

	// CORS
	AllowedOrigins []string

	// Chain
	ChainID        int
	RelayerURL     string
	RelayerTimeout time.Duration // Client-side cap on one submission; zero leaves the request context to bound it

	// Price/APY feed
	FeedEnabled     bool
	FeedGraphQLURL  string
	FeedFallbackURL string        // HTML stats page scraped when GraphQL is down
	FeedSchedule    string        // Cron expression (e.g., "*/5 * * * *")
	FeedTimeout     time.Duration // Timeout for a complete feed refresh

	// Catalog
	SeedCatalog bool // Seed default terms when the catalog tables are empty
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  env,

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/pearlvault?sslmode=disable"),

		// Session
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		SessionTTL: getDurationEnv("SESSION_TTL", 24*time.Hour),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Chain
		ChainID:        getIntEnv("CHAIN_ID", 137),
		RelayerURL:     getEnv("RELAYER_URL", "http://localhost:9545"),
		RelayerTimeout: getDurationEnv("RELAYER_TIMEOUT", 0), // The relayer holds the connection until the tx is mined, so no client timer by default

		// Feed
		FeedEnabled:     getBoolEnv("FEED_ENABLED", true),
		FeedGraphQLURL:  getEnv("FEED_GRAPHQL_URL", "https://api.thegraph.com/subgraphs/name/pearlvault/protocol-metrics"),
		FeedFallbackURL: getEnv("FEED_FALLBACK_URL", ""),
		FeedSchedule:    getEnv("FEED_SCHEDULE", "*/5 * * * *"), // Default: every 5 minutes
		FeedTimeout:     getDurationEnv("FEED_TIMEOUT", 30*time.Second),

		// Catalog
		SeedCatalog: getBoolEnv("SEED_CATALOG", true),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
