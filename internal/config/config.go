/**
 * @description
 * Configuration loader for the wEaTHer web frontend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 *
 * @notes
 * - Fails fast if the market API base URL is missing.
 * - Redis is optional: without it the app skips listing caches and live pool updates.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	API      APIConfig
	Identity IdentityConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
	// PublicURL is the externally visible origin, used for share links.
	PublicURL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// APIConfig holds the remote weather-market API settings
type APIConfig struct {
	BaseURL string
	// WatchInterval is how often the market watcher re-polls watched markets (seconds).
	WatchInterval int
}

// IdentityConfig holds the identity provider (Privy) settings
type IdentityConfig struct {
	AppID   string
	JWKSURL string
	// CookieName is the session cookie carrying the identity token.
	CookieName string
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("GO_ENV", "development"),
			PublicURL: strings.TrimSuffix(getEnv("PUBLIC_URL", "http://localhost:3000"), "/"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		API: APIConfig{
			BaseURL:       strings.TrimSuffix(getEnv("WEATHER_API_URL", "http://localhost:3001"), "/"),
			WatchInterval: getEnvAsInt("MARKET_WATCH_INTERVAL", 15),
		},
		Identity: IdentityConfig{
			AppID:      getEnv("PRIVY_APP_ID", ""),
			JWKSURL:    getEnv("PRIVY_JWKS_URL", ""),
			CookieName: getEnv("SESSION_COOKIE", "privy-token"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("WEATHER_API_URL is required")
	}
	if cfg.Identity.JWKSURL == "" && cfg.Server.Env != "test" {
		// Strictly required for session verification
		fmt.Println("Warning: PRIVY_JWKS_URL is missing. Login sessions will not validate.")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
