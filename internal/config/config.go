package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	LogLevel             string
	StoreBackend         string // "sqlite" or "firestore"
	DBPath               string
	FirestoreProject     string
	FirestoreCredentials string
	StoreConnectAttempts int
	StoreConnectInterval time.Duration
	SessionTTL           time.Duration
	CrashFetchLimit      int
	ActivityUserLimit    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		StoreBackend:         envOr("STORE_BACKEND", "sqlite"),
		DBPath:               envOr("DB_PATH", "file:dashboard.db"),
		FirestoreProject:     envOr("FIRESTORE_PROJECT", ""),
		FirestoreCredentials: envOr("FIRESTORE_CREDENTIALS", ""),
		StoreConnectAttempts: envIntOr("STORE_CONNECT_ATTEMPTS", 20),
		StoreConnectInterval: envDurOr("STORE_CONNECT_INTERVAL", 500*time.Millisecond),
		SessionTTL:           envDurOr("SESSION_TTL", 12*time.Hour),
		CrashFetchLimit:      envIntOr("CRASH_FETCH_LIMIT", 200),
		ActivityUserLimit:    envIntOr("RECENT_ACTIVITY_USER_LIMIT", 20),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	switch c.StoreBackend {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with the sqlite backend")
		}
	case "firestore":
		if c.FirestoreProject == "" {
			return fmt.Errorf("FIRESTORE_PROJECT cannot be empty with the firestore backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be sqlite or firestore, got %q", c.StoreBackend)
	}
	if c.StoreConnectAttempts < 1 {
		return fmt.Errorf("STORE_CONNECT_ATTEMPTS must be at least 1")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.CrashFetchLimit < 1 {
		return fmt.Errorf("CRASH_FETCH_LIMIT must be at least 1")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
