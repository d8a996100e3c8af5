package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jishinalert/dashboard/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		LogLevel:             "INFO",
		StoreBackend:         "sqlite",
		DBPath:               "test.db",
		StoreConnectAttempts: 20,
		StoreConnectInterval: 500 * time.Millisecond,
		SessionTTL:           12 * time.Hour,
		CrashFetchLimit:      200,
		ActivityUserLimit:    20,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "mongo"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestValidate_FirestoreNeedsProject(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "firestore"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FIRESTORE_PROJECT")

	cfg.FirestoreProject = "jishin-alert"
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, 20, cfg.StoreConnectAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.StoreConnectInterval)
	assert.Equal(t, 200, cfg.CrashFetchLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORE_CONNECT_INTERVAL", "250ms")
	t.Setenv("CRASH_FETCH_LIMIT", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreConnectInterval)
	// invalid values fall back to the default
	assert.Equal(t, 200, cfg.CrashFetchLimit)
}
