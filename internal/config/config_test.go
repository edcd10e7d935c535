package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configenv "github.com/osa911/teamchat/internal/config/env"
	"github.com/osa911/teamchat/internal/models"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	original := configenv.Dir
	configenv.Dir = t.TempDir()
	t.Cleanup(func() { configenv.Dir = original })
	testChdir(t, t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("TIME_ZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, models.MembershipTransaction, cfg.MembershipMode)
	assert.Equal(t, models.PrecedenceIdentity, cfg.MessagePrecedence)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "./logs/api.log", cfg.LogFile)
	assert.Equal(t, 12*time.Hour, cfg.ReservationSweepInterval)
	assert.Equal(t, 10*time.Minute, cfg.ReservationGrace)
	assert.DirExists(t, "logs")
}

func TestLoadReadsEnvFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV", "staging")
	t.Setenv("TIME_ZONE", "UTC")
	// godotenv leaves variables it sets behind, so register them for cleanup.
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("MEMBERSHIP_MODE", "")
	require.NoError(t, os.Unsetenv("STORE_BACKEND"))
	require.NoError(t, os.Unsetenv("MEMBERSHIP_MODE"))

	content := "STORE_BACKEND=memory\nMEMBERSHIP_MODE=rewrite\n"
	require.NoError(t, os.WriteFile(filepath.Join(configenv.Dir, ".env.staging"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, models.MembershipRewrite, cfg.MembershipMode)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			StoreBackend:      BackendMemory,
			MembershipMode:    models.MembershipTransaction,
			MessagePrecedence: models.PrecedenceIdentity,
			RateLimitRPS:      1,
			RateLimitBurst:    1,
			TimeZone:          "UTC",

			ReservationSweepInterval: time.Hour,
			ReservationGrace:         time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"firebase without url", func(c *Config) { c.StoreBackend = BackendFirebase }, "FIREBASE_DATABASE_URL"},
		{"firebase with url", func(c *Config) {
			c.StoreBackend = BackendFirebase
			c.FirebaseDatabaseURL = "https://teamchat.firebaseio.com"
		}, ""},
		{"memory in production", func(c *Config) { c.Environment = "production" }, "production"},
		{"unknown backend", func(c *Config) { c.StoreBackend = "postgres" }, "STORE_BACKEND"},
		{"unknown membership mode", func(c *Config) { c.MembershipMode = "lock" }, "MEMBERSHIP_MODE"},
		{"unknown precedence", func(c *Config) { c.MessagePrecedence = "random" }, "MESSAGE_PRECEDENCE"},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT"},
		{"zero sweep interval", func(c *Config) { c.ReservationSweepInterval = 0 }, "RESERVATION_SWEEP_INTERVAL"},
		{"negative grace", func(c *Config) { c.ReservationGrace = -time.Second }, "RESERVATION_GRACE"},
		{"bad zone", func(c *Config) { c.TimeZone = "Mars/Olympus" }, "TIME_ZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
