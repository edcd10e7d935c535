package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	configenv "github.com/osa911/teamchat/internal/config/env"
	"github.com/osa911/teamchat/internal/models"
)

// Store backends
const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Logging Configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Store Configuration
	StoreBackend            string `env:"STORE_BACKEND" envDefault:"firebase"`
	FirebaseDatabaseURL     string `env:"FIREBASE_DATABASE_URL"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`

	// Domain Configuration
	TimeZone          string                 `env:"TIME_ZONE" envDefault:"Europe/Sofia"`
	MembershipMode    models.MembershipMode  `env:"MEMBERSHIP_MODE" envDefault:"transaction"`
	MessagePrecedence models.FieldPrecedence `env:"MESSAGE_PRECEDENCE" envDefault:"identity"`

	// Background Tasks
	ReservationSweepInterval time.Duration `env:"RESERVATION_SWEEP_INTERVAL" envDefault:"12h"`
	ReservationGrace         time.Duration `env:"RESERVATION_GRACE" envDefault:"10m"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	configenv.LoadEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
		if c.IsProduction() {
			return fmt.Errorf("the %s store backend cannot be used in production", BackendMemory)
		}
	case BackendFirebase:
		if c.FirebaseDatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required with the %s store backend", BackendFirebase)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.MembershipMode {
	case models.MembershipTransaction, models.MembershipRewrite:
	default:
		return fmt.Errorf("unknown MEMBERSHIP_MODE %q", c.MembershipMode)
	}

	switch c.MessagePrecedence {
	case models.PrecedenceIdentity, models.PrecedenceCaller:
	default:
		return fmt.Errorf("unknown MESSAGE_PRECEDENCE %q", c.MessagePrecedence)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if c.ReservationSweepInterval <= 0 || c.ReservationGrace <= 0 {
		return fmt.Errorf("RESERVATION_SWEEP_INTERVAL and RESERVATION_GRACE must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Location resolves TIME_ZONE, used when formatting creation dates.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
