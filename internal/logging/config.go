package logging

import (
	"fmt"
	"strings"
)

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	File       string `json:"file"`        // Path to log file, empty logs to stdout only
	MaxSize    int    `json:"max_size"`    // Max size in MB
	MaxBackups int    `json:"max_backups"` // Number of backups to keep
	MaxAge     int    `json:"max_age"`     // Max age in days
}

// Rotation defaults shared by the server and the CLI
const (
	DefaultMaxSize    = 100
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7
)

// NewLogConfig returns a rotated file configuration with the default limits
func NewLogConfig(level, file string) *LogConfig {
	return &LogConfig{
		Level:      level,
		File:       file,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
	}
}

// Validate checks if the configuration is valid and normalises the level
func (l *LogConfig) Validate() error {
	validLevels := map[string]bool{
		LevelDebug: true,
		LevelInfo:  true,
		LevelWarn:  true,
		LevelError: true,
	}

	level := strings.ToLower(strings.TrimSpace(l.Level))
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}
	l.Level = level

	if l.File != "" && l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}

	if l.MaxBackups < 0 {
		return fmt.Errorf("max_backups must be non-negative")
	}

	if l.MaxAge < 0 {
		return fmt.Errorf("max_age must be non-negative")
	}

	return nil
}
