package logging

import (
	"os"
	"sync"
)

var (
	mu       sync.RWMutex
	instance *Logger
)

// InitLogger builds the process wide logger from config. Calling it again
// replaces the previous logger and closes its file.
func InitLogger(config *LogConfig) error {
	if config.Level == "" {
		config.Level = LevelInfo
	}
	if err := config.Validate(); err != nil {
		return err
	}

	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	previous := instance
	instance = logger
	mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// GetGlobalLogger returns the process wide logger. Before InitLogger has run it
// returns a stdout logger at info level.
func GetGlobalLogger() *Logger {
	mu.RLock()
	logger := instance
	mu.RUnlock()
	if logger != nil {
		return logger
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = newWriterLogger(os.Stdout, nil, LevelInfo)
	}
	return instance
}
