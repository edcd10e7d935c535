package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{"stdout only", LogConfig{Level: "info"}, false},
		{"upper case level", LogConfig{Level: "DEBUG"}, false},
		{"file with size", LogConfig{Level: "warn", File: "api.log", MaxSize: 10}, false},
		{"unknown level", LogConfig{Level: "verbose"}, true},
		{"file without size", LogConfig{Level: "info", File: "api.log"}, true},
		{"negative backups", LogConfig{Level: "info", MaxBackups: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogConfig(t *testing.T) {
	config := NewLogConfig(" WARN ", "api.log")
	require.NoError(t, config.Validate())
	assert.Equal(t, LevelWarn, config.Level)
	assert.Equal(t, DefaultMaxSize, config.MaxSize)
	assert.Equal(t, DefaultMaxBackups, config.MaxBackups)
	assert.Equal(t, DefaultMaxAge, config.MaxAge)
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriterLogger(&buf, nil, LevelWarn)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("shown %d", 3)
	logger.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "shown 4")
}

func TestInitLoggerWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "api.log")
	require.NoError(t, InitLogger(&LogConfig{File: file, MaxSize: 1}))
	t.Cleanup(func() {
		require.NoError(t, InitLogger(&LogConfig{Level: LevelInfo}))
	})

	logger := GetGlobalLogger()
	require.NotNil(t, logger)
	assert.NotNil(t, logger.writer)
	assert.DirExists(t, filepath.Dir(file))
}

func TestGetGlobalLoggerDefaults(t *testing.T) {
	assert.NotNil(t, GetGlobalLogger())
}
