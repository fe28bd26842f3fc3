package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/avelar/wordflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		TTSBaseURL:       "http://localhost:5002",
		AudioCacheBytes:  50 << 20,
		AudioPruneBytes:  40 << 20,
		AudioWorkerCount: 2,
		AudioQueueSize:   64,
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

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		ok    bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true},
		{"INVALID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_InvalidTTSBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.TTSBaseURL = "not a url"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TTS_BASE_URL")
}

func TestValidate_AudioCacheBounds(t *testing.T) {
	tests := []struct {
		name          string
		cacheBytes    int64
		pruneBytes    int64
		expectedError string
	}{
		{
			name:          "zero cache",
			cacheBytes:    0,
			pruneBytes:    0,
			expectedError: "AUDIO_CACHE_BYTES",
		},
		{
			name:          "prune above cache",
			cacheBytes:    1024,
			pruneBytes:    2048,
			expectedError: "AUDIO_PRUNE_BYTES",
		},
		{
			name:          "negative prune",
			cacheBytes:    1024,
			pruneBytes:    -1,
			expectedError: "AUDIO_PRUNE_BYTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.AudioCacheBytes = tt.cacheBytes
			cfg.AudioPruneBytes = tt.pruneBytes

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		workers       int
		queue         int
		expectedError string
	}{
		{
			name:          "zero workers",
			workers:       0,
			queue:         64,
			expectedError: "AUDIO_WORKER_COUNT",
		},
		{
			name:          "zero queue",
			workers:       2,
			queue:         0,
			expectedError: "AUDIO_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.AudioWorkerCount = tt.workers
			cfg.AudioQueueSize = tt.queue

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "AUDIO_CACHE_BYTES")
	assert.Contains(t, errStr, "AUDIO_WORKER_COUNT")
	assert.Contains(t, errStr, "AUDIO_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	originalAddr := os.Getenv("ADDR")
	originalDBPath := os.Getenv("DB_PATH")

	defer func() {
		if originalAddr != "" {
			os.Setenv("ADDR", originalAddr)
		} else {
			os.Unsetenv("ADDR")
		}
		if originalDBPath != "" {
			os.Setenv("DB_PATH", originalDBPath)
		} else {
			os.Unsetenv("DB_PATH")
		}
	}()

	os.Setenv("ADDR", ":9090")
	os.Setenv("DB_PATH", "custom.db")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
}
