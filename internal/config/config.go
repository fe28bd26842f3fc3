package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	TTSBaseURL       string
	AudioCacheBytes  int64
	AudioPruneBytes  int64
	AudioWorkerCount int
	AudioQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "wordflash.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		TTSBaseURL:       envOr("TTS_BASE_URL", "http://localhost:5002"),
		AudioCacheBytes:  envInt64Or("AUDIO_CACHE_BYTES", 50<<20),
		AudioPruneBytes:  envInt64Or("AUDIO_PRUNE_BYTES", 40<<20),
		AudioWorkerCount: envIntOr("AUDIO_WORKER_COUNT", 2),
		AudioQueueSize:   envIntOr("AUDIO_QUEUE_SIZE", 64),
	}
}

// Validate checks the loaded configuration, collecting every problem so
// operators see the full list at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.TTSBaseURL != "" {
		if _, err := url.ParseRequestURI(c.TTSBaseURL); err != nil {
			problems = append(problems, fmt.Sprintf("TTS_BASE_URL is not a valid URL: %v", err))
		}
	}
	if c.AudioCacheBytes <= 0 {
		problems = append(problems, "AUDIO_CACHE_BYTES must be positive")
	}
	if c.AudioPruneBytes < 0 || c.AudioPruneBytes > c.AudioCacheBytes {
		problems = append(problems, "AUDIO_PRUNE_BYTES must be between 0 and AUDIO_CACHE_BYTES")
	}
	if c.AudioWorkerCount < 1 {
		problems = append(problems, "AUDIO_WORKER_COUNT must be at least 1")
	}
	if c.AudioQueueSize < 1 {
		problems = append(problems, "AUDIO_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
