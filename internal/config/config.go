package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath         string
	VaultDir       string
	CacheDir       string
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
	FFmpegPath     string
	PdftoppmPath   string
	ThumbTimeout   time.Duration
	ThumbQueueSize int
	MaxImportSize  int64
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates numeric fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:       getEnv("DB_PATH", "./data/adarchive.db"),
		VaultDir:     getEnv("VAULT_DIR", "./data/vault"),
		CacheDir:     getEnv("CACHE_DIR", "./data/thumbnails"),
		APIPort:      getEnv("API_PORT", "9300"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		FFmpegPath:   getEnv("FFMPEG_PATH", "ffmpeg"),
		PdftoppmPath: getEnv("PDFTOPPM_PATH", "pdftoppm"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeoutSec, err := parsePositiveInt("THUMB_TIMEOUT_SECONDS", "20")
	if err != nil {
		return nil, err
	}
	cfg.ThumbTimeout = time.Duration(timeoutSec) * time.Second

	queueSize, err := parsePositiveInt("THUMB_QUEUE_SIZE", "128")
	if err != nil {
		return nil, err
	}
	cfg.ThumbQueueSize = queueSize

	maxImport, err := parsePositiveInt("MAX_IMPORT_SIZE_BYTES", "2147483648") // 2GB
	if err != nil {
		return nil, err
	}
	cfg.MaxImportSize = int64(maxImport)

	// Create the data directories up front so startup failures surface here
	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.VaultDir, cfg.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// parseLogLevel converts a level name into a slog.Level.
func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", raw)
	}
}

// parsePositiveInt reads an integer environment variable that must be > 0.
func parsePositiveInt(key, defaultValue string) (int, error) {
	raw := getEnv(key, defaultValue)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
