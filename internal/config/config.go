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
	VaultPath string
	VaultName string
	DBPath    string
	APIPort   string

	LogLevel  slog.Level
	LogFormat string

	// LinkedCopies turns the linked copy commands and mirror sync on.
	LinkedCopies bool
	// Debug raises the sync engine's logging to info level.
	Debug bool

	SyncDebounce          time.Duration
	MirrorCacheMaxAge     time.Duration
	CopyMaxAge            time.Duration
	NavigationSettleDelay time.Duration

	// IndentUnit is inserted per level when a linked copy is pasted under a
	// list item.
	IndentUnit string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
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
		VaultPath:  getEnv("VAULT_PATH", ""),
		VaultName:  getEnv("VAULT_NAME", "main"),
		DBPath:     getEnv("DB_PATH", "./data/outliner.db"),
		APIPort:    getEnv("API_PORT", "9000"),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
		IndentUnit: unescapeIndent(getEnv("INDENT_UNIT", `\t`)),
	}

	if cfg.VaultPath == "" {
		return nil, fmt.Errorf("VAULT_PATH is required")
	}

	if cfg.LinkedCopies, err = getBool("LINKED_COPIES", true); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getBool("DEBUG", false); err != nil {
		return nil, err
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"SYNC_DEBOUNCE", 300 * time.Millisecond, &cfg.SyncDebounce},
		{"MIRROR_CACHE_MAX_AGE", 5 * time.Second, &cfg.MirrorCacheMaxAge},
		{"COPY_MAX_AGE", 5 * time.Minute, &cfg.CopyMaxAge},
		{"NAVIGATION_SETTLE_DELAY", 100 * time.Millisecond, &cfg.NavigationSettleDelay},
	}
	for _, d := range durations {
		if *d.dest, err = getDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json")
	}
	if strings.Trim(cfg.IndentUnit, " \t") != "" || cfg.IndentUnit == "" {
		return nil, fmt.Errorf("INDENT_UNIT must be spaces or tabs")
	}

	// Create the directory holding the index database
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// unescapeIndent lets .env files spell a tab as \t.
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}
