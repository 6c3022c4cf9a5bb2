package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the server.
type Config struct {
	Transport       string
	Port            int
	MaxFileSizeMB   int
	MaxContentChars int
	LockTimeoutSec  int
	DefaultEncoding string
	LogLevel        string
}

// ParseFlags parses the command-line flags and populates the Config struct.
// A .env file in the working directory, when present, supplies defaults
// that flags may still override.
func ParseFlags() *Config {
	// Missing .env is not an error, flags carry their own defaults.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.Transport, "transport", envOr("TEXT_EDITOR_TRANSPORT", "mcp"), "Transport protocol (mcp, stdio or http)")
	flag.IntVar(&cfg.Port, "port", envOrInt("TEXT_EDITOR_PORT", 8080), "Port for HTTP transport")
	flag.IntVar(&cfg.MaxFileSizeMB, "max-file-size", envOrInt("TEXT_EDITOR_MAX_FILE_SIZE_MB", 10), "Maximum file size in MB")
	flag.IntVar(&cfg.MaxContentChars, "max-content-chars", envOrInt("TEXT_EDITOR_MAX_CONTENT_CHARS", 1000), "Returned content size above which responses are truncated")
	flag.IntVar(&cfg.LockTimeoutSec, "lock-timeout", envOrInt("TEXT_EDITOR_LOCK_TIMEOUT_SEC", 10), "File lock timeout in seconds")
	flag.StringVar(&cfg.DefaultEncoding, "encoding", envOr("TEXT_EDITOR_ENCODING", "utf-8"), "Default text encoding")
	flag.StringVar(&cfg.LogLevel, "log-level", envOr("TEXT_EDITOR_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	flag.Parse()
	return cfg
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	switch c.Transport {
	case "mcp", "stdio", "http":
	default:
		return fmt.Errorf("transport must be 'mcp', 'stdio' or 'http'")
	}

	if c.Port < 1024 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535")
	}

	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("max file size must be between 1 and 100 MB")
	}

	if c.MaxContentChars < 100 {
		return fmt.Errorf("max content chars must be at least 100")
	}

	if c.LockTimeoutSec < 1 || c.LockTimeoutSec > 300 {
		return fmt.Errorf("lock timeout must be between 1 and 300 seconds")
	}

	if c.DefaultEncoding == "" {
		return fmt.Errorf("default encoding must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
