package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the client needs to reach the backend and
// keep its local state. Values come from an optional YAML file, then a
// .env file, then real environment variables, later sources winning.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Client-side request throttle. The backend has no documented rate
	// limits, so these stay generous.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// Unread-notification poll cadence.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Directory the session files (token + user record) live in.
	SessionDir string `yaml:"session_dir"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

func defaults() Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".wheels")
	return Config{
		APIBaseURL:   "http://localhost:3001/api",
		HTTPTimeout:  15 * time.Second,
		RateLimit:    10,
		RateBurst:    5,
		PollInterval: 30 * time.Second,
		SessionDir:   base,
		LogFile:      filepath.Join(base, "logs", "wheels.log"),
		LogLevel:     "info",
	}
}

// Load builds the effective configuration. A missing config file or .env
// is fine; env vars alone are enough to run.
func Load() Config {
	cfg := defaults()

	if path := configFilePath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				log.Printf("ignoring malformed config file %s: %v", path, err)
			}
		}
	}

	// No .env file is fine, env vars alone are enough.
	_ = godotenv.Load()

	cfg.APIBaseURL = getEnv("WHEELS_API_URL", cfg.APIBaseURL)
	cfg.SessionDir = getEnv("WHEELS_HOME", cfg.SessionDir)
	cfg.LogFile = getEnv("WHEELS_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("WHEELS_LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPTimeout = getDurationEnv("WHEELS_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.PollInterval = getDurationEnv("WHEELS_POLL_INTERVAL", cfg.PollInterval)
	cfg.RateLimit = getFloatEnv("WHEELS_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = getIntEnv("WHEELS_RATE_BURST", cfg.RateBurst)

	return cfg
}

func configFilePath() string {
	if v := os.Getenv("WHEELS_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wheels", "config.yaml")
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if v, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s, using default", key)
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid %s, using default", key)
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if v, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid %s, using default", key)
	}
	return defaultValue
}
