package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Issuer                string        `yaml:"issuer"`                  // Issuer claim for session tokens (default: deptshare)
	Env                   string        `yaml:"env"`                     // Environment (dev, staging, prod) (default: dev)
	LogLevel              string        `yaml:"log_level"`               // Log level (debug, info, warn, error) (default: info)
	LogFormat             string        `yaml:"log_format"`              // Log format (json, text) (default: json)
	Port                  int           `yaml:"port"`                    // HTTP server port (default: 8080)
	ShutdownGracePeriod   time.Duration `yaml:"shutdown_grace_period"`   // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval  time.Duration `yaml:"housekeeping_interval"`   // Housekeeping interval (default: 1h)
	DatabaseDriver        string        `yaml:"database_driver"`         // sqlite or postgres (default: sqlite)
	DatabaseFile          string        `yaml:"database_file"`           // SQLite database file (default: ./deptshare.db)
	DatabaseURL           string        `yaml:"database_url"`            // PostgreSQL connection URL, required for postgres
	UploadDir             string        `yaml:"upload_dir"`              // Directory for file bodies (default: ./uploads)
	MaxFileSize           int64         `yaml:"max_file_size"`           // Upload limit in bytes (default: 10 MiB)
	SessionTTL            time.Duration `yaml:"session_ttl"`             // Session token lifetime (default: 12h)
	BcryptCost            int           `yaml:"bcrypt_cost"`             // Password hashing cost (default: 12)
	IdentifierMaxAttempts int           `yaml:"identifier_max_attempts"` // Identifier draws per registration (default: 8)
	NumKeys               int           `yaml:"num_keys"`                // Signing keys to generate (default: 3, max: 10)
}

// DefaultConfig is the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Issuer:                "deptshare",
		Env:                   "dev",
		LogLevel:              "info",
		LogFormat:             "json",
		Port:                  8080,
		ShutdownGracePeriod:   10 * time.Second,
		HousekeepingInterval:  1 * time.Hour,
		DatabaseDriver:        "sqlite",
		DatabaseFile:          "deptshare.db",
		UploadDir:             "uploads",
		MaxFileSize:           10 << 20,
		SessionTTL:            12 * time.Hour,
		BcryptCost:            12,
		IdentifierMaxAttempts: 8,
		NumKeys:               3,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_FILE if set, then the environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the keys present in a YAML file.
func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (cfg *Config) applyEnv() {
	cfg.Issuer = getEnvOrDefault("SHARE_ISSUER", cfg.Issuer)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)
	cfg.DatabaseDriver = getEnvOrDefault("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseFile = getEnvOrDefault("DATABASE_FILE", cfg.DatabaseFile)
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.UploadDir = getEnvOrDefault("UPLOAD_DIR", cfg.UploadDir)
	cfg.MaxFileSize = int64(getEnvIntOrDefault("MAX_FILE_SIZE", int(cfg.MaxFileSize)))
	cfg.SessionTTL = getEnvDurationOrDefault("SESSION_TTL", cfg.SessionTTL)
	cfg.BcryptCost = getEnvIntOrDefault("BCRYPT_COST", cfg.BcryptCost)
	cfg.IdentifierMaxAttempts = getEnvIntOrDefault("IDENTIFIER_MAX_ATTEMPTS", cfg.IdentifierMaxAttempts)
	cfg.NumKeys = getEnvIntOrDefault("SHARE_NUM_KEYS", cfg.NumKeys)
}

// Validate rejects settings the service cannot start with.
func (cfg Config) Validate() error {
	switch cfg.DatabaseDriver {
	case "sqlite":
		if cfg.DatabaseFile == "" {
			return fmt.Errorf("config: DATABASE_FILE is required for the sqlite driver")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if cfg.Issuer == "" {
		return fmt.Errorf("config: SHARE_ISSUER must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("config: UPLOAD_DIR must not be empty")
	}
	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("config: MAX_FILE_SIZE must be positive")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", cfg.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
