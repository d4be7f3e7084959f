package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LocalDBPath is the project-local database used when it exists
const LocalDBPath = ".lexq/lexq.db"

// Config represents the application configuration
type Config struct {
	DBPath       string `yaml:"db_path"`
	DefaultActor string `yaml:"default_actor"`
	LogLevel     string `yaml:"log_level"`
	Output       string `yaml:"output"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/lexq/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
		Output:   "json",
	}

	// godotenv never overrides variables that are already set
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// YAML config is optional
	_ = loadYAMLConfig(cfg)

	if dbPath := getEnvOrFile("LEXQ_DB_PATH", "LEXQ_DB_PATH_FILE"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel := os.Getenv("LEXQ_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if output := os.Getenv("LEXQ_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if actor := os.Getenv("LEXQ_ACTOR"); actor != "" {
		cfg.DefaultActor = actor
	}

	if cfg.DBPath == "" {
		if _, err := os.Stat(LocalDBPath); err == nil {
			cfg.DBPath = LocalDBPath
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			cfg.DBPath = filepath.Join(homeDir, ".local", "share", "lexq", "lexq.db")
		}
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return level, nil
}

// loadYAMLConfig loads configuration from ~/.config/lexq/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(homeDir, ".config", "lexq", "config.yaml"))
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	for dir := filepath.Clean(cwd); ; {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		parent := filepath.Dir(dir)
		if dir == homeDir || parent == dir {
			return ""
		}
		dir = parent
	}
}

// Actor returns the acting actor's slug
func (c *Config) Actor() string {
	return c.DefaultActor
}
