package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences and connection settings
type Config struct {
	MongoURI   string `yaml:"mongo_uri" json:"mongo_uri"`     // MongoDB connection string
	Database   string `yaml:"database" json:"database"`       // Database name
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"` // Web server listen address

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings, honoring PILOT_* environment
// variables when set.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".projectpilot", "logs", "pilot.log")
	}

	return &Config{
		MongoURI:   getEnv("PILOT_MONGO_URI", "mongodb://localhost:27017"),
		Database:   getEnv("PILOT_DB_NAME", "project_pilot"),
		ListenAddr: getEnv("PILOT_LISTEN_ADDR", ":8080"),
		LogLevel:   getEnv("PILOT_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("PILOT_LOG_FILE", logPath),
		LogConsole: getEnv("PILOT_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".projectpilot", "config.yaml"), nil
}

// Load loads config from ~/.projectpilot/config.yaml, falling back to
// defaults if the file does not exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.projectpilot/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
