package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"playground-client/internal/logger"
)

// init loads environment variables from .env files during package initialization.
// godotenv.Load() does not override already-set environment variables,
// preserving OS env > .env precedence.
func init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Load(".env.local"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env.local file: %v\n", err)
		}
	}
}

// AppConfig holds all application configuration
type AppConfig struct {
	Server  ServerConfig
	Storage StorageConfig
	Voice   VoiceConfig
	Catalog *Catalog
}

// ServerConfig holds playground server connection configuration
type ServerConfig struct {
	BaseURL         string
	GenerateTimeout time.Duration
	RequestTimeout  time.Duration
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	DataDir string
}

// VoiceConfig holds voice synthesis configuration
type VoiceConfig struct {
	Lang    string
	Enabled bool
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	config.Server = ServerConfig{
		BaseURL:         getEnvOrDefault("PLAYGROUND_SERVER_URL", "http://localhost:5000"),
		GenerateTimeout: time.Duration(getEnvAsInt("PLAYGROUND_TIMEOUT_SECONDS", 120)) * time.Second,
		RequestTimeout:  time.Duration(getEnvAsInt("PLAYGROUND_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	config.Storage = StorageConfig{
		DataDir: getEnvOrDefault("PLAYGROUND_DATA_DIR", defaultDataDir()),
	}

	config.Voice = VoiceConfig{
		Lang:    getEnvOrDefault("PLAYGROUND_LANG", "pt-BR"),
		Enabled: getEnvAsBool("PLAYGROUND_VOICE_ENABLED", false),
	}

	catalogPath := getEnvOrDefault("PLAYGROUND_CATALOG_PATH", "")
	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		// A broken catalog file falls back to the built-in catalog,
		// the client must stay usable offline
		logger.Log.WithError(err).Warn("Failed to load catalog file, using built-in defaults")
		catalog = DefaultCatalog()
	}
	config.Catalog = catalog

	return config, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".playground"
	}
	return filepath.Join(home, ".playground")
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment variable as an int or a default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		logger.Log.WithField("key", key).Warn("Invalid integer in environment, using default")
	}
	return defaultValue
}

// getEnvAsBool returns the environment variable as a bool or a default
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		logger.Log.WithField("key", key).Warn("Invalid boolean in environment, using default")
	}
	return defaultValue
}
