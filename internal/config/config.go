package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the storefront.
type Config struct {
	Client ClientConfig
	Stub   StubConfig
	Logger LoggerConfig
}

// ClientConfig controls the CLI client.
type ClientConfig struct {
	// APIURL is the base address of the remote commerce system.
	APIURL string
	// ProfileDir holds the persisted identity state. Empty disables
	// persistence entirely (the identity store becomes inert).
	ProfileDir string
}

// StubConfig controls the bundled stub marketplace server.
type StubConfig struct {
	Host                  string
	Port                  string
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Client: ClientConfig{
			APIURL:     getEnv("STOREFRONT_API_URL", "http://localhost:9696"),
			ProfileDir: getEnv("STOREFRONT_PROFILE_DIR", defaultProfileDir()),
		},
		Stub: StubConfig{
			Host:                  getEnv("STUB_HOST", "0.0.0.0"),
			Port:                  getEnv("STUB_PORT", "9696"),
			JWTSecret:             getEnv("STUB_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("STUB_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("STUB_BCRYPT_COST", 10),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the stub server bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func defaultProfileDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "storefront")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
