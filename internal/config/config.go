package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	POS         POSConfig
	LogLevel    string
}

// BackendConfig points at the backend service that owns carts, pricing,
// stock and transactions.
type BackendConfig struct {
	BaseURL string
	APIKey  string
}

type POSConfig struct {
	DefaultPaymentGateway string
	SessionTTLMinutes     int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEFAULT_PAYMENT_GATEWAY", "cash")
	viper.SetDefault("SESSION_TTL_MINUTES", 120)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", ""),
			APIKey:  getEnvOrViper("BACKEND_API_KEY", ""),
		},
		POS: POSConfig{
			DefaultPaymentGateway: getEnvOrViper("DEFAULT_PAYMENT_GATEWAY", "cash"),
			SessionTTLMinutes:     viper.GetInt("SESSION_TTL_MINUTES"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.POS.SessionTTLMinutes <= 0 {
		cfg.POS.SessionTTLMinutes = 120
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
