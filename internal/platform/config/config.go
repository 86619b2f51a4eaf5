package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors.
const (
	BackendPostgres    = "postgres"
	BackendRecordStore = "recordstore"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// StorageBackend selects where trades live: "postgres" or "recordstore".
	StorageBackend string
	DatabaseURL    string

	RecordStoreURL   string
	RecordStoreToken string

	JWTSecret string

	RateLimitPeriod string
	RateLimitCount  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", BackendPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RECORDSTORE_URL", "")
	viper.SetDefault("RECORDSTORE_TOKEN", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_COUNT", 120)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		StorageBackend:   viper.GetString("STORAGE_BACKEND"),
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		RecordStoreURL:   viper.GetString("RECORDSTORE_URL"),
		RecordStoreToken: viper.GetString("RECORDSTORE_TOKEN"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		RateLimitPeriod:  viper.GetString("RATE_LIMIT_PERIOD"),
		RateLimitCount:   viper.GetInt64("RATE_LIMIT_COUNT"),
	}

	switch cfg.StorageBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_BACKEND is %q", BackendPostgres)
		}
	case BackendRecordStore:
		if cfg.RecordStoreURL == "" {
			return nil, fmt.Errorf("RECORDSTORE_URL must be set when STORAGE_BACKEND is %q", BackendRecordStore)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}
