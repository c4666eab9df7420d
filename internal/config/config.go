package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	AppEnv           string        `env:"APP_ENV" envDefault:"production"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver    string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath       string        `env:"SQLITE_PATH" envDefault:"fitjourney.db"`
	DBUrl            string        `env:"DB_URL"`
	StorageTimeout   time.Duration `env:"STORAGE_TIMEOUT" envDefault:"2s"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	EnableDocs       bool          `env:"ENABLE_DOCS" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return parse()
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.AppEnv = normalizeEnv(cfg.AppEnv)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	switch cfg.StorageDriver {
	case StorageSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case StoragePostgres:
		if strings.TrimSpace(cfg.DBUrl) == "" {
			return nil, fmt.Errorf("DB_URL is required for the postgres driver")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.StorageTimeout <= 0 {
		return nil, fmt.Errorf("STORAGE_TIMEOUT must be positive")
	}

	return &cfg, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// DocsEnabled serves the API reference only in development.
func (c *Config) DocsEnabled() bool {
	return c.EnableDocs && c.IsDevelopment()
}
