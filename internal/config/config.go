package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backend names accepted by StoreBackend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// StoreBackend selects the document store: memory, postgres, redis, or s3.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisURL string `envconfig:"REDIS_URL"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"recall-documents"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// SearchBaseURL overrides the DuckDuckGo endpoint (for testing).
	SearchBaseURL string `envconfig:"SEARCH_BASE_URL"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("RECALL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Validate checks that the selected store backend has what it needs.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("RECALL_DATABASE_URL is required for the postgres store backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("RECALL_REDIS_URL is required for the redis store backend")
		}
	case BackendS3:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("RECALL_S3_ENDPOINT, RECALL_S3_ACCESS_KEY_ID and RECALL_S3_SECRET_ACCESS_KEY are required for the s3 store backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	return nil
}
