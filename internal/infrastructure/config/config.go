package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is built once at process start and passed by reference into each
// component constructor. Business logic never reads the environment directly.
type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DefaultPageSize applies to the account list when the request carries no
	// pageSize parameter.
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE, default=20"`

	// ExportBucket names the GridFS bucket CSV exports are written to.
	ExportBucket string `env:"EXPORT_BUCKET, default=exports"`

	// SummaryCacheTTL bounds how stale a cached analytics summary may be.
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL, default=60s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bookkeeping"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
