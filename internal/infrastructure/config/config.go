package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// UploadDir is where submitted threat photos are stored.
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	// NotificationWorkers sizes the dispatch worker pool.
	NotificationWorkers int `env:"NOTIFICATION_WORKERS, default=4"`

	Redis RedisConfig
}

// RedisConfig configures the optional submission idempotency store. An empty
// Addr disables Redis entirely.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
