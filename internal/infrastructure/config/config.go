package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers selectable via STORE_DRIVER.
const (
	DriverFile  = "file"
	DriverMongo = "mongo"
)

type Config struct {
	Port        string        `env:"PORT,         default=5000"`
	Env         string        `env:"ENV,          default=development"`
	JWTSecret   string        `env:"JWT_SECRET,   default=default-secret-key"`
	JWTTTL      time.Duration `env:"JWT_TTL,      default=24h"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	StoreDriver string        `env:"STORE_DRIVER, default=file"`
	DataDir     string        `env:"DATA_DIR,     default=data"`
	CORSOrigin  string        `env:"CORS_ORIGIN,  default=http://localhost:5173"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_system"`
}

// RedisConfig is optional: an empty Addr disables everything Redis-backed.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// Production reports whether the service runs in production mode; internal
// error detail is only exposed when it does not.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.StoreDriver != DriverFile && cfg.StoreDriver != DriverMongo {
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}
