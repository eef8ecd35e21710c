package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Env        string `env:"ENV" envDefault:"dev"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"snapfeed"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"snapfeed_dev_password"`
	DBName     string `env:"DB_NAME" envDefault:"snapfeed"`

	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	// TokenTTL of 0 means issued tokens never expire.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"0"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string used by both the pool and the
// migration runner.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
