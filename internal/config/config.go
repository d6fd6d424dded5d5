package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" env-default:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL" env-default:"memory://"`
	CorsOrigin      string        `env:"CORS_ORIGIN" env-default:"*"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	GinMode         string        `env:"GIN_MODE" env-default:"release"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" env-default:"1"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" env-default:"5"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads a .env file if one exists, then the process environment.
// The bool reports whether a .env file was found.
func Load(envFiles ...string) (*Config, bool, error) {
	foundEnv := godotenv.Load(envFiles...) == nil

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, foundEnv, err
	}
	return &cfg, foundEnv, nil
}
