package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr       string     `env:"HTTP_ADDR" envDefault:":3000"`
	MongoURI       string     `env:"MONGODB_URI,required"`
	AuthToken      string     `env:"AUTH_TOKEN,required"`
	DBName         string     `env:"DB_NAME" envDefault:"valorant_tourney"`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir         string     `env:"SPA_DIR" envDefault:""`
	AllowedOrigins []string   `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load parses the environment. MONGODB_URI and AUTH_TOKEN are required;
// the process must not start serving without them.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
