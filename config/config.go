package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/AKSHAYxGITHUB/remote-classroom/logger"
)

type Config struct {
	LogLevel logger.LogLevel `env:"LOG_LEVEL" envDefault:"1"`
	LogDir   string          `env:"LOG_DIR" envDefault:"./logs"`
	Database DatabaseConfig  `envPrefix:"MONGODB_"`
}

type DatabaseConfig struct {
	URL  string `env:"URL"`
	Name string `env:"NAME" envDefault:"remote_classroom"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	// Some hosting platforms only inject DATABASE_URL.
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("MONGODB_URL or DATABASE_URL environment variable not set")
	}

	return &cfg, nil
}
