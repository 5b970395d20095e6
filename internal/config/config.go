package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Moneta"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"moneta"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret     string        `envconfig:"AUTH_SECRET" required:"true"`
		AccessTTL  time.Duration `envconfig:"AUTH_ACCESS_TTL" default:"15m"`
		RefreshTTL time.Duration `envconfig:"AUTH_REFRESH_TTL" default:"168h"`
	}

	Bank struct {
		Environment string `envconfig:"BANK_ENV" default:"sandbox"`
		ClientID    string `envconfig:"BANK_CLIENT_ID"`
		Secret      string `envconfig:"BANK_SECRET"`
	}

	AI struct {
		APIKey string `envconfig:"OPENAI_API_KEY"`
		Model  string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
