package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"smartone-ap"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		// URL takes precedence when set; otherwise the connection string is
		// assembled from the individual fields.
		URL      string `envconfig:"DATABASE_URL"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"smartone"`
	}

	Server struct {
		ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	}

	Web struct {
		AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
	}
}

func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
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
