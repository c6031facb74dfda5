package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"depobill"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"depobill"`
	}

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		User     string `envconfig:"EMAIL_USER"`
		Password string `envconfig:"EMAIL_PASS"`
	}

	Paths struct {
		Settings string `envconfig:"SETTINGS_PATH" default:"./config/settings.json"`
		Exports  string `envconfig:"EXPORTS_DIR" default:"./exports"`
	}

	API struct {
		Secret string `envconfig:"API_SECRET"`
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
