package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config carries everything the service needs from the environment.
// Values come from the process environment, typically seeded from .env.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RouteAPIHost string `env:"ROUTE_API_HOST"`
	RouteAPIKey  string `env:"ROUTE_API_KEY"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppMode  string `env:"APP_MODE" envDefault:"DEV"`
}

// NewConfig reads the configuration from the environment.
func NewConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("error parsing env config: %w", err)
	}
	return config, nil
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
