package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, parsed from the environment. The
// defaults are development placeholders; SECRET_KEY, RESET_TOKEN_SALT, and
// the EMAIL_* credentials must be overridden in any real deployment.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	DBPath    string `env:"DB_PATH" envDefault:"newscheck.db"`
	ModelPath string `env:"MODEL_PATH" envDefault:"model_artifact.gob"`
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	SecretKey      string `env:"SECRET_KEY" envDefault:"replace_this_with_a_strong_secret"`
	ResetTokenSalt string `env:"RESET_TOKEN_SALT" envDefault:"replace_with_random_salt"`

	TesseractPath string `env:"TESSERACT_PATH" envDefault:"tesseract"`

	Email Email `envPrefix:"EMAIL_"`
}

// Email contains the SMTP submission parameters for reset mail.
type Email struct {
	Host     string `env:"HOST" envDefault:"smtp.example.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USER" envDefault:"you@example.com"`
	Password string `env:"PASS" envDefault:""`
	From     string `env:"FROM" envDefault:""`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}
	return &cfg, nil
}
