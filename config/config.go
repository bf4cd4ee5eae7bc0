package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// DataDir overrides where notes.db lives. Empty means the platform
	// application-data directory.
	DataDir  string `env:"NOTES_DATA_DIR" env-default:""`
	Env      string `env:"NOTES_ENV" env-default:"development"`
	LogLevel string `env:"NOTES_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
