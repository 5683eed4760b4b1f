package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads the configuration file at path. Database credentials can be
// overridden through environment variables so secrets stay out of the file.
func Load(path string) (Configs, error) {
	var cfg Configs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, err
	}

	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	if cfg.Gamification.MaxActionRetries <= 0 {
		cfg.Gamification.MaxActionRetries = 3
	}

	return cfg, nil
}
