package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "./langnav.yaml"

// Load reads configuration from CONFIG_PATH (fallback DefaultPath) and the
// environment. Priority: ENV > YAML > env-default tags. A missing default
// file is not an error; a missing explicit file is.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return LoadFile(DefaultPath, false)
	}
	return LoadFile(path, true)
}

// LoadFile is Load with an explicit path. When required is false and the
// file does not exist, only ENV and defaults are used.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
