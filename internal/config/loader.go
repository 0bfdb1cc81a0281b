package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// ClientConfig is the subset of Config needed by one-shot CLI lookups,
// which run without a session secret or store.
type ClientConfig struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is determined by CONFIG_PATH env (fallback "./config.yaml").
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config
	if err := read(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// LoadClient reads only the dictionary and log sections, from the same
// sources as Load.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := read(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Dictionary.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: dictionary: %w", err)
	}

	return &cfg, nil
}

func read(cfg any) error {
	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	} else if explicitPath {
		return fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}
