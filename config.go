package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds server settings. Missing file means defaults; a present
// file overrides field by field.
type Config struct {
	ListenAddr  string `yaml:"listenAddr" validate:"required"`
	ObstacleDir string `yaml:"obstacleDir"`
	// MaxNodes caps the node count before a build is refused; 0 disables
	// the cap
	MaxNodes int `yaml:"maxNodes" validate:"gte=0"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() Config {
	return Config{
		ListenAddr:  ":8080",
		ObstacleDir: "obstacle-sets",
		MaxNodes:    1000,
	}
}

// LoadConfig reads and validates a YAML config file, falling back to
// defaults when the file does not exist
func LoadConfig(path string, validate *validator.Validate) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
