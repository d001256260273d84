package todo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the starting state of the todo list.
type Config struct {
	// Seed is the root seed of the runtime.
	Seed string `yaml:"seed,omitempty"`
	// Initial lists the items present on the first render.
	Initial []string `yaml:"initial,omitempty"`
	// Filter is the filter selected on the first render.
	Filter Filter `yaml:"filter,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Seed:   "todo",
		Filter: FilterAll,
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config %s does not exist: %w", path, err)
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Seed = strings.TrimSpace(cfg.Seed)
	if cfg.Seed == "" {
		cfg.Seed = DefaultConfig().Seed
	}
	if cfg.Filter == "" {
		cfg.Filter = FilterAll
	}
	if _, err := ParseFilter(string(cfg.Filter)); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
