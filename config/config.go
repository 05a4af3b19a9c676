package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Store   StoreConfig  `json:"store"`
	Filters FilterConfig `json:"filters"`
	Output  OutputConfig `json:"output"`
}

// StoreConfig selects the object store backend.
type StoreConfig struct {
	Backend string `json:"backend"` // "loose", "gogit" or "auto"
}

// FilterConfig holds branch name filtering options. Patterns use doublestar
// glob syntax, e.g. "release/**".
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// OutputConfig holds default output options.
type OutputConfig struct {
	Format string `json:"format"` // "text" or "json" for order output
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "loose",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
// When path is empty, .topoorder.json is tried in the working directory and
// then in the user's home directory; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		candidates := []string{".topoorder.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".topoorder.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
