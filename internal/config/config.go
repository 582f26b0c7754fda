// Package config supplies user-level settings, most importantly the
// author identity consumed by commit assembly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"grit/internal/commit"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "GRIT_CONFIG"

const defaultFileName = ".gritconfig.yaml"

// Config mirrors the YAML config file:
//
//	user:
//	  name: Jane Doe
//	  email: jane@example.com
//	log_level: debug
type Config struct {
	User struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"user"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Path returns the config file location: $GRIT_CONFIG if set, otherwise
// ~/.gritconfig.yaml.
func Path() (string, error) {
	if override := os.Getenv(EnvConfigPath); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, defaultFileName), nil
}

// Load reads and parses the config file.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Identity returns the configured author identity, erroring when name
// or email is missing.
func (c *Config) Identity() (commit.Identity, error) {
	if c.User.Name == "" || c.User.Email == "" {
		return commit.Identity{}, fmt.Errorf("user.name and user.email must be set in the config file")
	}
	return commit.Identity{Name: c.User.Name, Email: c.User.Email}, nil
}
