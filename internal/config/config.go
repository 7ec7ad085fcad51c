// Package config handles the XDG configuration directory, the stored
// session file, and the backend origin.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todocli"

	// SessionFile is the stored session (token + identity) filename.
	SessionFile = "session.json"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.yaml"

	// EnvAPIURL overrides the backend origin when set.
	EnvAPIURL = "TODO_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the resolved backend origin.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings is the schema of config.yaml.
type fileSettings struct {
	APIURL string `yaml:"api_url"`
}

// New creates a Config rooted at configDir (default XDG location when empty)
// and resolves the backend origin: TODO_API_URL env, then config.yaml, then
// the compiled-in default.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if data, err := os.ReadFile(cfg.ConfigPath()); err == nil {
		var fs fileSettings
		if err := yaml.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		cfg.APIURL = fs.APIURL
	}
	if env := os.Getenv(EnvAPIURL); env != "" {
		cfg.APIURL = env
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if the session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}
