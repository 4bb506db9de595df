// Package config handles loading ramble.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the ramble.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
	Render Render `toml:"render"`
}

// Server contains backend-related configuration.
type Server struct {
	// URL is the explorer backend's base address.
	URL string `toml:"url"`

	// TimeoutSeconds bounds each round trip. Zero disables the
	// client-side timeout.
	TimeoutSeconds int `toml:"timeout-seconds"`
}

// Render contains content-rendering configuration.
type Render struct {
	// Style selects the glamour style for generated content
	// ("auto", "dark", "light", "notty").
	Style string `toml:"style"`
}

// Load loads configuration from the working directory and the global config
// file. Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "ramble.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "ramble", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.URL = mergeString(projectMeta.IsDefined("server", "url"), projectCfg.Server.URL, globalCfg.Server.URL)
	merged.Render.Style = mergeString(projectMeta.IsDefined("render", "style"), projectCfg.Render.Style, globalCfg.Render.Style)
	if projectMeta.IsDefined("server", "timeout-seconds") {
		merged.Server.TimeoutSeconds = projectCfg.Server.TimeoutSeconds
	} else if globalMeta.IsDefined("server", "timeout-seconds") {
		merged.Server.TimeoutSeconds = globalCfg.Server.TimeoutSeconds
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
