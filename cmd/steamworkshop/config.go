package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "steamworkshop"
	configFileName = "config.yaml"

	// envAPIKey overrides api_key from the config file.
	envAPIKey = "STEAM_API_KEY"
)

// Steam Web API keys are 32 hex digits.
var apiKeyPattern = regexp.MustCompile(`^[0-9A-Fa-f]{32}$`)

// Config mirrors config.yaml.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	Logging struct {
		Level   string `yaml:"level"`
		LogPath string `yaml:"log_path"`
	} `yaml:"logging"`

	Metrics struct {
		PushgatewayURL string `yaml:"pushgateway_url"`
	} `yaml:"metrics"`
}

// defaultConfigPath is $XDG_CONFIG_HOME/steamworkshop/config.yaml, or the
// platform equivalent.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// loadConfig reads the config file at path. An empty path means the
// default location, which may be absent. STEAM_API_KEY wins over the file.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Logging.Level = "warning"

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if key, ok := os.LookupEnv(envAPIKey); ok {
		cfg.APIKey = key
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey != "" && !apiKeyPattern.MatchString(c.APIKey) {
		return fmt.Errorf("api_key must be 32 hexadecimal digits")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
