// Package config loads the optional helpcenter.yaml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/studio27se/ehub/internal/foundation/errors"
)

const (
	// DefaultFile is looked up in the working directory when no path is given.
	DefaultFile = "helpcenter.yaml"
	// DefaultTOC is the outline file name relative to the root.
	DefaultTOC = "help-center-toc.yaml"
	// DefaultOutput is the generated document name relative to the root.
	DefaultOutput = "help-center.json"
)

// Config represents the project configuration.
type Config struct {
	Root     string         `yaml:"root"`
	TOC      string         `yaml:"toc"`
	Output   string         `yaml:"output"`
	Validate ValidateConfig `yaml:"validate"`
}

// ValidateConfig holds validate command defaults.
type ValidateConfig struct {
	CheckLinks    bool `yaml:"check_links"`
	AllowWarnings bool `yaml:"allow_warnings"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from configPath. An empty configPath looks for
// DefaultFile and falls back to defaults when it does not exist; an explicit
// path must exist.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").Build()
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultFile
	}

	// #nosec G304 -- configPath is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).
			Build()
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.TOC == "" {
		c.TOC = DefaultTOC
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// TOCPath returns the outline path, resolved against Root when relative.
func (c *Config) TOCPath() string {
	return c.underRoot(c.TOC)
}

// OutputPath returns the generated document path, resolved against Root
// when relative.
func (c *Config) OutputPath() string {
	return c.underRoot(c.Output)
}

func (c *Config) underRoot(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Config{
		Root:   "docs",
		TOC:    DefaultTOC,
		Output: filepath.Join("..", "public", DefaultOutput),
		Validate: ValidateConfig{
			CheckLinks: true,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	// #nosec G306 -- project config is meant to be readable.
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
