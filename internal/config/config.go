package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name under the reclaim config directory.
const FileName = "config.yml"

const (
	DefaultMinAgeDays        = 2
	DefaultMaxDepth          = 5
	DefaultKeepLatestDerived = 1
	DefaultKeepLatestCache   = 1
)

// Config is the persisted reclaim configuration. Numeric fields are pointers
// so an explicit 0 survives the round trip; Load fills omitted ones with the
// defaults and never returns nil numerics.
type Config struct {
	Roots             []string `yaml:"roots,omitempty"`
	Excludes          []string `yaml:"excludes,omitempty"`
	MinAgeDays        *int     `yaml:"min_age_days,omitempty"`
	MaxDepth          *int     `yaml:"max_depth,omitempty"`
	KeepLatestDerived *int     `yaml:"keep_latest_derived,omitempty"`
	KeepLatestCache   *int     `yaml:"keep_latest_cache,omitempty"`
	Categories        []string `yaml:"categories,omitempty"`
}

// Default returns a config carrying the built-in defaults.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// Dir returns the reclaim config directory under the user config root.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, "reclaim"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Exists checks whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and parses the config file at path. A missing file yields the
// defaults. Leading ~ in roots and excludes expands to the given home
// directory.
func Load(path, home string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&c)
	for i, root := range c.Roots {
		c.Roots[i] = ExpandHome(root, home)
	}
	for i, exclude := range c.Excludes {
		c.Excludes[i] = ExpandHome(exclude, home)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the config file atomically, creating the directory as needed.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Validate checks that numeric fields are non-negative.
func Validate(c *Config) error {
	if c.MinAgeDays != nil && *c.MinAgeDays < 0 {
		return fmt.Errorf("min_age_days must not be negative: %d", *c.MinAgeDays)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative: %d", *c.MaxDepth)
	}
	if c.KeepLatestDerived != nil && *c.KeepLatestDerived < 0 {
		return fmt.Errorf("keep_latest_derived must not be negative: %d", *c.KeepLatestDerived)
	}
	if c.KeepLatestCache != nil && *c.KeepLatestCache < 0 {
		return fmt.Errorf("keep_latest_cache must not be negative: %d", *c.KeepLatestCache)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func applyDefaults(c *Config) {
	if c.MinAgeDays == nil {
		c.MinAgeDays = intPtr(DefaultMinAgeDays)
	}
	if c.MaxDepth == nil {
		c.MaxDepth = intPtr(DefaultMaxDepth)
	}
	if c.KeepLatestDerived == nil {
		c.KeepLatestDerived = intPtr(DefaultKeepLatestDerived)
	}
	if c.KeepLatestCache == nil {
		c.KeepLatestCache = intPtr(DefaultKeepLatestCache)
	}
}

func intPtr(v int) *int {
	return &v
}
