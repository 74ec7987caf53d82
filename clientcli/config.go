package clientcli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Profile holds connection settings for a single NetStorage account.
type Profile struct {
	Name    string `yaml:"name" json:"name"`
	Host    string `yaml:"host" json:"host"`
	KeyName string `yaml:"key_name,omitempty" json:"key_name,omitempty"`
	Key     string `yaml:"key,omitempty" json:"key,omitempty"`
	CPCode  string `yaml:"cpcode,omitempty" json:"cpcode,omitempty"`
	SSL     bool   `yaml:"ssl,omitempty" json:"ssl"`
	Default bool   `yaml:"default,omitempty" json:"default"`
}

// ConfigFile holds the full config file structure with multiple profiles.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// GetProfile returns the profile by name.
// If name is empty, returns the default profile.
func (c *ConfigFile) GetProfile(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	if name == "" {
		return c.GetDefaultProfile()
	}

	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// GetDefaultProfile returns the default profile.
// If no profile is marked as default, returns the first profile.
func (c *ConfigFile) GetDefaultProfile() (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	for i := range c.Profiles {
		if c.Profiles[i].Default {
			return &c.Profiles[i], nil
		}
	}

	return &c.Profiles[0], nil
}

// AddProfile adds a new profile. Returns ErrProfileExists if a profile
// with the same name already exists. Use UpdateProfile to modify an
// existing profile.
func (c *ConfigFile) AddProfile(p Profile) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
		}
	}
	c.Profiles = append(c.Profiles, p)
	return nil
}

// UpdateProfile updates an existing profile. Returns ErrProfileNotFound
// if the profile doesn't exist.
func (c *ConfigFile) UpdateProfile(p Profile) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			c.Profiles[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProfileNotFound, p.Name)
}

// RemoveProfile removes a profile by name.
func (c *ConfigFile) RemoveProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// SetDefault sets the default profile by name, clearing the default
// flag from all other profiles.
func (c *ConfigFile) SetDefault(name string) error {
	found := false
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles[i].Default = true
			found = true
		} else {
			c.Profiles[i].Default = false
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

// ProfileNames returns a list of all profile names.
func (c *ConfigFile) ProfileNames() []string {
	names := make([]string, len(c.Profiles))
	for i := range c.Profiles {
		names[i] = c.Profiles[i].Name
	}
	return names
}

// Save writes the config to the specified path.
// Creates the parent directory if it doesn't exist.
func (c *ConfigFile) Save(path string) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadConfigFile loads the config file from the specified path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file path
// (~/.netstorage/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netstorage", "config.yaml")
}

// Config holds resolved client configuration for a single account.
// This is what the Client uses after profile resolution.
type Config struct {
	Host    string
	KeyName string
	Key     string
	CPCode  string
	SSL     bool
	Verbose bool
}

// Validate checks if the fields required for signed calls are set.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrHostRequired
	}
	if c.KeyName == "" {
		return ErrKeyNameRequired
	}
	if c.Key == "" {
		return ErrKeyRequired
	}
	return nil
}

// ConfigFromProfile creates a Config from a Profile.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{
		Host:    p.Host,
		KeyName: p.KeyName,
		Key:     p.Key,
		CPCode:  p.CPCode,
		SSL:     p.SSL,
	}
}

// ConfigFromEnv loads config from environment variables.
func ConfigFromEnv() *Config {
	ssl, _ := strconv.ParseBool(os.Getenv("NETSTORAGE_SSL"))
	return &Config{
		Host:    os.Getenv("NETSTORAGE_HOST"),
		KeyName: os.Getenv("NETSTORAGE_KEY_NAME"),
		Key:     os.Getenv("NETSTORAGE_KEY"),
		CPCode:  os.Getenv("NETSTORAGE_CPCODE"),
		SSL:     ssl,
	}
}

// ProfileFromEnv returns the profile name from the NETSTORAGE_PROFILE
// environment variable.
func ProfileFromEnv() string {
	return os.Getenv("NETSTORAGE_PROFILE")
}

// ConfigPathFromEnv returns the config file path from the
// NETSTORAGE_CONFIG environment variable.
func ConfigPathFromEnv() string {
	return os.Getenv("NETSTORAGE_CONFIG")
}

// MergeConfig merges multiple configs, with later configs taking
// precedence. Empty strings in later configs do not override non-empty
// values in earlier configs; SSL and Verbose are sticky once set.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Host != "" {
			result.Host = cfg.Host
		}
		if cfg.KeyName != "" {
			result.KeyName = cfg.KeyName
		}
		if cfg.Key != "" {
			result.Key = cfg.Key
		}
		if cfg.CPCode != "" {
			result.CPCode = cfg.CPCode
		}
		if cfg.SSL {
			result.SSL = true
		}
		if cfg.Verbose {
			result.Verbose = true
		}
	}
	return result
}
