/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/tokenuses/pkg/owner"
)

// TokenMetadataProgram is the program that owns Uses accounts on mainnet.
const TokenMetadataProgram = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

// Supported values for the codec and logging settings.
var (
	Encodings = []string{"hex", "base64", "base58"}
	Outputs   = []string{"text", "yaml", "json"}
	Levels    = []string{"debug", "info", "warn", "error"}
)

// Config represents the uses CLI configuration
type Config struct {
	Owner   Owner   `yaml:"owner"`
	Codec   Codec   `yaml:"codec"`
	Metrics Metrics `yaml:"metrics"`
	Logging Logging `yaml:"logging"`
}

// Owner contains the ownership check configuration
type Owner struct {
	// ExpectedProgram is the base58 key of the program that must own decoded accounts.
	ExpectedProgram string `yaml:"expected_program"`
}

// Codec contains input and output format defaults
type Codec struct {
	Encoding string `yaml:"encoding"`
	Output   string `yaml:"output"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	// Textfile is where metrics are written after each command. Empty disables export.
	Textfile string `yaml:"textfile"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Owner: Owner{
			ExpectedProgram: TokenMetadataProgram,
		},
		Codec: Codec{
			Encoding: "hex",
			Output:   "text",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every setting holds a supported value
func (c *Config) Validate() error {
	if _, err := c.ExpectedOwner(); err != nil {
		return fmt.Errorf("owner.expected_program: %w", err)
	}
	if !oneOf(c.Codec.Encoding, Encodings) {
		return fmt.Errorf("codec.encoding: unsupported value %q (want one of %v)", c.Codec.Encoding, Encodings)
	}
	if !oneOf(c.Codec.Output, Outputs) {
		return fmt.Errorf("codec.output: unsupported value %q (want one of %v)", c.Codec.Output, Outputs)
	}
	if !oneOf(c.Logging.Level, Levels) {
		return fmt.Errorf("logging.level: unsupported value %q (want one of %v)", c.Logging.Level, Levels)
	}
	return nil
}

// ExpectedOwner parses the configured owner program key
func (c *Config) ExpectedOwner() (owner.Tag, error) {
	return owner.ParseTag(c.Owner.ExpectedProgram)
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./uses.yaml"
	}

	// For Linux/macOS, use ~/.config/uses/config.yaml
	configDir := filepath.Join(homeDir, ".config", "uses")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
