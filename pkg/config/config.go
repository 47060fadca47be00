/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/frota/pkg/codec"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// LogLevels lists the accepted logging levels
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the frota configuration
type Config struct {
	Catalog Catalog `yaml:"catalog"`
	Journal Journal `yaml:"journal"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
	Display Display `yaml:"display"`
}

// Catalog locates the catalog file and its format
type Catalog struct {
	Path       string `yaml:"path"`
	Delimiter  string `yaml:"delimiter"`
	ExportPath string `yaml:"export_path"`
}

// Journal controls the operation journal
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Display tunes the interactive shell
type Display struct {
	Indent      int  `yaml:"indent"`
	ClearScreen bool `yaml:"clear_screen"`
	Pause       bool `yaml:"pause"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: Catalog{
			Path:       "viaturas.csv",
			Delimiter:  string(codec.DefaultDelimiter),
			ExportPath: "viaturas_export.csv",
		},
		Journal: Journal{
			Enabled: false,
			Dir:     filepath.Join(defaultDataDir(), "journal"),
		},
		Logging: Logging{
			Level: "warn",
		},
		Display: Display{
			Indent:      3,
			ClearScreen: false,
			Pause:       false,
		},
	}
}

// DelimiterRune returns the configured delimiter as a rune
func (c Catalog) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if !codec.ValidDelimiter(r) {
		return 0, fmt.Errorf("%w: delimiter %q cannot be used", ErrInvalidConfig, c.Delimiter)
	}
	return r, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("%w: catalog.path is required", ErrInvalidConfig)
	}
	if _, err := c.Catalog.DelimiterRune(); err != nil {
		return err
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Dir) == "" {
		return fmt.Errorf("%w: journal.dir is required when the journal is enabled", ErrInvalidConfig)
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Display.Indent < 0 || c.Display.Indent > 16 {
		return fmt.Errorf("%w: display.indent must be between 0 and 16", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Missing keys keep
// their default values.
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

	return config, nil
}

// SaveConfig saves the configuration to the specified path
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

// BootstrapConfig writes a default configuration to configPath, pointing at
// catalogPath when it is not empty.
func BootstrapConfig(configPath string, catalogPath string) (*Config, error) {
	config := DefaultConfig()
	if catalogPath != "" {
		config.Catalog.Path = catalogPath
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".frota"
	}
	return filepath.Join(homeDir, ".local", "share", "frota")
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./frota.yaml"
	}

	// For Linux/macOS, use ~/.config/frota/config.yaml
	configDir := filepath.Join(homeDir, ".config", "frota")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
