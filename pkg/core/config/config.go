package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/msto63/devconsole/pkg/core/logging"
)

// EnvVar names the environment variable that points at the config file
const EnvVar = "DEVCONSOLE_CONFIG"

// DefaultMaxHistory is the history capacity when max_history is not set.
// An explicit 0 keeps no history.
const DefaultMaxHistory = 50

// Config holds the complete console configuration
type Config struct {
	Console ConsoleConfig `toml:"console" yaml:"console" json:"console"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
	Remote  RemoteConfig  `toml:"remote" yaml:"remote" json:"remote"`
}

// ConsoleConfig holds settings of the interactive console
type ConsoleConfig struct {
	Fullscreen          bool   `toml:"fullscreen" yaml:"fullscreen" json:"fullscreen"`
	PauseTime           bool   `toml:"pause_time" yaml:"pause_time" json:"pause_time"`
	ShowLog             bool   `toml:"show_log" yaml:"show_log" json:"show_log"`
	MaxLogLines         int    `toml:"max_log_lines" yaml:"max_log_lines" json:"max_log_lines"`
	MaxHistory          int    `toml:"max_history" yaml:"max_history" json:"max_history"`
	WarnAboutInitScript bool   `toml:"warn_about_init_script" yaml:"warn_about_init_script" json:"warn_about_init_script"`
	StartupScript       string `toml:"startup_script" yaml:"startup_script" json:"startup_script"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
	File   string `toml:"file" yaml:"file" json:"file"`
}

// RemoteConfig holds settings of the websocket remote console
type RemoteConfig struct {
	Listen      string   `toml:"listen" yaml:"listen" json:"listen"`
	Path        string   `toml:"path" yaml:"path" json:"path"`
	ReadTimeout Duration `toml:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
}

// Duration wraps time.Duration for text based config formats
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Console: ConsoleConfig{
			PauseTime:           true,
			MaxHistory:          DefaultMaxHistory,
			WarnAboutInitScript: true,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file. The format follows the extension:
// .yaml/.yml for YAML, .json/.jsonc for JSON with comments, TOML otherwise.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration content. ext selects the format like in Load.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the DEVCONSOLE_CONFIG environment
// variable or one of the default locations. Without any file the defaults
// are returned.
func LoadFromEnv() (*Config, string, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		defaultPaths := []string{
			"./devconsole.toml",
			"./configs/devconsole.toml",
			filepath.Join(os.Getenv("HOME"), ".config/devconsole/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Console
	if c.Console.MaxLogLines == 0 {
		c.Console.MaxLogLines = 1000
	}

	// Logging
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	// Remote
	if c.Remote.Listen == "" {
		c.Remote.Listen = "127.0.0.1:7070"
	}
	if c.Remote.Path == "" {
		c.Remote.Path = "/console"
	}
	if c.Remote.ReadTimeout.Duration == 0 {
		c.Remote.ReadTimeout.Duration = 5 * time.Minute
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Console.StartupScript = os.ExpandEnv(c.Console.StartupScript)
	c.Logging.File = os.ExpandEnv(c.Logging.File)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Console.MaxHistory < 0 {
		return fmt.Errorf("console.max_history must not be negative, got %d", c.Console.MaxHistory)
	}
	if c.Console.MaxLogLines < 0 {
		return fmt.Errorf("console.max_log_lines must not be negative, got %d", c.Console.MaxLogLines)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	if !strings.HasPrefix(c.Remote.Path, "/") {
		return fmt.Errorf("remote.path must start with '/', got %q", c.Remote.Path)
	}
	if c.Remote.ReadTimeout.Duration < 0 {
		return fmt.Errorf("remote.read_timeout must not be negative")
	}
	return nil
}

// LoggerConfig derives the logger factory configuration
func (c *Config) LoggerConfig(serviceName string) logging.LoggerConfig {
	return logging.LoggerConfig{
		ServiceName: serviceName,
		Level:       c.Logging.Level,
		Format:      c.Logging.Format,
		File:        c.Logging.File,
	}
}

// LoadFile replaces the console settings with those of the file at path.
// The other sections of the file are ignored.
func (c *ConsoleConfig) LoadFile(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	*c = cfg.Console
	return nil
}
