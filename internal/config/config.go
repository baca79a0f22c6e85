package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonlens/internal/errors"
)

const (
	DefaultIndent    = 2
	DefaultRootName  = "RootInterface"
	DefaultMaxDepth  = 512
	DefaultSeparator = " - "
	DefaultMinWidth  = 3
	DefaultLogLevel  = "info"

	// MaxIndent matches the clamp JSON.stringify applies to its space argument.
	MaxIndent = 10
)

// Config represents the complete configuration for jsonlens
type Config struct {
	Indent int          `yaml:"indent"`
	Schema SchemaConfig `yaml:"schema"`
	Dedupe DedupeConfig `yaml:"dedupe"`
	Log    LogConfig    `yaml:"log"`
}

// SchemaConfig controls the type projection
type SchemaConfig struct {
	RootName string `yaml:"root_name"`
	MaxDepth int    `yaml:"max_depth"`
}

// DedupeConfig controls how repeated strings are numbered
type DedupeConfig struct {
	Separator string `yaml:"separator"`
	MinWidth  int    `yaml:"min_width"`
}

// LogConfig controls diagnostic output on stderr
type LogConfig struct {
	Level string `yaml:"level"`
}

// Overrides holds values given on the command line. Nil or empty fields
// leave the file value in place.
type Overrides struct {
	Indent   *int
	RootName string
	Debug    bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent: DefaultIndent,
		Schema: SchemaConfig{
			RootName: DefaultRootName,
			MaxDepth: DefaultMaxDepth,
		},
		Dedupe: DedupeConfig{
			Separator: DefaultSeparator,
			MinWidth:  DefaultMinWidth,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".jsonlens.yml", ".jsonlens.yaml", "jsonlens.yml", "jsonlens.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			return ""
		}
		dir = parentDir
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > MaxIndent {
		return errors.NewConfigError(fmt.Sprintf("indent must be between 0 and %d, got %d", MaxIndent, c.Indent), nil)
	}
	if c.Schema.MaxDepth <= 0 {
		return errors.NewConfigError(fmt.Sprintf("schema.max_depth must be positive, got %d", c.Schema.MaxDepth), nil)
	}
	if c.Dedupe.MinWidth <= 0 {
		return errors.NewConfigError(fmt.Sprintf("dedupe.min_width must be positive, got %d", c.Dedupe.MinWidth), nil)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// RootName returns the configured root type name in PascalCase,
// e.g. "api response" becomes "ApiResponse".
func (c *Config) RootName() string {
	name := strcase.ToCamel(strings.TrimSpace(c.Schema.RootName))
	if name == "" {
		return DefaultRootName
	}
	return name
}

// LogLevel returns the slog level for log.level. Unknown levels fall back to info;
// Validate reports them.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.NewConfigError(fmt.Sprintf("unknown log level %q", s), nil)
	}
}

// ApplyOverrides lets command line values take precedence over the file.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Indent != nil {
		c.Indent = *o.Indent
	}
	if o.RootName != "" {
		c.Schema.RootName = o.RootName
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
}

// LoadConfigWithCLI loads configPath (defaults when empty), applies the
// command line overrides and validates the result.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
