package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonlens/internal/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "RootInterface", cfg.Schema.RootName)
	assert.Equal(t, 512, cfg.Schema.MaxDepth)
	assert.Equal(t, " - ", cfg.Dedupe.Separator)
	assert.Equal(t, 3, cfg.Dedupe.MinWidth)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "jsonlens.yml", `
indent: 4
schema:
  root_name: api response
  max_depth: 64
dedupe:
  separator: "#"
  min_width: 2
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, "ApiResponse", cfg.RootName())
	assert.Equal(t, 64, cfg.Schema.MaxDepth)
	assert.Equal(t, "#", cfg.Dedupe.Separator)
	assert.Equal(t, 2, cfg.Dedupe.MinWidth)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".jsonlens.yml", "dedupe:\n  min_width: 4\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Dedupe.MinWidth)
	assert.Equal(t, " - ", cfg.Dedupe.Separator)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "RootInterface", cfg.RootName())
}

func TestConfig_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yml")},
		{"invalid yaml", writeConfig(t, dir, "bad.yml", "indent: [1, 2\n")},
		{"invalid value", writeConfig(t, dir, "range.yml", "indent: 11\n")},
		{"unknown level", writeConfig(t, dir, "level.yml", "log:\n  level: loud\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			require.Error(t, err)
			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeConfig, appErr.Type)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"compact indent", func(c *Config) { c.Indent = 0 }, false},
		{"max indent", func(c *Config) { c.Indent = MaxIndent }, false},
		{"negative indent", func(c *Config) { c.Indent = -1 }, true},
		{"zero depth", func(c *Config) { c.Schema.MaxDepth = 0 }, true},
		{"zero width", func(c *Config) { c.Dedupe.MinWidth = 0 }, true},
		{"warning level", func(c *Config) { c.Log.Level = "WARNING" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_RootName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", "RootInterface"},
		{"   ", "RootInterface"},
		{"RootInterface", "RootInterface"},
		{"api response", "ApiResponse"},
		{"user_profile", "UserProfile"},
		{"order-item", "OrderItem"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Schema.RootName = tt.in
			assert.Equal(t, tt.expected, cfg.RootName())
		})
	}
}

func TestConfig_LogLevel(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())

	cfg.Log.Level = "error"
	assert.Equal(t, slog.LevelError, cfg.LogLevel())

	cfg.Log.Level = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, findConfigFrom(nested))

	want := writeConfig(t, root, ".jsonlens.yaml", "indent: 2\n")
	assert.Equal(t, want, findConfigFrom(nested))

	closer := writeConfig(t, filepath.Join(root, "a"), "jsonlens.yml", "indent: 2\n")
	assert.Equal(t, closer, findConfigFrom(nested))
}

func TestFindConfigFile_FromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, ".jsonlens.yml", "indent: 2\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	got := FindConfigFile()
	// The temp dir may be reached through a symlink, so compare resolved paths.
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	wantResolved, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "jsonlens.yml", "indent: 4\nschema:\n  root_name: FromFile\n")

	t.Run("file values without overrides", func(t *testing.T) {
		cfg, err := LoadConfigWithCLI(path, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Indent)
		assert.Equal(t, "FromFile", cfg.RootName())
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	})

	t.Run("overrides win", func(t *testing.T) {
		indent := 0
		cfg, err := LoadConfigWithCLI(path, Overrides{Indent: &indent, RootName: "cli name", Debug: true})
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Indent)
		assert.Equal(t, "CliName", cfg.RootName())
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := LoadConfigWithCLI("", Overrides{})
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
	})

	t.Run("invalid override", func(t *testing.T) {
		indent := 42
		_, err := LoadConfigWithCLI("", Overrides{Indent: &indent})
		assert.Error(t, err)
	})
}
