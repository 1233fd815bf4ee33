package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterbourgon/ff/v3"
	"go.uber.org/zap/zapcore"
)

// load parses args the way the hatch root command does.
func load(t *testing.T, cfg *Config, args []string) error {
	t.Helper()

	fs := flag.NewFlagSet("hatch", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	cfg.RegisterFlags(fs)

	if err := ff.Parse(fs, args, cfg.Options()...); err != nil {
		return err
	}
	return cfg.Resolve()
}

func newTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}

	tempDir := t.TempDir()
	cfg.RootDir = tempDir
	cfg.ConfigFile = filepath.Join(tempDir, ".hatchrc")
	return cfg
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}

	if !strings.HasSuffix(cfg.ConfigFile, ".hatchrc") {
		t.Errorf("ConfigFile should end with '.hatchrc', got: %s", cfg.ConfigFile)
	}

	if !strings.HasSuffix(cfg.RootDir, "code") {
		t.Errorf("RootDir should end with 'code', got: %s", cfg.RootDir)
	}

	if cfg.Domain != DefaultDomain {
		t.Errorf("Domain = %s, want %s", cfg.Domain, DefaultDomain)
	}

	if strings.Join(cfg.Reserved, ",") != "p,www,api,admin" {
		t.Errorf("Reserved = %v, want defaults", cfg.Reserved)
	}

	if cfg.Debug || cfg.Plain {
		t.Error("Debug and Plain should default to false")
	}

	// defaults must not alias the package level list
	cfg.Reserved[0] = "changed"
	if DefaultReserved[0] != "p" {
		t.Error("NewConfig() should copy DefaultReserved")
	}
}

func TestConfigLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(*Config) bool
		wantErr bool
	}{
		{
			name: "empty args",
			args: []string{},
			want: func(c *Config) bool {
				return !c.Debug && c.Domain == DefaultDomain && len(c.Reserved) == len(DefaultReserved)
			},
		},
		{
			name: "debug flag",
			args: []string{"--debug"},
			want: func(c *Config) bool {
				return c.Debug
			},
		},
		{
			name: "plain flag",
			args: []string{"--plain"},
			want: func(c *Config) bool {
				return c.Plain
			},
		},
		{
			name: "domain flag trims dots",
			args: []string{"--domain", ".example.dev"},
			want: func(c *Config) bool {
				return c.Domain == "example.dev"
			},
		},
		{
			name: "reserved flag replaces defaults",
			args: []string{"--reserved", "blog", "--reserved", "shop, docs"},
			want: func(c *Config) bool {
				return strings.Join(c.Reserved, ",") == "blog,shop,docs"
			},
		},
		{
			name: "positional arguments are left alone",
			args: []string{"--debug", "apps"},
			want: func(c *Config) bool {
				return c.Debug
			},
		},
		{
			name:    "empty domain",
			args:    []string{"--domain", " "},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--user", "gfanton"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)

			err := load(t, cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && !tt.want(cfg) {
				t.Errorf("load() result doesn't match expectations for args: %v (%+v)", tt.args, cfg)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	cfg := newTestConfig(t)

	content := `debug = true
domain = "example.dev"
reserved = "blog, docs"
`
	if err := os.WriteFile(cfg.ConfigFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := load(t, cfg, []string{"--config", cfg.ConfigFile}); err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug should be read from the config file")
	}
	if cfg.Domain != "example.dev" {
		t.Errorf("Domain = %s, want example.dev", cfg.Domain)
	}
	if strings.Join(cfg.Reserved, ",") != "blog,docs" {
		t.Errorf("Reserved = %v, want [blog docs]", cfg.Reserved)
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tempDir := t.TempDir()

	t.Setenv("HATCH_ROOT", tempDir)
	t.Setenv("HATCH_DEBUG", "true")
	t.Setenv("HATCH_DOMAIN", "example.dev")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}
	cfg.ConfigFile = filepath.Join(tempDir, ".hatchrc")

	if err := load(t, cfg, []string{}); err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	if cfg.RootDir != tempDir {
		t.Errorf("Expected RootDir=%s from env var, got %s", tempDir, cfg.RootDir)
	}
	if !cfg.Debug {
		t.Errorf("Expected Debug=true from env var, got %t", cfg.Debug)
	}
	if cfg.Domain != "example.dev" {
		t.Errorf("Expected Domain=example.dev from env var, got %s", cfg.Domain)
	}
}

func TestConfigLogger(t *testing.T) {
	tests := []struct {
		name        string
		debug       bool
		expectDebug bool
	}{
		{name: "debug disabled", debug: false, expectDebug: false},
		{name: "debug enabled", debug: true, expectDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Debug: tt.debug}
			if cfg.Logger() == nil {
				t.Fatal("Logger() returned nil")
			}

			var buf bytes.Buffer
			logger := newLogger(zapcore.AddSync(&buf), tt.debug)
			logger.Info("info message")
			logger.Debug("debug message")

			out := buf.String()
			if !strings.Contains(out, "info message") {
				t.Errorf("logger output should contain info message, got: %q", out)
			}
			if strings.Contains(out, "debug message") != tt.expectDebug {
				t.Errorf("debug message logged = %t, want %t", !tt.expectDebug, tt.expectDebug)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/test/home")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "no expansion needed",
			path:     "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "env var expansion",
			path:     "$HOME/Documents",
			expected: "/test/home/Documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expandPath(tt.path); result != tt.expected {
				t.Errorf("expandPath(%s) = %s, want %s", tt.path, result, tt.expected)
			}
		})
	}

	// user.Current() ignores HOME, only check the shape
	t.Run("tilde expansion", func(t *testing.T) {
		result := expandPath("~/Documents")
		if !strings.HasPrefix(result, "/") {
			t.Errorf("expandPath(~/Documents) should return absolute path, got %s", result)
		}
		if !strings.HasSuffix(result, "/Documents") {
			t.Errorf("expandPath(~/Documents) should end with /Documents, got %s", result)
		}
		if strings.Contains(result, "~") {
			t.Errorf("expandPath(~/Documents) should not contain ~, got %s", result)
		}
	})
}
