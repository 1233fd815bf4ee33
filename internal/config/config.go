package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/fftoml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvPrefix prefixes the environment variables read for every flag.
	EnvPrefix = "HATCH"
	// DefaultDomain is the hosting domain projects are served under.
	DefaultDomain = "shuttleapp.rs"
)

// DefaultReserved lists the names the platform never hands out.
var DefaultReserved = []string{"p", "www", "api", "admin"}

// Config holds the global configuration of hatch.
type Config struct {
	ConfigFile string
	Debug      bool
	Plain      bool
	RootDir    string
	Domain     string
	Reserved   []string
}

// NewConfig creates a new configuration with default values.
func NewConfig() (*Config, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	return &Config{
		ConfigFile: filepath.Join(u.HomeDir, ".hatchrc"),
		RootDir:    filepath.Join(u.HomeDir, "code"),
		Domain:     DefaultDomain,
		Reserved:   append([]string(nil), DefaultReserved...),
	}, nil
}

// RegisterFlags adds the configuration flags to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "configuration file path")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.BoolVar(&c.Plain, "plain", c.Plain, "use plain line prompts even on a terminal")
	fs.StringVar(&c.RootDir, "root", c.RootDir, "workspace root searched for existing projects")
	fs.StringVar(&c.Domain, "domain", c.Domain, "hosting domain projects are served under")
	fs.Var(&stringsFlag{values: &c.Reserved}, "reserved", "project names never available (repeatable, comma separated)")
}

// Options returns the ff options reading HATCH_ environment variables and
// the TOML file named by the config flag.
func (c *Config) Options() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithAllowMissingConfigFile(true),
		ff.WithConfigFileParser(fftoml.Parser),
	}
}

// Resolve expands paths and validates the parsed values.
func (c *Config) Resolve() error {
	c.RootDir = expandPath(c.RootDir)
	c.ConfigFile = expandPath(c.ConfigFile)

	c.Domain = strings.Trim(strings.TrimSpace(c.Domain), ".")
	if c.Domain == "" {
		return errors.New("domain cannot be empty")
	}

	reserved := c.Reserved[:0]
	for _, name := range c.Reserved {
		if name = strings.TrimSpace(name); name != "" {
			reserved = append(reserved, name)
		}
	}
	c.Reserved = reserved

	return nil
}

// Logger creates a console logger writing to stderr, at debug level when
// Debug is set.
func (c *Config) Logger() *zap.Logger {
	return newLogger(zapcore.Lock(os.Stderr), c.Debug)
}

func newLogger(out zapcore.WriteSyncer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encodeConfig := zap.NewDevelopmentEncoderConfig()
	encodeConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encodeConfig.EncodeTime = nil
	consoleEncoder := zapcore.NewConsoleEncoder(encodeConfig)
	core := zapcore.NewCore(consoleEncoder, out, level)
	logger := zap.New(core)

	logger.Debug("logger initialised")
	return logger
}

// stringsFlag is a repeatable list flag. The first Set replaces the
// defaults; values may also be comma separated.
type stringsFlag struct {
	values *[]string
	set    bool
}

func (s *stringsFlag) String() string {
	if s == nil || s.values == nil {
		return ""
	}
	return strings.Join(*s.values, ",")
}

func (s *stringsFlag) Set(value string) error {
	if !s.set {
		*s.values = nil
		s.set = true
	}

	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s.values = append(*s.values, v)
		}
	}
	return nil
}

// expandPath expands environment variables and ~ in paths.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if u, err := user.Current(); err == nil {
			return strings.Replace(path, "~", u.HomeDir, 1)
		}
	}
	return path
}
