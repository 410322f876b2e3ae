package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/graeme-hill/zypy-go/lib"
)

// Config holds the settings of the zypy command line tool.
type Config struct {
	Output OutputConfig `toml:"output"`
	Index  IndexConfig  `toml:"index"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig controls how lex and parse results are printed.
type OutputConfig struct {
	Format string `toml:"format"`
}

// IndexConfig is the Postgres database imports are recorded in.
type IndexConfig struct {
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

var formats = []string{"text", "json", "yaml"}

var levels = []string{"debug", "info", "warn", "error"}

// Load reads the TOML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// keys set to "" in the file fall back again
	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Index.Table == "" {
		c.Index.Table = lib.DefaultIndexTable
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// expandEnvVars lets the DSN be given as "${ZYPY_DSN}" so credentials stay
// out of the file.
func (c *Config) expandEnvVars() {
	c.Index.DSN = os.ExpandEnv(c.Index.DSN)
}

func (c *Config) Validate() error {
	if !oneOf(c.Output.Format, formats) {
		return fmt.Errorf("invalid output format %q, expected one of %s", c.Output.Format, strings.Join(formats, ", "))
	}
	if !oneOf(c.Log.Level, levels) {
		return fmt.Errorf("invalid log level %q, expected one of %s", c.Log.Level, strings.Join(levels, ", "))
	}
	return nil
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
