// Package config loads the identicon command configuration.
//
// Configuration is read from a single YAML file named by the --config flag
// or the IDENTICON_CONFIG environment variable. Flags given on the command
// line override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/flavioheleno/identicon/internal/digest"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "IDENTICON_CONFIG"

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the command configuration.
type Config struct {
	// Hash is the algorithm applied to identity text.
	Hash string `yaml:"hash"`

	// Color controls terminal previews: auto, always or never.
	Color string `yaml:"color"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Server configures the HTTP endpoint.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the HTTP endpoint.
type ServerConfig struct {
	// Listen is the address to serve on, e.g. "127.0.0.1:8420".
	Listen string `yaml:"listen"`

	// MaxAge is the Cache-Control max-age of rendered images, in seconds.
	MaxAge int `yaml:"max_age"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hash:     digest.Default,
		Color:    ColorAuto,
		LogLevel: "info",
		Server: ServerConfig{
			Listen: "127.0.0.1:8420",
			MaxAge: 86400,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if !slices.Contains(digest.Algorithms(), c.Hash) {
		return fmt.Errorf("%w: %q", digest.ErrUnknownAlgorithm, c.Hash)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if c.Server.MaxAge < 0 {
		return fmt.Errorf("server.max_age must not be negative, got %d", c.Server.MaxAge)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
