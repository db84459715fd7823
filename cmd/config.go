package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v3"
)

// Config is the host configuration, loaded from a YAML file.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	LogLevel    string `yaml:"log_level"`
	// Echo prints the value of bare expressions typed at the prompt.
	Echo bool `yaml:"echo"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:   "> ",
		LogLevel: "NOTICE",
		Echo:     true,
	}
}

// LoadConfig reads path on top of the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, fmt.Errorf("%w %s: %w", ErrConfig, path, err)
	}

	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	_, err := c.Level()
	return err
}

// Level parses LogLevel; names are case-insensitive and may be abbreviated
// to their first letter.
func (c Config) Level() (capnslog.LogLevel, error) {
	return capnslog.ParseLevel(strings.ToUpper(c.LogLevel))
}
