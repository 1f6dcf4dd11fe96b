// Package config loads window settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tinyrange/minifb/internal/keystate"
	"github.com/tinyrange/minifb/internal/scale"
)

const (
	BackendNative   = "native"
	BackendTerminal = "terminal"
)

// Config describes one window.
type Config struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Scale   string `yaml:"scale,omitempty"`
	Backend string `yaml:"backend,omitempty"`
	// Library is the path of the minifb shared library. Empty selects the
	// platform default.
	Library string `yaml:"library,omitempty"`
	// Trace is a file to record frame timings into.
	Trace string `yaml:"trace,omitempty"`

	Repeat RepeatConfig `yaml:"repeat"`
}

// RepeatConfig is the key repeat timing. Omitted fields keep their
// defaults; an explicit 0s repeats immediately.
type RepeatConfig struct {
	Delay Duration `yaml:"delay"`
	Rate  Duration `yaml:"rate"`
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	c := Config{
		Repeat: RepeatConfig{
			Delay: Duration(keystate.DefaultRepeatDelay),
			Rate:  Duration(keystate.DefaultRepeatRate),
		},
	}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Title == "" {
		c.Title = "minifb"
	}
	if c.Width == 0 {
		c.Width = 320
	}
	if c.Height == 0 {
		c.Height = 240
	}
	if c.Scale == "" {
		c.Scale = scale.X2.String()
	}
	if c.Backend == "" {
		c.Backend = BackendNative
	}
}

// Validate checks the fields that Open would otherwise reject later.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if _, err := scale.ParseMode(c.Scale); err != nil {
		return err
	}
	switch c.Backend {
	case BackendNative, BackendTerminal:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Repeat.Delay < 0 || c.Repeat.Rate < 0 {
		return fmt.Errorf("negative key repeat timing")
	}
	return nil
}

// ScaleMode returns the parsed scale. Call Validate first.
func (c Config) ScaleMode() scale.Mode {
	m, _ := scale.ParseMode(c.Scale)
	return m
}

// RepeatPolicy converts the repeat settings.
func (c Config) RepeatPolicy() keystate.RepeatPolicy {
	return keystate.RepeatPolicy{
		Delay: time.Duration(c.Repeat.Delay),
		Rate:  time.Duration(c.Repeat.Rate),
	}
}

// Load reads and validates a config file. Missing fields take their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	// Decode over the defaults so absent keys keep them.
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Save writes c as YAML.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
