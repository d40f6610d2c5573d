package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "tasklist.yml"

type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Log     LogConfig    `yaml:"log" json:"log"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
	Export  ExportConfig `yaml:"export" json:"export"`

	// Seed tasks are committed once at startup, in order.
	Seed []string `yaml:"seed" json:"seed"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	DevStatic bool   `yaml:"dev_static" json:"dev_static"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`
}

type LogConfig struct {
	// Format is "json" or "text".
	Format string `yaml:"format" json:"format"`
}

type UIConfig struct {
	Title       string `yaml:"title" json:"title"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	CharLimit   int    `yaml:"char_limit" json:"char_limit"`
}

type ExportConfig struct {
	Enabled *bool  `yaml:"enabled" json:"enabled,omitempty"`
	Title   string `yaml:"title" json:"title"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *ServerConfig) ApplyDefaults() {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = ":42069"
	}
	if strings.TrimSpace(c.StaticDir) == "" {
		c.StaticDir = "static"
	}
}

func (c *LogConfig) ApplyDefaults() {
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "text":
		c.Format = "text"
	default:
		c.Format = "json"
	}
}

func (c *UIConfig) ApplyDefaults() {
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "To-Do List"
	}
	if c.Placeholder == "" {
		c.Placeholder = "Add a new task..."
	}
	if c.CharLimit <= 0 {
		c.CharLimit = 256
	}
}

func (c *ExportConfig) ApplyDefaults() {
	if c.Enabled == nil {
		on := true
		c.Enabled = &on
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "To-Do List"
	}
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	c.Server.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.UI.ApplyDefaults()
	c.Export.ApplyDefaults()
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
