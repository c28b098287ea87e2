package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/marckit/pkg/charset"
	"github.com/joshuapare/marckit/pkg/marc"
)

// Config holds the conversion settings that can be kept in a YAML file.
// Command-line flags override the file.
type Config struct {
	Format            string  `yaml:"format"`
	Input             string  `yaml:"input"`
	Debug             int     `yaml:"debug"`
	SubfieldSeparator string  `yaml:"subfield_separator"`
	LineTerminator    string  `yaml:"line_terminator"`
	LeaderSpec        string  `yaml:"leader_spec"`
	FromCharset       string  `yaml:"from_charset"`
	ToCharset         string  `yaml:"to_charset"`
	Logging           Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Format:            marc.ModeLine.String(),
		Input:             "iso2709",
		SubfieldSeparator: " $",
		LineTerminator:    "\n",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the config into handle options.
func (c *Config) Options() (marc.Options, error) {
	mode, err := marc.ParseMode(c.Format)
	if err != nil {
		return marc.Options{}, err
	}
	opts := marc.DefaultOptions()
	opts.Mode = mode
	opts.Debug = c.Debug
	opts.SubfieldSeparator = c.SubfieldSeparator
	opts.LineTerminator = c.LineTerminator
	opts.LeaderSpec = c.LeaderSpec

	if c.FromCharset != "" || c.ToCharset != "" {
		from, to := c.FromCharset, c.ToCharset
		if from == "" {
			from = "utf-8"
		}
		if to == "" {
			to = "utf-8"
		}
		conv, err := charset.New(from, to)
		if err != nil {
			return marc.Options{}, err
		}
		opts.Converter = conv
	}
	return opts, nil
}
