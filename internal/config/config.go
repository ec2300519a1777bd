// Package config loads generator options from a YAML file and applies
// defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dispatch-generator/internal/analyze"
)

// DefaultFileName is where Load looks when no path is given.
const DefaultFileName = "dispatchgen.yaml"

// DefaultOutputSuffix is appended to the snake-cased container name to form
// the generated file name.
const DefaultOutputSuffix = "_dispatch.gen.go"

// Config holds all generator options.
type Config struct {
	Version     string            `yaml:"version"`
	Output      OutputConfig      `yaml:"output"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	// Jobs bounds concurrent container processing. 0 means one per CPU.
	Jobs int `yaml:"jobs"`
	// Strict makes warnings fail generation alongside errors.
	Strict bool `yaml:"strict"`
}

// OutputConfig controls generated file naming and gating.
type OutputConfig struct {
	// Suffix of the generated file name.
	Suffix string `yaml:"suffix"`
	// BuildTag gates entry-point stub files; generated files carry its
	// negation.
	BuildTag string `yaml:"build_tag"`
}

// DiagnosticsConfig toggles optional diagnostics.
type DiagnosticsConfig struct {
	// OverlapInfo reports intersecting specific handler error sets as a
	// non-blocking info diagnostic.
	OverlapInfo bool `yaml:"overlap_info"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	applyDefaults(&c)

	return c
}

// Load loads and parses a YAML config file from the given path. A missing
// file at the default path is not an error; defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFileName {
			return Default(), nil
		}

		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and applies defaults.
func Parse(data []byte) (Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Output.Suffix == "" {
		c.Output.Suffix = DefaultOutputSuffix
	}

	if c.Output.BuildTag == "" {
		c.Output.BuildTag = analyze.DefaultBuildTag
	}

	if c.Jobs < 0 {
		c.Jobs = 0
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}
