// Package config provides configuration loading and structs for vecmem.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Demo      DemoConfig      `yaml:"demo"`
	Output    OutputConfig    `yaml:"output"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// StoreConfig holds vector store settings.
type StoreConfig struct {
	// Dimensions fixes the embedding size; defaults to embedding.dimensions.
	Dimensions int `yaml:"dimensions"`
}

// EmbeddingConfig selects the embedding producer used by the demo.
type EmbeddingConfig struct {
	Kind       string `yaml:"kind"`
	Dimensions int    `yaml:"dimensions"`
	Seed       int64  `yaml:"seed"`
	CacheSize  int    `yaml:"cache_size"`
}

// DemoConfig drives the demonstration run.
type DemoConfig struct {
	Phrase    string   `yaml:"phrase"`
	TopK      int      `yaml:"top_k"`
	Queries   []string `yaml:"queries"`
	StableIDs bool     `yaml:"stable_ids"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics dump.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Store.Dimensions < 0 {
		return fmt.Errorf("store.dimensions must not be negative, got %d", c.Store.Dimensions)
	}
	if c.Store.Dimensions != 0 && c.Store.Dimensions != c.Embedding.Dimensions {
		return fmt.Errorf("store.dimensions (%d) must match embedding.dimensions (%d)",
			c.Store.Dimensions, c.Embedding.Dimensions)
	}
	switch c.Embedding.Kind {
	case "random", "hash":
	default:
		return fmt.Errorf("unknown embedding.kind %q (supported: random, hash)", c.Embedding.Kind)
	}
	if c.Demo.TopK < 0 {
		return fmt.Errorf("demo.top_k must not be negative, got %d", c.Demo.TopK)
	}
	switch c.Output.Format {
	case "text", "compact", "json":
	default:
		return fmt.Errorf("unknown output.format %q (supported: text, compact, json)", c.Output.Format)
	}
	return nil
}
