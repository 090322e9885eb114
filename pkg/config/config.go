// Package config loads and validates the YAML run configuration shared
// by the bloomdbg commands.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

// Config is the on-disk run configuration. Zero fields fall back to
// Default values before validation, so a config file only needs to name
// what it changes.
type Config struct {
	K          int    `yaml:"k" validate:"min=2,max=255"`
	NumHashes  int    `yaml:"num_hashes" validate:"min=1,max=16"`
	SpacedSeed string `yaml:"spaced_seed"`
	FilterBits uint64 `yaml:"filter_bits" validate:"min=64"`
	Workers    int    `yaml:"workers" validate:"min=0"`
	LogLevel   string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the builder defaults: k=31 with 4 hash functions and a
// 512 MiB filter, no spaced seed.
func Default() Config {
	return Config{
		K:          31,
		NumHashes:  4,
		FilterBits: 512 << 23, // 512 MiB in bits
		LogLevel:   "info",
	}
}

// Load reads and validates a config file, applying Default for absent
// fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse unmarshals and validates YAML config data.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and the cross-field seed constraint.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	// The seed constraints (length == k, informative boundaries) live in
	// the kmer package; run them here so a bad file fails at load time.
	if _, err := kmer.NewConfig(c.K, c.NumHashes, c.SpacedSeed); err != nil {
		return err
	}
	return nil
}

// KmerConfig converts to the kmer package's validated configuration.
func (c Config) KmerConfig() (kmer.Config, error) {
	return kmer.NewConfig(c.K, c.NumHashes, c.SpacedSeed)
}
