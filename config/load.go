package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaypwindley/wax/errors"
)

// Load reads, parses, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Config", "Load", "file read")
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes. Decoding is
// strict: unknown fields are rejected rather than silently dropped, so a
// typo in a key surfaces as an error instead of a default.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.WrapInvalid(err, "Config", "Parse", "yaml decode")
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "Config", "Parse", "validation")
	}

	return &cfg, nil
}
