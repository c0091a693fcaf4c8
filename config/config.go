// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration used to set up codec
// registries and logging.
//
// A configuration file looks like:
//
//	mmap: true
//	log_level: debug
//	codecs:
//	  tensor:
//	    extensions: [".t5", ".tensorfile"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the library and CLI configuration.
type Config struct {
	// Codecs maps a registered codec name to its additional settings.
	Codecs map[string]CodecConfig `yaml:"codecs,omitempty"`
	// Mmap enables memory-mapped reads when lazily loading files.
	Mmap bool `yaml:"mmap"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// CodecConfig holds per-codec settings.
type CodecConfig struct {
	// Extensions are aliased to the codec, on top of the ones it
	// declares itself.
	Extensions []string `yaml:"extensions,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mmap:     true,
		LogLevel: "info",
	}
}

// Load reads and validates the configuration file at path. Settings
// missing from the file keep their Default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the log level and the codec sections.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, name := range c.CodecNames() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid config: empty codec name")
		}
		for _, ext := range c.Codecs[name].Extensions {
			if e := strings.TrimSpace(ext); e == "" || e == "." {
				return fmt.Errorf("invalid config: codec %q has an empty extension", name)
			}
		}
	}
	return nil
}

// Level returns LogLevel as a slog.Level. An empty LogLevel means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// CodecNames returns the names of the configured codecs, sorted.
func (c *Config) CodecNames() []string {
	names := make([]string, 0, len(c.Codecs))
	for name := range c.Codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
