// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/stratamud/strata/internal/engine"
	"github.com/stratamud/strata/internal/xdg"
)

// Config holds CLI configuration, merged from defaults, an optional YAML
// config file, and command-line flags (highest precedence).
type Config struct {
	Root          string `koanf:"root"`
	EngineVersion string `koanf:"engine-version"`
	LogFormat     string `koanf:"log-format"`
}

// Validate checks required configuration.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("content root is required (--root or 'root' in config)")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}

// LoadConfig merges configuration for a command: struct defaults, then
// the YAML config file if one was given, then any flags the user set.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		EngineVersion: engine.Version,
		LogFormat:     "text",
	}

	k := koanf.New(".")

	// Fall back to the XDG config file when none was given explicitly.
	if configPath == "" {
		if candidate := xdg.ConfigFile(); fileExists(candidate) {
			configPath = candidate
		}
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Flags override file values only when explicitly set.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("load flags: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// addCommonFlags registers the flags shared by content-loading commands.
func addCommonFlags(flags *pflag.FlagSet) {
	flags.String("root", "", "content root directory")
	flags.String("engine-version", engine.Version, "engine version to check module compatibility against")
	flags.String("log-format", "text", "log output format: json or text")
}
