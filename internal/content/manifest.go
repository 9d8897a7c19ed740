// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the per-module manifest filename the loader looks for.
const ManifestFile = "module.yaml"

// Manifest represents a module.yaml file.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Engine is an optional semver constraint on the engine version this
	// module is compatible with, e.g. ">= 0.2.0".
	Engine string `yaml:"engine,omitempty"`

	// Entry is the Lua entry script, relative to the module directory.
	Entry string `yaml:"entry"`
}

// maxNameLength is the maximum allowed length for module names.
const maxNameLength = 64

// namePattern validates module names: lowercase letter first, then
// lowercase letters, digits, underscores, or hyphens, not ending with a
// separator. Single character names are allowed.
var namePattern = regexp.MustCompile(`^[a-z]([a-z0-9_-]*[a-z0-9])?$`)

// ParseManifest parses and validates a module.yaml file.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	if m.Name == "" || !namePattern.MatchString(m.Name) {
		return fmt.Errorf("name %q must start with a-z and contain only a-z, 0-9, underscores, and hyphens", m.Name)
	}
	if len(m.Name) > maxNameLength {
		return fmt.Errorf("name must be %d characters or less, got %d", maxNameLength, len(m.Name))
	}

	if m.Version == "" {
		return fmt.Errorf("version is required")
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return fmt.Errorf("version %q is not valid semver: %w", m.Version, err)
	}

	if m.Engine != "" {
		if _, err := semver.NewConstraint(m.Engine); err != nil {
			return fmt.Errorf("engine constraint %q is invalid: %w", m.Engine, err)
		}
	}

	if m.Entry == "" {
		return fmt.Errorf("entry is required")
	}

	return nil
}

// CompatibleWith reports whether the module accepts the given engine
// version. A manifest without an engine constraint accepts any version.
func (m *Manifest) CompatibleWith(engineVersion string) (bool, error) {
	if m.Engine == "" {
		return true, nil
	}
	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return false, fmt.Errorf("engine version %q is not valid semver: %w", engineVersion, err)
	}
	c, err := semver.NewConstraint(m.Engine)
	if err != nil {
		return false, fmt.Errorf("engine constraint %q is invalid: %w", m.Engine, err)
	}
	return c.Check(v), nil
}
