// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package world

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// entitySpec is the YAML shape of one entity in a world file.
type entitySpec struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	Behaviors  []string       `yaml:"behaviors,omitempty"`
}

// worldFile is the YAML shape of a world file: a flat entity list.
type worldFile struct {
	Entities []entitySpec `yaml:"entities"`
}

// CodeWorldFile tags world file loading failures.
const CodeWorldFile = "WORLD_FILE"

// LoadFile reads a YAML world file into a fresh store. Entity IDs must
// be unique within the file.
func LoadFile(path string) (*Store, error) {
	errb := oops.Code(CodeWorldFile).With("path", path)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errb.Wrap(err)
	}

	var wf worldFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, errb.Hint("invalid YAML").Wrap(err)
	}

	store := NewStore()
	seen := make(map[string]struct{}, len(wf.Entities))
	for _, spec := range wf.Entities {
		if spec.ID == "" {
			return nil, errb.New("entity without an id")
		}
		if _, ok := seen[spec.ID]; ok {
			return nil, errb.With("entity_id", spec.ID).New("duplicate entity id")
		}
		seen[spec.ID] = struct{}{}
		store.Add(&Entity{
			ID:         spec.ID,
			Name:       spec.Name,
			Properties: spec.Properties,
			Behaviors:  spec.Behaviors,
		})
	}
	return store, nil
}
