// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratamud/strata/internal/content"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid manifest",
			yaml: "name: base-rules\nversion: 1.0.0\nentry: main.lua\n",
		},
		{
			name: "valid with engine constraint",
			yaml: "name: curses\nversion: 0.2.1\nengine: \">= 0.3.0\"\nentry: main.lua\n",
		},
		{
			name:    "empty data",
			yaml:    "",
			wantErr: "manifest data is empty",
		},
		{
			name:    "invalid yaml",
			yaml:    "name: [unclosed",
			wantErr: "invalid YAML",
		},
		{
			name:    "missing name",
			yaml:    "version: 1.0.0\nentry: main.lua\n",
			wantErr: "name",
		},
		{
			name:    "uppercase name rejected",
			yaml:    "name: Base\nversion: 1.0.0\nentry: main.lua\n",
			wantErr: "name",
		},
		{
			name:    "missing version",
			yaml:    "name: base\nentry: main.lua\n",
			wantErr: "version is required",
		},
		{
			name:    "non-semver version",
			yaml:    "name: base\nversion: not-a-version\nentry: main.lua\n",
			wantErr: "not valid semver",
		},
		{
			name:    "invalid engine constraint",
			yaml:    "name: base\nversion: 1.0.0\nengine: \"?!\"\nentry: main.lua\n",
			wantErr: "engine constraint",
		},
		{
			name:    "missing entry",
			yaml:    "name: base\nversion: 1.0.0\n",
			wantErr: "entry is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := content.ParseManifest([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, m.Name)
		})
	}
}

func TestManifest_CompatibleWith(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		engine     string
		want       bool
	}{
		{name: "no constraint accepts anything", constraint: "", engine: "0.0.1", want: true},
		{name: "satisfied range", constraint: ">= 0.2.0, < 1.0.0", engine: "0.3.0", want: true},
		{name: "below minimum", constraint: ">= 0.4.0", engine: "0.3.0", want: false},
		{name: "caret range", constraint: "^0.3", engine: "0.3.9", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &content.Manifest{Name: "mod", Version: "1.0.0", Engine: tt.constraint, Entry: "main.lua"}
			ok, err := m.CompatibleWith(tt.engine)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	t.Run("invalid engine version errors", func(t *testing.T) {
		m := &content.Manifest{Name: "mod", Version: "1.0.0", Engine: ">= 0.1.0", Entry: "main.lua"}
		_, err := m.CompatibleWith("garbage")
		require.Error(t, err)
	})
}
