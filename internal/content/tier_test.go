// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratamud/strata/internal/content"
)

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int
		wantErr bool
	}{
		{name: "directly under root", path: "base", want: 1},
		{name: "one level nested", path: "lib/magic", want: 2},
		{name: "two levels nested", path: "games/keep/quests", want: 3},
		{name: "trailing slash is cleaned", path: "base/", want: 1},
		{name: "redundant segments are cleaned", path: "lib/./magic", want: 2},
		{name: "windows separators accepted", path: `lib\magic`, want: 2},
		{name: "root itself rejected", path: ".", wantErr: true},
		{name: "empty path rejected", path: "", wantErr: true},
		{name: "absolute path rejected", path: "/etc/content", wantErr: true},
		{name: "escape via dotdot rejected", path: "../outside", wantErr: true},
		{name: "nested escape rejected", path: "lib/../../outside", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := content.ResolveTier(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestSortModules(t *testing.T) {
	mods := []*content.Module{
		{Name: "zoo", Path: "lib/zoo", Tier: 2},
		{Name: "base", Path: "base", Tier: 1},
		{Name: "ant", Path: "lib/ant", Tier: 2},
		{Name: "deep", Path: "lib/zoo/deep", Tier: 3},
	}

	content.SortModules(mods)

	var order []string
	for _, m := range mods {
		order = append(order, m.Name)
	}
	assert.Equal(t, []string{"base", "ant", "zoo", "deep"}, order)
}
