// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// ResolveTier computes a module's precedence tier from its directory path
// relative to the content root. A module directly under the root has tier
// 1; each additional nesting level adds one. Lower tier numbers take
// precedence.
//
// The path must stay inside the root: absolute paths, ".", and anything
// escaping via ".." are fatal configuration errors. Forward slashes are
// expected; the loader converts platform separators before calling.
func ResolveTier(modulePath string) (int, error) {
	cleaned := path.Clean(strings.ReplaceAll(modulePath, "\\", "/"))
	if cleaned == "." || cleaned == "" {
		return 0, fmt.Errorf("module path %q is the content root itself; modules must live below it", modulePath)
	}
	if path.IsAbs(cleaned) {
		return 0, fmt.Errorf("module path %q must be relative to the content root", modulePath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return 0, fmt.Errorf("module path %q escapes the content root", modulePath)
	}
	return strings.Count(cleaned, "/") + 1, nil
}

// SortModules orders modules deterministically: ascending tier, then
// lexicographic by path. Registry construction over this order is
// reproducible across runs, which also serves as the documented tiebreak
// for multi-verb modules sharing a tier.
func SortModules(modules []*Module) {
	sort.SliceStable(modules, func(i, j int) bool {
		if modules[i].Tier != modules[j].Tier {
			return modules[i].Tier < modules[j].Tier
		}
		return modules[i].Path < modules[j].Path
	})
}
