// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content

import (
	"fmt"
	"strings"
)

// VerbEntry declares one canonical verb contributed by a module.
type VerbEntry struct {
	// Synonyms are alternate tokens resolving to this verb. Canonical
	// tokens and synonyms share one namespace across all modules.
	Synonyms []string

	// RequiresObject marks verbs that are meaningless without a direct
	// object ("take" yes, "inventory" no). The dispatcher rejects
	// objectless actions for such verbs before any handler runs.
	RequiresObject bool

	// Event optionally names the reactive event this module binds to the
	// verb, e.g. "on_examine". Empty means the module contributes no
	// event binding for the verb.
	Event string
}

// Vocabulary is one module's vocabulary contribution.
type Vocabulary struct {
	Verbs      map[string]VerbEntry
	Nouns      []string
	Adjectives []string
}

// Normalize lowercases and trims a vocabulary token.
func Normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Validate checks that verb tokens and synonyms are well-formed. Tokens
// must be non-empty and already canonical (lowercase, trimmed); content
// authored otherwise is a load error, not silently normalized, so module
// files stay greppable.
func (v *Vocabulary) Validate() error {
	for verb, entry := range v.Verbs {
		if verb == "" || verb != Normalize(verb) {
			return fmt.Errorf("verb %q must be a non-empty lowercase token", verb)
		}
		for _, syn := range entry.Synonyms {
			if syn == "" || syn != Normalize(syn) {
				return fmt.Errorf("synonym %q of verb %q must be a non-empty lowercase token", syn, verb)
			}
			if syn == verb {
				return fmt.Errorf("verb %q lists itself as a synonym", verb)
			}
		}
	}
	return nil
}
