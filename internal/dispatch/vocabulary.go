// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

// Package dispatch implements the tiered dispatch core: the merged
// vocabulary, event, and handler registries, the state accessor, and the
// command dispatcher.
//
// Registries are mutable during load and frozen once loading completes;
// after freeze they are read-only and safe to share across any number of
// concurrent dispatch calls.
package dispatch

import (
	"sort"

	"github.com/stratamud/strata/internal/content"
)

// tokenClaim records which canonical verb owns a token and which module
// first claimed it, for conflict reporting.
type tokenClaim struct {
	verb   string
	module string
}

// verbRecord is the cross-module merge of one canonical verb.
type verbRecord struct {
	requiresObject bool
	// requiresTier is the tier whose declaration currently governs the
	// requires-object flag; the highest-precedence declaration wins.
	requiresTier int
	synonyms     map[string]struct{}
}

// Vocabulary merges verb, noun, and adjective contributions across
// modules. Synonyms are unioned; a token claimed by two different
// canonical verbs is a load-time conflict at any tier.
type Vocabulary struct {
	frozen     bool
	verbs      map[string]*verbRecord
	tokens     map[string]tokenClaim
	nouns      map[string]struct{}
	adjectives map[string]struct{}
}

// NewVocabulary creates an empty vocabulary registry.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		verbs:      make(map[string]*verbRecord),
		tokens:     make(map[string]tokenClaim),
		nouns:      make(map[string]struct{}),
		adjectives: make(map[string]struct{}),
	}
}

// Register merges one module's vocabulary contribution. All conflicts in
// the contribution are collected and returned, not just the first, so a
// load reports every authoring problem at once.
func (v *Vocabulary) Register(module string, tier int, vocab content.Vocabulary) []error {
	if v.frozen {
		return []error{ErrRegistryFrozen("vocabulary")}
	}

	var conflicts []error
	for _, verb := range sortedVerbs(vocab.Verbs) {
		entry := vocab.Verbs[verb]

		rec, ok := v.verbs[verb]
		if !ok {
			rec = &verbRecord{
				requiresObject: entry.RequiresObject,
				requiresTier:   tier,
				synonyms:       make(map[string]struct{}),
			}
			v.verbs[verb] = rec
		} else if tier < rec.requiresTier {
			rec.requiresObject = entry.RequiresObject
			rec.requiresTier = tier
		} else if tier == rec.requiresTier && entry.RequiresObject {
			rec.requiresObject = true
		}

		if err := v.claim(verb, verb, module); err != nil {
			conflicts = append(conflicts, err)
			continue
		}
		for _, syn := range entry.Synonyms {
			if err := v.claim(syn, verb, module); err != nil {
				conflicts = append(conflicts, err)
				continue
			}
			rec.synonyms[syn] = struct{}{}
		}
	}

	for _, n := range vocab.Nouns {
		v.nouns[content.Normalize(n)] = struct{}{}
	}
	for _, a := range vocab.Adjectives {
		v.adjectives[content.Normalize(a)] = struct{}{}
	}

	return conflicts
}

// claim records token ownership, detecting cross-verb collisions.
// Re-claiming a token for the same canonical verb is idempotent.
func (v *Vocabulary) claim(token, verb, module string) error {
	if existing, ok := v.tokens[token]; ok {
		if existing.verb != verb {
			return ErrSynonymConflict(token, existing.verb, existing.module, verb, module)
		}
		return nil
	}
	v.tokens[token] = tokenClaim{verb: verb, module: module}
	return nil
}

// Freeze marks the registry read-only.
func (v *Vocabulary) Freeze() {
	v.frozen = true
}

// Canonical resolves a verb token or synonym to its canonical verb.
func (v *Vocabulary) Canonical(token string) (string, bool) {
	claim, ok := v.tokens[content.Normalize(token)]
	if !ok {
		return "", false
	}
	return claim.verb, ok
}

// RequiresObject reports whether the canonical verb demands a direct
// object. Unknown verbs report false.
func (v *Vocabulary) RequiresObject(verb string) bool {
	rec, ok := v.verbs[verb]
	return ok && rec.requiresObject
}

// Verbs returns the sorted canonical verb list.
func (v *Vocabulary) Verbs() []string {
	verbs := make([]string, 0, len(v.verbs))
	for verb := range v.verbs {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}

// Synonyms returns the sorted synonyms of a canonical verb.
func (v *Vocabulary) Synonyms(verb string) []string {
	rec, ok := v.verbs[verb]
	if !ok {
		return nil
	}
	syns := make([]string, 0, len(rec.synonyms))
	for s := range rec.synonyms {
		syns = append(syns, s)
	}
	sort.Strings(syns)
	return syns
}

// KnownNoun reports whether the token was contributed as a noun.
func (v *Vocabulary) KnownNoun(token string) bool {
	_, ok := v.nouns[content.Normalize(token)]
	return ok
}

// KnownAdjective reports whether the token was contributed as an adjective.
func (v *Vocabulary) KnownAdjective(token string) bool {
	_, ok := v.adjectives[content.Normalize(token)]
	return ok
}

func sortedVerbs(verbs map[string]content.VerbEntry) []string {
	keys := make([]string, 0, len(verbs))
	for k := range verbs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
