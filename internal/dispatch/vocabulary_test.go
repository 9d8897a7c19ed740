// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/dispatch"
	"github.com/stratamud/strata/pkg/errutil"
)

func TestVocabulary_SynonymsUnionAcrossModules(t *testing.T) {
	v := dispatch.NewVocabulary()

	conflicts := v.Register("base", 2, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"examine": {Synonyms: []string{"inspect"}},
		},
	})
	require.Empty(t, conflicts)

	conflicts = v.Register("curses", 1, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"examine": {Synonyms: []string{"scrutinize"}},
		},
	})
	require.Empty(t, conflicts)
	v.Freeze()

	assert.Equal(t, []string{"inspect", "scrutinize"}, v.Synonyms("examine"))

	canon, ok := v.Canonical("scrutinize")
	assert.True(t, ok)
	assert.Equal(t, "examine", canon)

	canon, ok = v.Canonical("examine")
	assert.True(t, ok)
	assert.Equal(t, "examine", canon)
}

func TestVocabulary_AmbiguousSynonymConflict(t *testing.T) {
	v := dispatch.NewVocabulary()

	require.Empty(t, v.Register("base", 1, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"look": {Synonyms: []string{"peer"}},
		},
	}))

	conflicts := v.Register("spyglass", 2, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"scry": {Synonyms: []string{"peer"}},
		},
	})
	require.Len(t, conflicts, 1)
	errutil.AssertErrorCode(t, conflicts[0], dispatch.CodeSynonymConflict)
	errutil.AssertErrorContext(t, conflicts[0], "token", "peer")
	errutil.AssertErrorContext(t, conflicts[0], "module_a", "base")
	errutil.AssertErrorContext(t, conflicts[0], "module_b", "spyglass")
}

func TestVocabulary_SynonymClaimIsIdempotent(t *testing.T) {
	v := dispatch.NewVocabulary()

	require.Empty(t, v.Register("base", 1, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"take": {Synonyms: []string{"grab"}},
		},
	}))
	// Re-declaring the identical synonym for the same verb is fine.
	require.Empty(t, v.Register("extras", 2, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{
			"take": {Synonyms: []string{"grab"}},
		},
	}))
}

func TestVocabulary_RequiresObjectHighestPrecedenceWins(t *testing.T) {
	v := dispatch.NewVocabulary()

	require.Empty(t, v.Register("base", 2, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{"examine": {RequiresObject: false}},
	}))
	assert.False(t, v.RequiresObject("examine"))

	// A tier-1 declaration overrides the tier-2 flag.
	require.Empty(t, v.Register("strict", 1, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{"examine": {RequiresObject: true}},
	}))
	assert.True(t, v.RequiresObject("examine"))

	// A deeper tier cannot relax it back.
	require.Empty(t, v.Register("lax", 3, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{"examine": {RequiresObject: false}},
	}))
	assert.True(t, v.RequiresObject("examine"))
}

func TestVocabulary_NounsAndAdjectives(t *testing.T) {
	v := dispatch.NewVocabulary()
	require.Empty(t, v.Register("base", 1, content.Vocabulary{
		Nouns:      []string{"Sword", "ring"},
		Adjectives: []string{"Glowing"},
	}))
	v.Freeze()

	assert.True(t, v.KnownNoun("sword"))
	assert.True(t, v.KnownNoun("RING"))
	assert.False(t, v.KnownNoun("castle"))
	assert.True(t, v.KnownAdjective("glowing"))
}

func TestVocabulary_FrozenRejectsRegistration(t *testing.T) {
	v := dispatch.NewVocabulary()
	v.Freeze()

	conflicts := v.Register("late", 1, content.Vocabulary{
		Verbs: map[string]content.VerbEntry{"sneak": {}},
	})
	require.Len(t, conflicts, 1)
	errutil.AssertErrorCode(t, conflicts[0], dispatch.CodeRegistryFrozen)
}

func TestVocabulary_UnknownToken(t *testing.T) {
	v := dispatch.NewVocabulary()
	v.Freeze()

	_, ok := v.Canonical("xyzzy")
	assert.False(t, ok)
	assert.False(t, v.RequiresObject("xyzzy"))
}
