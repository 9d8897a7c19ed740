// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package lua_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/content/lua"
	"github.com/stratamud/strata/internal/world"
)

// fakeAccessor records updates and serves canned entities.
type fakeAccessor struct {
	actor    string
	entities map[string]*world.Entity
	updates  []map[string]any
	result   content.UpdateResult
}

func (f *fakeAccessor) ActorID() string { return f.actor }

func (f *fakeAccessor) Entity(_ context.Context, id string) (*world.Entity, error) {
	e, ok := f.entities[id]
	if !ok {
		return nil, world.ErrEntityNotFound(id)
	}
	return e, nil
}

func (f *fakeAccessor) Update(_ context.Context, _ string, changes map[string]any, _ string) (content.UpdateResult, error) {
	f.updates = append(f.updates, changes)
	return f.result, nil
}

func loadScript(t *testing.T, script string) (*content.Module, error) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte(script), 0o600))

	manifest := &content.Manifest{Name: "testmod", Version: "1.0.0", Entry: "main.lua"}
	return lua.NewHost().LoadModule(context.Background(), manifest, dir)
}

func TestLoadModule_Vocabulary(t *testing.T) {
	mod, err := loadScript(t, `
module = {
    verbs = {
        examine = {
            synonyms = { "inspect", "look_at" },
            requires_object = true,
            event = "on_examine",
            handler = true,
        },
        wave = {},
    },
    nouns = { "ring", "sword" },
    adjectives = { "cursed" },
}

function handle_examine(action)
    return { success = true, message = "You see nothing special." }
end
`)
	require.NoError(t, err)

	assert.Equal(t, "testmod", mod.Name)
	require.Contains(t, mod.Vocabulary.Verbs, "examine")
	entry := mod.Vocabulary.Verbs["examine"]
	assert.Equal(t, []string{"inspect", "look_at"}, entry.Synonyms)
	assert.True(t, entry.RequiresObject)
	assert.Equal(t, "on_examine", entry.Event)

	assert.Contains(t, mod.Vocabulary.Verbs, "wave")
	assert.Equal(t, []string{"ring", "sword"}, mod.Vocabulary.Nouns)
	assert.Equal(t, []string{"cursed"}, mod.Vocabulary.Adjectives)

	assert.Contains(t, mod.Handlers, "examine")
	assert.NotContains(t, mod.Handlers, "wave")
}

func TestLoadModule_HandlerInvocation(t *testing.T) {
	mod, err := loadScript(t, `
module = {
    verbs = { examine = { handler = true } },
}

function handle_examine(action)
    return {
        success = true,
        message = "You examine the " .. action.object .. ".",
        payload = { object = action.object },
    }
end
`)
	require.NoError(t, err)

	inv := content.NewInvocation(content.Action{Verb: "examine", ActorID: "hero", ObjectID: "ring"}, 1,
		&fakeAccessor{actor: "hero"}, nil)
	res, err := mod.Handlers["examine"](context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "You examine the ring.", res.Message)
	assert.Equal(t, map[string]any{"object": "ring"}, res.Payload)
}

func TestLoadModule_HandlerHostFunctions(t *testing.T) {
	mod, err := loadScript(t, `
module = {
    verbs = { take = { handler = true } },
}

function handle_take(action)
    local owner = strata.get(action.object, "owner")
    if owner ~= nil and owner ~= strata.actor() then
        return { success = false, message = "That belongs to " .. owner .. "." }
    end
    local r = strata.update(action.object, { held_by = strata.actor() })
    return { success = r.applied, message = r.message }
end
`)
	require.NoError(t, err)

	acc := &fakeAccessor{
		actor:    "hero",
		entities: map[string]*world.Entity{"coin": {ID: "coin"}},
		result:   content.UpdateResult{Applied: true, Message: "Taken."},
	}
	inv := content.NewInvocation(content.Action{Verb: "take", ActorID: "hero", ObjectID: "coin"}, 1, acc, nil)

	res, err := mod.Handlers["take"](context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Taken.", res.Message)
	require.Len(t, acc.updates, 1)
	assert.Equal(t, map[string]any{"held_by": "hero"}, acc.updates[0])
}

func TestLoadModule_HandlerDelegation(t *testing.T) {
	mod, err := loadScript(t, `
module = {
    verbs = { examine = { handler = true } },
}

function handle_examine(action)
    local deeper = strata.delegate()
    if deeper == nil then
        return { success = false, message = "Nothing to see." }
    end
    return { success = true, message = deeper.message .. " It hums with power." }
end
`)
	require.NoError(t, err)

	delegate := func(_ context.Context) (content.Result, bool, error) {
		return content.Result{Success: true, Message: "You see a sword."}, true, nil
	}
	inv := content.NewInvocation(content.Action{Verb: "examine", ObjectID: "sword"}, 1,
		&fakeAccessor{actor: "hero"}, delegate)

	res, err := mod.Handlers["examine"](context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "You see a sword. It hums with power.", res.Message)

	// Without a deeper handler the script falls back on its own message.
	inv = content.NewInvocation(content.Action{Verb: "examine"}, 1, &fakeAccessor{actor: "hero"}, nil)
	res, err = mod.Handlers["examine"](context.Background(), inv)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Nothing to see.", res.Message)
}

func TestLoadModule_Reactions(t *testing.T) {
	mod, err := loadScript(t, `
module = {
    verbs = { open = { event = "on_open" } },
    reactions = { "on_open" },
}

function on_open(entity, rc)
    if entity.properties.locked then
        return { allow = false, message = "The " .. entity.name .. " is locked." }
    end
    return { allow = true, message = "It creaks open for " .. rc.actor .. "." }
end
`)
	require.NoError(t, err)

	fn, ok := mod.Reaction("on_open")
	require.True(t, ok)

	rc := &content.ReactionContext{ActorID: "hero", Verb: "open", Changes: map[string]any{"open": true},
		Accessor: &fakeAccessor{actor: "hero"}}

	locked := &world.Entity{ID: "chest", Name: "chest", Properties: map[string]any{"locked": true}}
	reaction, err := fn(context.Background(), locked, rc)
	require.NoError(t, err)
	assert.False(t, reaction.Allow)
	assert.Equal(t, "The chest is locked.", reaction.Message)

	unlocked := &world.Entity{ID: "chest", Name: "chest"}
	reaction, err = fn(context.Background(), unlocked, rc)
	require.NoError(t, err)
	assert.True(t, reaction.Allow)
	assert.Equal(t, "It creaks open for hero.", reaction.Message)
}

func TestLoadModule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{
			name:    "syntax error",
			script:  `module = {`,
			wantErr: "syntax",
		},
		{
			name:    "missing module table",
			script:  `local x = 1`,
			wantErr: "module",
		},
		{
			name: "declared handler missing",
			script: `
module = { verbs = { examine = { handler = true } } }
`,
			wantErr: "handle_examine",
		},
		{
			name: "declared reaction missing",
			script: `
module = { reactions = { "on_open" } }
`,
			wantErr: "on_open",
		},
		{
			name: "verb declaration not a table",
			script: `
module = { verbs = { examine = "yes" } }
`,
			wantErr: "table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScript(t, tt.script)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadModule_HandlerMustReturnTable(t *testing.T) {
	mod, err := loadScript(t, `
module = { verbs = { hum = { handler = true } } }

function handle_hum(action)
    return "not a table"
end
`)
	require.NoError(t, err)

	inv := content.NewInvocation(content.Action{Verb: "hum"}, 1, &fakeAccessor{actor: "hero"}, nil)
	_, err = mod.Handlers["hum"](context.Background(), inv)
	require.Error(t, err)
	assert.ErrorContains(t, err, "table")
}

func TestLoadModule_SandboxBlocksIO(t *testing.T) {
	mod, err := loadScript(t, `
module = { verbs = { probe = { handler = true } } }

function handle_probe(action)
    if os ~= nil or io ~= nil or dofile ~= nil then
        return { success = true, message = "escaped" }
    end
    return { success = false, message = "contained" }
end
`)
	require.NoError(t, err)

	inv := content.NewInvocation(content.Action{Verb: "probe"}, 1, &fakeAccessor{actor: "hero"}, nil)
	res, err := mod.Handlers["probe"](context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "contained", res.Message)
}

func TestLoadModule_RuntimeErrorSurfaces(t *testing.T) {
	mod, err := loadScript(t, `
module = { verbs = { jinx = { handler = true } } }

function handle_jinx(action)
    error("script blew up")
end
`)
	require.NoError(t, err)

	inv := content.NewInvocation(content.Action{Verb: "jinx"}, 1, &fakeAccessor{actor: "hero"}, nil)
	_, err = mod.Handlers["jinx"](context.Background(), inv)
	require.Error(t, err)
	assert.ErrorContains(t, err, "script blew up")
}
