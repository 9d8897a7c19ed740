// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package lua

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/stratamud/strata/internal/content"
)

// Host loads Lua-scripted content modules.
//
// An entry script declares a global `module` table:
//
//	module = {
//	    verbs = {
//	        examine = {
//	            synonyms = { "inspect" },
//	            requires_object = true,
//	            event = "on_examine",
//	            handler = true,
//	        },
//	    },
//	    nouns = { "ring" },
//	    adjectives = { "cursed" },
//	    reactions = { "on_examine" },
//	}
//
// A verb with handler=true must define a global function handle_<verb>;
// every declared reaction must define a global function of that name.
// Handler and reactive functions run in a fresh sandboxed state per
// invocation, so no Lua state survives between calls.
type Host struct{}

// NewHost creates a Lua module host.
func NewHost() *Host {
	return &Host{}
}

// LoadModule reads a module's entry script and adapts it into a content
// module. Path and tier are assigned by the loader afterwards.
func (h *Host) LoadModule(_ context.Context, manifest *content.Manifest, dir string) (*content.Module, error) {
	errb := oops.In("lua").With("module", manifest.Name)

	entryPath := filepath.Join(dir, manifest.Entry)
	code, err := os.ReadFile(filepath.Clean(entryPath))
	if err != nil {
		return nil, errb.With("path", entryPath).Hint("failed to read entry file").Wrap(err)
	}

	L, err := newState()
	if err != nil {
		return nil, errb.Wrap(err)
	}
	defer L.Close()

	if err := L.DoString(string(code)); err != nil {
		return nil, errb.With("entry", manifest.Entry).Hint("syntax error").Wrap(err)
	}

	decl, ok := L.GetGlobal("module").(*lua.LTable)
	if !ok {
		return nil, errb.With("entry", manifest.Entry).New("entry script must declare a global 'module' table")
	}

	mod := &content.Module{
		Name:      manifest.Name,
		Handlers:  make(map[string]content.Handler),
		Reactions: make(map[string]content.Reactive),
	}

	if err := h.readVocabulary(L, decl, mod, string(code)); err != nil {
		return nil, errb.Wrap(err)
	}
	if err := h.readReactions(L, decl, mod, string(code)); err != nil {
		return nil, errb.Wrap(err)
	}

	return mod, nil
}

// readVocabulary parses the verbs/nouns/adjectives declaration and binds
// handler closures for verbs declaring one.
func (h *Host) readVocabulary(L *lua.LState, decl *lua.LTable, mod *content.Module, code string) error {
	vocab := content.Vocabulary{Verbs: make(map[string]content.VerbEntry)}

	if verbs, ok := L.GetField(decl, "verbs").(*lua.LTable); ok {
		var declErr error
		verbs.ForEach(func(key, value lua.LValue) {
			if declErr != nil {
				return
			}
			verb, ok := key.(lua.LString)
			if !ok {
				return
			}
			spec, ok := value.(*lua.LTable)
			if !ok {
				declErr = oops.With("verb", string(verb)).New("verb declaration must be a table")
				return
			}

			entry := content.VerbEntry{}
			if syns, ok := L.GetField(spec, "synonyms").(*lua.LTable); ok {
				for i := 1; i <= syns.Len(); i++ {
					if s, ok := syns.RawGetInt(i).(lua.LString); ok {
						entry.Synonyms = append(entry.Synonyms, string(s))
					}
				}
			}
			entry.RequiresObject = lua.LVAsBool(L.GetField(spec, "requires_object"))
			if ev, ok := L.GetField(spec, "event").(lua.LString); ok {
				entry.Event = string(ev)
			}
			vocab.Verbs[string(verb)] = entry

			if lua.LVAsBool(L.GetField(spec, "handler")) {
				name := "handle_" + string(verb)
				if L.GetGlobal(name).Type() != lua.LTFunction {
					declErr = oops.With("verb", string(verb)).Errorf("declared handler but global function %s is missing", name)
					return
				}
				mod.Handlers[string(verb)] = h.handlerFunc(mod.Name, string(verb), code)
			}
		})
		if declErr != nil {
			return declErr
		}
	}

	vocab.Nouns = stringList(L, decl, "nouns")
	vocab.Adjectives = stringList(L, decl, "adjectives")
	mod.Vocabulary = vocab
	return nil
}

// readReactions binds reactive closures for each declared reaction.
func (h *Host) readReactions(L *lua.LState, decl *lua.LTable, mod *content.Module, code string) error {
	reactions, ok := L.GetField(decl, "reactions").(*lua.LTable)
	if !ok {
		return nil
	}
	for i := 1; i <= reactions.Len(); i++ {
		event, ok := reactions.RawGetInt(i).(lua.LString)
		if !ok {
			continue
		}
		if L.GetGlobal(string(event)).Type() != lua.LTFunction {
			return oops.With("event", string(event)).Errorf("declared reaction but global function %s is missing", string(event))
		}
		mod.Reactions[string(event)] = h.reactiveFunc(mod.Name, string(event), code)
	}
	return nil
}

func stringList(L *lua.LState, decl *lua.LTable, field string) []string {
	t, ok := L.GetField(decl, field).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	for i := 1; i <= t.Len(); i++ {
		if s, ok := t.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}
