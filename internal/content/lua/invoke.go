// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package lua

import (
	"context"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/world"
)

// handlerFunc adapts a global handle_<verb> Lua function into a command
// handler. Each invocation runs in a fresh sandboxed state with the
// strata host table registered.
func (h *Host) handlerFunc(module, verb, code string) content.Handler {
	fnName := "handle_" + verb
	return func(ctx context.Context, inv *content.Invocation) (content.Result, error) {
		errb := oops.In("lua").With("module", module).With("verb", verb)

		L, err := newState()
		if err != nil {
			return content.Result{}, errb.Wrap(err)
		}
		defer L.Close()
		L.SetContext(ctx)

		registerHandlerFuncs(L, inv)

		if err := L.DoString(code); err != nil {
			return content.Result{}, errb.Hint("failed to load code").Wrap(err)
		}

		fn := L.GetGlobal(fnName)
		if fn.Type() != lua.LTFunction {
			return content.Result{}, errb.Errorf("global function %s is missing", fnName)
		}

		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, actionTable(L, inv.Action)); err != nil {
			return content.Result{}, errb.Wrap(err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		return parseResult(ret, errb)
	}
}

// reactiveFunc adapts a global Lua function named after the event into an
// entity reactive function.
func (h *Host) reactiveFunc(module, event, code string) content.Reactive {
	return func(ctx context.Context, entity *world.Entity, rc *content.ReactionContext) (content.Reaction, error) {
		errb := oops.In("lua").With("module", module).With("event", event).With("entity_id", entity.ID)

		L, err := newState()
		if err != nil {
			return content.Reaction{}, errb.Wrap(err)
		}
		defer L.Close()
		L.SetContext(ctx)

		registerReactionFuncs(L, rc)

		if err := L.DoString(code); err != nil {
			return content.Reaction{}, errb.Hint("failed to load code").Wrap(err)
		}

		fn := L.GetGlobal(event)
		if fn.Type() != lua.LTFunction {
			return content.Reaction{}, errb.Errorf("global function %s is missing", event)
		}

		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			entityTable(L, entity), reactionContextTable(L, rc)); err != nil {
			return content.Reaction{}, errb.Wrap(err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		return parseReaction(ret, errb)
	}
}

// registerHandlerFuncs installs the strata host table for a handler
// invocation: delegate(), update(id, changes), get(id, prop), actor().
func registerHandlerFuncs(L *lua.LState, inv *content.Invocation) {
	t := L.NewTable()

	L.SetField(t, "delegate", L.NewFunction(func(L *lua.LState) int {
		res, ok, err := inv.Delegate(L.Context())
		if err != nil {
			L.RaiseError("delegate failed: %s", err.Error())
			return 0
		}
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(resultTable(L, res))
		return 1
	}))

	L.SetField(t, "update", L.NewFunction(func(L *lua.LState) int {
		entityID := L.CheckString(1)
		changes := tableToMap(L.CheckTable(2))
		res, err := inv.Accessor.Update(L.Context(), entityID, changes, inv.Action.Verb)
		if err != nil {
			L.RaiseError("update failed: %s", err.Error())
			return 0
		}
		out := L.NewTable()
		L.SetField(out, "applied", lua.LBool(res.Applied))
		L.SetField(out, "message", lua.LString(res.Message))
		L.Push(out)
		return 1
	}))

	registerAccessorFuncs(L, t, inv.Accessor)
	L.SetGlobal("strata", t)
}

// registerReactionFuncs installs the strata host table for a reactive
// invocation. Reactions read state but do not re-enter Update; exposing
// mutation from inside a reaction would recurse into the accessor
// mid-update.
func registerReactionFuncs(L *lua.LState, rc *content.ReactionContext) {
	t := L.NewTable()
	registerAccessorFuncs(L, t, rc.Accessor)
	L.SetGlobal("strata", t)
}

func registerAccessorFuncs(L *lua.LState, t *lua.LTable, accessor content.Accessor) {
	L.SetField(t, "actor", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(accessor.ActorID()))
		return 1
	}))

	L.SetField(t, "get", L.NewFunction(func(L *lua.LState) int {
		entityID := L.CheckString(1)
		prop := L.CheckString(2)
		entity, err := accessor.Entity(L.Context(), entityID)
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		value, ok := entity.Property(prop)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(toLua(L, value))
		return 1
	}))
}

func actionTable(L *lua.LState, action content.Action) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(action.ID.String()))
	L.SetField(t, "verb", lua.LString(action.Verb))
	L.SetField(t, "actor", lua.LString(action.ActorID))
	L.SetField(t, "object", lua.LString(action.ObjectID))
	L.SetField(t, "indirect", lua.LString(action.IndirectID))
	L.SetField(t, "object_desc", lua.LString(action.ObjectDesc))
	L.SetField(t, "indirect_desc", lua.LString(action.IndirectDesc))
	L.SetField(t, "args", lua.LString(action.Args))
	return t
}

func entityTable(L *lua.LState, entity *world.Entity) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(entity.ID))
	L.SetField(t, "name", lua.LString(entity.Name))
	L.SetField(t, "properties", mapToTable(L, entity.Properties))
	return t
}

func reactionContextTable(L *lua.LState, rc *content.ReactionContext) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "actor", lua.LString(rc.ActorID))
	L.SetField(t, "verb", lua.LString(rc.Verb))
	L.SetField(t, "changes", mapToTable(L, rc.Changes))
	return t
}

func resultTable(L *lua.LState, res content.Result) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "success", lua.LBool(res.Success))
	L.SetField(t, "message", lua.LString(res.Message))
	if res.Payload != nil {
		L.SetField(t, "payload", mapToTable(L, res.Payload))
	}
	return t
}

func parseResult(ret lua.LValue, errb oops.OopsErrorBuilder) (content.Result, error) {
	t, ok := ret.(*lua.LTable)
	if !ok {
		return content.Result{}, errb.New("handler must return a table with success and message")
	}
	res := content.Result{
		Success: lua.LVAsBool(t.RawGetString("success")),
		Message: lua.LVAsString(t.RawGetString("message")),
	}
	if payload, ok := t.RawGetString("payload").(*lua.LTable); ok {
		res.Payload = tableToMap(payload)
	}
	return res, nil
}

func parseReaction(ret lua.LValue, errb oops.OopsErrorBuilder) (content.Reaction, error) {
	t, ok := ret.(*lua.LTable)
	if !ok {
		return content.Reaction{}, errb.New("reaction must return a table with allow and message")
	}
	reaction := content.Reaction{
		Allow:   lua.LVAsBool(t.RawGetString("allow")),
		Message: lua.LVAsString(t.RawGetString("message")),
	}
	if payload, ok := t.RawGetString("payload").(*lua.LTable); ok {
		reaction.Payload = tableToMap(payload)
	}
	return reaction, nil
}
