// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value to its Go equivalent. Tables with only
// positive integer keys become slices; other tables become string-keyed
// maps. Non-string keys in map position are skipped.
func toGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return tableToGo(v)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable) any {
	if n := t.Len(); n > 0 {
		list := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			list = append(list, toGo(t.RawGetInt(i)))
		}
		return list
	}

	m := make(map[string]any)
	t.ForEach(func(key, value lua.LValue) {
		if ks, ok := key.(lua.LString); ok {
			m[string(ks)] = toGo(value)
		}
	})
	return m
}

// tableToMap converts a Lua table to a string-keyed map, ignoring array
// parts and non-string keys.
func tableToMap(t *lua.LTable) map[string]any {
	m := make(map[string]any)
	t.ForEach(func(key, value lua.LValue) {
		if ks, ok := key.(lua.LString); ok {
			m[string(ks)] = toGo(value)
		}
	})
	return m
}

// toLua converts a Go value to a Lua value on the given state.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for _, item := range val {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		return mapToTable(L, val)
	default:
		return lua.LNil
	}
}

// mapToTable converts a string-keyed map to a Lua table.
func mapToTable(L *lua.LState, m map[string]any) *lua.LTable {
	t := L.NewTable()
	for key, value := range m {
		L.SetField(t, key, toLua(L, value))
	}
	return t
}
