// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

// Package lua adapts Lua-scripted content modules to the module contract:
// a module directory's entry script declares vocabulary and reactions and
// defines handler and reactive functions as globals.
package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// safeLibraries lists the Lua libraries loaded into content states.
// Safe: base, table, string, math. Blocked: os, io, debug, package.
var safeLibraries = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// unsafeBaseFunctions are base-library functions blocked because they
// reach the filesystem.
var unsafeBaseFunctions = []string{"dofile", "loadfile", "loadstring", "load"}

// newState creates a fresh sandboxed Lua state. Content scripts get a
// new state per invocation; nothing leaks between calls.
func newState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range safeLibraries {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("open library %s: %w", lib.name, err)
		}
	}

	for _, fn := range unsafeBaseFunctions {
		L.SetGlobal(fn, lua.LNil)
	}

	return L, nil
}
