// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

// Package engine is the load-time surface of the dispatch core: it
// discovers content modules below a declared root, resolves their tiers,
// builds the frozen registry set, and hands out dispatchers over it.
package engine

import (
	"fmt"
	"strings"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/dispatch"
	"github.com/stratamud/strata/internal/world"
)

// Version is the engine version content manifests gate against.
const Version = "0.3.0"

// Engine holds the frozen registries and the loaded module set. It is
// immutable after Load returns and safe to share across dispatch calls.
type Engine struct {
	vocab    *dispatch.Vocabulary
	events   *dispatch.Events
	handlers *dispatch.Handlers
	modules  map[string]*content.Module
	ordered  []*content.Module
}

// Compile-time interface check.
var _ dispatch.ReactionSource = (*Engine)(nil)

// Reaction resolves a module's reactive function for an event, for the
// state accessor's entity-capability lookup.
func (e *Engine) Reaction(module, event string) (content.Reactive, bool) {
	m, ok := e.modules[module]
	if !ok {
		return nil, false
	}
	return m.Reaction(event)
}

// Vocabulary returns the frozen vocabulary registry.
func (e *Engine) Vocabulary() *dispatch.Vocabulary {
	return e.vocab
}

// Events returns the frozen event registry.
func (e *Engine) Events() *dispatch.Events {
	return e.events
}

// Handlers returns the frozen handler registry.
func (e *Engine) Handlers() *dispatch.Handlers {
	return e.handlers
}

// Modules returns the loaded modules in (tier, path) order.
func (e *Engine) Modules() []*content.Module {
	return e.ordered
}

// Dispatcher builds a command dispatcher over the engine's registries and
// the given entity repository.
func (e *Engine) Dispatcher(repo world.Repository) (*dispatch.Dispatcher, error) {
	return dispatch.NewDispatcher(e.vocab, e.events, e.handlers, e, repo)
}

// ConflictError aggregates every authoring conflict found during one
// load. A load with conflicts never yields a partially-usable registry;
// silent partial precedence is worse than refusing to start.
type ConflictError struct {
	Conflicts []error
}

// Error summarizes the conflict set; individual conflicts name the
// offending modules.
func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("content load failed: %s", e.Conflicts[0])
	}
	lines := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		lines = append(lines, c.Error())
	}
	return fmt.Sprintf("content load failed with %d conflicts:\n  %s", len(e.Conflicts), strings.Join(lines, "\n  "))
}
