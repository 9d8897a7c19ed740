// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import (
	"sort"

	"github.com/stratamud/strata/internal/content"
)

// HandlerBinding associates a verb, at one tier, with a module's command
// handler.
type HandlerBinding struct {
	Tier    int
	Module  string
	Handler content.Handler
}

// Handlers is the per-verb handler registry. Bindings are ordered by
// (tier, module name) once loading completes; at most one binding exists
// per (verb, tier).
type Handlers struct {
	frozen bool
	byVerb map[string][]HandlerBinding
}

// NewHandlers creates an empty handler registry.
func NewHandlers() *Handlers {
	return &Handlers{byVerb: make(map[string][]HandlerBinding)}
}

// Register adds a handler binding for the verb. Two modules declaring a
// handler for the same verb at the same tier is a named load-time
// conflict; the same module re-declaring is de-duplicated.
func (h *Handlers) Register(verb string, tier int, module string, fn content.Handler) error {
	if h.frozen {
		return ErrRegistryFrozen("handler")
	}

	for _, b := range h.byVerb[verb] {
		if b.Tier != tier {
			continue
		}
		if b.Module == module {
			return nil
		}
		return ErrHandlerConflict(verb, tier, b.Module, module)
	}

	h.byVerb[verb] = append(h.byVerb[verb], HandlerBinding{Tier: tier, Module: module, Handler: fn})
	return nil
}

// Freeze sorts every binding list by (tier, module) and marks the
// registry read-only.
func (h *Handlers) Freeze() {
	for verb := range h.byVerb {
		bindings := h.byVerb[verb]
		sort.Slice(bindings, func(i, j int) bool {
			if bindings[i].Tier != bindings[j].Tier {
				return bindings[i].Tier < bindings[j].Tier
			}
			return bindings[i].Module < bindings[j].Module
		})
	}
	h.frozen = true
}

// Top returns the highest-precedence (lowest tier) handler for the verb.
func (h *Handlers) Top(verb string) (HandlerBinding, bool) {
	bindings := h.byVerb[verb]
	if len(bindings) == 0 {
		return HandlerBinding{}, false
	}
	return bindings[0], true
}

// Deeper returns the next handler at a tier strictly greater than
// currentTier. Called on behalf of a running handler that chose to
// delegate; returns false when no deeper handler exists, which callers
// treat as "nothing further to try", not an error.
func (h *Handlers) Deeper(verb string, currentTier int) (HandlerBinding, bool) {
	for _, b := range h.byVerb[verb] {
		if b.Tier > currentTier {
			return b, true
		}
	}
	return HandlerBinding{}, false
}

// For returns the verb's bindings in (tier, module) order. The returned
// slice is the registry's own; callers must not modify it.
func (h *Handlers) For(verb string) []HandlerBinding {
	return h.byVerb[verb]
}
