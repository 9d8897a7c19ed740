// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import "sort"

// EventBinding associates a verb, at one tier, with a named reactive
// event owned by a module: state-changing attempts under the verb offer
// entities the chance to react via this event.
type EventBinding struct {
	Tier   int
	Event  string
	Module string
}

// Events is the per-verb event-binding registry. Bindings are kept in a
// tier-ascending list with at most one binding per (verb, tier).
type Events struct {
	frozen bool
	byVerb map[string][]EventBinding
}

// NewEvents creates an empty event registry.
func NewEvents() *Events {
	return &Events{byVerb: make(map[string][]EventBinding)}
}

// Register appends an event binding for the verb.
//
// Invariants enforced here: at most one binding per (verb, tier); a
// second binding at the same tier with a different event name is a named
// authoring conflict; an identical re-declaration de-duplicates silently.
func (e *Events) Register(verb string, tier int, event, module string) error {
	if e.frozen {
		return ErrRegistryFrozen("event")
	}

	for _, b := range e.byVerb[verb] {
		if b.Tier != tier {
			continue
		}
		if b.Event == event {
			// Re-declared binding; the first owner stands.
			return nil
		}
		return ErrEventConflict(verb, tier, b.Event, b.Module, event, module)
	}

	e.byVerb[verb] = append(e.byVerb[verb], EventBinding{Tier: tier, Event: event, Module: module})
	return nil
}

// Freeze sorts every binding list ascending by tier and marks the
// registry read-only.
func (e *Events) Freeze() {
	for verb := range e.byVerb {
		bindings := e.byVerb[verb]
		sort.Slice(bindings, func(i, j int) bool {
			return bindings[i].Tier < bindings[j].Tier
		})
	}
	e.frozen = true
}

// For returns the verb's bindings in ascending tier order. The returned
// slice is the registry's own; callers must not modify it. Used
// exclusively by the state accessor.
func (e *Events) For(verb string) []EventBinding {
	return e.byVerb[verb]
}
