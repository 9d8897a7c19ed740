// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

// Package world defines the entity model the dispatch core operates on.
//
// Entities are owned by the world-state container (Store). The state
// accessor borrows an entity for the duration of a single update call and
// never retains references across calls.
package world

import "maps"

// Entity is any addressable game object: item, actor, location, part, lock.
// The dispatch core treats it as opaque except for its identifier, its
// mutable property set, and its declared behaviors.
type Entity struct {
	// ID is a stable content-authored slug, e.g. "cursed_ring".
	ID string

	// Name is the display name used by content; the core never renders it.
	Name string

	// Properties is the mutable named-property set. Values are whatever
	// content modules store; the core only copies them on apply.
	Properties map[string]any

	// Behaviors lists the content modules whose reactive functions this
	// entity exposes, in declaration order. Lookup order matters: the
	// first declared module providing a given event wins.
	Behaviors []string
}

// Property returns the named property and whether it is set.
func (e *Entity) Property(name string) (any, bool) {
	if e.Properties == nil {
		return nil, false
	}
	v, ok := e.Properties[name]
	return v, ok
}

// Apply merges the proposed changes into the entity's property set.
// A nil value removes the property.
func (e *Entity) Apply(changes map[string]any) {
	if len(changes) == 0 {
		return
	}
	if e.Properties == nil {
		e.Properties = make(map[string]any, len(changes))
	}
	for name, value := range changes {
		if value == nil {
			delete(e.Properties, name)
			continue
		}
		e.Properties[name] = value
	}
}

// DeclaresBehavior reports whether the entity declares the given module
// in its behaviors list.
func (e *Entity) DeclaresBehavior(module string) bool {
	for _, m := range e.Behaviors {
		if m == module {
			return true
		}
	}
	return false
}

// Clone returns a deep-enough copy for test fixtures: the property map is
// copied, property values are shared.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		ID:        e.ID,
		Name:      e.Name,
		Behaviors: append([]string(nil), e.Behaviors...),
	}
	if e.Properties != nil {
		c.Properties = maps.Clone(e.Properties)
	}
	return c
}
