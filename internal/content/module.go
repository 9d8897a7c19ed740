// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package content

import "fmt"

// Module is a self-contained content unit: vocabulary, command handlers
// keyed by canonical verb, and reactive functions keyed by event name.
// Game content, shared behavior libraries, and the base rule set are all
// modules; only their placement below the content root differs.
type Module struct {
	// Name identifies the module in conflict reports and in entity
	// behavior declarations. Unique across one load.
	Name string

	// Path is the module directory relative to the content root. It
	// determines the tier and the deterministic within-tier order.
	Path string

	// Tier is the resolved precedence tier; 1 is highest precedence.
	// Assigned once by the loader, immutable afterwards.
	Tier int

	Vocabulary Vocabulary

	// Handlers maps canonical verbs to this module's command handlers.
	Handlers map[string]Handler

	// Reactions maps event names to this module's reactive functions.
	// An entity exposes one of these only by declaring this module in
	// its behaviors list.
	Reactions map[string]Reactive
}

// Validate checks internal module consistency before registration.
func (m *Module) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("module name cannot be empty")
	}
	if m.Path == "" {
		return fmt.Errorf("module %s: path cannot be empty", m.Name)
	}
	if err := m.Vocabulary.Validate(); err != nil {
		return fmt.Errorf("module %s: %w", m.Name, err)
	}
	for verb := range m.Handlers {
		if _, ok := m.Vocabulary.Verbs[verb]; !ok {
			return fmt.Errorf("module %s: handler for undeclared verb %q", m.Name, verb)
		}
	}
	for event, fn := range m.Reactions {
		if event == "" {
			return fmt.Errorf("module %s: reaction with empty event name", m.Name)
		}
		if fn == nil {
			return fmt.Errorf("module %s: nil reaction for event %q", m.Name, event)
		}
	}
	return nil
}

// Reaction returns the module's reactive function for the event.
func (m *Module) Reaction(event string) (Reactive, bool) {
	fn, ok := m.Reactions[event]
	return fn, ok
}
