// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import (
	"errors"

	"github.com/samber/oops"
)

// Error codes for load-time authoring conflicts and dispatch faults.
const (
	CodeHandlerConflict = "HANDLER_CONFLICT"
	CodeEventConflict   = "EVENT_CONFLICT"
	CodeSynonymConflict = "SYNONYM_CONFLICT"
	CodeRegistryFrozen  = "REGISTRY_FROZEN"
	CodeHandlerFault    = "HANDLER_FAULT"
	CodeReactionFault   = "REACTION_FAULT"
)

// ErrHandlerConflict reports two modules at the same tier declaring a
// handler for the same verb. Both modules are named; this is a fatal
// authoring conflict, never a runtime fallback case.
func ErrHandlerConflict(verb string, tier int, existing, incoming string) error {
	return oops.Code(CodeHandlerConflict).
		With("verb", verb).
		With("tier", tier).
		With("module_a", existing).
		With("module_b", incoming).
		Errorf("handler conflict: modules %s and %s both handle verb %q at tier %d", existing, incoming, verb, tier)
}

// ErrEventConflict reports two modules at the same tier binding different
// events to the same verb.
func ErrEventConflict(verb string, tier int, existingEvent, existingModule, event, module string) error {
	return oops.Code(CodeEventConflict).
		With("verb", verb).
		With("tier", tier).
		With("event_a", existingEvent).
		With("module_a", existingModule).
		With("event_b", event).
		With("module_b", module).
		Errorf("event conflict: verb %q at tier %d bound to %q by %s and %q by %s", verb, tier, existingEvent, existingModule, event, module)
}

// ErrSynonymConflict reports one token claimed by two different canonical
// verbs. Ambiguous grammar is worse than a missing feature, so this is
// fatal at any tier.
func ErrSynonymConflict(token, existingVerb, existingModule, verb, module string) error {
	return oops.Code(CodeSynonymConflict).
		With("token", token).
		With("verb_a", existingVerb).
		With("module_a", existingModule).
		With("verb_b", verb).
		With("module_b", module).
		Errorf("synonym conflict: %q resolves to verb %q (module %s) and verb %q (module %s)", token, existingVerb, existingModule, verb, module)
}

// ErrRegistryFrozen reports a registration attempt after loading
// completed. Registries are build-once/read-many; this is an internal
// invariant violation, not a handled condition.
func ErrRegistryFrozen(registry string) error {
	return oops.Code(CodeRegistryFrozen).
		With("registry", registry).
		Errorf("%s registry is frozen; registration is only valid during load", registry)
}

// HandlerFault wraps an error escaping a command handler. Handlers signal
// ordinary refusal through their Result, so an error is an authoring bug.
func HandlerFault(verb, module string, cause error) error {
	return oops.Code(CodeHandlerFault).
		With("verb", verb).
		With("module", module).
		Wrap(cause)
}

// ReactionFault wraps an error escaping an entity reactive function.
func ReactionFault(event, module, entityID string, cause error) error {
	return oops.Code(CodeReactionFault).
		With("event", event).
		With("module", module).
		With("entity_id", entityID).
		Wrap(cause)
}

// PlayerMessage maps an error escaping Dispatch to text safe to show the
// acting player. Internals stay in the logs.
func PlayerMessage(err error) string {
	if err == nil {
		return ""
	}
	var oopsErr oops.OopsError
	if errors.As(err, &oopsErr) {
		switch oopsErr.Code() {
		case CodeHandlerFault:
			return "Your action fizzles. Something is wrong with that command."
		case CodeReactionFault:
			return "The world shudders and refuses. Something is wrong with that object."
		}
	}
	return "Something went wrong."
}
