// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

// Package content defines the contract between content modules and the
// dispatch core: vocabulary, handler and reactive function signatures,
// module manifests, and tier resolution.
package content

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/stratamud/strata/internal/world"
)

// Action is the resolved action record handed to the dispatcher, produced
// by the external parser. The verb may still be a synonym; the dispatcher
// canonicalizes it against the vocabulary registry before lookup.
type Action struct {
	// ID correlates one dispatch across logs and traces. The dispatcher
	// assigns one if the parser left it zero.
	ID ulid.ULID

	Verb    string
	ActorID string

	// ObjectID and IndirectID are entity identifiers when the parser
	// resolved them. When it could not, the raw descriptors are carried
	// instead and the handler resolves them itself.
	ObjectID     string
	IndirectID   string
	ObjectDesc   string
	IndirectDesc string

	// Args is the remaining raw argument text, if any.
	Args string
}

// Result is the tagged outcome of a command handler and of a dispatch
// call. Message is plain text; Payload optionally carries a structured
// message for downstream narration. The core makes no assumption about
// how either is rendered.
type Result struct {
	Success bool
	Message string
	Payload map[string]any
}

// Reaction is the tagged outcome of an entity reactive function.
// "Not applicable to this entity" is represented by the absence of a
// reactive function, never by a false Allow, so fallthrough logic can
// distinguish the two.
type Reaction struct {
	Allow   bool
	Message string
	Payload map[string]any
}

// UpdateResult reports whether a proposed property change was applied and
// which event binding governed it.
type UpdateResult struct {
	Applied bool
	Message string

	// Tier and Event identify the governing binding when Applied is true
	// and a reactive function allowed the change. Tier is zero when the
	// change applied without any reactive involvement.
	Tier  int
	Event string
}

// ReactionContext carries the circumstances of a proposed mutation into a
// reactive function.
type ReactionContext struct {
	ActorID  string
	Verb     string
	Changes  map[string]any
	Accessor Accessor
}

// Accessor is the sole mutation gateway handed to handlers and reactive
// functions. It is pre-scoped to the acting entity, so callers never
// thread an actor identifier manually.
type Accessor interface {
	// ActorID returns the acting entity's identifier.
	ActorID() string

	// Entity borrows an entity for the current call.
	Entity(ctx context.Context, id string) (*world.Entity, error)

	// Update proposes property changes to an entity under the given verb.
	// Event bindings for the verb are consulted in tier order with
	// automatic fallthrough; the changes apply only if a reactive function
	// allows them or no reactive function governed the attempt.
	Update(ctx context.Context, entityID string, changes map[string]any, verb string) (UpdateResult, error)
}

// Handler is the command handler signature. Runtime rejection is a
// Result with Success=false, not an error; errors are reserved for
// authoring or invariant faults.
type Handler func(ctx context.Context, inv *Invocation) (Result, error)

// Reactive is the entity reactive function signature, invoked for one
// named event against one entity.
type Reactive func(ctx context.Context, entity *world.Entity, rc *ReactionContext) (Reaction, error)

// DelegateFunc continues a dispatch to the next deeper handler tier.
// The second return is false when no deeper handler exists.
type DelegateFunc func(ctx context.Context) (Result, bool, error)

// Invocation is the execution context handed to a running handler: the
// action record, the tier the handler was registered at, the actor-scoped
// accessor, and the explicit delegation hook.
type Invocation struct {
	Action   Action
	Tier     int
	Accessor Accessor

	delegate DelegateFunc
}

// NewInvocation builds an invocation. The delegate hook may be nil, in
// which case Delegate always reports no deeper handler.
func NewInvocation(action Action, tier int, accessor Accessor, delegate DelegateFunc) *Invocation {
	return &Invocation{
		Action:   action,
		Tier:     tier,
		Accessor: accessor,
		delegate: delegate,
	}
}

// Delegate invokes the next handler at a strictly deeper tier for the
// same verb, passing only the action record across the boundary. It
// returns false when no deeper handler exists; callers decide their own
// fallback. Delegation is never automatic: a handler that does not call
// Delegate guarantees deeper handlers never run for this dispatch.
func (inv *Invocation) Delegate(ctx context.Context) (Result, bool, error) {
	if inv.delegate == nil {
		return Result{}, false, nil
	}
	return inv.delegate(ctx)
}
