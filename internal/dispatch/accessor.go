// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import (
	"context"
	"log/slog"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/world"
)

// ReactionSource resolves a module's reactive function for an event.
// Implemented by the engine over its loaded module set.
type ReactionSource interface {
	Reaction(module, event string) (content.Reactive, bool)
}

// Compile-time interface check.
var _ content.Accessor = (*StateAccessor)(nil)

// StateAccessor is the sole path for committing a property change to an
// entity when the change should be visible to reactive behavior. It is
// scoped to one acting entity for the duration of one dispatch call and
// borrows target entities per update, never retaining them across calls.
type StateAccessor struct {
	events  *Events
	source  ReactionSource
	repo    world.Repository
	actorID string
}

// NewStateAccessor creates an accessor scoped to the given actor.
func NewStateAccessor(events *Events, source ReactionSource, repo world.Repository, actorID string) *StateAccessor {
	return &StateAccessor{
		events:  events,
		source:  source,
		repo:    repo,
		actorID: actorID,
	}
}

// ActorID returns the acting entity's identifier.
func (a *StateAccessor) ActorID() string {
	return a.actorID
}

// Entity borrows an entity for the current call.
func (a *StateAccessor) Entity(ctx context.Context, id string) (*world.Entity, error) {
	return a.repo.Get(ctx, id)
}

// Update proposes property changes to an entity under a verb.
//
// The verb's event bindings are tried in strict ascending tier order. A
// binding whose event the entity does not implement falls through
// silently; the first reaction that allows governs the update and its
// message is surfaced. A higher-tier reaction that declines never blocks
// a lower-tier reaction that would have applied. If reactions were
// invoked and none allowed, the update is rejected with the deepest
// rejection's message, which is usually the most specific. If no binding
// exists, or the entity implements none of them, the changes apply
// unconditionally.
func (a *StateAccessor) Update(ctx context.Context, entityID string, changes map[string]any, verb string) (content.UpdateResult, error) {
	entity, err := a.repo.Get(ctx, entityID)
	if err != nil {
		return content.UpdateResult{}, err
	}

	rc := &content.ReactionContext{
		ActorID:  a.actorID,
		Verb:     verb,
		Changes:  changes,
		Accessor: a,
	}

	invoked := 0
	lastRejection := ""
	for _, binding := range a.events.For(verb) {
		fn, module, ok := a.resolveReaction(entity, binding.Event)
		if !ok {
			continue
		}

		invoked++
		reaction, err := fn(ctx, entity, rc)
		if err != nil {
			return content.UpdateResult{}, ReactionFault(binding.Event, module, entity.ID, err)
		}

		if reaction.Allow {
			entity.Apply(changes)
			slog.DebugContext(ctx, "update applied",
				"entity_id", entity.ID,
				"verb", verb,
				"event", binding.Event,
				"tier", binding.Tier,
			)
			return content.UpdateResult{
				Applied: true,
				Message: reaction.Message,
				Tier:    binding.Tier,
				Event:   binding.Event,
			}, nil
		}
		lastRejection = reaction.Message
	}

	if invoked == 0 {
		// No reaction governed the attempt; nothing objects.
		entity.Apply(changes)
		return content.UpdateResult{Applied: true}, nil
	}

	RecordUpdateRejection(verb)
	slog.DebugContext(ctx, "update rejected",
		"entity_id", entity.ID,
		"verb", verb,
		"reactions_invoked", invoked,
	)
	return content.UpdateResult{Applied: false, Message: lastRejection}, nil
}

// resolveReaction finds the reactive function an entity exposes for an
// event by scanning its declared behaviors in order. Absence is the
// "not applicable" branch, distinct from an explicit deny.
func (a *StateAccessor) resolveReaction(entity *world.Entity, event string) (content.Reactive, string, bool) {
	for _, module := range entity.Behaviors {
		if fn, ok := a.source.Reaction(module, event); ok {
			return fn, module, true
		}
	}
	return nil, "", false
}
