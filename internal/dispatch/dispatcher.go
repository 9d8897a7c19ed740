// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/world"
)

var tracer = otel.Tracer("strata/dispatch")

// Dispatcher is the entry point invoked once per resolved player or NPC
// action. It canonicalizes the verb, selects the highest-precedence
// handler, and hands it an actor-scoped accessor plus the explicit
// delegation hook for deeper tiers.
//
// Dispatch executes one action to completion before the next; the
// dispatcher holds no mutable state of its own beyond the frozen
// registries it was built over.
type Dispatcher struct {
	vocab    *Vocabulary
	events   *Events
	handlers *Handlers
	source   ReactionSource
	repo     world.Repository
}

// NewDispatcher creates a dispatcher over frozen registries. Returns an
// error if any collaborator is nil.
func NewDispatcher(vocab *Vocabulary, events *Events, handlers *Handlers, source ReactionSource, repo world.Repository) (*Dispatcher, error) {
	switch {
	case vocab == nil:
		return nil, fmt.Errorf("dispatcher requires a vocabulary registry")
	case events == nil:
		return nil, fmt.Errorf("dispatcher requires an event registry")
	case handlers == nil:
		return nil, fmt.Errorf("dispatcher requires a handler registry")
	case source == nil:
		return nil, fmt.Errorf("dispatcher requires a reaction source")
	case repo == nil:
		return nil, fmt.Errorf("dispatcher requires an entity repository")
	}
	return &Dispatcher{
		vocab:    vocab,
		events:   events,
		handlers: handlers,
		source:   source,
		repo:     repo,
	}, nil
}

// Dispatch resolves and executes one action.
//
// Runtime refusals — unknown verb, no handler, handler rejection — are
// ordinary Results with Success=false, never errors. An error means a
// handler or reactive function faulted.
func (d *Dispatcher) Dispatch(ctx context.Context, action content.Action) (result content.Result, err error) {
	start := time.Now()
	if action.ID.Compare(ulid.ULID{}) == 0 {
		action.ID = ulid.Make()
	}

	verb, known := d.vocab.Canonical(action.Verb)
	if !known {
		RecordDispatch(action.Verb, "", StatusUnhandled)
		return content.Result{Success: false, Message: "You don't know how to do that."}, nil
	}
	action.Verb = verb

	ctx, span := tracer.Start(ctx, "dispatch.execute",
		trace.WithAttributes(
			attribute.String("action.id", action.ID.String()),
			attribute.String("action.verb", verb),
			attribute.String("action.actor_id", action.ActorID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	binding, ok := d.handlers.Top(verb)
	if !ok {
		RecordDispatch(verb, "", StatusUnhandled)
		span.SetAttributes(attribute.Bool("action.unhandled", true))
		return content.Result{Success: false, Message: "You don't know how to do that."}, nil
	}
	span.SetAttributes(
		attribute.String("handler.module", binding.Module),
		attribute.Int("handler.tier", binding.Tier),
	)

	if d.vocab.RequiresObject(verb) && action.ObjectID == "" && action.ObjectDesc == "" {
		RecordDispatch(verb, binding.Module, StatusRejected)
		return content.Result{Success: false, Message: fmt.Sprintf("What do you want to %s?", verb)}, nil
	}

	accessor := NewStateAccessor(d.events, d.source, d.repo, action.ActorID)
	result, err = d.invoke(ctx, verb, binding, action, accessor)

	RecordDispatchDuration(verb, time.Since(start))
	switch {
	case err != nil:
		RecordDispatch(verb, binding.Module, StatusError)
		slog.WarnContext(ctx, "handler faulted",
			"action_id", action.ID.String(),
			"verb", verb,
			"module", binding.Module,
			"error", err,
		)
	case result.Success:
		RecordDispatch(verb, binding.Module, StatusSuccess)
	default:
		RecordDispatch(verb, binding.Module, StatusRejected)
	}
	return result, err
}

// invoke runs one handler binding, wiring the delegation hook so the
// handler may explicitly continue to the next strictly deeper tier. Only
// the action record crosses the delegation boundary; each tier
// re-resolves the entities it needs through the shared accessor.
func (d *Dispatcher) invoke(ctx context.Context, verb string, binding HandlerBinding, action content.Action, accessor content.Accessor) (content.Result, error) {
	inv := content.NewInvocation(action, binding.Tier, accessor, func(ctx context.Context) (content.Result, bool, error) {
		next, ok := d.handlers.Deeper(verb, binding.Tier)
		if !ok {
			return content.Result{}, false, nil
		}
		RecordDelegation(verb)
		res, err := d.invoke(ctx, verb, next, action, accessor)
		return res, true, err
	})

	result, err := binding.Handler(ctx, inv)
	if err != nil {
		return content.Result{}, HandlerFault(verb, binding.Module, err)
	}
	return result, nil
}
