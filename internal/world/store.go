// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package world

import (
	"context"
	"sort"

	"github.com/samber/oops"
)

// Error code for entity lookups.
const CodeEntityNotFound = "ENTITY_NOT_FOUND"

// ErrEntityNotFound creates an error for a missing entity.
func ErrEntityNotFound(id string) error {
	return oops.Code(CodeEntityNotFound).
		With("entity_id", id).
		Errorf("entity not found: %s", id)
}

// Repository provides entity lookup for the dispatch core. Persistence is
// an engine concern; the core only ever borrows entities through this
// interface for the duration of one call.
type Repository interface {
	Get(ctx context.Context, id string) (*Entity, error)
}

// Store is an in-memory entity container. It is the reference Repository
// used by the engine and by tests; an embedding engine may substitute its
// own implementation.
//
// Store is not safe for concurrent mutation. The dispatch core executes
// one action to completion before the next, so no locking is provided.
type Store struct {
	entities map[string]*Entity
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entities: make(map[string]*Entity)}
}

// Add registers an entity. A later Add with the same ID replaces the
// earlier entity.
func (s *Store) Add(e *Entity) {
	s.entities[e.ID] = e
}

// Get returns the entity with the given ID.
func (s *Store) Get(_ context.Context, id string) (*Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return nil, ErrEntityNotFound(id)
	}
	return e, nil
}

// IDs returns the sorted identifiers of all stored entities.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
