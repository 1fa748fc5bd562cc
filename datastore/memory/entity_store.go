/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import "github.com/suparena/entityregistry/storagemodels"

// EntityStore is the canonical map from identifier to entity. It has no removal operation.
type EntityStore struct {
	data map[uint32]storagemodels.Entity
}

// NewEntityStore creates an empty EntityStore
func NewEntityStore() *EntityStore {
	return &EntityStore{
		data: make(map[uint32]storagemodels.Entity),
	}
}

// Upsert inserts or overwrites the entity keyed by its ID.
func (s *EntityStore) Upsert(entity storagemodels.Entity) {
	s.data[entity.ID] = entity.Clone()
}

// Get retrieves an entity by ID
func (s *EntityStore) Get(id uint32) (storagemodels.Entity, bool) {
	entity, ok := s.data[id]
	if !ok {
		return storagemodels.Entity{}, false
	}
	return entity.Clone(), true
}

// Len returns the number of stored entities
func (s *EntityStore) Len() int {
	return len(s.data)
}

// All returns a deep copy of the store contents
func (s *EntityStore) All() map[uint32]storagemodels.Entity {
	out := make(map[uint32]storagemodels.Entity, len(s.data))
	for id, e := range s.data {
		out[id] = e.Clone()
	}
	return out
}
