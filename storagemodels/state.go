/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// State is the full set of persisted registry cells.
type State struct {
	// NextID is the last identifier handed out; 0 when nothing was minted.
	NextID uint32 `json:"nextId"`
	// Revision counts committed changes. Every commit must name the revision it
	// was staged against.
	Revision uint64 `json:"revision"`
	// Entities is the canonical store (EntityById).
	Entities map[uint32]Entity `json:"entities"`
	// Buckets is the owner index (EntitiesByOwner). Bucket order carries no meaning.
	Buckets map[Identity][]Entity `json:"buckets"`
}

// NewState returns an empty State with initialized maps.
func NewState() *State {
	return &State{
		Entities: make(map[uint32]Entity),
		Buckets:  make(map[Identity][]Entity),
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := NewState()
	out.NextID = s.NextID
	out.Revision = s.Revision
	for id, e := range s.Entities {
		out.Entities[id] = e.Clone()
	}
	for owner, bucket := range s.Buckets {
		out.Buckets[owner] = CloneBucket(bucket)
	}
	return out
}

// CloneBucket deep-copies an owner bucket. The result is never nil.
func CloneBucket(bucket []Entity) []Entity {
	out := make([]Entity, 0, len(bucket))
	for _, e := range bucket {
		out = append(out, e.Clone())
	}
	return out
}

// Change is one atomic unit of work against the persisted cells.
// Durable stores apply all of it or none of it.
type Change struct {
	// PrevRevision is the store revision the change was staged against. A store
	// whose revision moved rejects the change; a successful commit advances it by one.
	PrevRevision uint64
	// PrevNextID is the NextID value the change was staged against.
	PrevNextID uint32
	// NextID is set when the change allocates an identifier.
	NextID *uint32
	// Entities are upserts into the canonical store.
	Entities []Entity
	// Buckets replace the named owner buckets wholesale.
	Buckets map[Identity][]Entity
}

// Empty reports whether the change carries no writes.
func (c Change) Empty() bool {
	return c.NextID == nil && len(c.Entities) == 0 && len(c.Buckets) == 0
}
