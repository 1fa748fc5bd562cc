/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/suparena/entityregistry/datastore"
	"github.com/suparena/entityregistry/datastore/memory"
	"github.com/suparena/entityregistry/metrics"
	"github.com/suparena/entityregistry/storagemodels"
)

// Registry mints entities and transfers their ownership, keeping the canonical
// store and the owner index in step. All methods are safe for concurrent use;
// each operation runs as one critical section.
type Registry struct {
	mu       sync.Mutex
	ids      *memory.IDAllocator
	entities *memory.EntityStore
	owners   *memory.OwnerIndex
	// revision is the StateStore revision the in-memory views reflect.
	revision uint64

	store    datastore.StateStore
	policy   TransferPolicy
	notifier Notifier
	log      logr.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New creates an empty, memory-only Registry unless WithStateStore is given.
// A StateStore passed here is assumed to be empty; use Open to resume persisted state.
func New(opts ...Option) *Registry {
	r := &Registry{
		ids:      memory.NewIDAllocator(0),
		entities: memory.NewEntityStore(),
		owners:   memory.NewOwnerIndex(),
		policy:   AllowAnyCaller,
		notifier: NotifierFunc(func(context.Context, Event) {}),
		log:      logr.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open loads persisted state from store and returns a Registry that commits to it.
// A nil store yields an empty memory-only Registry. The loaded state must satisfy
// the owner index invariant, otherwise an inconsistency error is returned.
func Open(ctx context.Context, store datastore.StateStore, opts ...Option) (*Registry, error) {
	if store == nil {
		return New(opts...), nil
	}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry state: %w", err)
	}
	if err := verifyState(state); err != nil {
		return nil, err
	}

	r := New(append([]Option{WithStateStore(store)}, opts...)...)
	r.ids.Restore(state.NextID)
	r.revision = state.Revision
	for _, e := range state.Entities {
		r.entities.Upsert(e)
	}
	for owner, bucket := range state.Buckets {
		r.owners.Replace(owner, bucket)
	}
	r.metrics.SetSize(r.entities.Len(), len(r.owners.Owners()))

	r.log.Info("registry state loaded", "nextId", state.NextID, "revision", state.Revision, "entities", len(state.Entities), "owners", len(state.Buckets))
	return r, nil
}

// Entity returns the canonical record for id.
func (r *Registry) Entity(id uint32) (storagemodels.Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entities.Get(id)
}

// EntitiesOf returns the entities currently owned by owner, in no meaningful order.
func (r *Registry) EntitiesOf(owner storagemodels.Identity) []storagemodels.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owners.BucketOf(owner)
}

// NextID returns the last identifier issued, 0 if nothing has been minted.
func (r *Registry) NextID() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids.Current()
}

// Snapshot returns a deep copy of every registry cell.
func (r *Registry) Snapshot() *storagemodels.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() *storagemodels.State {
	return &storagemodels.State{
		NextID:   r.ids.Current(),
		Revision: r.revision,
		Entities: r.entities.All(),
		Buckets:  r.owners.All(),
	}
}

// Close releases the StateStore if it holds resources.
func (r *Registry) Close() error {
	if c, ok := r.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
