/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/entityregistry/datastore/memory"
	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

const (
	opCreate   = "create"
	opTransfer = "transfer"
)

// CreateEntity mints a new entity owned by caller and returns its identifier.
//
// Gender is derived from dna. If no identifier can be issued the call fails with
// an overflow error and nothing changes.
func (r *Registry) CreateEntity(ctx context.Context, caller storagemodels.Identity, dna []byte, price uint32) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gender := storagemodels.DeriveGender(dna)

	id, err := r.ids.Next()
	if err != nil {
		r.reject(opCreate, err, "caller", caller)
		return 0, err
	}

	entity := storagemodels.Entity{
		ID:     id,
		DNA:    append([]byte{}, dna...),
		Price:  price,
		Gender: gender,
		Owner:  caller,
	}

	change := storagemodels.Change{
		PrevNextID: r.ids.Current(),
		NextID:     &id,
		Entities:   []storagemodels.Entity{entity},
		Buckets: map[storagemodels.Identity][]storagemodels.Entity{
			caller: append(r.owners.BucketOf(caller), entity),
		},
	}
	if err := r.commit(ctx, opCreate, change); err != nil {
		return 0, err
	}

	// Next succeeded under the same lock, so Allocate cannot overflow here.
	if _, err := r.ids.Allocate(); err != nil {
		return 0, err
	}
	r.entities.Upsert(entity)
	r.owners.Append(caller, entity)

	r.metrics.RecordCreated()
	r.metrics.SetSize(r.entities.Len(), len(r.owners.Owners()))
	r.log.V(1).Info("entity created", "id", id, "owner", caller, "gender", gender.String(), "price", price)

	r.notifier.Notify(ctx, Created{
		DNA:        append([]byte{}, dna...),
		Caller:     caller,
		OccurredAt: strfmt.DateTime(r.now()),
	})
	return id, nil
}

// TransferEntity moves entity id to newOwner.
//
// An unknown id fails with a not found error and nothing changes. Whether caller
// must be the current owner is decided by the configured TransferPolicy.
// Transferring to the current owner leaves exactly one copy in its bucket.
func (r *Registry) TransferEntity(ctx context.Context, caller storagemodels.Identity, id uint32, newOwner storagemodels.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.entities.Get(id)
	if !ok {
		err := errors.NewEntityNotFoundError(id)
		r.reject(opTransfer, err, "caller", caller, "id", id)
		return err
	}
	if err := r.policy.AuthorizeTransfer(caller, entity, newOwner); err != nil {
		r.reject(opTransfer, err, "caller", caller, "id", id, "owner", entity.Owner)
		return err
	}

	oldOwner := entity.Owner
	entity.Owner = newOwner

	oldBucket, _ := memory.SwapRemove(r.owners.BucketOf(oldOwner), id)
	buckets := map[storagemodels.Identity][]storagemodels.Entity{oldOwner: oldBucket}
	if newOwner == oldOwner {
		buckets[oldOwner] = append(oldBucket, entity)
	} else {
		buckets[newOwner] = append(r.owners.BucketOf(newOwner), entity)
	}

	change := storagemodels.Change{
		PrevNextID: r.ids.Current(),
		Entities:   []storagemodels.Entity{entity},
		Buckets:    buckets,
	}
	if err := r.commit(ctx, opTransfer, change); err != nil {
		return err
	}

	r.entities.Upsert(entity)
	if !r.owners.RemoveByID(oldOwner, id) {
		r.log.Info("entity missing from previous owner bucket", "id", id, "owner", oldOwner)
	}
	r.owners.Append(newOwner, entity)

	r.metrics.RecordTransfer()
	r.metrics.SetSize(r.entities.Len(), len(r.owners.Owners()))
	r.log.V(1).Info("entity transferred", "id", id, "from", oldOwner, "to", newOwner, "caller", caller)

	r.notifier.Notify(ctx, Transferred{
		Caller:     caller,
		ID:         id,
		NewOwner:   newOwner,
		OccurredAt: strfmt.DateTime(r.now()),
	})
	return nil
}

// commit hands the staged change to the durable store, if any. Nothing in memory
// has been touched when it runs, so a failure needs no rollback. The change is
// pinned to the revision this registry last saw; another writer having committed
// since then makes the store refuse it.
func (r *Registry) commit(ctx context.Context, op string, change storagemodels.Change) error {
	if r.store == nil {
		return nil
	}
	change.PrevRevision = r.revision
	if err := r.store.Commit(ctx, change); err != nil {
		r.metrics.RecordFailure(op, failureKind(err))
		r.log.Error(err, "commit failed", "op", op)
		return fmt.Errorf("%s: commit state: %w", op, err)
	}
	r.revision++
	return nil
}

func (r *Registry) reject(op string, err error, keysAndValues ...any) {
	r.metrics.RecordFailure(op, failureKind(err))
	r.log.V(1).Info("operation rejected", append([]any{"op", op, "reason", err.Error()}, keysAndValues...)...)
}

func failureKind(err error) string {
	switch {
	case errors.IsNotFound(err):
		return "not_found"
	case errors.IsOverflow(err):
		return "overflow"
	case errors.IsUnauthorized(err):
		return "unauthorized"
	case errors.IsConditionFailed(err):
		return "condition_failed"
	default:
		return "persistence"
	}
}
