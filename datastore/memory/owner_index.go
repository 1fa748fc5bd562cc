/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import "github.com/suparena/entityregistry/storagemodels"

// OwnerIndex groups entities by their current owner.
//
// Bucket order is not meaningful: RemoveByID swaps the last element into the removed slot.
type OwnerIndex struct {
	buckets map[storagemodels.Identity][]storagemodels.Entity
}

// NewOwnerIndex creates an empty OwnerIndex
func NewOwnerIndex() *OwnerIndex {
	return &OwnerIndex{
		buckets: make(map[storagemodels.Identity][]storagemodels.Entity),
	}
}

// Append adds entity to the owner's bucket, creating the bucket if absent.
func (x *OwnerIndex) Append(owner storagemodels.Identity, entity storagemodels.Entity) {
	x.buckets[owner] = append(x.buckets[owner], entity.Clone())
}

// RemoveByID removes the first entity with the given id from the owner's bucket.
// It reports whether a match was found.
func (x *OwnerIndex) RemoveByID(owner storagemodels.Identity, id uint32) bool {
	bucket, ok := x.buckets[owner]
	if !ok {
		return false
	}
	bucket, removed := SwapRemove(bucket, id)
	if removed {
		x.buckets[owner] = bucket
	}
	return removed
}

// BucketOf returns a copy of the owner's bucket; empty if the owner is unknown.
func (x *OwnerIndex) BucketOf(owner storagemodels.Identity) []storagemodels.Entity {
	return storagemodels.CloneBucket(x.buckets[owner])
}

// Replace sets the owner's bucket wholesale. Used when loading persisted state.
func (x *OwnerIndex) Replace(owner storagemodels.Identity, bucket []storagemodels.Entity) {
	x.buckets[owner] = storagemodels.CloneBucket(bucket)
}

// Owners returns every owner that has a bucket, including emptied ones.
func (x *OwnerIndex) Owners() []storagemodels.Identity {
	owners := make([]storagemodels.Identity, 0, len(x.buckets))
	for owner := range x.buckets {
		owners = append(owners, owner)
	}
	return owners
}

// Len returns the number of entities across all buckets
func (x *OwnerIndex) Len() int {
	n := 0
	for _, bucket := range x.buckets {
		n += len(bucket)
	}
	return n
}

// All returns a deep copy of every bucket
func (x *OwnerIndex) All() map[storagemodels.Identity][]storagemodels.Entity {
	out := make(map[storagemodels.Identity][]storagemodels.Entity, len(x.buckets))
	for owner, bucket := range x.buckets {
		out[owner] = storagemodels.CloneBucket(bucket)
	}
	return out
}

// SwapRemove removes the first entity with the given id by moving the last element into its slot.
// The input slice is modified in place; use the returned slice.
func SwapRemove(bucket []storagemodels.Entity, id uint32) ([]storagemodels.Entity, bool) {
	for i := range bucket {
		if bucket[i].ID != id {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = storagemodels.Entity{}
		return bucket[:last], true
	}
	return bucket, false
}
