/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	stderrors "errors"
	"fmt"

	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

// CheckConsistency verifies that every canonical entity appears, with identical
// content, in exactly one owner bucket: the bucket of its owner.
func (r *Registry) CheckConsistency() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return verifyState(r.snapshotLocked())
}

func verifyState(state *storagemodels.State) error {
	var errs []error
	seen := make(map[uint32]storagemodels.Identity, len(state.Entities))

	for owner, bucket := range state.Buckets {
		for _, e := range bucket {
			if prev, dup := seen[e.ID]; dup {
				errs = append(errs, errors.NewInconsistencyError(e.ID, fmt.Sprintf("indexed under both %q and %q", prev, owner)))
				continue
			}
			seen[e.ID] = owner

			if e.Owner != owner {
				errs = append(errs, errors.NewInconsistencyError(e.ID, fmt.Sprintf("owned by %q but indexed under %q", e.Owner, owner)))
			}
			canonical, ok := state.Entities[e.ID]
			if !ok {
				errs = append(errs, errors.NewInconsistencyError(e.ID, "indexed but missing from canonical store"))
				continue
			}
			if !canonical.Equal(e) {
				errs = append(errs, errors.NewInconsistencyError(e.ID, "owner index copy differs from canonical record"))
			}
		}
	}

	for id, e := range state.Entities {
		if e.ID != id {
			errs = append(errs, errors.NewInconsistencyError(id, fmt.Sprintf("stored under key %d but carries id %d", id, e.ID)))
		}
		if id > state.NextID {
			errs = append(errs, errors.NewInconsistencyError(id, fmt.Sprintf("exceeds NextId %d", state.NextID)))
		}
		if _, ok := seen[id]; !ok {
			errs = append(errs, errors.NewInconsistencyError(id, "missing from owner index"))
		}
		if storagemodels.DeriveGender(e.DNA) != e.Gender {
			errs = append(errs, errors.NewInconsistencyError(id, "gender does not match DNA"))
		}
	}

	return stderrors.Join(errs...)
}
