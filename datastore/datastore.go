/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entityregistry/storagemodels"
)

// StateStore persists the registry cells durably.
type StateStore interface {
	// Load returns the persisted state. An empty store yields an empty, non-nil state.
	Load(ctx context.Context) (*storagemodels.State, error)

	// Commit applies every write in change, or none of them.
	Commit(ctx context.Context, change storagemodels.Change) error
}
