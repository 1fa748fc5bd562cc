/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the StateStore interface for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

// StateStore is a mock implementation of datastore.StateStore for testing
type StateStore struct {
	mu          sync.RWMutex
	state       *storagemodels.State
	commits     []storagemodels.Change
	loadError   error
	commitError error
	commitFunc  func(ctx context.Context, change storagemodels.Change) error
}

// New creates a new mock StateStore holding an empty state
func New() *StateStore {
	return &StateStore{
		state: storagemodels.NewState(),
	}
}

// WithState seeds the store with a copy of state
func (m *StateStore) WithState(state *storagemodels.State) *StateStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return m
}

// WithLoadError makes Load operations return an error
func (m *StateStore) WithLoadError(err error) *StateStore {
	m.loadError = err
	return m
}

// WithCommitError makes Commit operations return an error
func (m *StateStore) WithCommitError(err error) *StateStore {
	m.commitError = err
	return m
}

// WithCommitFunc runs f before each commit is applied; a non-nil result aborts the commit
func (m *StateStore) WithCommitFunc(f func(ctx context.Context, change storagemodels.Change) error) *StateStore {
	m.commitFunc = f
	return m
}

// Load returns a copy of the stored state
func (m *StateStore) Load(ctx context.Context) (*storagemodels.State, error) {
	if m.loadError != nil {
		return nil, m.loadError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone(), nil
}

// Commit applies the change, enforcing the same Revision and NextId compare-and-set the real backends do
func (m *StateStore) Commit(ctx context.Context, change storagemodels.Change) error {
	if m.commitError != nil {
		return m.commitError
	}
	if m.commitFunc != nil {
		if err := m.commitFunc(ctx, change); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if change.Empty() {
		return nil
	}
	if m.state.Revision != change.PrevRevision {
		return errors.NewConditionFailedError("commit", "Revision = :prev")
	}
	if change.NextID != nil {
		if m.state.NextID != change.PrevNextID {
			return errors.NewConditionFailedError("commit", "NextId = :prev")
		}
		m.state.NextID = *change.NextID
	}
	m.state.Revision++
	for _, e := range change.Entities {
		m.state.Entities[e.ID] = e.Clone()
	}
	for owner, bucket := range change.Buckets {
		m.state.Buckets[owner] = storagemodels.CloneBucket(bucket)
	}
	m.commits = append(m.commits, change)
	return nil
}

// Helper methods for testing

// Commits returns the changes applied so far
func (m *StateStore) Commits() []storagemodels.Change {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]storagemodels.Change(nil), m.commits...)
}

// State returns a copy of the stored state
func (m *StateStore) State() *storagemodels.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}
