/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/suparena/entityregistry/config"
	"github.com/suparena/entityregistry/datastore"
	"github.com/suparena/entityregistry/datastore/ddb"
	"github.com/suparena/entityregistry/datastore/sqlite"
	"github.com/suparena/entityregistry/errors"
)

// OpenFunc opens the StateStore for a backend. A nil store means the registry
// keeps its state in memory only.
type OpenFunc func(ctx context.Context, cfg config.Config) (datastore.StateStore, error)

// Backends is a thread-safe table of named StateStore openers.
type Backends struct {
	mu      sync.RWMutex
	openers map[string]OpenFunc
}

// NewBackends returns an empty table.
func NewBackends() *Backends {
	return &Backends{
		openers: make(map[string]OpenFunc),
	}
}

// DefaultBackends returns a table with the memory, sqlite and dynamodb backends.
func DefaultBackends() *Backends {
	b := NewBackends()
	_ = b.Register(config.BackendMemory, func(context.Context, config.Config) (datastore.StateStore, error) {
		return nil, nil
	})
	_ = b.Register(config.BackendSQLite, func(_ context.Context, cfg config.Config) (datastore.StateStore, error) {
		return sqlite.NewStore(cfg.SQLitePath)
	})
	_ = b.Register(config.BackendDynamoDB, func(ctx context.Context, cfg config.Config) (datastore.StateStore, error) {
		return ddb.NewStateStore(ctx, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSRegion, cfg.DynamoDBTable)
	})
	return b
}

// Register stores open under name.
func (b *Backends) Register(name string, open OpenFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.openers[name]; exists {
		return fmt.Errorf("backend %q already registered", name)
	}
	b.openers[name] = open
	return nil
}

// Names returns the registered backend names in sorted order.
func (b *Backends) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.openers))
	for name := range b.openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenStore opens the StateStore named by cfg.Backend.
func (b *Backends) OpenStore(ctx context.Context, cfg config.Config) (datastore.StateStore, error) {
	b.mu.RLock()
	open, exists := b.openers[cfg.Backend]
	b.mu.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("Backend", cfg.Backend)
	}
	store, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return store, nil
}

// OpenFromConfig opens the configured backend and resumes a Registry from it,
// applying the configured transfer policy before opts.
func OpenFromConfig(ctx context.Context, cfg config.Config, backends *Backends, opts ...Option) (*Registry, error) {
	policy, err := ParseTransferPolicy(cfg.TransferPolicy)
	if err != nil {
		return nil, err
	}
	if backends == nil {
		backends = DefaultBackends()
	}

	store, err := backends.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	r, err := Open(ctx, store, append([]Option{WithTransferPolicy(policy)}, opts...)...)
	if err != nil {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}
	return r, nil
}
