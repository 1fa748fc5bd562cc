/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/suparena/entityregistry/datastore"
	"github.com/suparena/entityregistry/metrics"
)

// Option configures a Registry.
type Option func(*Registry)

// WithStateStore makes every operation commit its change to store before it is applied in memory.
func WithStateStore(store datastore.StateStore) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithTransferPolicy sets who may transfer an entity. Defaults to AllowAnyCaller.
func WithTransferPolicy(policy TransferPolicy) Option {
	return func(r *Registry) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithNotifier sets the receiver of Created and Transferred notifications.
func WithNotifier(n Notifier) Option {
	return func(r *Registry) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithLogger sets the logger. Successful operations log at V(1).
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithMetrics records operation counters and registry size.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithClock overrides the time source used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}
