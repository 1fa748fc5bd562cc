/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entityregistry/storagemodels"
)

// EventKind names a notification type.
type EventKind string

const (
	KindCreated     EventKind = "Created"
	KindTransferred EventKind = "Transferred"
)

// Event is a domain notification emitted after a successful operation.
type Event interface {
	Kind() EventKind
}

// Created is emitted once an entity has been minted.
type Created struct {
	DNA        []byte                 `json:"dna"`
	Caller     storagemodels.Identity `json:"caller"`
	OccurredAt strfmt.DateTime        `json:"occurredAt"`
}

func (Created) Kind() EventKind { return KindCreated }

// Transferred is emitted once an entity has a new owner.
type Transferred struct {
	Caller     storagemodels.Identity `json:"caller"`
	ID         uint32                 `json:"id"`
	NewOwner   storagemodels.Identity `json:"newOwner"`
	OccurredAt strfmt.DateTime        `json:"occurredAt"`
}

func (Transferred) Kind() EventKind { return KindTransferred }

// Notifier receives events. Notify is called while the registry lock is held and
// must not call back into the registry.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event)

func (f NotifierFunc) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// LogNotifier writes events to a logger.
type LogNotifier struct {
	Log logr.Logger
}

func (n LogNotifier) Notify(_ context.Context, event Event) {
	switch e := event.(type) {
	case Created:
		n.Log.Info("event", "kind", e.Kind(), "caller", e.Caller, "dna", hex.EncodeToString(e.DNA), "at", e.OccurredAt.String())
	case Transferred:
		n.Log.Info("event", "kind", e.Kind(), "caller", e.Caller, "id", e.ID, "newOwner", e.NewOwner, "at", e.OccurredAt.String())
	default:
		n.Log.Info("event", "kind", event.Kind())
	}
}
