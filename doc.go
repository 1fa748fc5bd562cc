/*
Package entityregistry mints uniquely identified entities and transfers their ownership.

The registry keeps two views of the same records in step: a canonical store keyed by
identifier and an owner index grouping entities by their current owner. Every create
or transfer is staged in full, committed to an optional durable StateStore, and only
then applied to both views, so a failed operation never leaves partial state.

Key Features:
  - Strictly increasing identifiers with an explicit overflow error
  - Gender derived from DNA parity at creation time
  - Pluggable durable backends (SQLite, DynamoDB) behind datastore.StateStore
  - Configurable transfer policy (any caller, or owner only)
  - Created and Transferred notifications through a Notifier
  - Semantic error types for not found, overflow and unauthorized cases

Basic Usage:

	reg := entityregistry.New(
	    entityregistry.WithLogger(log),
	    entityregistry.WithNotifier(entityregistry.LogNotifier{Log: log}),
	)

	id, err := reg.CreateEntity(ctx, "alice", []byte{0x01, 0x02}, 100)
	if err != nil {
	    return err
	}
	if err := reg.TransferEntity(ctx, "alice", id, "bob"); errors.IsNotFound(err) {
	    // nothing changed
	}

Resuming from a durable backend:

	store, _ := sqlite.NewStore("registry.db")
	reg, err := entityregistry.Open(ctx, store)
*/
package entityregistry
