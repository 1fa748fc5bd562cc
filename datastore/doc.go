/*
Package datastore defines the persistence boundary of the entity registry.

The main interface is StateStore, which reads and atomically writes the three registry cells
(NextId, EntityById, EntitiesByOwner):

	type StateStore interface {
	    Load(ctx context.Context) (*storagemodels.State, error)
	    Commit(ctx context.Context, change storagemodels.Change) error
	}

Implementations:
  - memory: the in-process IdAllocator, EntityStore and OwnerIndex the registry mutates
  - sqlite: pure-Go SQLite StateStore
  - ddb: DynamoDB single-table StateStore
  - mock: in-memory StateStore with error injection for testing

A registry without a StateStore keeps its state in memory only.
*/
package datastore
