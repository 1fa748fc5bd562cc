/*
Package storagemodels defines the data structures shared by the registry and its stores.

Key Types:

Entity:
A minted, owned record. Gender is derived from DNA once, at mint time:

	e := Entity{
	    ID:     1,
	    DNA:    []byte{0x01, 0x02},
	    Price:  100,
	    Gender: DeriveGender([]byte{0x01, 0x02}), // Male, even length
	    Owner:  "alice",
	}

State:
The persisted cells (NextId, EntityById, EntitiesByOwner) as one value. Registry.Snapshot
returns a deep copy, which makes full-state comparisons in tests straightforward.

Change:
One atomic write set produced by a registry operation and handed to a durable store:

	next := uint32(2)
	change := Change{
	    PrevNextID: 1,
	    NextID:     &next,
	    Entities:   []Entity{e},
	    Buckets:    map[Identity][]Entity{"alice": {e}},
	}

LoadOptions:
Configuration for reading state back from paged backends:

	opts := []LoadOption{
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
