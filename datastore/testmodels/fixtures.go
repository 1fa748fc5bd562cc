// Package testmodels holds shared identities and entities for tests.
package testmodels

import "github.com/suparena/entityregistry/storagemodels"

const (
	Alice storagemodels.Identity = "alice"
	Bob   storagemodels.Identity = "bob"
	Carol storagemodels.Identity = "carol"
)

// Sample DNA of each parity.
var (
	EvenDNA = []byte{0x01, 0x02}
	OddDNA  = []byte{0x0a, 0x0b, 0x0c}
)

// SampleState returns a consistent state with two entities: 1 owned by Alice and 2 owned by Bob.
func SampleState() *storagemodels.State {
	first := storagemodels.Entity{ID: 1, DNA: EvenDNA, Price: 100, Gender: storagemodels.Male, Owner: Alice}
	second := storagemodels.Entity{ID: 2, DNA: OddDNA, Price: 250, Gender: storagemodels.Female, Owner: Bob}

	state := storagemodels.NewState()
	state.NextID = 2
	state.Entities[1] = first
	state.Entities[2] = second
	state.Buckets[Alice] = []storagemodels.Entity{first}
	state.Buckets[Bob] = []storagemodels.Entity{second}
	return state.Clone()
}
