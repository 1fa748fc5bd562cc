/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"testing"

	"github.com/suparena/entityregistry/datastore/testmodels"
	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

func TestVerifyState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *storagemodels.State)
		ok     bool
	}{
		{name: "consistent", mutate: func(*storagemodels.State) {}, ok: true},
		{name: "empty", mutate: func(s *storagemodels.State) { *s = *storagemodels.NewState() }, ok: true},
		{
			name:   "missing from index",
			mutate: func(s *storagemodels.State) { delete(s.Buckets, testmodels.Alice) },
		},
		{
			name: "wrong bucket",
			mutate: func(s *storagemodels.State) {
				s.Buckets[testmodels.Carol] = s.Buckets[testmodels.Alice]
				delete(s.Buckets, testmodels.Alice)
			},
		},
		{
			name: "duplicated across buckets",
			mutate: func(s *storagemodels.State) {
				s.Buckets[testmodels.Bob] = append(s.Buckets[testmodels.Bob], s.Entities[1])
			},
		},
		{
			name: "diverging copy",
			mutate: func(s *storagemodels.State) {
				s.Buckets[testmodels.Alice][0].Price = 1
			},
		},
		{
			name: "indexed but not canonical",
			mutate: func(s *storagemodels.State) {
				delete(s.Entities, 2)
			},
		},
		{
			name:   "beyond NextId",
			mutate: func(s *storagemodels.State) { s.NextID = 1 },
		},
		{
			name: "gender mismatch",
			mutate: func(s *storagemodels.State) {
				e := s.Entities[1]
				e.Gender = storagemodels.Female
				s.Entities[1] = e
				s.Buckets[testmodels.Alice][0] = e
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testmodels.SampleState()
			tt.mutate(state)
			err := verifyState(state)
			if tt.ok && err != nil {
				t.Fatalf("Expected consistent state, got: %v", err)
			}
			if !tt.ok && !errors.IsInconsistent(err) {
				t.Fatalf("Expected inconsistency error, got: %v", err)
			}
		})
	}
}
