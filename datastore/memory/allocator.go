/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"math"

	"github.com/suparena/entityregistry/errors"
)

// IDAllocator issues strictly increasing identifiers starting at 1.
type IDAllocator struct {
	next uint32
}

// NewIDAllocator returns an allocator whose last issued identifier is current.
func NewIDAllocator(current uint32) *IDAllocator {
	return &IDAllocator{next: current}
}

// Next reports the identifier Allocate would return, without consuming it.
func (a *IDAllocator) Next() (uint32, error) {
	if a.next == math.MaxUint32 {
		return 0, errors.NewOverflowError("NextId", math.MaxUint32)
	}
	return a.next + 1, nil
}

// Allocate consumes and returns the next identifier. On overflow the state is left unchanged.
func (a *IDAllocator) Allocate() (uint32, error) {
	id, err := a.Next()
	if err != nil {
		return 0, err
	}
	a.next = id
	return id, nil
}

// Current returns the last issued identifier, 0 if none.
func (a *IDAllocator) Current() uint32 {
	return a.next
}

// Restore resets the allocator to a persisted value.
func (a *IDAllocator) Restore(current uint32) {
	a.next = current
}
