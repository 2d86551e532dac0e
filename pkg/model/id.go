package model

import (
	"strconv"

	"go.uber.org/atomic"
)

// ID is the stable object id of an entry
type ID uint64

// RootID is the object id of every root
const RootID ID = 0

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDSource hands out fresh object ids
type IDSource interface {
	Next() ID
}

// IDAllocator assigns monotonically increasing object ids.
//
// Ids are never reused: an allocator restored after a load must be told about
// every id which ever existed in the repository (see Observe).
type IDAllocator struct {
	last *atomic.Uint64
}

var _ IDSource = &IDAllocator{}

// NewIDAllocator builds an allocator which hands out ids after last
func NewIDAllocator(last ID) *IDAllocator {
	return &IDAllocator{last: atomic.NewUint64(uint64(last))}
}

// Next allocates a new id
func (a *IDAllocator) Next() ID {
	return ID(a.last.Inc())
}

// Last id handed out or observed
func (a *IDAllocator) Last() ID {
	return ID(a.last.Load())
}

// Observe ensures that an existing id will never be handed out
func (a *IDAllocator) Observe(id ID) {
	for {
		current := a.last.Load()
		if uint64(id) <= current || a.last.CompareAndSwap(current, uint64(id)) {
			return
		}
	}
}
