package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is an append-only store of one node type. Indices are 1-based so
// that the zero ID means "no node".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get returns nil for 0 and for indices never allocated.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || uint64(index) > uint64(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage; callers must not append to it.
func (a *Arena[T]) Slice() []T { return a.data }

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return n
}

// variantOf resolves the payload of a node whose header kind matched.
func variantOf[T any](payloads *Arena[T], pid PayloadID, match bool) (*T, bool) {
	if !match {
		return nil, false
	}
	p := payloads.Get(uint32(pid))
	return p, p != nil
}
