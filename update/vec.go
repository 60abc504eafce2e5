package update

import "log"

// A Vec is a growable sequence with explicit capacity management. It backs
// the registry and is intentionally minimal: append at the end, remove by
// index, indexed read. It preserves insertion order except where an element
// is removed, after which later elements shift left by one.
//
// A Vec is not safe for concurrent use, and element addresses are not stable
// across a growth event.
type Vec[T any] struct {
	data []T
	size int
}

// NewVec creates an empty Vec.
func NewVec[T any]() *Vec[T] {
	return new(Vec[T])
}

// Append inserts item at the end, growing the backing store by doubling when
// it is full so that appending stays amortized O(1).
func (v *Vec[T]) Append(item T) {
	if v.size == len(v.data) {
		v.grow()
	}

	v.data[v.size] = item
	v.size++
}

func (v *Vec[T]) grow() {
	newCap := len(v.data) * 2
	if newCap == 0 {
		newCap = 4
	}

	newData := make([]T, newCap)
	copy(newData, v.data[:v.size])
	v.data = newData
}

// RemoveAt removes the element at index i, shifting all subsequent elements
// down by one. The cost is O(size). Indices outside [0, size) panic.
func (v *Vec[T]) RemoveAt(i int) {
	if i < 0 || i >= v.size {
		log.Panicf("index %d out of range [0, %d)", i, v.size)
	}

	copy(v.data[i:], v.data[i+1:v.size])

	// Clear the vacated slot so the Vec does not keep the removed element
	// reachable.
	var zero T
	v.data[v.size-1] = zero
	v.size--
}

// At returns the element at index i. Indices outside [0, size) are a
// contract violation; callers must not rely on any specific behavior.
func (v *Vec[T]) At(i int) T {
	return v.data[i]
}

// Size returns the current element count.
func (v *Vec[T]) Size() int {
	return v.size
}

// Cap returns the capacity of the backing store.
func (v *Vec[T]) Cap() int {
	return len(v.data)
}
