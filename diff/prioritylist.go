// Package diff implements the GumTree-style tree matcher, the edit-script
// derivation and the three-way merge combinator CheckMerge's analyses run
// against.
package diff

import "container/heap"

// keyedItem pairs a value with its precomputed priority key.
type keyedItem[T any] struct {
	key int
	val T
}

type heapData[T any] []keyedItem[T]

func (h heapData[T]) Len() int            { return len(h) }
func (h heapData[T]) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h heapData[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *heapData[T]) Push(x interface{}) { *h = append(*h, x.(keyedItem[T])) }
func (h *heapData[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PriorityList is a min-priority queue keyed by an external function.
// pop_many (PopMany) is the operation the top-down matcher relies on: it
// removes and returns all elements currently sharing the minimum key.
type PriorityList[T any] struct {
	key  func(T) int
	data heapData[T]
}

// NewPriorityList builds a PriorityList ordered by key.
func NewPriorityList[T any](key func(T) int) *PriorityList[T] {
	return &PriorityList[T]{key: key}
}

// Push adds obj to the list.
func (l *PriorityList[T]) Push(obj T) {
	heap.Push(&l.data, keyedItem[T]{key: l.key(obj), val: obj})
}

// Open pushes every element of items onto the list.
func (l *PriorityList[T]) Open(items []T) {
	for _, obj := range items {
		l.Push(obj)
	}
}

// Pop removes and returns the smallest element.
func (l *PriorityList[T]) Pop() T {
	item := heap.Pop(&l.data).(keyedItem[T])
	return item.val
}

// Peek returns the smallest element without removing it.
func (l *PriorityList[T]) Peek() T {
	return l.data[0].val
}

// PopMany removes and returns all elements sharing the current minimum
// key. Panics if the list is empty, mirroring the "signals failure on
// empty" contract of §4.2.
func (l *PriorityList[T]) PopMany() []T {
	if l.Len() == 0 {
		panic("diff: PopMany called on an empty PriorityList")
	}

	first := heap.Pop(&l.data).(keyedItem[T])
	out := []T{first.val}

	for l.Len() > 0 && l.data[0].key <= first.key {
		out = append(out, heap.Pop(&l.data).(keyedItem[T]).val)
	}

	return out
}

// Len returns the number of elements currently in the list.
func (l *PriorityList[T]) Len() int {
	return len(l.data)
}
