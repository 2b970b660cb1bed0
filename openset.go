package watersort

import "container/heap"

// openSetHeap implements container/heap.Interface over SearchStates,
// ordered by SearchState.Less. Single-threaded per §5: the solver owns one
// openSet per invocation and discards it when the search returns, so there
// is no mutex or condition variable guarding access.
type openSetHeap []*SearchState

func (h openSetHeap) Len() int            { return len(h) }
func (h openSetHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h openSetHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openSetHeap) Push(x interface{}) { *h = append(*h, x.(*SearchState)) }
func (h *openSetHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// openSet is a min-heap of SearchStates ordered by priority tuple.
type openSet struct {
	items openSetHeap
}

// newOpenSet builds an open set holding only start.
func newOpenSet(start *SearchState) *openSet {
	os := &openSet{items: openSetHeap{start}}
	heap.Init(&os.items)
	return os
}

// push inserts s into the open set.
func (os *openSet) push(s *SearchState) {
	heap.Push(&os.items, s)
}

// popMin removes and returns the lowest-priority SearchState, or nil if
// the open set is empty.
func (os *openSet) popMin() *SearchState {
	if len(os.items) == 0 {
		return nil
	}
	return heap.Pop(&os.items).(*SearchState)
}

func (os *openSet) empty() bool { return len(os.items) == 0 }
