package event

import "github.com/gammazero/deque"

// NodeQueue is the explicit LIFO worklist used to walk an EventTree without
// recursion (spec.md §5: "deep recursion... unsuitable... explicit queue to
// avoid stack-depth issues"). Despite the name (kept for continuity with the
// source this is grounded on, which calls it a queue even though it is
// drained LIFO via pop_back), traversal order is last-in-first-out: Push
// appends, Pop removes the most recently pushed element.
type NodeQueue struct {
	d deque.Deque[NodePos]
}

// NewNodeQueue returns an empty NodeQueue.
func NewNodeQueue() *NodeQueue {
	return &NodeQueue{}
}

// NewNodeQueueFrom returns a NodeQueue seeded with the given positions, in
// the order given (the last element of positions is the first one Pop
// returns).
func NewNodeQueueFrom(positions ...NodePos) *NodeQueue {
	q := NewNodeQueue()
	for _, p := range positions {
		q.Push(p)
	}
	return q
}

// Push appends pos as the most recently added element.
func (q *NodeQueue) Push(pos NodePos) {
	q.d.PushBack(pos)
}

// Pop removes and returns the most recently pushed element. Panics if the
// queue is empty; callers must check Empty first.
func (q *NodeQueue) Pop() NodePos {
	return q.d.PopBack()
}

// Empty reports whether the queue holds no elements.
func (q *NodeQueue) Empty() bool {
	return q.d.Len() == 0
}

// Len returns the number of elements currently queued.
func (q *NodeQueue) Len() int {
	return q.d.Len()
}

// Clear empties the queue in place, discarding all pending work. Used by
// TreeOpt's satisfiability early-exit (spec.md §4.5 step 1).
func (q *NodeQueue) Clear() {
	for q.d.Len() > 0 {
		q.d.PopBack()
	}
}
