package prefixcode

import "container/heap"

// nodeHeap is a binary min-heap ordered by probability only. Equal
// probabilities come out in whatever order the sift operations leave them,
// which is deterministic for a fixed insertion order.
type nodeHeap []*Node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].Probability < h[j].Probability }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*Node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}

type nodeQueue struct {
	h nodeHeap
}

func newNodeQueue(capacity int) *nodeQueue {
	return &nodeQueue{h: make(nodeHeap, 0, capacity)}
}

func (q *nodeQueue) insert(n *Node) {
	heap.Push(&q.h, n)
}

// extractMin must only be called on a non-empty queue.
func (q *nodeQueue) extractMin() *Node {
	return heap.Pop(&q.h).(*Node)
}

func (q *nodeQueue) len() int {
	return q.h.Len()
}
