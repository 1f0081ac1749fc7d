package graph

import (
	"container/heap"
	"errors"
	"sort"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

// ErrCycleDetected is returned by TopoSort when the restricted graph (the
// UpstreamMap limited to monitored children) contains a cycle. Asset
// definitions are required to form a DAG upstream of this package, so a
// cycle here is an invariant violation rather than an expected runtime
// condition — callers should treat it as a programmer error, not retry.
var ErrCycleDetected = errors.New("graph: cycle detected among monitored assets")

// readyHeap is a min-heap of asset.Key ordered by the canonical key
// string, keeping TopoSort's "zero in-degree" frontier poppable in
// deterministic order without re-sorting the whole frontier on every pop.
type readyHeap []asset.Key

func (h readyHeap) Len() int           { return len(h) }
func (h readyHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h readyHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *readyHeap) Push(x any)        { *h = append(*h, x.(asset.Key)) }
func (h *readyHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopoSort produces a flat, deterministic linearization of um's monitored
// children such that if a is a parent of b and both are monitored, a
// precedes b. Parents outside the monitored set contribute no ordering
// constraint.
//
// Implementation is Kahn's algorithm: repeatedly peel off the layer of
// children with zero remaining monitored in-degree, breaking ties within a
// layer by canonical key string so the result never depends on map
// iteration order.
func TopoSort(um UpstreamMap) ([]asset.Key, error) {
	indegree := make(map[asset.Key]int, len(um))
	// dependents[p] = monitored children that list p as a parent.
	dependents := make(map[asset.Key][]asset.Key, len(um))

	for child, parents := range um {
		deg := 0
		for _, p := range parents.Sorted() {
			if !um.Monitored(p) {
				continue // unmonitored parents impose no ordering constraint
			}
			deg++
			dependents[p] = append(dependents[p], child)
		}
		indegree[child] = deg
	}

	ready := make(readyHeap, 0, len(indegree))
	for child, deg := range indegree {
		if deg == 0 {
			ready = append(ready, child)
		}
	}
	heap.Init(&ready)

	order := make([]asset.Key, 0, len(um))
	// Children freed while a layer is drained wait in pending until the
	// whole layer has been emitted, so they form the next layer.
	var pending readyHeap
	for ready.Len() > 0 {
		next := heap.Pop(&ready).(asset.Key)
		order = append(order, next)

		for _, child := range sortedKeys(dependents[next]) {
			indegree[child]--
			if indegree[child] == 0 {
				pending = append(pending, child)
			}
		}

		if ready.Len() == 0 {
			ready, pending = pending, nil
			heap.Init(&ready)
		}
	}

	if len(order) != len(um) {
		return nil, ErrCycleDetected
	}
	return order, nil
}

func sortedKeys(keys []asset.Key) []asset.Key {
	out := append([]asset.Key(nil), keys...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
