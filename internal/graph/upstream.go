// Package graph resolves an asset selection into an upstream dependency
// map and produces a deterministic topological order over it.
package graph

import "github.com/hashmap-kz/assetsensor/internal/asset"

// UpstreamMap maps a monitored child asset.Key to the set of its direct
// (depth-1) parent keys. Parents that are themselves monitored children
// appear both as keys and as members of other keys' parent sets; parents
// outside the monitored set (external or source assets) appear only as
// members. There are no self-loops and the map is acyclic when restricted
// to monitored children (see TopoSort).
type UpstreamMap map[asset.Key]asset.Set

// Universe is the full asset/source-asset graph the selection is resolved
// against. It answers "what are the direct parents of k" for any key in
// the repository, monitored or not.
type Universe interface {
	// Parents returns the direct (depth-1) parents of k in the full graph.
	Parents(k asset.Key) []asset.Key
}

// Build resolves selected (the concrete keys a Sensor selection expression
// resolved to) into an UpstreamMap restricted to those children. Parents
// are looked up in univ at depth 1 and self-references are dropped: a
// self-loop produces no launch.
//
// A selection that resolves to the empty set is permitted and yields an
// empty (no-op) UpstreamMap — this is not an error.
func Build(selected []asset.Key, univ Universe) UpstreamMap {
	um := make(UpstreamMap, len(selected))
	for _, child := range selected {
		parents := asset.NewSet()
		for _, p := range univ.Parents(child) {
			if p == child {
				continue // self-loops are filtered during graph construction
			}
			parents.Add(p)
		}
		um[child] = parents
	}
	return um
}

// Children returns the monitored children of um in no particular order;
// callers that need determinism should go through TopoSort instead.
func (um UpstreamMap) Children() []asset.Key {
	out := make([]asset.Key, 0, len(um))
	for k := range um {
		out = append(out, k)
	}
	return out
}

// Monitored reports whether k is itself a monitored child of um (as
// opposed to only appearing as someone else's parent).
func (um UpstreamMap) Monitored(k asset.Key) bool {
	_, ok := um[k]
	return ok
}
