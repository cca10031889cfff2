package pedigree

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"
)

// NoPath is the distance between individuals that are not connected, or
// when either one is absent from the pedigree.
const NoPath = -1

// Distance returns the minimum number of parent/child edges between a and b,
// or NoPath.
func (g *FamilyGraph) Distance(a, b string) int {
	from, ok := g.individuals[a]
	if !ok {
		return NoPath
	}
	to, ok := g.individuals[b]
	if !ok {
		return NoPath
	}
	if from == to {
		return 0
	}

	dist := NoPath
	var bfs traverse.BreadthFirst
	bfs.Walk(g, from, func(n graph.Node, depth int) bool {
		if n.ID() == to.node {
			dist = depth
			return true
		}
		return false
	})
	return dist
}

// Distances runs one breadth-first search from a and returns the distance to
// every individual reachable from it, a itself included at 0. Unreachable
// individuals are absent from the map. A missing a yields an empty map.
func (g *FamilyGraph) Distances(a string) map[string]int {
	dists := make(map[string]int)
	from, ok := g.individuals[a]
	if !ok {
		return dists
	}

	var bfs traverse.BreadthFirst
	bfs.Walk(g, from, func(n graph.Node, depth int) bool {
		dists[g.order[n.ID()].SampleID] = depth
		return false
	})
	return dists
}
