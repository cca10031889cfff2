package pedigree

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// Individual is a node of the family graph. Relatives are referenced by
// sample id and kept in first-seen order without duplicates.
type Individual struct {
	SampleID string
	Parents  []string
	Children []string

	node int64
}

// ID returns the individual's node id within its FamilyGraph.
func (ind *Individual) ID() int64 {
	return ind.node
}

// HasParent reports whether id is recorded as a parent of ind.
func (ind *Individual) HasParent(id string) bool {
	return contains(ind.Parents, id)
}

// HasChild reports whether id is recorded as a child of ind.
func (ind *Individual) HasChild(id string) bool {
	return contains(ind.Children, id)
}

// FamilyGraph is the kinship graph of a pedigree. It is built once by Build
// and only read afterwards, so concurrent queries need no locking.
//
// FamilyGraph satisfies gonum's graph.Undirected: parent and child edges are
// both traversed as plain neighbours.
type FamilyGraph struct {
	individuals map[string]*Individual
	order       []*Individual
}

var _ graph.Undirected = (*FamilyGraph)(nil)

// Build constructs the family graph of recs. Records naming the same
// individual merge their edges.
func Build(recs []Record) *FamilyGraph {
	g := &FamilyGraph{individuals: make(map[string]*Individual)}
	for _, rec := range recs {
		child := g.ensure(rec.SampleID)
		if rec.HasFather() {
			g.link(g.ensure(rec.FatherID), child)
		}
		if rec.HasMother() {
			g.link(g.ensure(rec.MotherID), child)
		}
	}
	return g
}

func (g *FamilyGraph) ensure(id string) *Individual {
	if ind, ok := g.individuals[id]; ok {
		return ind
	}
	ind := &Individual{SampleID: id, node: int64(len(g.order))}
	g.individuals[id] = ind
	g.order = append(g.order, ind)
	return ind
}

func (g *FamilyGraph) link(parent, child *Individual) {
	if !contains(child.Parents, parent.SampleID) {
		child.Parents = append(child.Parents, parent.SampleID)
	}
	if !contains(parent.Children, child.SampleID) {
		parent.Children = append(parent.Children, child.SampleID)
	}
}

// Individual returns the node for id.
func (g *FamilyGraph) Individual(id string) (*Individual, bool) {
	ind, ok := g.individuals[id]
	return ind, ok
}

// Has reports whether id appears in the pedigree.
func (g *FamilyGraph) Has(id string) bool {
	_, ok := g.individuals[id]
	return ok
}

// Len returns the number of individuals.
func (g *FamilyGraph) Len() int {
	return len(g.order)
}

// SampleIDs returns every individual's id in insertion order.
func (g *FamilyGraph) SampleIDs() []string {
	ids := make([]string, len(g.order))
	for i, ind := range g.order {
		ids[i] = ind.SampleID
	}
	return ids
}

// Node implements graph.Graph.
func (g *FamilyGraph) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(g.order)) {
		return nil
	}
	return g.order[id]
}

// Nodes implements graph.Graph.
func (g *FamilyGraph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(g.order))
	for i, ind := range g.order {
		nodes[i] = ind
	}
	return iterator.NewOrderedNodes(nodes)
}

// From implements graph.Graph, returning parents followed by children.
func (g *FamilyGraph) From(id int64) graph.Nodes {
	ind, ok := g.Node(id).(*Individual)
	if !ok {
		return iterator.NewOrderedNodes(nil)
	}
	nodes := make([]graph.Node, 0, len(ind.Parents)+len(ind.Children))
	for _, p := range ind.Parents {
		nodes = append(nodes, g.individuals[p])
	}
	for _, c := range ind.Children {
		nodes = append(nodes, g.individuals[c])
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween implements graph.Graph.
func (g *FamilyGraph) HasEdgeBetween(xid, yid int64) bool {
	x, ok := g.Node(xid).(*Individual)
	if !ok {
		return false
	}
	y, ok := g.Node(yid).(*Individual)
	if !ok {
		return false
	}
	return x.HasParent(y.SampleID) || x.HasChild(y.SampleID)
}

// Edge implements graph.Graph.
func (g *FamilyGraph) Edge(uid, vid int64) graph.Edge {
	if !g.HasEdgeBetween(uid, vid) {
		return nil
	}
	return simple.Edge{F: g.order[uid], T: g.order[vid]}
}

// EdgeBetween implements graph.Undirected.
func (g *FamilyGraph) EdgeBetween(xid, yid int64) graph.Edge {
	return g.Edge(xid, yid)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
