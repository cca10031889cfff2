package relate

import (
	"github.com/hhcho/genosis-kinship/ancestry"
	"github.com/hhcho/genosis-kinship/pedigree"
)

// Classifier labels pairs of individuals from their kinship distance, the
// family graph around them and, failing a pedigree path, their ancestry.
// It holds no mutable state and may be shared between goroutines.
type Classifier struct {
	graph  *pedigree.FamilyGraph
	lookup *ancestry.Lookup
}

// NewClassifier returns a Classifier over g and lookup.
func NewClassifier(g *pedigree.FamilyGraph, lookup *ancestry.Lookup) *Classifier {
	return &Classifier{graph: g, lookup: lookup}
}

// Pair computes the distance between a and b and labels it.
func (c *Classifier) Pair(a, b string) (int, Label, error) {
	dist := c.graph.Distance(a, b)
	label, err := c.Classify(dist, a, b)
	return dist, label, err
}

// Classify labels b relative to a given their distance. The rules are
// checked in order and the first match wins; distance 2 without a sibling
// or grandparent pattern is Unknown. An error is only possible when there is
// no path and either sample lacks ancestry.
func (c *Classifier) Classify(dist int, a, b string) (Label, error) {
	switch {
	case dist == 0:
		return Self, nil
	case dist == 1:
		if c.graph.IsChildOf(b, a) {
			return Child, nil
		}
		return Parent, nil
	case dist == 2:
		switch {
		case c.graph.ShareParent(a, b):
			return Sibling, nil
		case c.graph.IsGrandchildOf(b, a):
			return Grandchild, nil
		case c.graph.IsGrandchildOf(a, b):
			return Grandparent, nil
		}
		return Unknown, nil
	case dist > 2:
		return Unknown, nil
	}
	return c.byPopulation(a, b)
}

func (c *Classifier) byPopulation(a, b string) (Label, error) {
	subA, err := c.lookup.Subpopulation(a)
	if err != nil {
		return "", err
	}
	subB, err := c.lookup.Subpopulation(b)
	if err != nil {
		return "", err
	}
	if subA == subB {
		return Subpop, nil
	}

	superA, err := c.lookup.Superpopulation(a)
	if err != nil {
		return "", err
	}
	superB, err := c.lookup.Superpopulation(b)
	if err != nil {
		return "", err
	}
	if superA == superB {
		return Superpop, nil
	}
	return Outpop, nil
}
