package pedigree

// IsChildOf reports whether b is recorded as a child of a, looking at both
// a's children and b's parents.
func (g *FamilyGraph) IsChildOf(b, a string) bool {
	ia, okA := g.individuals[a]
	ib, okB := g.individuals[b]
	if !okA || !okB {
		return false
	}
	return ia.HasChild(b) || ib.HasParent(a)
}

// ShareParent reports whether a and b have at least one recorded parent in
// common.
func (g *FamilyGraph) ShareParent(a, b string) bool {
	ia, okA := g.individuals[a]
	ib, okB := g.individuals[b]
	if !okA || !okB {
		return false
	}
	for _, p := range ia.Parents {
		if ib.HasParent(p) {
			return true
		}
	}
	return false
}

// IsGrandchildOf reports whether b is a child of some child of a.
func (g *FamilyGraph) IsGrandchildOf(b, a string) bool {
	ia, ok := g.individuals[a]
	if !ok {
		return false
	}
	for _, c := range ia.Children {
		if g.individuals[c].HasChild(b) {
			return true
		}
	}
	return false
}
