package relate

import "fmt"

// Label is the relationship of the second individual of a pair to the first.
type Label string

const (
	Self        Label = "self"
	Parent      Label = "parent"
	Child       Label = "child"
	Sibling     Label = "sibling"
	Grandparent Label = "grandparent"
	Grandchild  Label = "grandchild"
	Unknown     Label = "unknown"  // connected, pattern not distinguished
	Subpop      Label = "subpop"   // no path, same subpopulation
	Superpop    Label = "superpop" // no path, same superpopulation only
	Outpop      Label = "outpop"   // no path, different superpopulation
)

// Labels lists every label in report order.
var Labels = []Label{Self, Parent, Child, Sibling, Grandparent, Grandchild, Unknown, Subpop, Superpop, Outpop}

func (l Label) String() string {
	return string(l)
}

// IsPedigree reports whether the label comes from a pedigree path rather
// than the population fallback.
func (l Label) IsPedigree() bool {
	switch l {
	case Subpop, Superpop, Outpop:
		return false
	}
	return true
}

// ParseLabel converts s to a Label.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown relationship label %q", s)
}
