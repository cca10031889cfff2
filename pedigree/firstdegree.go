package pedigree

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FirstDegree maps each individual to the set of its parents and children.
// Individuals without edges are omitted.
func (g *FamilyGraph) FirstDegree() map[string]map[string]bool {
	related := make(map[string]map[string]bool)
	for _, ind := range g.order {
		if len(ind.Parents)+len(ind.Children) == 0 {
			continue
		}
		set := make(map[string]bool, len(ind.Parents)+len(ind.Children))
		for _, p := range ind.Parents {
			set[p] = true
		}
		for _, c := range ind.Children {
			set[c] = true
		}
		related[ind.SampleID] = set
	}
	return related
}

// WriteFirstDegree writes one "sample relative,relative,..." line per
// individual with at least one edge, in graph insertion order with
// relatives sorted.
func WriteFirstDegree(w io.Writer, g *FamilyGraph) error {
	related := g.FirstDegree()
	bw := bufio.NewWriter(w)
	for _, id := range g.SampleIDs() {
		set, ok := related[id]
		if !ok {
			continue
		}
		rel := make([]string, 0, len(set))
		for r := range set {
			rel = append(rel, r)
		}
		sort.Strings(rel)
		if _, err := fmt.Fprintf(bw, "%s %s\n", id, strings.Join(rel, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
