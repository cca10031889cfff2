package pedigree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const extendedPed = `GP1 0 0 male
GM1 0 0 female
P1 GP1 GM1 male
A1 GP1 GM1 female
M1 0 0 female
C1 P1 M1 male
C2 P1 M1 female
K1 A1 0 male
X1 0 0 male
`

func TestDistanceSelf(t *testing.T) {
	g := Build(mustRead(t, extendedPed))
	for _, id := range g.SampleIDs() {
		assert.Equal(t, 0, g.Distance(id, id), id)
	}
}

func TestDistanceRelatives(t *testing.T) {
	g := Build(mustRead(t, extendedPed))
	cases := []struct {
		a, b string
		want int
	}{
		{"P1", "C1", 1},
		{"C1", "P1", 1},
		{"C1", "C2", 2},
		{"C1", "GP1", 2},
		{"P1", "M1", 2}, // through a shared child
		{"C1", "A1", 3},
		{"C1", "K1", 4},
		{"C1", "X1", NoPath},
		{"C1", "missing", NoPath},
		{"missing", "missing", NoPath},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, g.Distance(c.a, c.b), "%s-%s", c.a, c.b)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	g := Build(mustRead(t, extendedPed))
	ids := g.SampleIDs()
	for _, a := range ids {
		for _, b := range ids {
			assert.Equal(t, g.Distance(a, b), g.Distance(b, a), "%s-%s", a, b)
		}
	}
}

func TestDistancesMatchesDistance(t *testing.T) {
	g := Build(mustRead(t, extendedPed))
	ids := g.SampleIDs()
	for _, a := range ids {
		dists := g.Distances(a)
		for _, b := range ids {
			want := g.Distance(a, b)
			got, ok := dists[b]
			if want == NoPath {
				assert.False(t, ok, "%s-%s", a, b)
				continue
			}
			assert.Equal(t, want, got, "%s-%s", a, b)
		}
	}
	assert.Empty(t, g.Distances("missing"))
}

func TestDistanceShortestPath(t *testing.T) {
	// C1 reaches GP1 both directly through P1 and the long way round
	// through M1's line; BFS must report the short one.
	ped := "C1 P1 M1 male\nP1 GP1 0 male\nM1 GP2 0 female\nGP2 GP1 0 male\n"
	g := Build(mustRead(t, ped))
	assert.Equal(t, 2, g.Distance("C1", "GP1"))
	assert.Equal(t, 2, g.Distance("C1", "GP2"))
}

func TestTopology(t *testing.T) {
	g := Build(mustRead(t, extendedPed))

	assert.True(t, g.IsChildOf("C1", "P1"))
	assert.False(t, g.IsChildOf("P1", "C1"))
	assert.False(t, g.IsChildOf("C1", "missing"))

	assert.True(t, g.ShareParent("C1", "C2"))
	assert.True(t, g.ShareParent("P1", "A1"))
	assert.False(t, g.ShareParent("P1", "M1"))

	assert.True(t, g.IsGrandchildOf("C1", "GP1"))
	assert.True(t, g.IsGrandchildOf("K1", "GM1"))
	assert.False(t, g.IsGrandchildOf("GP1", "C1"))
	assert.False(t, g.IsGrandchildOf("C1", "missing"))
}
