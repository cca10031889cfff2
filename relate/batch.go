package relate

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hhcho/genosis-kinship/pedigree"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Result is the classification of one ordered pair.
type Result struct {
	A        string
	B        string
	Distance int
	Label    Label
}

// Batch classifies every ordered pair of a sample list, self pairs
// included. Rows of the pair space are sharded across goroutines; the graph
// and lookup are only read.
type Batch struct {
	classifier *Classifier
	samples    []string
	numThreads int
}

// NewBatch prepares a batch over samples. numThreads <= 0 uses GOMAXPROCS.
func NewBatch(c *Classifier, samples []string, numThreads int) *Batch {
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}
	return &Batch{classifier: c, samples: samples, numThreads: numThreads}
}

// Samples returns the batch's sample order.
func (b *Batch) Samples() []string {
	return b.samples
}

// Run computes the distance matrix and classifies every pair.
func (b *Batch) Run(ctx context.Context) ([]Result, error) {
	dm, err := b.Distances(ctx)
	if err != nil {
		return nil, err
	}
	return b.Classify(ctx, dm)
}

// Distances returns the n x n kinship distance matrix of the batch's
// samples, one breadth-first search per row. Unconnected pairs hold NoPath.
func (b *Batch) Distances(ctx context.Context) (*mat.Dense, error) {
	n := len(b.samples)
	if n == 0 {
		return nil, nil
	}
	start := time.Now()
	dm := mat.NewDense(n, n, nil)
	g := b.classifier.graph

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.numThreads)
	for i := range b.samples {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dists := g.Distances(b.samples[i])
			row := make([]float64, n)
			for j, s := range b.samples {
				d, ok := dists[s]
				if !ok {
					d = pedigree.NoPath
				}
				row[j] = float64(d)
			}
			// rows are disjoint
			dm.SetRow(i, row)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.Lvl2("Distance matrix", n, "x", n, "computed in", time.Since(start))
	return dm, nil
}

// Classify labels every pair using a distance matrix from Distances or a
// cache. Output is row-major in sample order.
func (b *Batch) Classify(ctx context.Context, dm *mat.Dense) ([]Result, error) {
	n := len(b.samples)
	if n == 0 {
		return nil, nil
	}
	if r, c := dm.Dims(); r != n || c != n {
		return nil, fmt.Errorf("distance matrix is %dx%d, want %dx%d", r, c, n, n)
	}
	if err := b.classifier.lookup.Validate(b.samples); err != nil {
		return nil, fmt.Errorf("ancestry coverage: %w", err)
	}

	start := time.Now()
	results := make([]Result, n*n)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.numThreads)
	for i := range b.samples {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := b.samples[i]
			for j, s := range b.samples {
				d := int(dm.At(i, j))
				label, err := b.classifier.Classify(d, a, s)
				if err != nil {
					return fmt.Errorf("classifying %s %s: %w", a, s, err)
				}
				results[i*n+j] = Result{A: a, B: s, Distance: d, Label: label}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.Lvl2("Classified", len(results), "pairs in", time.Since(start))
	return results, nil
}

// CountLabels tallies results per label.
func CountLabels(results []Result) map[Label]int {
	counts := make(map[Label]int, len(Labels))
	for _, r := range results {
		counts[r.Label]++
	}
	return counts
}

// RelatedPairs counts the pairs of distinct individuals joined by a
// pedigree path.
func RelatedPairs(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Label.IsPedigree() && r.Label != Self {
			n++
		}
	}
	return n
}
