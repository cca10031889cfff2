package relate

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hhcho/genosis-kinship/ancestry"
	"github.com/hhcho/genosis-kinship/pedigree"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// Summary describes a finished batch.
type Summary struct {
	OutputPath  string
	NumSamples  int
	NumPairs    int
	NumRelated  int
	Counts      map[Label]int
	CachedDists bool
}

// Run loads the pedigree and ancestry files named by config, classifies
// every pair of retained samples and writes the results file. Any load
// error aborts before output is written.
func Run(ctx context.Context, config *Config) (*Summary, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	lookup, err := ancestry.LoadLookup(config.AncestryFile, config.Table(), config.Columns())
	if err != nil {
		return nil, err
	}

	recs, err := pedigree.LoadFile(config.PedFile, config.NoHeader)
	if err != nil {
		return nil, err
	}
	recs, err = pedigree.FilterByPopulation(recs, config.Population, lookup)
	if err != nil {
		return nil, err
	}

	g := pedigree.Build(recs)
	samples := pedigree.Samples(recs)
	log.Lvl1(time.Now().Format(time.StampMilli), "Pedigree loaded:", g.Len(), "individuals,", len(samples), "query samples", time.Since(start))

	batch := NewBatch(NewClassifier(g, lookup), samples, config.LocalNumThreads)
	key := CacheKey{Samples: samples, Pedigree: pedigree.Fingerprint(recs)}

	var dm *mat.Dense
	cached := false
	if config.UseCachedDistances {
		dm, cached, err = LoadDistanceCache(config.CacheDir, config.CacheName(), key)
		if err != nil {
			return nil, err
		}
	}
	if !cached {
		dm, err = batch.Distances(ctx)
		if err != nil {
			return nil, err
		}
		if config.CacheDir != "" && dm != nil {
			if err := SaveDistanceCache(config.CacheDir, config.CacheName(), key, dm); err != nil {
				log.Warn("Could not cache distances:", err)
			}
		}
	} else {
		log.Lvl1(time.Now().Format(time.StampMilli), "Using cached distance matrix")
	}

	results, err := batch.Classify(ctx, dm)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.OutDir, 0755); err != nil {
		return nil, err
	}
	out := config.OutputPath()
	if err := SaveResults(out, results); err != nil {
		return nil, err
	}

	summary := &Summary{
		OutputPath:  out,
		NumSamples:  len(samples),
		NumPairs:    len(results),
		NumRelated:  RelatedPairs(results),
		Counts:      CountLabels(results),
		CachedDists: cached,
	}
	log.Lvl1(time.Now().Format(time.StampMilli), "Wrote", summary.NumPairs, "pairs,", summary.NumRelated, "related, to", out, "in", time.Since(start))
	for _, l := range Labels {
		if n := summary.Counts[l]; n > 0 {
			log.Lvl2(fmt.Sprintf("%-12s %d", l, n))
		}
	}
	return summary, nil
}
