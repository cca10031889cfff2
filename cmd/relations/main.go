package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/hhcho/genosis-kinship/pedigree"
	"github.com/hhcho/genosis-kinship/relate"
	"github.com/raulk/go-watchdog"
	"github.com/spf13/cobra"
	"go.dedis.ch/onet/v3/log"
)

// options holds the flag values of one root command.
type options struct {
	configFile string
	overrides  relate.Config
	useCache   bool
	noHeader   bool
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "Label pedigree relationships between every pair of samples",
		Long: `relations builds a kinship graph from a PED file, finds the shortest
parent/child path between every pair of samples and labels each pair
(self, parent, child, sibling, grandparent, grandchild, unknown), falling
back to ancestry (subpop, superpop, outpop) when no path exists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "TOML config file")
	flags.StringVar(&opts.overrides.PedFile, "ped", "", "PED file")
	flags.StringVar(&opts.overrides.AncestryFile, "ancestry", "", "ancestry file")
	flags.StringVar(&opts.overrides.Population, "pop", "", "superpopulation query or ALL")
	flags.BoolVar(&opts.noHeader, "no_header", false, "PED file does not have a header")
	flags.StringVar(&opts.overrides.OutputFile, "out", "", "output file name (default 1KG_trios_<pop>.txt)")
	flags.StringVar(&opts.overrides.OutDir, "output_dir", "", "output directory")
	flags.StringVar(&opts.overrides.CacheDir, "cache_dir", "", "directory for the distance matrix cache")
	flags.BoolVar(&opts.useCache, "use_cache", false, "reuse a cached distance matrix")
	flags.IntVar(&opts.overrides.LocalNumThreads, "threads", 0, "worker goroutines (default GOMAXPROCS)")
	flags.IntVar(&opts.overrides.DebugLevel, "debug", 0, "log verbosity")

	cmd.AddCommand(newSummaryCmd(), newFirstDegreeCmd())
	return cmd
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [results file]",
		Short: "Count labels in a relations output file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummary,
	}
}

func newFirstDegreeCmd() *cobra.Command {
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "first-degree [PED file]",
		Short: "List each individual's parents and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := pedigree.LoadFile(args[0], noHeader)
			if err != nil {
				return err
			}
			return pedigree.WriteFirstDegree(cmd.OutOrStdout(), pedigree.Build(recs))
		},
	}
	cmd.Flags().BoolVar(&noHeader, "no_header", false, "PED file does not have a header")
	return cmd
}

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(cmd *cobra.Command, opts *options) (*relate.Config, error) {
	config := relate.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if config, err = relate.LoadConfig(opts.configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ped") {
		config.PedFile = opts.overrides.PedFile
	}
	if flags.Changed("ancestry") {
		config.AncestryFile = opts.overrides.AncestryFile
	}
	if flags.Changed("pop") {
		config.Population = opts.overrides.Population
	}
	if flags.Changed("no_header") {
		config.NoHeader = opts.noHeader
	}
	if flags.Changed("out") {
		config.OutputFile = opts.overrides.OutputFile
	}
	if flags.Changed("output_dir") {
		config.OutDir = opts.overrides.OutDir
	}
	if flags.Changed("cache_dir") {
		config.CacheDir = opts.overrides.CacheDir
	}
	if flags.Changed("use_cache") {
		config.UseCachedDistances = opts.useCache
	}
	if flags.Changed("threads") {
		config.LocalNumThreads = opts.overrides.LocalNumThreads
	}
	if flags.Changed("debug") {
		config.DebugLevel = opts.overrides.DebugLevel
	}
	return config, nil
}

func runRelations(cmd *cobra.Command, opts *options) error {
	config, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log.SetDebugVisible(config.DebugLevel)

	if config.LocalNumThreads > 0 {
		runtime.GOMAXPROCS(config.LocalNumThreads)
	}
	if config.MemoryLimit > 0 {
		err, stopFn := watchdog.HeapDriven(config.MemoryLimit, 40, watchdog.NewAdaptivePolicy(0.5))
		if err != nil {
			return fmt.Errorf("starting memory watchdog: %w", err)
		}
		defer stopFn()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = relate.Run(ctx, config)
	return err
}

func runSummary(cmd *cobra.Command, args []string) error {
	results, err := relate.LoadResults(args[0])
	if err != nil {
		return err
	}
	counts := relate.CountLabels(results)
	out := cmd.OutOrStdout()
	for _, l := range relate.Labels {
		fmt.Fprintf(out, "%s\t%d\n", l, counts[l])
	}
	fmt.Fprintf(out, "related\t%d\n", relate.RelatedPairs(results))
	fmt.Fprintf(out, "total\t%d\n", len(results))
	return nil
}
