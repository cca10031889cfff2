package relate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hhcho/genosis-kinship/ancestry"
	"github.com/hhcho/genosis-kinship/pedigree"
	"go.dedis.ch/onet/v3/log"
)

type Config struct {
	PedFile      string `toml:"ped_file"`
	AncestryFile string `toml:"ancestry_file"`
	Population   string `toml:"population"`
	NoHeader     bool   `toml:"no_header"`

	AncestrySampleColumn int `toml:"ancestry_sample_column"`
	AncestrySubpopColumn int `toml:"ancestry_subpop_column"`

	// extra or overriding subpopulation -> superpopulation entries
	Subpopulations map[string]string `toml:"subpopulations"`

	OutDir     string `toml:"output_dir"`
	OutputFile string `toml:"output_file"`

	CacheDir           string `toml:"cache_dir"`
	UseCachedDistances bool   `toml:"use_cached_distances"`

	LocalNumThreads int    `toml:"local_num_threads"`
	MemoryLimit     uint64 `toml:"memory_limit"`

	DebugLevel int `toml:"debug_level"`
}

// DefaultConfig returns a Config for the 1000 Genomes layout.
func DefaultConfig() *Config {
	return &Config{
		Population:           pedigree.AllPopulations,
		AncestrySampleColumn: ancestry.DefaultColumns.Sample,
		AncestrySubpopColumn: ancestry.DefaultColumns.Subpop,
		OutDir:               ".",
		DebugLevel:           1,
	}
}

// LoadConfig decodes filename on top of DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	md, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", filename, err)
	}
	for _, key := range md.Undecoded() {
		log.Warn("Ignoring unknown config key", key.String(), "in", filename)
	}
	return config, nil
}

// Validate checks the fields needed to run a batch.
func (c *Config) Validate() error {
	if c.PedFile == "" {
		return errors.New("no pedigree file configured")
	}
	if c.AncestryFile == "" {
		return errors.New("no ancestry file configured")
	}
	if c.Population == "" {
		return errors.New("no population configured")
	}
	if c.Population != pedigree.AllPopulations && len(c.Table().Subpopulations(c.Population)) == 0 {
		return fmt.Errorf("population %q is neither %s nor a known superpopulation", c.Population, pedigree.AllPopulations)
	}
	if c.AncestrySampleColumn < 0 || c.AncestrySubpopColumn < 0 {
		return errors.New("ancestry columns must be non-negative")
	}
	if c.UseCachedDistances && c.CacheDir == "" {
		return errors.New("use_cached_distances requires cache_dir")
	}
	return nil
}

// Table returns the subpopulation table with config overrides applied.
func (c *Config) Table() ancestry.Table {
	table := ancestry.DefaultTable()
	if len(c.Subpopulations) > 0 {
		table = table.With(c.Subpopulations)
	}
	return table
}

// Columns returns the ancestry file column layout.
func (c *Config) Columns() ancestry.Columns {
	return ancestry.Columns{Sample: c.AncestrySampleColumn, Subpop: c.AncestrySubpopColumn}
}

// OutputPath is output_file, or 1KG_trios_<population>.txt, inside output_dir.
func (c *Config) OutputPath() string {
	name := c.OutputFile
	if name == "" {
		name = "1KG_trios_" + c.Population + ".txt"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutDir, name)
}

// CacheName identifies the distance cache of this configuration.
func (c *Config) CacheName() string {
	return "kinship_" + c.Population
}
