package ancestry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.dedis.ch/onet/v3/log"
)

// Columns selects the sample and subpopulation fields of an ancestry file.
type Columns struct {
	Sample int
	Subpop int
}

// DefaultColumns matches the 1000 Genomes sample table
// (sample name, sex, biosample id, population code, ...).
var DefaultColumns = Columns{Sample: 0, Subpop: 3}

// Lookup maps samples to subpopulations and, through its Table, to
// superpopulations. It is read-only after construction and safe for
// concurrent use.
type Lookup struct {
	subpops map[string]string
	table   Table
}

// NewLookup builds a Lookup from a sample to subpopulation map.
func NewLookup(samples map[string]string, table Table) *Lookup {
	m := make(map[string]string, len(samples))
	for id, sub := range samples {
		m[id] = sub
	}
	return &Lookup{subpops: m, table: table}
}

// Subpopulation returns the subpopulation code of sample.
func (l *Lookup) Subpopulation(sample string) (string, error) {
	sub, ok := l.subpops[sample]
	if !ok {
		return "", UnknownSampleError{SampleID: sample}
	}
	return sub, nil
}

// Superpopulation returns the superpopulation code of sample.
func (l *Lookup) Superpopulation(sample string) (string, error) {
	sub, err := l.Subpopulation(sample)
	if err != nil {
		return "", err
	}
	super, ok := l.table.Superpopulation(sub)
	if !ok {
		return "", UnknownSubpopulationError{SampleID: sample, Code: sub}
	}
	return super, nil
}

// Has reports whether sample has an ancestry entry.
func (l *Lookup) Has(sample string) bool {
	_, ok := l.subpops[sample]
	return ok
}

// Len returns the number of samples in the lookup.
func (l *Lookup) Len() int {
	return len(l.subpops)
}

// Table returns the subpopulation table the lookup resolves against.
func (l *Lookup) Table() Table {
	return l.table
}

// Validate checks that every sample resolves to a superpopulation and
// returns the first failure. A sample whose subpopulation code is missing
// from the table fails with UnknownSubpopulationError.
func (l *Lookup) Validate(samples []string) error {
	for _, s := range samples {
		if _, err := l.Superpopulation(s); err != nil {
			return err
		}
	}
	return nil
}

// LoadLookup reads an ancestry file from disk.
func LoadLookup(filename string, table Table, cols Columns) (*Lookup, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ancestry file: %w", err)
	}
	defer f.Close()

	l, err := ReadLookup(f, filename, table, cols)
	if err != nil {
		return nil, err
	}
	log.Lvl2("Loaded ancestry for", l.Len(), "samples from", filename)
	return l, nil
}

// ReadLookup parses a delimited ancestry table. The first line is a header.
// A subpopulation field holding a comma separated list contributes only its
// first code. Subpopulations missing from table are resolved by scanning the
// row for a superpopulation code; the learned pair is added to the returned
// Lookup's table.
func ReadLookup(r io.Reader, name string, table Table, cols Columns) (*Lookup, error) {
	need := cols.Sample
	if cols.Subpop > need {
		need = cols.Subpop
	}

	samples := make(map[string]string)
	learned := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := splitAncestryLine(line)
		if len(fields) <= need {
			return nil, fmt.Errorf("%s:%d: expected at least %d fields, found %d", name, lineNum, need+1, len(fields))
		}

		sample := fields[cols.Sample]
		sub := fields[cols.Subpop]
		if i := strings.IndexByte(sub, ','); i >= 0 {
			sub = sub[:i]
		}
		samples[sample] = sub

		if _, ok := table.Superpopulation(sub); ok {
			continue
		}
		if _, ok := learned[sub]; ok {
			continue
		}
		for _, f := range fields {
			if IsSuperpopulation(f) {
				learned[sub] = f
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if len(learned) > 0 {
		log.Lvl3("Learned", len(learned), "subpopulation codes from", name)
		table = table.With(learned)
	}
	return &Lookup{subpops: samples, table: table}, nil
}

// Tab separated files keep multi-word population names in one field;
// anything else is split on runs of whitespace.
func splitAncestryLine(line string) []string {
	if strings.Contains(line, "\t") {
		fields := strings.Split(line, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}
	return strings.Fields(line)
}
