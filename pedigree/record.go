package pedigree

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/hhcho/genosis-kinship/ancestry"
	"go.dedis.ch/onet/v3/log"
)

// Missing marks an absent parent in a pedigree record.
const Missing = "0"

// AllPopulations disables population filtering.
const AllPopulations = "ALL"

// Record is one pedigree line.
type Record struct {
	SampleID string
	FatherID string
	MotherID string
	Sex      string
}

// HasFather reports whether the father is known.
func (r Record) HasFather() bool {
	return r.FatherID != Missing
}

// HasMother reports whether the mother is known.
func (r Record) HasMother() bool {
	return r.MotherID != Missing
}

// MalformedRecordError is returned for a pedigree line with too few fields.
type MalformedRecordError struct {
	File   string
	Line   int
	Fields int
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed pedigree record: expected 4 fields, found %d", e.File, e.Line, e.Fields)
}

// LoadFile reads every record of a pedigree file. Any malformed line aborts
// the load and no records are returned.
func LoadFile(filename string, noHeader bool) ([]Record, error) {
	stream, err := NewPedFileStream(filename, noHeader)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	recs, err := readAll(stream)
	if err != nil {
		return nil, err
	}
	log.Lvl2("Read", len(recs), "pedigree records from", filename, "in", stream.LineCount(), "lines")
	return recs, nil
}

// ReadRecords reads every record from r. name is used in error messages.
func ReadRecords(r io.Reader, name string, noHeader bool) ([]Record, error) {
	return readAll(NewPedStream(r, name, noHeader))
}

func readAll(stream *PedStream) ([]Record, error) {
	var recs []Record
	for {
		rec, err := stream.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

// FilterByPopulation keeps the records whose sample belongs to the
// superpopulation pop. AllPopulations keeps everything without consulting
// lookup. A sample missing from lookup is an error.
func FilterByPopulation(recs []Record, pop string, lookup *ancestry.Lookup) ([]Record, error) {
	if pop == AllPopulations {
		return recs, nil
	}
	if lookup == nil {
		return nil, fmt.Errorf("filtering pedigree by population %s: no ancestry lookup", pop)
	}

	kept := make([]Record, 0, len(recs))
	for _, rec := range recs {
		super, err := lookup.Superpopulation(rec.SampleID)
		if err != nil {
			return nil, fmt.Errorf("filtering pedigree by population %s: %w", pop, err)
		}
		if super == pop {
			kept = append(kept, rec)
		}
	}
	log.Lvl2("Kept", len(kept), "of", len(recs), "pedigree records for population", pop)
	return kept, nil
}

// Samples returns the distinct sample ids of recs in record order.
func Samples(recs []Record) []string {
	seen := make(map[string]bool, len(recs))
	samples := make([]string, 0, len(recs))
	for _, rec := range recs {
		if seen[rec.SampleID] {
			continue
		}
		seen[rec.SampleID] = true
		samples = append(samples, rec.SampleID)
	}
	return samples
}

// Fingerprint hashes every field of recs in order. Two record lists with
// the same fingerprint build the same family graph.
func Fingerprint(recs []Record) uint64 {
	d := xxhash.New()
	for _, rec := range recs {
		d.WriteString(rec.SampleID)
		d.WriteString("\t")
		d.WriteString(rec.FatherID)
		d.WriteString("\t")
		d.WriteString(rec.MotherID)
		d.WriteString("\t")
		d.WriteString(rec.Sex)
		d.WriteString("\n")
	}
	return d.Sum64()
}

func openPedFile(filename string) (*os.File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening pedigree file: %w", err)
	}
	return f, nil
}
