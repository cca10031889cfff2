package ancestry

import (
	"fmt"
	"sort"
)

// Superpopulation codes used by the 1000 Genomes reference panel
var Superpopulations = []string{"AFR", "AMR", "EAS", "EUR", "SAS"}

// Table maps subpopulation codes to superpopulation codes.
// A Table is never modified once built; use With to derive a new one.
type Table struct {
	subToSuper map[string]string
}

// NewTable copies entries into a new Table.
func NewTable(entries map[string]string) Table {
	m := make(map[string]string, len(entries))
	for sub, super := range entries {
		m[sub] = super
	}
	return Table{subToSuper: m}
}

// DefaultTable returns the 26 subpopulations of the 1000 Genomes project.
func DefaultTable() Table {
	return NewTable(map[string]string{
		"ASW": "AFR", "LWK": "AFR", "GWD": "AFR", "MSL": "AFR", "ESN": "AFR", "YRI": "AFR", "ACB": "AFR",
		"CLM": "AMR", "PEL": "AMR", "MXL": "AMR", "PUR": "AMR",
		"CDX": "EAS", "CHB": "EAS", "JPT": "EAS", "KHV": "EAS", "CHS": "EAS",
		"CEU": "EUR", "TSI": "EUR", "FIN": "EUR", "GBR": "EUR", "IBS": "EUR",
		"BEB": "SAS", "GIH": "SAS", "ITU": "SAS", "PJL": "SAS", "STU": "SAS",
	})
}

// With returns a copy of t with the given entries added or overridden.
func (t Table) With(entries map[string]string) Table {
	m := make(map[string]string, len(t.subToSuper)+len(entries))
	for sub, super := range t.subToSuper {
		m[sub] = super
	}
	for sub, super := range entries {
		m[sub] = super
	}
	return Table{subToSuper: m}
}

// Superpopulation returns the superpopulation code of subpop.
func (t Table) Superpopulation(subpop string) (string, bool) {
	super, ok := t.subToSuper[subpop]
	return super, ok
}

// Subpopulations returns the sorted subpopulation codes belonging to super.
func (t Table) Subpopulations(super string) []string {
	var subs []string
	for sub, s := range t.subToSuper {
		if s == super {
			subs = append(subs, sub)
		}
	}
	sort.Strings(subs)
	return subs
}

// Len returns the number of subpopulations in the table.
func (t Table) Len() int {
	return len(t.subToSuper)
}

// IsSuperpopulation reports whether code is one of the known superpopulations.
func IsSuperpopulation(code string) bool {
	for _, s := range Superpopulations {
		if s == code {
			return true
		}
	}
	return false
}

// UnknownSampleError is returned when a sample has no ancestry entry.
type UnknownSampleError struct {
	SampleID string
}

func (e UnknownSampleError) Error() string {
	return fmt.Sprintf("sample %q has no ancestry entry", e.SampleID)
}

// UnknownSubpopulationError is returned when a subpopulation code has no
// superpopulation in the table.
type UnknownSubpopulationError struct {
	SampleID string
	Code     string
}

func (e UnknownSubpopulationError) Error() string {
	return fmt.Sprintf("sample %q: subpopulation %q has no superpopulation", e.SampleID, e.Code)
}
