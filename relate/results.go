package relate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteResults writes one "A B distance label" line per result.
func WriteResults(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s %s %d %s\n", r.A, r.B, r.Distance, r.Label); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveResults writes results to filename.
func SaveResults(filename string, results []Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	if err := WriteResults(f, results); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}

// ReadResults parses the output of WriteResults.
func ReadResults(r io.Reader, name string) ([]Result, error) {
	var results []Result
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s:%d: expected 4 fields, found %d", name, lineNum, len(fields))
		}
		dist, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad distance: %w", name, lineNum, err)
		}
		label, err := ParseLabel(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNum, err)
		}
		results = append(results, Result{A: fields[0], B: fields[1], Distance: dist, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return results, nil
}

// LoadResults reads a results file from disk.
func LoadResults(filename string) ([]Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()
	return ReadResults(f, filename)
}

// Index gives keyed access to a result set: Index[a][b].
type Index map[string]map[string]Result

// NewIndex indexes results by query sample then target sample.
func NewIndex(results []Result) Index {
	idx := make(Index)
	for _, r := range results {
		row, ok := idx[r.A]
		if !ok {
			row = make(map[string]Result)
			idx[r.A] = row
		}
		row[r.B] = r
	}
	return idx
}

// Get returns the result for the ordered pair (a, b).
func (idx Index) Get(a, b string) (Result, bool) {
	r, ok := idx[a][b]
	return r, ok
}
