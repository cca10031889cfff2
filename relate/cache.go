package relate

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// CacheKey identifies the input a distance matrix was computed from: the
// row order and a fingerprint of the pedigree records the graph was built
// from.
type CacheKey struct {
	Samples  []string
	Pedigree uint64
}

func cachePaths(dir, name string) (matrix, key string) {
	return filepath.Join(dir, name+".dist.bin"), filepath.Join(dir, name+".samples.txt")
}

// The key file holds "pedigree <hex fingerprint>" followed by one sample
// per line.
func (k CacheKey) marshal() []byte {
	var sb strings.Builder
	sb.WriteString("pedigree ")
	sb.WriteString(strconv.FormatUint(k.Pedigree, 16))
	sb.WriteByte('\n')
	for _, s := range k.Samples {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func parseCacheKey(raw []byte) (CacheKey, bool) {
	fields := strings.Fields(string(raw))
	if len(fields) < 2 || fields[0] != "pedigree" {
		return CacheKey{}, false
	}
	fp, err := strconv.ParseUint(fields[1], 16, 64)
	if err != nil {
		return CacheKey{}, false
	}
	return CacheKey{Samples: fields[2:], Pedigree: fp}, true
}

func (k CacheKey) matches(other CacheKey) bool {
	return k.Pedigree == other.Pedigree && sameOrder(k.Samples, other.Samples)
}

// SaveDistanceCache stores a distance matrix and its key under dir.
func SaveDistanceCache(dir, name string, key CacheKey, dm *mat.Dense) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	matrixFile, keyFile := cachePaths(dir, name)

	file, err := os.Create(matrixFile)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	if _, err := dm.MarshalBinaryTo(writer); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", matrixFile, err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	if err := os.WriteFile(keyFile, key.marshal(), 0644); err != nil {
		return err
	}
	log.Lvl2("Cached distance matrix to", matrixFile)
	return nil
}

// LoadDistanceCache reads a matrix stored by SaveDistanceCache. ok is false
// when no cache exists or it was built from a different pedigree or sample
// order.
func LoadDistanceCache(dir, name string, key CacheKey) (dm *mat.Dense, ok bool, err error) {
	matrixFile, keyFile := cachePaths(dir, name)

	raw, err := os.ReadFile(keyFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	cached, valid := parseCacheKey(raw)
	if !valid || !cached.matches(key) {
		log.Lvl2("Distance cache", keyFile, "does not match current pedigree")
		return nil, false, nil
	}

	file, err := os.Open(matrixFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer file.Close()

	var res mat.Dense
	if _, err := res.UnmarshalBinaryFrom(bufio.NewReader(file)); err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", matrixFile, err)
	}
	n := len(key.Samples)
	if r, c := res.Dims(); r != n || c != n {
		return nil, false, fmt.Errorf("%s: matrix is %dx%d for %d samples", matrixFile, r, c, n)
	}
	return &res, true, nil
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
