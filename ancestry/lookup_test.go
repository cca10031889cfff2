package ancestry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const igsrSample = "Sample name\tSex\tBiosample ID\tPopulation code\tPopulation name\tSuperpopulation code\tSuperpopulation name\n" +
	"HG00096\tmale\tSAME123893\tGBR\tBritish\tEUR\tEuropean Ancestry\n" +
	"NA19238\tfemale\tSAME123417\tYRI\tYoruba\tAFR\tAfrican Ancestry\n" +
	"HG01500\tmale\tSAME1839432\tIBS,MSL\tIberian; Mende\tEUR,AFR\tEuropean Ancestry\n" +
	"XX00001\tfemale\tSAME0\tNEW\tNew population\tEAS\tEast Asian Ancestry\n"

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, 26, table.Len())

	super, ok := table.Superpopulation("YRI")
	require.True(t, ok)
	assert.Equal(t, "AFR", super)

	assert.Equal(t, []string{"CLM", "MXL", "PEL", "PUR"}, table.Subpopulations("AMR"))
	for _, s := range Superpopulations {
		assert.NotEmpty(t, table.Subpopulations(s), s)
	}
}

func TestTableWithDoesNotMutate(t *testing.T) {
	base := DefaultTable()
	derived := base.With(map[string]string{"YRI": "EUR", "ZZZ": "SAS"})

	super, _ := base.Superpopulation("YRI")
	assert.Equal(t, "AFR", super)
	_, ok := base.Superpopulation("ZZZ")
	assert.False(t, ok)

	super, _ = derived.Superpopulation("YRI")
	assert.Equal(t, "EUR", super)
	assert.Equal(t, base.Len()+1, derived.Len())
}

func TestReadLookup(t *testing.T) {
	l, err := ReadLookup(strings.NewReader(igsrSample), "igsr.tsv", DefaultTable(), DefaultColumns)
	require.NoError(t, err)
	assert.Equal(t, 4, l.Len())

	sub, err := l.Subpopulation("HG00096")
	require.NoError(t, err)
	assert.Equal(t, "GBR", sub)

	// first code of a comma list wins
	sub, err = l.Subpopulation("HG01500")
	require.NoError(t, err)
	assert.Equal(t, "IBS", sub)
	super, err := l.Superpopulation("HG01500")
	require.NoError(t, err)
	assert.Equal(t, "EUR", super)

	// unknown subpopulation resolved from the row
	super, err = l.Superpopulation("XX00001")
	require.NoError(t, err)
	assert.Equal(t, "EAS", super)
}

func TestReadLookupUnknownSample(t *testing.T) {
	l, err := ReadLookup(strings.NewReader(igsrSample), "igsr.tsv", DefaultTable(), DefaultColumns)
	require.NoError(t, err)

	_, err = l.Superpopulation("NA00000")
	var unknown UnknownSampleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "NA00000", unknown.SampleID)

	err = l.Validate([]string{"HG00096", "NA00000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NA00000")
	assert.NoError(t, l.Validate([]string{"HG00096", "NA19238"}))
}

func TestReadLookupShortLine(t *testing.T) {
	in := "sample pop\nHG00096 male\n"
	_, err := ReadLookup(strings.NewReader(in), "short.txt", DefaultTable(), DefaultColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short.txt:2")
}

func TestReadLookupWhitespace(t *testing.T) {
	in := "id x y pop\nS1 a b YRI\nS2 a b CEU\n"
	l, err := ReadLookup(strings.NewReader(in), "ws.txt", DefaultTable(), DefaultColumns)
	require.NoError(t, err)
	super, err := l.Superpopulation("S2")
	require.NoError(t, err)
	assert.Equal(t, "EUR", super)
}

func TestUnresolvedSubpopulation(t *testing.T) {
	l := NewLookup(map[string]string{"S1": "QQQ"}, DefaultTable())
	_, err := l.Superpopulation("S1")
	var unknown UnknownSubpopulationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "QQQ", unknown.Code)
}

func TestLoadLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ancestry.tsv")
	require.NoError(t, os.WriteFile(path, []byte(igsrSample), 0644))

	l, err := LoadLookup(path, DefaultTable(), DefaultColumns)
	require.NoError(t, err)
	assert.True(t, l.Has("NA19238"))

	_, err = LoadLookup(filepath.Join(t.TempDir(), "missing.tsv"), DefaultTable(), DefaultColumns)
	assert.Error(t, err)
}
