package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "relations.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("ped_file = \"a.ped\"\npopulation = \"AFR\"\n"), 0644))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.Flags().Set("config", configFile))
	require.NoError(t, cmd.Flags().Set("pop", "EUR"))
	require.NoError(t, cmd.Flags().Set("no_header", "true"))

	config, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "a.ped", config.PedFile)
	assert.Equal(t, "EUR", config.Population)
	assert.True(t, config.NoHeader)
}

func TestFreshRootCmdHasDefaults(t *testing.T) {
	first := &options{}
	require.NoError(t, newRootCmd(first).Flags().Set("pop", "EUR"))

	opts := &options{}
	cmd := newRootCmd(opts)
	config, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "ALL", config.Population)
	assert.False(t, config.NoHeader)
}

func TestRootCmdErrorsPrintedOnce(t *testing.T) {
	cmd := newRootCmd(&options{})
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetOut(&stderr)
	cmd.SetArgs([]string{"--pop", "ALL"})
	err := cmd.Execute()
	require.ErrorContains(t, err, "no pedigree file configured")
	assert.Empty(t, stderr.String())
}

func TestSummaryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("A A 0 self\nA B 2 sibling\nB A 2 sibling\nA C -1 outpop\n"), 0644))

	var out bytes.Buffer
	cmd := newSummaryCmd()
	cmd.SetOut(&out)
	require.NoError(t, runSummary(cmd, []string{path}))
	assert.Contains(t, out.String(), "self\t1\n")
	assert.Contains(t, out.String(), "sibling\t2\n")
	assert.Contains(t, out.String(), "related\t2\n")
	assert.Contains(t, out.String(), "total\t4\n")
}

func TestFirstDegreeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trios.ped")
	require.NoError(t, os.WriteFile(path, []byte("C1 P1 M1 male\nX1 0 0 male\n"), 0644))

	var out bytes.Buffer
	cmd := newRootCmd(&options{})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"first-degree", "--no_header", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "C1 M1,P1\nP1 C1\nM1 C1\n", out.String())
}
