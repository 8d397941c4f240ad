package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/etlerr"
)

func execute(t *testing.T, baseDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand(baseDir)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeInput(t *testing.T, dir string) {
	t.Helper()
	data, err := os.ReadFile("../../testdata/bank_transactions_sample.csv")
	require.NoError(t, err)
	input := config.Default(dir).Paths.Input
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0o755))
	require.NoError(t, os.WriteFile(input, data, 0o644))
}

func TestRoot_Run(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir)

	stdout, stderr, err := execute(t, dir)
	require.NoError(t, err)
	assert.Equal(t, CompletionMessage+"\n", stdout, "stdout carries only the completion line")
	assert.Contains(t, stderr, "run complete")

	for _, p := range []string{
		filepath.Join(dir, "data", "processed", "transactions_clean.csv"),
		filepath.Join(dir, "data", "processed", "monthly_summary.csv"),
		filepath.Join(dir, "data", "processed", "regional_summary.csv"),
		filepath.Join(dir, "data", "processed", "top_merchants.csv"),
		filepath.Join(dir, "dashboards", "monthly_trends.png"),
		filepath.Join(dir, "dashboards", "regional_flows.png"),
		filepath.Join(dir, "dashboards", "top_merchants.png"),
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, "%s should exist", p)
	}
}

func TestRoot_RerunOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir)

	_, _, err := execute(t, dir)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "data", "processed", "regional_summary.csv"))
	require.NoError(t, err)

	_, _, err = execute(t, dir)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "data", "processed", "regional_summary.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRoot_MissingInput(t *testing.T) {
	stdout, stderr, err := execute(t, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrFileAccess)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev (commit: none")
}
