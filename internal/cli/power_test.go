package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPower_Table(t *testing.T) {
	out, err := execute(t,
		"power", "10000", "500", "10000", "580",
		"--min-n", "1000", "--max-n", "50000", "--points", "20",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Observed effect:  +0.0080")
	assert.Contains(t, out, "SAMPLE SIZE  POWER")
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "50000")
}

func TestPower_DegenerateVariance(t *testing.T) {
	_, err := execute(t,
		"power", "100", "0", "100", "0",
		"--min-n", "1000", "--max-n", "50000", "--points", "20",
	)
	require.Error(t, err)
}

func TestSampleSize_FindsMinimum(t *testing.T) {
	out, err := execute(t,
		"samplesize", "10000", "500", "10000", "580",
		"--target-power", "0.8", "--min-n", "1000", "--max-n", "50000",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Target power:         0.80")
	assert.Contains(t, out, "Required sample size:")
	assert.Contains(t, out, "Power at that size:")
}

func TestSampleSize_UnreachableTarget(t *testing.T) {
	out, err := execute(t,
		"samplesize", "10000", "500", "10000", "501",
		"--target-power", "0.99", "--min-n", "100", "--max-n", "1000",
	)
	require.Error(t, err, "output was: %s", out)
}

func TestCharts_WritesBothFigures(t *testing.T) {
	dir := t.TempDir()
	breakdown := filepath.Join(dir, "breakdown.png")
	explained := filepath.Join(dir, "explained.png")

	out, err := execute(t,
		"charts", "10000", "500", "10000", "580",
		"--breakdown-out", breakdown, "--explained-out", explained,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Wrote "+breakdown)
	assert.Contains(t, out, "Wrote "+explained)

	for _, path := range []string{breakdown, explained} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}
