package cli

import (
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsig/splitsig/internal/stats"
)

func TestAnalyze_TextOutput(t *testing.T) {
	out, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "text", "--charts=false", "--explain=false",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "A/B TEST RESULTS")
	assert.Contains(t, out, "Control Rate:     0.0500")
	assert.Contains(t, out, "Significant?:     YES")
	assert.Contains(t, out, "INTERPRETATION")
}

func TestAnalyze_Explain(t *testing.T) {
	out, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "text", "--charts=false", "--explain",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Z-TEST FORMULA BREAKDOWN")
	assert.Contains(t, out, "REJECT the null hypothesis")
}

func TestAnalyze_JSONOutput(t *testing.T) {
	out, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "json", "--charts=false", "--explain=false",
	)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.InDelta(t, 2.505, decoded["z_statistic"].(float64), 5e-3)
	assert.Equal(t, true, decoded["significant"])
}

func TestAnalyze_CSVOutput(t *testing.T) {
	out, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "csv", "--charts=false", "--explain=false",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "control_visitors")
	assert.Contains(t, out, "10000,500,10000,580")
}

func TestAnalyze_InvalidCounts(t *testing.T) {
	_, err := execute(t,
		"analyze", "0", "0", "10000", "580",
		"--format", "text", "--charts=false", "--explain=false",
	)
	require.Error(t, err)
	assert.True(t, eris.Is(err, stats.ErrInvalidInput))
}

func TestAnalyze_NonNumericArgument(t *testing.T) {
	_, err := execute(t,
		"analyze", "ten", "500", "10000", "580",
		"--format", "text", "--charts=false", "--explain=false",
	)
	require.Error(t, err)
	assert.True(t, eris.Is(err, stats.ErrInvalidInput))
}

func TestAnalyze_WrongArgumentCount(t *testing.T) {
	_, err := execute(t, "analyze", "10000", "500")
	require.Error(t, err)
}

func TestAnalyze_BadFormat(t *testing.T) {
	_, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "xml", "--charts=false", "--explain=false",
	)
	require.Error(t, err)
}

func TestAnalyze_BadAlpha(t *testing.T) {
	_, err := execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "text", "--alpha", "1.5", "--charts=false", "--explain=false",
	)
	require.Error(t, err)

	// Restore the default for later runs; cobra keeps flag state
	// between Execute calls.
	_, err = execute(t,
		"analyze", "10000", "500", "10000", "580",
		"--format", "text", "--alpha", "0.05", "--charts=false", "--explain=false",
	)
	require.NoError(t, err)
}

func TestParseVariants(t *testing.T) {
	control, variant, err := parseVariants([]string{"100", "10", "200", "30"})
	require.NoError(t, err)
	assert.Equal(t, stats.Variant{Visitors: 100, Conversions: 10}, control)
	assert.Equal(t, stats.Variant{Visitors: 200, Conversions: 30}, variant)

	_, _, err = parseVariants([]string{"100", "ten", "200", "30"})
	require.Error(t, err)
}
