package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsig/splitsig/internal/report"
	"github.com/splitsig/splitsig/internal/stats"
)

func referenceResult(t *testing.T) *stats.TestResult {
	t.Helper()
	res, err := stats.ComputeTestResult(
		stats.Variant{Visitors: 10000, Conversions: 500},
		stats.Variant{Visitors: 10000, Conversions: 580},
	)
	require.NoError(t, err)
	return res
}

func TestSummary_ReferenceScenario(t *testing.T) {
	var buf bytes.Buffer
	report.Summary(&buf, referenceResult(t), 0.95)
	out := buf.String()

	assert.Contains(t, out, "A/B TEST RESULTS")
	assert.Contains(t, out, "Control Rate:     0.0500")
	assert.Contains(t, out, "Variant Rate:     0.0580")
	assert.Contains(t, out, "Relative Lift:    +16.00%")
	assert.Contains(t, out, "Z-statistic:      2.50")
	assert.Contains(t, out, "Significant?:     YES")
	assert.Contains(t, out, "95% CI (Wald)")
	assert.Contains(t, out, "95% CI (Wilson)")
}

func TestSummary_NotSignificant(t *testing.T) {
	res, err := stats.ComputeTestResult(
		stats.Variant{Visitors: 1000, Conversions: 50},
		stats.Variant{Visitors: 1000, Conversions: 52},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	report.Summary(&buf, res, 0.95)

	assert.Contains(t, buf.String(), "Significant?:     NO")
}

func TestFormulaWalkthrough(t *testing.T) {
	out := report.FormulaWalkthrough(referenceResult(t))

	assert.Contains(t, out, "1. Conversion rates:")
	assert.Contains(t, out, "Control:  500/10000 = 0.0500")
	assert.Contains(t, out, "p = (500 + 580) / (10000 + 10000) = 0.0540")
	assert.Contains(t, out, "6. Decision:")
	assert.Contains(t, out, "REJECT the null hypothesis")
}

func TestInterpretation_SignificantRecommendsRollout(t *testing.T) {
	out := report.Interpretation(referenceResult(t))

	assert.Contains(t, out, "roll out the variant")
	assert.Contains(t, out, "Absolute lift: +0.80 percentage points")
	assert.Contains(t, out, "Relative lift: +16.0%")
}

func TestInterpretation_InconclusiveKeepsControl(t *testing.T) {
	res, err := stats.ComputeTestResult(
		stats.Variant{Visitors: 100, Conversions: 5},
		stats.Variant{Visitors: 100, Conversions: 6},
	)
	require.NoError(t, err)

	out := report.Interpretation(res)
	assert.Contains(t, out, "keep the control")
}

func TestPowerTable(t *testing.T) {
	curve, err := stats.PowerCurve(0.008, 0.054, 1000, 50000, 50)
	require.NoError(t, err)

	var buf bytes.Buffer
	report.PowerTable(&buf, curve, curve[10].SampleSize)
	out := buf.String()

	assert.Contains(t, out, "SAMPLE SIZE  POWER")
	assert.Contains(t, out, "← current")
	assert.Equal(t, len(curve)+2, strings.Count(out, "\n"))
}
