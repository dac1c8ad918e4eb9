package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitsig/splitsig/internal/stats"
)

func TestConfidenceInterval_ReferenceControl(t *testing.T) {
	// Control arm of the reference scenario: 0.05 rate over 10000.
	lower, upper := stats.ConfidenceInterval(0.05, 10000, 1.96)

	assert.InDelta(t, 0.05-1.96*0.00217945, lower, 1e-5)
	assert.InDelta(t, 0.05+1.96*0.00217945, upper, 1e-5)
	assert.Less(t, lower, 0.05)
	assert.Greater(t, upper, 0.05)
}

func TestConfidenceInterval_SmallSampleNotClamped(t *testing.T) {
	// The raw Wald formula drops below 0 for a 5% rate over 10 trials.
	// That is deliberate; the Wilson interval is the clamped one.
	lower, _ := stats.ConfidenceInterval(0.05, 10, 1.96)
	assert.Less(t, lower, 0.0)
}

func TestConfidenceInterval_ZeroN(t *testing.T) {
	lower, upper := stats.ConfidenceInterval(0.5, 0, 1.96)
	assert.Zero(t, lower)
	assert.Zero(t, upper)
}

func TestWilsonInterval_MidRate(t *testing.T) {
	lower, upper := stats.WilsonInterval(50, 100, 0.95)

	// Roughly [0.40, 0.60].
	assert.InDelta(t, 0.40, lower, 0.02)
	assert.InDelta(t, 0.60, upper, 0.02)
}

func TestWilsonInterval_BoundsStayInRange(t *testing.T) {
	cases := []struct{ successes, trials int }{
		{0, 10},
		{10, 10},
		{1, 3},
		{95, 100},
	}
	for _, c := range cases {
		lower, upper := stats.WilsonInterval(c.successes, c.trials, 0.95)
		assert.GreaterOrEqual(t, lower, 0.0, "%d/%d", c.successes, c.trials)
		assert.LessOrEqual(t, upper, 1.0, "%d/%d", c.successes, c.trials)
		assert.LessOrEqual(t, lower, upper, "%d/%d", c.successes, c.trials)
	}
}

func TestWilsonInterval_ZeroTrials(t *testing.T) {
	lower, upper := stats.WilsonInterval(0, 0, 0.95)
	assert.Zero(t, lower)
	assert.Zero(t, upper)
}

func TestCriticalZ_CommonLevels(t *testing.T) {
	assert.InDelta(t, 1.645, stats.CriticalZ(0.90), 1e-3)
	assert.InDelta(t, 1.960, stats.CriticalZ(0.95), 1e-3)
	assert.InDelta(t, 2.576, stats.CriticalZ(0.99), 1e-3)
}

func TestCriticalZ_OutOfRange(t *testing.T) {
	assert.Zero(t, stats.CriticalZ(0))
	assert.Zero(t, stats.CriticalZ(1))
	assert.Zero(t, stats.CriticalZ(-0.5))
}
