// Package stats implements the two-proportion z-test and the power
// analysis behind an A/B experiment readout.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the significance threshold for the two-tailed test.
const DefaultAlpha = 0.05

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// TestResult holds everything the z-test derives from a pair of arms.
// It is computed once and never mutated.
type TestResult struct {
	Control Variant
	Variant Variant

	ControlRate   float64
	VariantRate   float64
	PooledRate    float64
	StandardError float64
	ZStatistic    float64
	PValue        float64

	// AbsoluteLift is VariantRate - ControlRate. RelativeLift is the
	// same difference as a fraction of ControlRate, 0 when the control
	// rate is 0.
	AbsoluteLift float64
	RelativeLift float64

	Alpha       float64
	Significant bool
}

// ComputeTestResult runs a two-tailed two-proportion z-test at
// DefaultAlpha.
func ComputeTestResult(control, variant Variant) (*TestResult, error) {
	return ComputeTestResultAt(control, variant, DefaultAlpha)
}

// ComputeTestResultAt runs the test at a caller-chosen alpha.
//
// When the pooled rate is 0 or 1 there is no variance under the null
// hypothesis; the z-statistic is defined as 0 and the p-value as 1
// rather than dividing by zero.
func ComputeTestResultAt(control, variant Variant, alpha float64) (*TestResult, error) {
	if err := control.Validate(); err != nil {
		return nil, err
	}
	if err := variant.Validate(); err != nil {
		return nil, err
	}

	pControl := control.Rate()
	pVariant := variant.Rate()
	pooled := float64(control.Conversions+variant.Conversions) /
		float64(control.Visitors+variant.Visitors)

	se := math.Sqrt(pooled * (1 - pooled) *
		(1/float64(control.Visitors) + 1/float64(variant.Visitors)))

	z := 0.0
	p := 1.0
	if se > 0 {
		z = (pVariant - pControl) / se
		p = 2 * stdNormal.CDF(-math.Abs(z))
	}

	relLift := 0.0
	if pControl > 0 {
		relLift = (pVariant - pControl) / pControl
	}

	return &TestResult{
		Control:       control,
		Variant:       variant,
		ControlRate:   pControl,
		VariantRate:   pVariant,
		PooledRate:    pooled,
		StandardError: se,
		ZStatistic:    z,
		PValue:        p,
		AbsoluteLift:  pVariant - pControl,
		RelativeLift:  relLift,
		Alpha:         alpha,
		Significant:   p < alpha,
	}, nil
}
