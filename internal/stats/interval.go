package stats

import "math"

// ConfidenceInterval returns the Wald interval rate ± z·sqrt(p(1-p)/n).
// Bounds are not clamped to [0,1]: for small n the raw formula can
// produce a lower bound below 0 or an upper bound above 1, and the
// readout reports the formula's answer rather than hiding it.
func ConfidenceInterval(rate float64, n int, zCritical float64) (lower, upper float64) {
	if n <= 0 {
		return 0, 0
	}
	margin := zCritical * math.Sqrt(rate*(1-rate)/float64(n))
	return rate - margin, rate + margin
}

// WilsonInterval calculates the Wilson score confidence interval for a
// binomial proportion. It's more accurate for small samples than the
// normal approximation, and its bounds are always inside [0,1].
func WilsonInterval(successes, trials int, confidence float64) (lower, upper float64) {
	if trials == 0 {
		return 0, 0
	}

	z := CriticalZ(confidence)
	p := float64(successes) / float64(trials)
	n := float64(trials)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	spread := (z / denominator) * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))

	lower = center - spread
	upper = center + spread

	if lower < 0 {
		lower = 0
	}
	if upper > 1 {
		upper = 1
	}

	return lower, upper
}

// CriticalZ returns the two-sided critical z value for a confidence
// level, e.g. 0.95 -> 1.96, 0.99 -> 2.576.
func CriticalZ(confidence float64) float64 {
	if confidence <= 0 || confidence >= 1 {
		return 0
	}
	return stdNormal.Quantile((1 + confidence) / 2)
}
