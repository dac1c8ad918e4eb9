package stats

import (
	"math"

	"github.com/rotisserie/eris"
)

// PowerCurvePoint is one sample of the power function: the probability
// of detecting the effect at a given per-arm sample size.
type PowerCurvePoint struct {
	SampleSize int
	Power      float64
}

// StatisticalPower returns the probability of rejecting the null
// hypothesis when the true difference in rates is effectSize, for a
// test with sampleSize visitors per arm.
func StatisticalPower(effectSize, pooledRate float64, sampleSize int, zCritical float64) (float64, error) {
	if sampleSize <= 0 {
		return 0, eris.Wrapf(ErrInvalidInput, "stats: sample size must be positive, got %d", sampleSize)
	}
	if pooledRate <= 0 || pooledRate >= 1 {
		return 0, eris.Wrapf(ErrInvalidInput, "stats: pooled rate %.4f has zero variance", pooledRate)
	}

	seN := math.Sqrt(pooledRate * (1 - pooledRate) * (2 / float64(sampleSize)))
	ncp := effectSize / seN
	return 1 - stdNormal.CDF(zCritical-ncp), nil
}

// PowerCurve sweeps the power function over evenly spaced sample sizes
// in [minN, maxN].
func PowerCurve(effectSize, pooledRate float64, minN, maxN, points int) ([]PowerCurvePoint, error) {
	if minN <= 0 || maxN < minN {
		return nil, eris.Wrapf(ErrInvalidInput, "stats: bad sweep range [%d, %d]", minN, maxN)
	}
	if points < 2 {
		return nil, eris.Wrapf(ErrInvalidInput, "stats: sweep needs at least 2 points, got %d", points)
	}

	curve := make([]PowerCurvePoint, 0, points)
	step := float64(maxN-minN) / float64(points-1)
	for i := 0; i < points; i++ {
		n := minN + int(math.Round(float64(i)*step))
		power, err := StatisticalPower(effectSize, pooledRate, n, CriticalZ(0.95))
		if err != nil {
			return nil, err
		}
		curve = append(curve, PowerCurvePoint{SampleSize: n, Power: power})
	}
	return curve, nil
}

// MinimumSampleSize finds the smallest per-arm sample size in
// [minN, maxN] whose power reaches targetPower. Power is monotonic in
// sample size for a positive effect, so a bisection gives the exact
// answer rather than the nearest point on a coarse grid.
func MinimumSampleSize(targetPower, effectSize, pooledRate float64, minN, maxN int) (int, error) {
	if targetPower <= 0 || targetPower >= 1 {
		return 0, eris.Wrapf(ErrInvalidInput, "stats: target power must be in (0,1), got %.4f", targetPower)
	}
	if effectSize <= 0 {
		return 0, eris.Wrapf(ErrInvalidInput, "stats: effect size must be positive, got %.6f", effectSize)
	}
	if minN <= 0 || maxN < minN {
		return 0, eris.Wrapf(ErrInvalidInput, "stats: bad search range [%d, %d]", minN, maxN)
	}

	zCrit := CriticalZ(0.95)

	atMax, err := StatisticalPower(effectSize, pooledRate, maxN, zCrit)
	if err != nil {
		return 0, err
	}
	if atMax < targetPower {
		return 0, eris.Wrapf(ErrInvalidInput,
			"stats: target power %.2f not reachable within %d samples (power there is %.4f)",
			targetPower, maxN, atMax)
	}

	lo, hi := minN, maxN
	for lo < hi {
		mid := lo + (hi-lo)/2
		power, err := StatisticalPower(effectSize, pooledRate, mid, zCrit)
		if err != nil {
			return 0, err
		}
		if power >= targetPower {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}
