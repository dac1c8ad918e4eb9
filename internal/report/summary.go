// Package report turns a computed TestResult into console text,
// machine-readable exports, and the two explanatory chart images.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/splitsig/splitsig/internal/stats"
)

// Summary writes the human-readable readout for a finished test:
// rates, lift, the z-test numbers, per-arm confidence intervals, and
// the verdict.
func Summary(w io.Writer, res *stats.TestResult, confidence float64) {
	rule := strings.Repeat("=", 60)
	zCrit := stats.CriticalZ(confidence)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "A/B TEST RESULTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Control Rate:     %.4f (%s)\n", res.ControlRate, formatPercent(res.ControlRate))
	fmt.Fprintf(w, "Variant Rate:     %.4f (%s)\n", res.VariantRate, formatPercent(res.VariantRate))
	fmt.Fprintf(w, "Absolute Diff:    %+.4f\n", res.AbsoluteLift)
	fmt.Fprintf(w, "Relative Lift:    %+.2f%%\n", res.RelativeLift*100)
	fmt.Fprintf(w, "Standard Error:   %.6f\n", res.StandardError)
	fmt.Fprintf(w, "Z-statistic:      %.4f\n", res.ZStatistic)
	fmt.Fprintf(w, "P-value:          %.6f\n", res.PValue)
	if res.Significant {
		fmt.Fprintf(w, "Significant?:     YES (p < %.2f)\n", res.Alpha)
	} else {
		fmt.Fprintf(w, "Significant?:     NO (p >= %.2f)\n", res.Alpha)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "ARM        VISITORS  CONVERSIONS  RATE     %.0f%% CI (Wald)      %.0f%% CI (Wilson)\n",
		confidence*100, confidence*100)
	fmt.Fprintln(w, strings.Repeat("─", 84))

	for _, arm := range []struct {
		name string
		v    stats.Variant
		rate float64
	}{
		{"Control", res.Control, res.ControlRate},
		{"Variant", res.Variant, res.VariantRate},
	} {
		waldLo, waldHi := stats.ConfidenceInterval(arm.rate, arm.v.Visitors, zCrit)
		wilsonLo, wilsonHi := stats.WilsonInterval(arm.v.Conversions, arm.v.Visitors, confidence)

		fmt.Fprintf(w, "%-9s  %-8d  %-11d  %-7s  [%.2f%%, %.2f%%]     [%.2f%%, %.2f%%]\n",
			arm.name,
			arm.v.Visitors,
			arm.v.Conversions,
			formatPercent(arm.rate),
			waldLo*100, waldHi*100,
			wilsonLo*100, wilsonHi*100,
		)
	}
	fmt.Fprintln(w)
}

// FormulaWalkthrough returns the numbered derivation of the z-test,
// substituting the test's own numbers into each step.
func FormulaWalkthrough(res *stats.TestResult) string {
	var b strings.Builder

	b.WriteString("Z-TEST FORMULA BREAKDOWN\n\n")
	fmt.Fprintf(&b, "1. Conversion rates:\n")
	fmt.Fprintf(&b, "   Control:  %d/%d = %.4f\n", res.Control.Conversions, res.Control.Visitors, res.ControlRate)
	fmt.Fprintf(&b, "   Variant:  %d/%d = %.4f\n\n", res.Variant.Conversions, res.Variant.Visitors, res.VariantRate)

	fmt.Fprintf(&b, "2. Pooled proportion:\n")
	fmt.Fprintf(&b, "   p = (%d + %d) / (%d + %d) = %.4f\n\n",
		res.Control.Conversions, res.Variant.Conversions,
		res.Control.Visitors, res.Variant.Visitors, res.PooledRate)

	fmt.Fprintf(&b, "3. Standard error:\n")
	fmt.Fprintf(&b, "   SE = sqrt(p(1-p)(1/n1 + 1/n2)) = %.6f\n\n", res.StandardError)

	fmt.Fprintf(&b, "4. Z-statistic:\n")
	fmt.Fprintf(&b, "   Z = (%.4f - %.4f) / %.6f = %.4f\n\n",
		res.VariantRate, res.ControlRate, res.StandardError, res.ZStatistic)

	fmt.Fprintf(&b, "5. P-value:\n")
	fmt.Fprintf(&b, "   p = 2 * P(Z > |%.2f|) = %.6f\n\n", res.ZStatistic, res.PValue)

	fmt.Fprintf(&b, "6. Decision:\n")
	if res.Significant {
		fmt.Fprintf(&b, "   REJECT the null hypothesis (p < %.2f)\n", res.Alpha)
	} else {
		fmt.Fprintf(&b, "   FAIL TO REJECT the null hypothesis (p >= %.2f)\n", res.Alpha)
	}

	return b.String()
}

// Interpretation returns the plain-language reading of the result and a
// rollout recommendation.
func Interpretation(res *stats.TestResult) string {
	var b strings.Builder

	b.WriteString("INTERPRETATION\n\n")
	fmt.Fprintf(&b, "P-value %.6f against a threshold of %.2f.\n\n", res.PValue, res.Alpha)

	if res.Significant {
		fmt.Fprintf(&b, "There is less than a %.0f%% probability this difference is due\n", res.Alpha*100)
		b.WriteString("to random chance; the variant's lift is statistically real.\n\n")
	} else {
		fmt.Fprintf(&b, "There is more than a %.0f%% probability this difference is due\n", res.Alpha*100)
		b.WriteString("to random chance; the data cannot separate the two arms.\n\n")
	}

	fmt.Fprintf(&b, "Absolute lift: %+.2f percentage points\n", res.AbsoluteLift*100)
	fmt.Fprintf(&b, "Relative lift: %+.1f%%\n\n", res.RelativeLift*100)

	if res.Significant && res.AbsoluteLift > 0 {
		extra := res.AbsoluteLift * float64(res.Variant.Visitors)
		b.WriteString("Recommendation: roll out the variant.\n")
		fmt.Fprintf(&b, "Expected impact: %.0f extra conversions per %d visitors.\n",
			extra, res.Variant.Visitors)
	} else if res.Significant {
		b.WriteString("Recommendation: keep the control; the variant converts worse.\n")
	} else {
		b.WriteString("Recommendation: keep the control, or test a larger change.\n")
	}

	return b.String()
}

// PowerTable writes the swept power curve, marking the observed sample
// size if it falls inside the sweep.
func PowerTable(w io.Writer, curve []stats.PowerCurvePoint, currentN int) {
	fmt.Fprintln(w, "SAMPLE SIZE  POWER")
	fmt.Fprintln(w, strings.Repeat("─", 24))
	for _, pt := range curve {
		marker := ""
		if pt.SampleSize == currentN {
			marker = "  ← current"
		}
		fmt.Fprintf(w, "%-11d  %.4f%s\n", pt.SampleSize, pt.Power, marker)
	}
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}
