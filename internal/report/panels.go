package report

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/splitsig/splitsig/internal/stats"
)

var (
	colorControl = color.RGBA{R: 52, G: 152, B: 219, A: 255}
	colorVariant = color.RGBA{R: 231, G: 76, B: 60, A: 255}
	colorAccent  = color.RGBA{R: 39, G: 174, B: 96, A: 255}
	colorNeutral = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	fillControl  = color.RGBA{R: 52, G: 152, B: 219, A: 70}
	fillVariant  = color.RGBA{R: 231, G: 76, B: 60, A: 70}
	fillReject   = color.RGBA{R: 231, G: 76, B: 60, A: 110}
)

var unitNormal = distuv.Normal{Mu: 0, Sigma: 1}

// normalCurve samples the pdf of N(mu, sigma) over [from, to].
func normalCurve(mu, sigma, from, to float64, points int) plotter.XYs {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	xys := make(plotter.XYs, points)
	step := (to - from) / float64(points-1)
	for i := range xys {
		x := from + float64(i)*step
		xys[i].X = x
		xys[i].Y = dist.Prob(x)
	}
	return xys
}

func addCurve(p *plot.Plot, xys plotter.XYs, c color.Color, fill color.Color, width vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, eris.Wrap(err, "report: build curve")
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = width
	line.FillColor = fill
	p.Add(line)
	return line, nil
}

func addVLine(p *plot.Plot, x, yMax float64, c color.Color, dashed bool) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: yMax}})
	if err != nil {
		return eris.Wrap(err, "report: build vline")
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	p.Add(line)
	return nil
}

func addHLine(p *plot.Plot, y, xMin, xMax float64, c color.Color) error {
	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return eris.Wrap(err, "report: build hline")
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	return nil
}

// samplingPanel draws the sampling distribution of each arm's observed
// rate.
func samplingPanel(res *stats.TestResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Sampling Distributions of Control vs Variant"
	p.X.Label.Text = "Conversion Rate"
	p.Y.Label.Text = "Probability Density"

	seControl := math.Sqrt(res.ControlRate * (1 - res.ControlRate) / float64(res.Control.Visitors))
	seVariant := math.Sqrt(res.VariantRate * (1 - res.VariantRate) / float64(res.Variant.Visitors))
	if seControl == 0 || seVariant == 0 {
		// An arm with rate 0 or 1 has no sampling spread to draw.
		return p, nil
	}

	lo := math.Min(res.ControlRate-4*seControl, res.VariantRate-4*seVariant)
	hi := math.Max(res.ControlRate+4*seControl, res.VariantRate+4*seVariant)

	controlLine, err := addCurve(p, normalCurve(res.ControlRate, seControl, lo, hi, 400), colorControl, fillControl, vg.Points(2))
	if err != nil {
		return nil, err
	}
	variantLine, err := addCurve(p, normalCurve(res.VariantRate, seVariant, lo, hi, 400), colorVariant, fillVariant, vg.Points(2))
	if err != nil {
		return nil, err
	}

	yMax := math.Max(1/(seControl*math.Sqrt(2*math.Pi)), 1/(seVariant*math.Sqrt(2*math.Pi)))
	if err := addVLine(p, res.ControlRate, yMax, colorControl, true); err != nil {
		return nil, err
	}
	if err := addVLine(p, res.VariantRate, yMax, colorVariant, true); err != nil {
		return nil, err
	}

	p.Legend.Add(fmt.Sprintf("Control (p=%.3f)", res.ControlRate), controlLine)
	p.Legend.Add(fmt.Sprintf("Variant (p=%.3f)", res.VariantRate), variantLine)
	p.Legend.Top = true

	return p, nil
}

// rejectionPanel draws the standard normal with the two-tailed
// rejection region shaded and the observed z marked.
func rejectionPanel(res *stats.TestResult, zCritical float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Z-Test: Where Does Our Statistic Fall?"
	p.X.Label.Text = "Z-score"
	p.Y.Label.Text = "Probability Density"

	body, err := addCurve(p, normalCurve(0, 1, -4, 4, 400), color.Black, nil, vg.Points(2))
	if err != nil {
		return nil, err
	}

	left, err := addCurve(p, normalCurve(0, 1, -4, -zCritical, 80), colorVariant, fillReject, vg.Points(1))
	if err != nil {
		return nil, err
	}
	if _, err := addCurve(p, normalCurve(0, 1, zCritical, 4, 80), colorVariant, fillReject, vg.Points(1)); err != nil {
		return nil, err
	}

	yMax := unitNormal.Prob(0)
	if err := addVLine(p, res.ZStatistic, yMax, colorAccent, true); err != nil {
		return nil, err
	}
	if err := addVLine(p, -zCritical, yMax, colorNeutral, true); err != nil {
		return nil, err
	}
	if err := addVLine(p, zCritical, yMax, colorNeutral, true); err != nil {
		return nil, err
	}

	p.Legend.Add("Standard Normal", body)
	p.Legend.Add(fmt.Sprintf("Rejection Region (α=%.2f)", res.Alpha), left)
	p.Legend.Top = true

	return p, nil
}

// pValuePanel shades the two tails beyond the observed |z|.
func pValuePanel(res *stats.TestResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "P-Value: Probability of This Result by Chance"
	p.X.Label.Text = "Z-score"
	p.Y.Label.Text = "Probability Density"

	if _, err := addCurve(p, normalCurve(0, 1, -4, 4, 400), color.Black, nil, vg.Points(2)); err != nil {
		return nil, err
	}

	absZ := math.Abs(res.ZStatistic)
	if absZ < 4 {
		tail, err := addCurve(p, normalCurve(0, 1, absZ, 4, 80), colorVariant, fillReject, vg.Points(1))
		if err != nil {
			return nil, err
		}
		if _, err := addCurve(p, normalCurve(0, 1, -4, -absZ, 80), colorVariant, fillReject, vg.Points(1)); err != nil {
			return nil, err
		}
		p.Legend.Add(fmt.Sprintf("P-value = %.4f", res.PValue), tail)
		p.Legend.Top = true
	}

	yMax := unitNormal.Prob(0)
	if err := addVLine(p, res.ZStatistic, yMax, colorAccent, true); err != nil {
		return nil, err
	}
	if err := addVLine(p, -res.ZStatistic, yMax, colorAccent, true); err != nil {
		return nil, err
	}

	return p, nil
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ciPanel draws the per-arm conversion rates with Wald error bars.
func ciPanel(res *stats.TestResult, confidence float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Conversion Rates with %.0f%% Confidence Intervals", confidence*100)
	p.Y.Label.Text = "Conversion Rate (%)"

	zCrit := stats.CriticalZ(confidence)
	marginControl := zCrit * math.Sqrt(res.ControlRate*(1-res.ControlRate)/float64(res.Control.Visitors))
	marginVariant := zCrit * math.Sqrt(res.VariantRate*(1-res.VariantRate)/float64(res.Variant.Visitors))

	controlBar, err := plotter.NewBarChart(plotter.Values{res.ControlRate * 100}, vg.Points(40))
	if err != nil {
		return nil, eris.Wrap(err, "report: build control bar")
	}
	controlBar.Color = colorControl

	variantBar, err := plotter.NewBarChart(plotter.Values{0, res.VariantRate * 100}, vg.Points(40))
	if err != nil {
		return nil, eris.Wrap(err, "report: build variant bar")
	}
	variantBar.Color = colorVariant

	bars := errPoints{
		XYs: plotter.XYs{
			{X: 0, Y: res.ControlRate * 100},
			{X: 1, Y: res.VariantRate * 100},
		},
		YErrors: plotter.YErrors{
			{Low: marginControl * 100, High: marginControl * 100},
			{Low: marginVariant * 100, High: marginVariant * 100},
		},
	}
	errBars, err := plotter.NewYErrorBars(bars)
	if err != nil {
		return nil, eris.Wrap(err, "report: build error bars")
	}

	p.Add(controlBar, variantBar, errBars)
	p.NominalX("Control", "Variant")
	p.Y.Min = 0

	return p, nil
}

// errorTypesPanel draws the null and alternative distributions of the
// rate difference, with the critical value separating Type I from
// Type II error mass.
func errorTypesPanel(res *stats.TestResult, zCritical float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Statistical Power: Type I vs Type II Errors"
	p.X.Label.Text = "Difference in Conversion Rate (%)"
	p.Y.Label.Text = "Probability Density"

	se := res.StandardError
	if se == 0 {
		// Degenerate variance: nothing to draw, keep the panel empty.
		return p, nil
	}
	diff := res.AbsoluteLift

	lo := -3 * se
	hi := diff + 3*se

	// Work in percent on X; scale the density to keep area visible.
	scale := func(xys plotter.XYs) plotter.XYs {
		out := make(plotter.XYs, len(xys))
		for i, pt := range xys {
			out[i].X = pt.X * 100
			out[i].Y = pt.Y * se
		}
		return out
	}

	nullLine, err := addCurve(p, scale(normalCurve(0, se, lo, hi, 400)), colorControl, fillControl, vg.Points(2))
	if err != nil {
		return nil, err
	}
	altLine, err := addCurve(p, scale(normalCurve(diff, se, lo, hi, 400)), colorVariant, fillVariant, vg.Points(2))
	if err != nil {
		return nil, err
	}

	critical := zCritical * se
	yMax := unitNormal.Prob(0)
	if err := addVLine(p, critical*100, yMax, colorAccent, true); err != nil {
		return nil, err
	}

	p.Legend.Add("Null: no difference", nullLine)
	p.Legend.Add("Alternative: true difference", altLine)
	p.Legend.Top = true

	return p, nil
}

// powerPanel draws power against per-arm sample size with the target
// and high-power thresholds, the observed n, and the bisection answer.
func powerPanel(curve []stats.PowerCurvePoint, currentN, recommendedN int, targetPower float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "How Sample Size Affects Statistical Power"
	p.X.Label.Text = "Sample Size per Variant"
	p.Y.Label.Text = "Statistical Power (1 - β)"

	xys := make(plotter.XYs, len(curve))
	for i, pt := range curve {
		xys[i].X = float64(pt.SampleSize)
		xys[i].Y = pt.Power
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, eris.Wrap(err, "report: build power curve")
	}
	line.LineStyle.Color = colorControl
	line.LineStyle.Width = vg.Points(2.5)
	p.Add(line)
	p.Legend.Add("Statistical Power", line)

	xMin := float64(curve[0].SampleSize)
	xMax := float64(curve[len(curve)-1].SampleSize)

	if err := addHLine(p, targetPower, xMin, xMax, colorAccent); err != nil {
		return nil, err
	}
	if err := addHLine(p, 0.95, xMin, xMax, colorNeutral); err != nil {
		return nil, err
	}
	if err := addVLine(p, float64(currentN), 1, colorVariant, true); err != nil {
		return nil, err
	}

	if recommendedN > 0 {
		dot, err := plotter.NewScatter(plotter.XYs{{X: float64(recommendedN), Y: targetPower}})
		if err != nil {
			return nil, eris.Wrap(err, "report: build recommendation marker")
		}
		dot.GlyphStyle.Color = colorAccent
		dot.GlyphStyle.Radius = vg.Points(4)
		p.Add(dot)
		p.Legend.Add(fmt.Sprintf("n=%d for %.0f%% power", recommendedN, targetPower*100), dot)
	}

	p.Legend.Top = true
	p.Y.Min = 0
	p.Y.Max = 1.05

	return p, nil
}

// textPanel renders a block of preformatted text as a chart tile.
func textPanel(title, body string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	xys := make(plotter.XYs, len(lines))
	step := 0.9 / float64(len(lines)+1)
	for i := range lines {
		xys[i].X = 0.02
		xys[i].Y = 0.95 - float64(i+1)*step
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, eris.Wrap(err, "report: build text panel")
	}
	p.Add(labels)

	return p, nil
}
