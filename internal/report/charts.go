package report

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/splitsig/splitsig/internal/config"
	"github.com/splitsig/splitsig/internal/stats"
)

// ChartSet renders the two explanatory figures for a test result.
type ChartSet struct {
	cfg config.ChartsConfig
}

// NewChartSet creates a renderer with the given output configuration.
func NewChartSet(cfg config.ChartsConfig) *ChartSet {
	return &ChartSet{cfg: cfg}
}

// RenderBreakdown writes the six-panel statistical breakdown figure:
// sampling distributions, rejection regions, p-value shading,
// confidence intervals, error types, and the power curve.
func (c *ChartSet) RenderBreakdown(res *stats.TestResult, curve []stats.PowerCurvePoint, recommendedN int, confidence, targetPower float64) error {
	if len(curve) == 0 {
		return eris.New("report: breakdown needs a power curve")
	}

	zCrit := stats.CriticalZ(confidence)

	sampling, err := samplingPanel(res)
	if err != nil {
		return err
	}
	rejection, err := rejectionPanel(res, zCrit)
	if err != nil {
		return err
	}
	pval, err := pValuePanel(res)
	if err != nil {
		return err
	}
	ci, err := ciPanel(res, confidence)
	if err != nil {
		return err
	}
	errorTypes, err := errorTypesPanel(res, zCrit)
	if err != nil {
		return err
	}
	power, err := powerPanel(curve, res.Control.Visitors, recommendedN, targetPower)
	if err != nil {
		return err
	}

	panels := [][]*plot.Plot{
		{sampling, rejection},
		{pval, ci},
		{errorTypes, power},
	}

	if err := c.writeTiled(c.cfg.BreakdownPath, panels); err != nil {
		return err
	}

	zap.L().Info("report: wrote breakdown figure",
		zap.String("path", c.cfg.BreakdownPath),
	)
	return nil
}

// RenderExplained writes the four-panel walkthrough figure: what the
// z-test and p-value mean, the formula derivation, and the
// interpretation guide.
func (c *ChartSet) RenderExplained(res *stats.TestResult) error {
	intro, err := ztestIntroPanel(res)
	if err != nil {
		return err
	}
	pval, err := pValuePanel(res)
	if err != nil {
		return err
	}
	formulas, err := textPanel("Z-Test Formula Breakdown", FormulaWalkthrough(res))
	if err != nil {
		return err
	}
	guide, err := textPanel("Interpretation Guide", Interpretation(res))
	if err != nil {
		return err
	}

	panels := [][]*plot.Plot{
		{intro, pval},
		{formulas, guide},
	}

	if err := c.writeTiled(c.cfg.ExplainedPath, panels); err != nil {
		return err
	}

	zap.L().Info("report: wrote explained figure",
		zap.String("path", c.cfg.ExplainedPath),
	)
	return nil
}

// ztestIntroPanel is the simplified rejection-region panel for the
// explained figure.
func ztestIntroPanel(res *stats.TestResult) (*plot.Plot, error) {
	return rejectionPanel(res, stats.CriticalZ(0.95))
}

func (c *ChartSet) writeTiled(path string, panels [][]*plot.Plot) error {
	rows := len(panels)
	cols := len(panels[0])

	width := vg.Length(c.cfg.WidthInches) * vg.Inch
	height := vg.Length(c.cfg.HeightInches) * vg.Inch

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(c.cfg.DPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}

	canvases := plot.Align(panels, tiles, dc)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			if panels[r][col] != nil {
				panels[r][col].Draw(canvases[r][col])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return eris.Wrapf(err, "report: encode %s", path)
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "report: close %s", path)
	}

	return nil
}
