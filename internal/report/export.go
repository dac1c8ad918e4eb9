package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/splitsig/splitsig/internal/stats"
)

type jsonResult struct {
	ControlVisitors    int     `json:"control_visitors"`
	ControlConversions int     `json:"control_conversions"`
	VariantVisitors    int     `json:"variant_visitors"`
	VariantConversions int     `json:"variant_conversions"`
	ControlRate        float64 `json:"control_rate"`
	VariantRate        float64 `json:"variant_rate"`
	PooledRate         float64 `json:"pooled_rate"`
	StandardError      float64 `json:"standard_error"`
	ZStatistic         float64 `json:"z_statistic"`
	PValue             float64 `json:"p_value"`
	AbsoluteLift       float64 `json:"absolute_lift"`
	RelativeLift       float64 `json:"relative_lift"`
	Alpha              float64 `json:"alpha"`
	Significant        bool    `json:"significant"`
}

// WriteJSON exports the result as indented JSON.
func WriteJSON(w io.Writer, res *stats.TestResult) error {
	out := jsonResult{
		ControlVisitors:    res.Control.Visitors,
		ControlConversions: res.Control.Conversions,
		VariantVisitors:    res.Variant.Visitors,
		VariantConversions: res.Variant.Conversions,
		ControlRate:        res.ControlRate,
		VariantRate:        res.VariantRate,
		PooledRate:         res.PooledRate,
		StandardError:      res.StandardError,
		ZStatistic:         res.ZStatistic,
		PValue:             res.PValue,
		AbsoluteLift:       res.AbsoluteLift,
		RelativeLift:       res.RelativeLift,
		Alpha:              res.Alpha,
		Significant:        res.Significant,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

// WriteCSV exports the result as a single CSV record with a header row.
func WriteCSV(w io.Writer, res *stats.TestResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"control_visitors", "control_conversions",
		"variant_visitors", "variant_conversions",
		"control_rate", "variant_rate", "pooled_rate",
		"standard_error", "z_statistic", "p_value",
		"absolute_lift", "relative_lift", "alpha", "significant",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}

	row := []string{
		strconv.Itoa(res.Control.Visitors),
		strconv.Itoa(res.Control.Conversions),
		strconv.Itoa(res.Variant.Visitors),
		strconv.Itoa(res.Variant.Conversions),
		formatFloat(res.ControlRate),
		formatFloat(res.VariantRate),
		formatFloat(res.PooledRate),
		formatFloat(res.StandardError),
		formatFloat(res.ZStatistic),
		formatFloat(res.PValue),
		formatFloat(res.AbsoluteLift),
		formatFloat(res.RelativeLift),
		formatFloat(res.Alpha),
		strconv.FormatBool(res.Significant),
	}
	if err := cw.Write(row); err != nil {
		return eris.Wrap(err, "report: write csv row")
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "report: flush csv")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
