package stats

import "github.com/rotisserie/eris"

// ErrInvalidInput is returned when an experiment arm fails validation.
var ErrInvalidInput = eris.New("invalid variant input")

// Variant is one arm of an A/B experiment: how many visitors saw it
// and how many of them converted.
type Variant struct {
	Visitors    int
	Conversions int
}

// Validate checks that the arm's counts can produce a meaningful rate.
func (v Variant) Validate() error {
	switch {
	case v.Visitors <= 0:
		return eris.Wrapf(ErrInvalidInput, "stats: visitors must be positive, got %d", v.Visitors)
	case v.Conversions < 0:
		return eris.Wrapf(ErrInvalidInput, "stats: conversions must be non-negative, got %d", v.Conversions)
	case v.Conversions > v.Visitors:
		return eris.Wrapf(ErrInvalidInput, "stats: conversions (%d) exceed visitors (%d)", v.Conversions, v.Visitors)
	}
	return nil
}

// Rate returns the observed conversion rate. Callers must Validate first;
// a zero-visitor arm yields 0 rather than NaN.
func (v Variant) Rate() float64 {
	if v.Visitors == 0 {
		return 0
	}
	return float64(v.Conversions) / float64(v.Visitors)
}
