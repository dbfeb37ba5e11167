package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-raman/internal/polyfit"
)

// FitBaseline fits a least-squares polynomial of the given degree to the
// flanks outside excluded and evaluates it over the whole axis.
//
// The lower flank is every point before the first axis value above
// excluded.Low; the upper flank starts at the first axis value above
// excluded.High. The excluded bounds are clamped to the axis. A degree at or
// above the number of flank points is accepted and yields an interpolating
// (or minimum-norm) polynomial.
//
// Each call replaces the previous baseline and recomputes the corrected
// signal as |signal - baseline|.
func (s *Spectrum) FitBaseline(degree int, excluded Range) error {
	if len(s.axis) == 0 {
		return ErrEmpty
	}
	if !excluded.Valid() {
		return &InvalidRangeError{Low: excluded.Low, High: excluded.High, Reason: "excluded range needs low < high"}
	}

	b := s.Bounds()
	ex := Range{Low: math.Max(excluded.Low, b.Low), High: math.Min(excluded.High, b.High)}
	if ex.Low > ex.High {
		// The excluded region lies entirely outside the data.
		ex = excluded
	}

	lowerEnd := firstAbove(s.axis, ex.Low)
	upperStart := firstAbove(s.axis, ex.High)

	n := lowerEnd + len(s.axis) - upperStart
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	x = append(x, s.axis[:lowerEnd]...)
	x = append(x, s.axis[upperStart:]...)
	y = append(y, s.signal[:lowerEnd]...)
	y = append(y, s.signal[upperStart:]...)

	p, err := polyfit.Fit(x, y, degree)
	if err != nil {
		if errors.Is(err, polyfit.ErrNoPoints) {
			return fmt.Errorf("%w: %s", ErrNoBaselinePoints, ex)
		}
		return fmt.Errorf("spectrum: baseline fit: %w", err)
	}

	p.EvalInto(s.baseline, s.axis)
	for i, v := range s.signal {
		s.corrected[i] = math.Abs(v - s.baseline[i])
	}
	s.poly = p
	s.degree = degree
	s.excluded = ex
	return nil
}
