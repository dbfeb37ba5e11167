package deconv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-raman/dsp/core"
	"github.com/cwbudde/algo-raman/dsp/peak"
)

// PeakResult holds the fitted parameters and derived quantities of one peak.
type PeakResult struct {
	Name   string
	Shape  peak.Shape
	Params peak.Params

	// Area is the closed-form area of the profile over the real line.
	Area float64
	// AxisArea is the trapezoidal integral of the curve over the fitted
	// axis. It is NaN when the axis is not strictly increasing.
	AxisArea float64
	// Height is the maximum of the curve over the fitted axis.
	Height float64
	FWHM   float64

	// Flags lists problems with the fitted peak. Valid is false when any
	// flag other than a bound contact is present.
	Flags []string
	Valid bool
}

// FitStats summarizes a converged run.
type FitStats struct {
	Status      Status
	Iterations  int
	Evaluations int
	// RSS is the residual sum of squares.
	RSS float64
	// R2 is the coefficient of determination against the fitted signal.
	R2 float64
}

func (m *Model) fitted() error {
	if m.state == Fitted {
		return nil
	}
	if m.runErr != nil {
		return fmt.Errorf("%w: %w", ErrNotFitted, m.runErr)
	}
	return ErrNotFitted
}

// Axis returns a copy of the axis the model was fitted on.
func (m *Model) Axis() ([]float64, error) {
	if err := m.fitted(); err != nil {
		return nil, err
	}
	return core.Clone(m.fit.axis), nil
}

// Curves returns a copy of each peak's fitted curve, in peak order.
func (m *Model) Curves() ([][]float64, error) {
	if err := m.fitted(); err != nil {
		return nil, err
	}
	out := make([][]float64, len(m.fit.curves))
	for i, c := range m.fit.curves {
		out[i] = core.Clone(c)
	}
	return out, nil
}

// Cumulative returns a copy of the sum of all fitted curves.
func (m *Model) Cumulative() ([]float64, error) {
	if err := m.fitted(); err != nil {
		return nil, err
	}
	return core.Clone(m.fit.cumulative), nil
}

// Stats returns the solver summary of a converged run.
func (m *Model) Stats() (FitStats, error) {
	if err := m.fitted(); err != nil {
		return FitStats{}, err
	}
	return FitStats{
		Status:      m.fit.outcome.Status,
		Iterations:  m.fit.outcome.Iterations,
		Evaluations: m.fit.outcome.Evaluations,
		RSS:         m.fit.rss,
		R2:          m.fit.r2,
	}, nil
}

// Results returns per-peak results in peak order.
func (m *Model) Results() ([]PeakResult, error) {
	if err := m.fitted(); err != nil {
		return nil, err
	}

	increasing := core.StrictlyIncreasing(m.fit.axis) && len(m.fit.axis) >= 2
	out := make([]PeakResult, len(m.peaks))
	for i, pk := range m.peaks {
		curve := m.fit.curves[i]
		res := PeakResult{
			Name:     pk.Name,
			Shape:    pk.Shape,
			Params:   pk.Params,
			Area:     peak.Area(pk.Shape, pk.Params),
			AxisArea: math.NaN(),
			FWHM:     peak.FWHM(pk.Shape, pk.Params),
		}
		if idx := core.ArgMax(curve); idx >= 0 {
			res.Height = curve[idx]
		}
		if increasing {
			res.AxisArea = integrate.Trapezoidal(m.fit.axis, curve)
		}
		res.Flags, res.Valid = validate(pk)
		out[i] = res
	}
	return out, nil
}

// boundContact is the fraction of a finite bound span treated as touching
// the bound.
const boundContact = 1e-6

func validate(pk Peak) ([]string, bool) {
	var flags []string
	valid := true

	values := pk.Params.Values(pk.Shape)
	if !core.AllFinite(values) {
		return []string{"non-finite"}, false
	}
	if pk.Params.Width <= 0 {
		flags = append(flags, "non-positive width")
		valid = false
	}
	if pk.Params.Intensity <= 0 {
		flags = append(flags, "non-positive intensity")
		valid = false
	}

	names := pk.Shape.ParamNames()
	lower, upper := pk.Lower.Values(pk.Shape), pk.Upper.Values(pk.Shape)
	for j, v := range values {
		lo, hi := lower[j], upper[j]
		if lo == hi {
			continue
		}
		tol := boundContact
		if span := hi - lo; !math.IsInf(span, 0) {
			tol *= span
		}
		if (!math.IsInf(lo, -1) && v-lo <= tol) || (!math.IsInf(hi, 1) && hi-v <= tol) {
			flags = append(flags, "at bound: "+names[j])
		}
	}
	return flags, valid
}
