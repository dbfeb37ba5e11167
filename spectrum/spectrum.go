package spectrum

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-raman/dsp/core"
	"github.com/cwbudde/algo-raman/internal/polyfit"
)

// Range is an interval on the spectrum axis with Low < High.
type Range struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Valid reports whether Low < High and both bounds are finite.
func (r Range) Valid() bool {
	return core.IsFinite(r.Low) && core.IsFinite(r.High) && r.Low < r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// Spectrum is a measured spectrum with its baseline and spike state.
// It is not safe for concurrent use.
type Spectrum struct {
	axis      []float64
	signal    []float64
	baseline  []float64
	corrected []float64

	degree   int
	excluded Range
	poly     *polyfit.Poly
	spikes   []int
}

// New creates a spectrum from axis and signal. The slices are copied.
//
// A strictly decreasing axis, as written by some instruments, is reversed
// together with the signal. Until [Spectrum.FitBaseline] is called the
// baseline is zero and the corrected signal is |signal|.
func New(axis, signal []float64) (*Spectrum, error) {
	if len(axis) != len(signal) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(axis), len(signal))
	}
	if len(axis) == 0 {
		return nil, ErrEmpty
	}

	x := core.Clone(axis)
	y := core.Clone(signal)
	if !core.StrictlyIncreasing(x) {
		slices.Reverse(x)
		slices.Reverse(y)
		if !core.StrictlyIncreasing(x) {
			return nil, ErrNotIncreasing
		}
	}

	s := &Spectrum{
		axis:   x,
		signal: y,
	}
	s.resetBaseline()
	return s, nil
}

func (s *Spectrum) resetBaseline() {
	s.baseline = make([]float64, len(s.axis))
	s.corrected = make([]float64, len(s.axis))
	for i, v := range s.signal {
		s.corrected[i] = math.Abs(v)
	}
	s.poly = nil
	s.degree = 0
	s.excluded = Range{}
}

// Len returns the number of points.
func (s *Spectrum) Len() int { return len(s.axis) }

// Axis returns the axis values. The slice must not be modified.
func (s *Spectrum) Axis() []float64 { return s.axis }

// Signal returns the raw signal. The slice must not be modified.
func (s *Spectrum) Signal() []float64 { return s.signal }

// Baseline returns the baseline evaluated on the axis. The slice must not be
// modified.
func (s *Spectrum) Baseline() []float64 { return s.baseline }

// Corrected returns |signal - baseline|. The slice must not be modified.
func (s *Spectrum) Corrected() []float64 { return s.corrected }

// Spikes returns a copy of the flagged spike indices in ascending order.
func (s *Spectrum) Spikes() []int { return slices.Clone(s.spikes) }

// HasBaseline reports whether a baseline has been fitted.
func (s *Spectrum) HasBaseline() bool { return s.poly != nil }

// BaselineDegree returns the degree of the last baseline fit.
func (s *Spectrum) BaselineDegree() int { return s.degree }

// ExcludedRange returns the peak region excluded from the last baseline fit,
// after clamping to the axis.
func (s *Spectrum) ExcludedRange() Range { return s.excluded }

// BaselineCoefficients returns the baseline polynomial coefficients in
// ascending powers of the axis variable, or nil before the first fit.
func (s *Spectrum) BaselineCoefficients() []float64 {
	if s.poly == nil {
		return nil
	}
	return s.poly.Coefficients()
}

// Bounds returns the first and last axis value, or NaN bounds when the
// spectrum is empty.
func (s *Spectrum) Bounds() Range {
	if len(s.axis) == 0 {
		return Range{Low: math.NaN(), High: math.NaN()}
	}
	return Range{Low: s.axis[0], High: s.axis[len(s.axis)-1]}
}

// ClipToRange truncates the spectrum to the points with low < axis < high.
//
// Bounds outside the data are first clamped to the observed axis minimum and
// maximum. The effective range is returned. A range that is empty after
// clamping yields *InvalidRangeError and leaves the spectrum untouched.
// Spike indices are remapped to the truncated spectrum.
func (s *Spectrum) ClipToRange(low, high float64) (Range, error) {
	r := Range{Low: low, High: high}
	if len(s.axis) == 0 {
		return r, ErrEmpty
	}
	if math.IsNaN(low) || math.IsNaN(high) {
		return r, &InvalidRangeError{Low: low, High: high, Reason: "bound is NaN"}
	}

	lo, hi := core.MinMax(s.axis)
	r.Low = math.Max(r.Low, lo)
	r.High = math.Min(r.High, hi)
	if r.Low >= r.High {
		return r, &InvalidRangeError{Low: r.Low, High: r.High, Reason: "low >= high after clamping to data"}
	}

	first := firstAbove(s.axis, r.Low)
	last := lastBelow(s.axis, r.High)
	if first >= len(s.axis) || last < first {
		return r, &InvalidRangeError{Low: r.Low, High: r.High, Reason: "no points inside range"}
	}

	end := last + 1
	s.axis = s.axis[first:end]
	s.signal = s.signal[first:end]
	s.baseline = s.baseline[first:end]
	s.corrected = s.corrected[first:end]

	kept := s.spikes[:0]
	for _, idx := range s.spikes {
		if idx >= first && idx < end {
			kept = append(kept, idx-first)
		}
	}
	s.spikes = kept

	return r, nil
}

// firstAbove returns the first index with axis[i] > v, or len(axis).
func firstAbove(axis []float64, v float64) int {
	for i, x := range axis {
		if x > v {
			return i
		}
	}
	return len(axis)
}

// lastBelow returns the last index with axis[i] < v, or -1.
func lastBelow(axis []float64, v float64) int {
	for i := len(axis) - 1; i >= 0; i-- {
		if axis[i] < v {
			return i
		}
	}
	return -1
}
