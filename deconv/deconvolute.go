package deconv

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-raman/dsp/core"
	"github.com/cwbudde/algo-raman/dsp/peak"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// fitRecord holds everything derived from a converged fit.
type fitRecord struct {
	axis       []float64
	signal     []float64
	curves     [][]float64
	cumulative []float64
	outcome    outcome
	rss        float64
	r2         float64
}

// State returns the lifecycle state of the model.
func (m *Model) State() State { return m.state }

// Err returns the error of a failed run, or nil.
func (m *Model) Err() error { return m.runErr }

// Fit runs [Model.Deconvolute] starting from the assembled initial values
// and bounds.
func (m *Model) Fit(signal, axis []float64) error {
	return m.Deconvolute(signal, axis, m.Pack(), m.Bounds())
}

// Deconvolute fits the model to signal sampled at axis by bounded nonlinear
// least squares, starting at guess and keeping every parameter within
// bounds.
//
// Input errors leave the model Unfit. Once the optimizer has started the
// model moves to Fitted on convergence, or to Failed with a
// *FitConvergenceError. Both are terminal: a second call returns
// ErrTerminalState.
func (m *Model) Deconvolute(signal, axis, guess []float64, bounds Bounds) error {
	if m.state != Unfit {
		return fmt.Errorf("%w (state %s)", ErrTerminalState, m.state)
	}
	if len(axis) == 0 {
		return fmt.Errorf("%w: empty axis", ErrLengthMismatch)
	}
	if len(signal) != len(axis) {
		return fmt.Errorf("%w: signal has %d values, axis %d", ErrLengthMismatch, len(signal), len(axis))
	}
	if len(guess) != m.nparams || len(bounds.Lower) != m.nparams || len(bounds.Upper) != m.nparams {
		return fmt.Errorf("%w: guess/bounds have %d/%d/%d values, model needs %d",
			ErrLengthMismatch, len(guess), len(bounds.Lower), len(bounds.Upper), m.nparams)
	}
	if !core.AllFinite(signal) || !core.AllFinite(axis) {
		return fmt.Errorf("%w: signal and axis must be finite", ErrConfiguration)
	}
	for i, pk := range m.peaks {
		off, n := m.offsets[i], pk.Shape.Arity()
		if err := checkBounds(pk.Name, pk.Shape, guess[off:off+n], bounds.Lower[off:off+n], bounds.Upper[off:off+n]); err != nil {
			return err
		}
	}

	m.state = Fitting
	pr := newProblem(m, core.Clone(axis), core.Clone(signal), bounds.Lower, bounds.Upper)
	u0 := pr.toInternal(guess)

	var (
		u   []float64
		out outcome
		err error
	)
	switch m.settings.Method {
	case MethodNewton:
		u, out, err = pr.newton(u0, m.settings)
	default:
		u, out, err = pr.levenbergMarquardt(u0, m.settings)
	}
	if err != nil {
		m.state = Failed
		m.runErr = err
		return err
	}

	solution := pr.toExternal(make([]float64, m.nparams), u)
	params, err := m.Unpack(solution)
	if err != nil {
		m.state = Failed
		m.runErr = err
		return err
	}
	for i := range m.peaks {
		m.peaks[i].Params = params[i]
		m.peaks[i].Lower, _ = peak.ParamsFromValues(m.peaks[i].Shape, bounds.Lower[m.offsets[i]:m.offsets[i]+m.peaks[i].Shape.Arity()])
		m.peaks[i].Upper, _ = peak.ParamsFromValues(m.peaks[i].Shape, bounds.Upper[m.offsets[i]:m.offsets[i]+m.peaks[i].Shape.Arity()])
	}
	m.fit = m.record(pr.axis, pr.y, params, out)
	m.state = Fitted
	return nil
}

func (m *Model) record(axis, signal []float64, params []peak.Params, out outcome) *fitRecord {
	rec := &fitRecord{
		axis:       axis,
		signal:     signal,
		curves:     make([][]float64, len(m.peaks)),
		cumulative: make([]float64, len(axis)),
		outcome:    out,
	}
	for i, pk := range m.peaks {
		rec.curves[i] = peak.Eval(pk.Shape, axis, params[i])
		vecmath.AddBlockInPlace(rec.cumulative, rec.curves[i])
	}

	resid := make([]float64, len(axis))
	floats.SubTo(resid, rec.cumulative, signal)
	sq := make([]float64, len(axis))
	vecmath.MulBlock(sq, resid, resid)
	rec.rss = floats.Sum(sq)

	mean := floats.Sum(signal) / float64(len(signal))
	var tss float64
	for _, v := range signal {
		tss += (v - mean) * (v - mean)
	}
	if tss > 0 {
		rec.r2 = 1 - rec.rss/tss
	} else if rec.rss == 0 {
		rec.r2 = 1
	}
	return rec
}
