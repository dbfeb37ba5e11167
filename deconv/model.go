package deconv

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-raman/dsp/core"
	"github.com/cwbudde/algo-raman/dsp/peak"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// PeakSpec is the configuration of one peak: its shape, initial guess and
// per-parameter bounds. Mix fields are ignored for non-Voigt shapes.
type PeakSpec struct {
	Name  string
	Shape peak.Shape
	Init  peak.Params
	Lower peak.Params
	Upper peak.Params
}

// Peak is an assembled peak. Params holds the initial guess until the model
// is fitted and the solution afterwards.
type Peak struct {
	Name   string
	Shape  peak.Shape
	Params peak.Params
	Lower  peak.Params
	Upper  peak.Params
}

// Bounds holds packed lower and upper bounds aligned with the flat
// parameter vector.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Model is a composite of peaks fitted jointly. It is not safe for
// concurrent use.
type Model struct {
	peaks    []Peak
	offsets  []int
	nparams  int
	settings Settings

	state  State
	fit    *fitRecord
	runErr error
}

// Assemble validates specs and builds a model with peaks in the given order.
//
// It fails with *ConfigurationError when a name is empty or repeated, when a
// lower bound exceeds its upper bound, or when an initial value lies outside
// its bounds.
func Assemble(specs []PeakSpec, opts ...Option) (*Model, error) {
	if len(specs) == 0 {
		return nil, ErrNoPeaks
	}

	m := &Model{
		peaks:    make([]Peak, len(specs)),
		offsets:  make([]int, len(specs)),
		settings: ApplyOptions(opts...),
	}

	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, &ConfigurationError{Peak: fmt.Sprintf("#%d", i+1), Reason: "empty name"}
		}
		if seen[s.Name] {
			return nil, &ConfigurationError{Peak: s.Name, Reason: "duplicate name"}
		}
		seen[s.Name] = true

		if err := checkBounds(s.Name, s.Shape, s.Init.Values(s.Shape), s.Lower.Values(s.Shape), s.Upper.Values(s.Shape)); err != nil {
			return nil, err
		}

		m.peaks[i] = Peak{
			Name:   s.Name,
			Shape:  s.Shape,
			Params: keepArity(s.Shape, s.Init),
			Lower:  keepArity(s.Shape, s.Lower),
			Upper:  keepArity(s.Shape, s.Upper),
		}
		m.offsets[i] = m.nparams
		m.nparams += s.Shape.Arity()
	}

	return m, nil
}

func keepArity(s peak.Shape, p peak.Params) peak.Params {
	if s != peak.Voigt {
		p.Mix = 0
	}
	return p
}

func checkBounds(name string, s peak.Shape, init, lower, upper []float64) error {
	names := s.ParamNames()
	for j := range init {
		lo, hi, v := lower[j], upper[j], init[j]
		cfg := &ConfigurationError{Peak: name, Param: names[j], Value: v, Lower: lo, Upper: hi}
		switch {
		case math.IsNaN(lo) || math.IsNaN(hi) || !core.IsFinite(v):
			cfg.Reason = "value and bounds must be numbers"
		case lo > hi:
			cfg.Reason = "lower bound exceeds upper bound"
		case v < lo || v > hi:
			cfg.Reason = "initial value outside bounds"
		default:
			continue
		}
		return cfg
	}
	return nil
}

// Peaks returns a copy of the peaks in assembly order.
func (m *Model) Peaks() []Peak {
	out := make([]Peak, len(m.peaks))
	copy(out, m.peaks)
	return out
}

// Names returns the peak names in assembly order.
func (m *Model) Names() []string {
	out := make([]string, len(m.peaks))
	for i, p := range m.peaks {
		out[i] = p.Name
	}
	return out
}

// NumParams returns the length of the flat parameter vector.
func (m *Model) NumParams() int { return m.nparams }

// Settings returns the solver settings of the model.
func (m *Model) Settings() Settings { return m.settings }

// Pack returns the current parameters of all peaks as one flat vector.
func (m *Model) Pack() []float64 {
	out := make([]float64, 0, m.nparams)
	for _, p := range m.peaks {
		out = p.Params.AppendTo(out, p.Shape)
	}
	return out
}

// Bounds returns the packed parameter bounds.
func (m *Model) Bounds() Bounds {
	b := Bounds{
		Lower: make([]float64, 0, m.nparams),
		Upper: make([]float64, 0, m.nparams),
	}
	for _, p := range m.peaks {
		b.Lower = p.Lower.AppendTo(b.Lower, p.Shape)
		b.Upper = p.Upper.AppendTo(b.Upper, p.Shape)
	}
	return b
}

// Unpack splits a flat parameter vector into per-peak parameters, in
// assembly order. It is the inverse of [Model.Pack].
func (m *Model) Unpack(v []float64) ([]peak.Params, error) {
	if len(v) != m.nparams {
		return nil, fmt.Errorf("%w: parameter vector has %d values, model needs %d", ErrLengthMismatch, len(v), m.nparams)
	}
	out := make([]peak.Params, len(m.peaks))
	for i, p := range m.peaks {
		off := m.offsets[i]
		params, err := peak.ParamsFromValues(p.Shape, v[off:off+p.Shape.Arity()])
		if err != nil {
			return nil, err
		}
		out[i] = params
	}
	return out, nil
}

// Evaluate returns the sum of all peaks, with parameters unpacked from v,
// evaluated at every axis point.
func (m *Model) Evaluate(v, axis []float64) ([]float64, error) {
	out := make([]float64, len(axis))
	if err := m.EvaluateInto(out, v, axis); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateInto is like [Model.Evaluate] but writes into dst, which must have
// the same length as axis.
func (m *Model) EvaluateInto(dst, v, axis []float64) error {
	if len(dst) != len(axis) {
		return fmt.Errorf("%w: dst has %d values, axis %d", ErrLengthMismatch, len(dst), len(axis))
	}
	params, err := m.Unpack(v)
	if err != nil {
		return err
	}
	m.sumInto(dst, axis, params, make([]float64, len(axis)))
	return nil
}

// sumInto accumulates every peak into dst using scratch as a per-peak buffer.
func (m *Model) sumInto(dst, axis []float64, params []peak.Params, scratch []float64) {
	core.Zero(dst)
	for i, p := range m.peaks {
		peak.EvalInto(scratch, p.Shape, axis, params[i])
		vecmath.AddBlockInPlace(dst, scratch)
	}
}
