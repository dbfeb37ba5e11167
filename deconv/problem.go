package deconv

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-raman/dsp/peak"
)

// problem is the least-squares problem of one Deconvolute call, expressed in
// the unconstrained internal variables u.
type problem struct {
	m    *Model
	axis []float64
	y    []float64
	tr   []transform

	p       []float64
	slopes  []float64
	params  []peak.Params
	grad    [4]float64
	scratch []float64

	evals int
}

func newProblem(m *Model, axis, y []float64, lower, upper []float64) *problem {
	tr := make([]transform, len(lower))
	for i := range lower {
		tr[i] = newTransform(lower[i], upper[i])
	}
	return &problem{
		m:       m,
		axis:    axis,
		y:       y,
		tr:      tr,
		p:       make([]float64, len(lower)),
		slopes:  make([]float64, len(lower)),
		params:  make([]peak.Params, len(m.peaks)),
		scratch: make([]float64, len(axis)),
	}
}

// toInternal maps feasible parameters to u.
func (pr *problem) toInternal(p []float64) []float64 {
	u := make([]float64, len(p))
	for i, t := range pr.tr {
		u[i] = t.internal(p[i])
	}
	return u
}

// toExternal maps u to parameters. The result aliases internal storage
// unless dst is given.
func (pr *problem) toExternal(dst, u []float64) []float64 {
	if dst == nil {
		dst = pr.p
	}
	for i, t := range pr.tr {
		dst[i] = t.external(u[i])
	}
	return dst
}

func (pr *problem) load(u []float64) {
	p := pr.toExternal(nil, u)
	for i, pk := range pr.m.peaks {
		off := pr.m.offsets[i]
		// Lengths match by construction.
		pr.params[i], _ = peak.ParamsFromValues(pk.Shape, p[off:off+pk.Shape.Arity()])
	}
}

// residual writes model(u) - y into r and returns the cost ||r||^2 / 2.
func (pr *problem) residual(r, u []float64) float64 {
	pr.evals++
	pr.load(u)
	pr.m.sumInto(r, pr.axis, pr.params, pr.scratch)
	floats.Sub(r, pr.y)
	return floats.Dot(r, r) / 2
}

// jacobian writes dr/du into J, which must be len(axis) x len(u).
func (pr *problem) jacobian(J *mat.Dense, u []float64) {
	pr.load(u)
	for i, t := range pr.tr {
		pr.slopes[i] = t.slope(u[i])
	}
	for i, x := range pr.axis {
		row := J.RawRowView(i)
		for k, pk := range pr.m.peaks {
			off := pr.m.offsets[k]
			n := pk.Shape.Arity()
			peak.Gradient(pr.grad[:n], pk.Shape, x, pr.params[k])
			for j := range n {
				row[off+j] = pr.grad[j] * pr.slopes[off+j]
			}
		}
	}
}

// normal computes A = J^T J and g = J^T r.
func normal(A *mat.SymDense, g *mat.VecDense, J *mat.Dense, r []float64) {
	A.SymOuterK(1, J.T())
	g.MulVec(J.T(), mat.NewVecDense(len(r), r))
}
