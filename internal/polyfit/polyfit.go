// Package polyfit provides least-squares polynomial fitting used for
// baseline estimation.
//
// Fits are computed on a centred and scaled abscissa t = (x-shift)/scale with
// t in [-1, 1], which keeps the Vandermonde system well conditioned for
// wavenumber axes in the thousands. Coefficients in the raw x basis are
// available through [Poly.Coefficients].
package polyfit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidDegree is returned for a negative polynomial degree.
	ErrInvalidDegree = errors.New("polyfit: degree must be >= 0")

	// ErrNoPoints is returned when there is nothing to fit.
	ErrNoPoints = errors.New("polyfit: no points to fit")

	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("polyfit: x and y must have same length")

	// ErrDegenerate is returned when the normal system has no usable solution.
	ErrDegenerate = errors.New("polyfit: degenerate system")
)

// Poly is a fitted polynomial p(x) = sum_j c[j] * ((x-shift)/scale)^j.
type Poly struct {
	coeffs []float64
	shift  float64
	scale  float64
}

// Fit returns the least-squares polynomial of the given degree through
// (x[i], y[i]).
//
// A degree at or above len(x)-1 is accepted. With exactly degree+1 distinct
// points the fit interpolates; with fewer, the minimum-norm solution of the
// underdetermined system is returned.
func Fit(x, y []float64, degree int) (*Poly, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrNoPoints
	}

	p := &Poly{shift: 0, scale: 1}
	lo, hi := x[0], x[0]
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi > lo {
		p.shift = 0.5 * (hi + lo)
		p.scale = 0.5 * (hi - lo)
	} else {
		p.shift = lo
	}

	n, cols := len(x), degree+1
	a := mat.NewDense(n, cols, nil)
	for i, v := range x {
		t := (v - p.shift) / p.scale
		pow := 1.0
		for j := range cols {
			a.Set(i, j, pow)
			pow *= t
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
		}
	}

	p.coeffs = make([]float64, cols)
	for j := range cols {
		p.coeffs[j] = c.AtVec(j)
		if math.IsNaN(p.coeffs[j]) || math.IsInf(p.coeffs[j], 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrDegenerate)
		}
	}

	return p, nil
}

// Degree returns the polynomial degree.
func (p *Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Eval evaluates the polynomial at x using Horner's scheme.
func (p *Poly) Eval(x float64) float64 {
	t := (x - p.shift) / p.scale
	sum := 0.0
	for j := len(p.coeffs) - 1; j >= 0; j-- {
		sum = sum*t + p.coeffs[j]
	}
	return sum
}

// EvalInto writes p(x[i]) into dst[i]. dst must be at least as long as x.
func (p *Poly) EvalInto(dst, x []float64) {
	for i, v := range x {
		dst[i] = p.Eval(v)
	}
}

// Coefficients returns the coefficients in the raw x basis, ascending by
// power: p(x) = c[0] + c[1] x + ... + c[d] x^d.
func (p *Poly) Coefficients() []float64 {
	d := len(p.coeffs)
	out := make([]float64, d)

	// ((x - s)/h)^j = h^-j * sum_k binom(j,k) x^k (-s)^(j-k)
	for j, cj := range p.coeffs {
		if cj == 0 {
			continue
		}
		inv := cj / math.Pow(p.scale, float64(j))
		binom := 1.0
		for k := 0; k <= j; k++ {
			out[k] += inv * binom * math.Pow(-p.shift, float64(j-k))
			binom = binom * float64(j-k) / float64(k+1)
		}
	}
	return out
}
