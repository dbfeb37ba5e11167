package polyfit

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-raman/internal/testutil"
)

func evalRaw(c []float64, x float64) float64 {
	sum := 0.0
	for j := len(c) - 1; j >= 0; j-- {
		sum = sum*x + c[j]
	}
	return sum
}

func TestFitReproducesExactPolynomials(t *testing.T) {
	x := make([]float64, 0, 120)
	for v := 650.0; v < 900; v += 5 {
		x = append(x, v)
	}
	for v := 1805.0; v <= 2800; v += 15 {
		x = append(x, v)
	}

	tests := []struct {
		name   string
		coeffs []float64
	}{
		{name: "constant", coeffs: []float64{3.5}},
		{name: "linear", coeffs: []float64{2, 0.01}},
		{name: "quadratic", coeffs: []float64{100, -0.05, 2e-5}},
		{name: "cubic", coeffs: []float64{50, 0.2, -1e-4, 1.5e-8}},
		{name: "quintic", coeffs: []float64{1, 1e-3, 0, 0, 0, 1e-16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(x))
			for i, v := range x {
				y[i] = evalRaw(tt.coeffs, v)
			}

			p, err := Fit(x, y, len(tt.coeffs)-1)
			if err != nil {
				t.Fatal(err)
			}
			if p.Degree() != len(tt.coeffs)-1 {
				t.Fatalf("degree = %d, want %d", p.Degree(), len(tt.coeffs)-1)
			}

			got := make([]float64, len(x))
			p.EvalInto(got, x)
			testutil.RequireSliceNearlyEqual(t, got, y, 1e-8*(1+maxAbs(y)))
		})
	}
}

func TestFitNoiseIsUnbiased(t *testing.T) {
	x := make([]float64, 400)
	y := make([]float64, 400)
	noise := testutil.DeterministicNoise(7, 0.5, len(x))
	for i := range x {
		x[i] = 1000 + float64(i)
		y[i] = 2 + 0.01*x[i] + noise[i]
	}

	p, err := Fit(x, y, 1)
	if err != nil {
		t.Fatal(err)
	}

	c := p.Coefficients()
	if math.Abs(c[1]-0.01) > 5e-4 {
		t.Fatalf("slope = %v, want ~0.01", c[1])
	}

	// Residuals of a least-squares fit with an intercept term sum to zero.
	sum := 0.0
	for i := range x {
		sum += y[i] - p.Eval(x[i])
	}
	if math.Abs(sum) > 1e-8 {
		t.Fatalf("residual sum = %v, want 0", sum)
	}
}

func TestCoefficientsRawBasis(t *testing.T) {
	x := []float64{1000, 1200, 1700, 2000}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2 + 0.01*v
	}

	p, err := Fit(x, y, 1)
	if err != nil {
		t.Fatal(err)
	}

	c := p.Coefficients()
	if math.Abs(c[0]-2) > 1e-9 || math.Abs(c[1]-0.01) > 1e-12 {
		t.Fatalf("coefficients = %v, want [2 0.01]", c)
	}
}

func TestFitOverdeterminedDegree(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, -1, 7}

	// Exactly determined: interpolates.
	p, err := Fit(x, y, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if math.Abs(p.Eval(x[i])-y[i]) > 1e-9 {
			t.Fatalf("p(%v) = %v, want %v", x[i], p.Eval(x[i]), y[i])
		}
	}

	// Underdetermined: still a valid polynomial through the points.
	p, err = Fit(x, y, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if math.Abs(p.Eval(x[i])-y[i]) > 1e-6 {
			t.Fatalf("degree 5: p(%v) = %v, want %v", x[i], p.Eval(x[i]), y[i])
		}
	}
}

func TestFitSinglePoint(t *testing.T) {
	p, err := Fit([]float64{5}, []float64{3}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Eval(100) != 3 {
		t.Fatalf("constant fit = %v, want 3", p.Eval(100))
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit([]float64{1}, []float64{1}, -1); !errors.Is(err, ErrInvalidDegree) {
		t.Fatalf("err = %v, want ErrInvalidDegree", err)
	}
	if _, err := Fit(nil, nil, 1); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("err = %v, want ErrNoPoints", err)
	}
	if _, err := Fit([]float64{1, 2}, []float64{1}, 1); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func maxAbs(xs []float64) float64 {
	m := 0.0
	for _, v := range xs {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
