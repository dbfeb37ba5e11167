package deconv

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// outcome summarizes a solver run.
type outcome struct {
	Status      Status
	Iterations  int
	Evaluations int
}

// levenbergMarquardt minimizes the problem cost starting at u0 and returns
// the final internal point. It follows the damping strategy of Nielsen:
// the damping mu scales the Marquardt diagonal and is updated from the gain
// ratio between actual and predicted cost reduction.
func (pr *problem) levenbergMarquardt(u0 []float64, s Settings) ([]float64, outcome, error) {
	n := len(u0)
	m := len(pr.axis)
	start := time.Now()

	u := append([]float64(nil), u0...)
	uNew := make([]float64, n)
	r := make([]float64, m)
	rNew := make([]float64, m)

	J := mat.NewDense(m, n, nil)
	A := mat.NewSymDense(n, nil)
	damped := mat.NewSymDense(n, nil)
	g := mat.NewVecDense(n, nil)
	rhs := mat.NewVecDense(n, nil)
	h := mat.NewVecDense(n, nil)
	var chol mat.Cholesky

	res := outcome{}
	done := func(st Status) ([]float64, outcome, error) {
		res.Status = st
		res.Evaluations = pr.evals
		if st.Converged() {
			return u, res, nil
		}
		return u, res, &FitConvergenceError{Status: st, Iterations: res.Iterations, Evaluations: res.Evaluations}
	}

	cost := pr.residual(r, u)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return done(Failure)
	}
	if cost == 0 {
		return done(ExactFit)
	}
	pr.jacobian(J, u)
	normal(A, g, J, r)
	if floats.Norm(g.RawVector().Data, math.Inf(1)) <= s.GradientTol {
		return done(GradientConvergence)
	}

	mu := s.Tau * maxDiag(A)
	if mu <= 0 {
		mu = s.Tau
	}
	nu := 2.0

	for {
		switch {
		case res.Iterations >= s.MaxIterations:
			return done(IterationLimit)
		case pr.evals >= s.MaxEvaluations:
			return done(EvaluationLimit)
		case s.Runtime > 0 && time.Since(start) > s.Runtime:
			return done(RuntimeLimit)
		}
		res.Iterations++

		// Solve (A + mu D) h = -g with D = diag(max(A_ii, 1)).
		damped.CopySym(A)
		for i := range n {
			damped.SetSym(i, i, A.At(i, i)+mu*math.Max(A.At(i, i), 1))
		}
		if ok := chol.Factorize(damped); !ok {
			mu *= nu
			nu *= 2
			continue
		}
		rhs.ScaleVec(-1, g)
		if err := chol.SolveVecTo(h, rhs); err != nil {
			mu *= nu
			nu *= 2
			continue
		}

		step := h.RawVector().Data
		if floats.Norm(step, 2) <= s.StepTol*(floats.Norm(u, 2)+s.StepTol) {
			return done(StepConvergence)
		}

		floats.AddTo(uNew, u, step)
		costNew := pr.residual(rNew, uNew)

		// Predicted reduction of the local quadratic model.
		var pred float64
		for i := range n {
			pred += step[i] * (mu*math.Max(A.At(i, i), 1)*step[i] - g.AtVec(i))
		}
		pred /= 2

		if math.IsNaN(costNew) || math.IsInf(costNew, 0) || pred <= 0 || costNew >= cost {
			mu *= nu
			nu *= 2
			if math.IsInf(mu, 0) {
				return done(Failure)
			}
			continue
		}

		rho := (cost - costNew) / pred
		reduction := cost - costNew
		prevCost := cost

		copy(u, uNew)
		r, rNew = rNew, r
		cost = costNew

		if cost == 0 {
			return done(ExactFit)
		}
		if reduction <= s.FunctionTol*prevCost {
			return done(FunctionConvergence)
		}

		pr.jacobian(J, u)
		normal(A, g, J, r)
		if floats.Norm(g.RawVector().Data, math.Inf(1)) <= s.GradientTol {
			return done(GradientConvergence)
		}

		mu *= math.Max(1.0/3, 1-math.Pow(2*rho-1, 3))
		nu = 2
	}
}

func maxDiag(a *mat.SymDense) float64 {
	var mx float64
	for i := range a.SymmetricDim() {
		mx = math.Max(mx, a.At(i, i))
	}
	return mx
}
