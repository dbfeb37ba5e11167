package deconv

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// newton minimizes the problem cost with gonum's Newton method, using the
// Gauss-Newton matrix J^T J as Hessian. The method modifies the Hessian
// until it is positive definite, which plays the role of LM damping.
func (pr *problem) newton(u0 []float64, s Settings) ([]float64, outcome, error) {
	n := len(u0)
	m := len(pr.axis)

	r := make([]float64, m)
	J := mat.NewDense(m, n, nil)
	g := mat.NewVecDense(n, nil)
	A := mat.NewSymDense(n, nil)

	p := optimize.Problem{
		Func: func(u []float64) float64 {
			return pr.residual(r, u)
		},
		Grad: func(grad, u []float64) {
			pr.residual(r, u)
			pr.jacobian(J, u)
			g.MulVec(J.T(), mat.NewVecDense(m, r))
			copy(grad, g.RawVector().Data)
		},
		Hess: func(hess *mat.SymDense, u []float64) {
			pr.jacobian(J, u)
			A.SymOuterK(1, J.T())
			hess.CopySym(A)
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   s.MaxIterations,
		FuncEvaluations:   s.MaxEvaluations,
		Runtime:           s.Runtime,
		GradientThreshold: s.GradientTol,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.FunctionTol,
			Relative:   s.FunctionTol,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(p, u0, settings, &optimize.Newton{})
	if result == nil {
		return u0, outcome{Status: Failure, Evaluations: pr.evals},
			&FitConvergenceError{Status: Failure, Evaluations: pr.evals, Err: err}
	}

	res := outcome{
		Status:      fromOptimize(result.Status),
		Iterations:  result.Stats.MajorIterations,
		Evaluations: pr.evals,
	}
	u := result.X
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		res.Status = Failure
	}
	if err != nil && res.Status.Converged() {
		res.Status = Failure
	}
	if !res.Status.Converged() {
		return u, res, &FitConvergenceError{
			Status:      res.Status,
			Iterations:  res.Iterations,
			Evaluations: res.Evaluations,
			Err:         err,
		}
	}
	return u, res, nil
}

func fromOptimize(st optimize.Status) Status {
	switch st {
	case optimize.GradientThreshold:
		return GradientConvergence
	case optimize.StepConvergence:
		return StepConvergence
	case optimize.FunctionConvergence, optimize.Success, optimize.MethodConverge:
		return FunctionConvergence
	case optimize.FunctionThreshold:
		return ExactFit
	case optimize.IterationLimit:
		return IterationLimit
	case optimize.FunctionEvaluationLimit, optimize.GradientEvaluationLimit, optimize.HessianEvaluationLimit:
		return EvaluationLimit
	case optimize.RuntimeLimit:
		return RuntimeLimit
	case optimize.NotTerminated:
		return NotTerminated
	default:
		return Failure
	}
}
