package deconv

// State is the lifecycle state of a Model.
type State int

const (
	// Unfit is the state of a freshly assembled model.
	Unfit State = iota
	// Fitting is the state while the optimizer runs.
	Fitting
	// Fitted is terminal: the optimizer converged and derived quantities
	// are available.
	Fitted
	// Failed is terminal: the optimizer did not converge.
	Failed
)

func (s State) String() string {
	switch s {
	case Unfit:
		return "unfit"
	case Fitting:
		return "fitting"
	case Fitted:
		return "fitted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status reports why the optimizer stopped.
type Status int

const (
	// NotTerminated means the optimizer has not stopped yet.
	NotTerminated Status = iota
	// GradientConvergence means the scaled gradient fell below GradientTol.
	GradientConvergence
	// StepConvergence means the step fell below StepTol.
	StepConvergence
	// FunctionConvergence means the cost reduction fell below FunctionTol.
	FunctionConvergence
	// ExactFit means the residual vanished.
	ExactFit
	// IterationLimit means MaxIterations was reached.
	IterationLimit
	// EvaluationLimit means MaxEvaluations was reached.
	EvaluationLimit
	// RuntimeLimit means the Runtime cap was exceeded.
	RuntimeLimit
	// Failure means the optimizer could not make progress, for example
	// because the model produced non-finite values.
	Failure
)

// Converged reports whether s is a successful termination.
func (s Status) Converged() bool {
	switch s {
	case GradientConvergence, StepConvergence, FunctionConvergence, ExactFit:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case NotTerminated:
		return "not terminated"
	case GradientConvergence:
		return "gradient convergence"
	case StepConvergence:
		return "step convergence"
	case FunctionConvergence:
		return "function convergence"
	case ExactFit:
		return "exact fit"
	case IterationLimit:
		return "iteration limit"
	case EvaluationLimit:
		return "evaluation limit"
	case RuntimeLimit:
		return "runtime limit"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}
