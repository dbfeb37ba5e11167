package deconv

import "time"

// Method selects the optimization algorithm.
type Method int

const (
	// MethodLevenbergMarquardt is a damped Gauss-Newton method with
	// Marquardt diagonal scaling. It is the default.
	MethodLevenbergMarquardt Method = iota

	// MethodNewton runs gonum's Newton method with the Gauss-Newton
	// approximation J^T J as Hessian.
	MethodNewton
)

func (m Method) String() string {
	switch m {
	case MethodLevenbergMarquardt:
		return "levenberg-marquardt"
	case MethodNewton:
		return "newton"
	default:
		return "unknown"
	}
}

// ParseMethod maps a method name to a Method. Unknown names select the
// default method and report false.
func ParseMethod(name string) (Method, bool) {
	switch name {
	case "", "lm", "levenberg-marquardt":
		return MethodLevenbergMarquardt, true
	case "newton":
		return MethodNewton, true
	default:
		return MethodLevenbergMarquardt, false
	}
}

// Settings fixes every knob of the optimizer so repeated runs on the same
// input give the same result.
type Settings struct {
	Method Method

	// MaxIterations caps the number of accepted and rejected steps.
	MaxIterations int
	// MaxEvaluations caps the number of model evaluations.
	MaxEvaluations int
	// Runtime caps wall-clock time. Zero disables the cap.
	Runtime time.Duration

	// Tau scales the initial damping.
	Tau float64
	// GradientTol stops when the scaled gradient max-norm falls below it.
	GradientTol float64
	// StepTol stops when the step is small relative to the parameters.
	StepTol float64
	// FunctionTol stops when an accepted step reduces the cost by less than
	// FunctionTol times the cost.
	FunctionTol float64
}

// DefaultSettings returns the settings used when no options are given.
func DefaultSettings() Settings {
	return Settings{
		Method:         MethodLevenbergMarquardt,
		MaxIterations:  500,
		MaxEvaluations: 5000,
		Tau:            1e-3,
		GradientTol:    1e-10,
		StepTol:        1e-10,
		FunctionTol:    1e-12,
	}
}

// Option mutates Settings.
type Option func(*Settings)

// WithMethod selects the optimization algorithm.
func WithMethod(m Method) Option {
	return func(s *Settings) { s.Method = m }
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(s *Settings) {
		if n > 0 {
			s.MaxIterations = n
		}
	}
}

// WithMaxEvaluations sets the model-evaluation cap.
func WithMaxEvaluations(n int) Option {
	return func(s *Settings) {
		if n > 0 {
			s.MaxEvaluations = n
		}
	}
}

// WithRuntime sets the wall-clock cap.
func WithRuntime(d time.Duration) Option {
	return func(s *Settings) {
		if d >= 0 {
			s.Runtime = d
		}
	}
}

// WithTolerances sets the gradient, step and function tolerances.
// Non-positive values keep the current setting.
func WithTolerances(gradient, step, function float64) Option {
	return func(s *Settings) {
		if gradient > 0 {
			s.GradientTol = gradient
		}
		if step > 0 {
			s.StepTol = step
		}
		if function > 0 {
			s.FunctionTol = function
		}
	}
}

// WithSettings replaces all settings at once.
func WithSettings(settings Settings) Option {
	return func(s *Settings) { *s = settings }
}

// ApplyOptions applies zero or more options to the default settings.
func ApplyOptions(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
