package deconv

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid initial values or bounds.
	ErrConfiguration = errors.New("deconv: invalid peak configuration")

	// ErrFitConvergence marks an optimizer run that did not converge.
	ErrFitConvergence = errors.New("deconv: fit did not converge")

	// ErrNoPeaks is returned when assembling a model without peaks.
	ErrNoPeaks = errors.New("deconv: no peaks")

	// ErrNotFitted is returned when derived quantities are requested before
	// a successful fit.
	ErrNotFitted = errors.New("deconv: model is not fitted")

	// ErrTerminalState is returned when fitting a model that already ran.
	ErrTerminalState = errors.New("deconv: model already ran; assemble a new one")

	// ErrLengthMismatch is returned for inconsistent vector lengths.
	ErrLengthMismatch = errors.New("deconv: length mismatch")
)

// ConfigurationError describes a parameter whose initial value or bounds are
// inconsistent. Param is empty for errors concerning the whole peak.
type ConfigurationError struct {
	Peak   string
	Param  string
	Value  float64
	Lower  float64
	Upper  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("deconv: peak %q: %s", e.Peak, e.Reason)
	}
	return fmt.Sprintf("deconv: peak %q parameter %s = %g with bounds [%g, %g]: %s",
		e.Peak, e.Param, e.Value, e.Lower, e.Upper, e.Reason)
}

// Is reports ErrConfiguration as a match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// FitConvergenceError reports why the optimizer stopped without converging.
type FitConvergenceError struct {
	Status      Status
	Iterations  int
	Evaluations int
	Err         error
}

func (e *FitConvergenceError) Error() string {
	msg := fmt.Sprintf("deconv: fit did not converge: %s after %d iterations (%d evaluations)",
		e.Status, e.Iterations, e.Evaluations)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying optimizer error, if any.
func (e *FitConvergenceError) Unwrap() error { return e.Err }

// Is reports ErrFitConvergence as a match.
func (e *FitConvergenceError) Is(target error) bool { return target == ErrFitConvergence }
