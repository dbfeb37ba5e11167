package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrDataLoad marks failures to read or parse an input spectrum.
	ErrDataLoad = errors.New("spectrum: data load failed")

	// ErrInvalidRange marks a degenerate data or exclusion range.
	ErrInvalidRange = errors.New("spectrum: invalid range")

	// ErrEmpty is returned when a spectrum has no points.
	ErrEmpty = errors.New("spectrum: empty spectrum")

	// ErrLengthMismatch is returned when axis and signal differ in length.
	ErrLengthMismatch = errors.New("spectrum: axis and signal must have same length")

	// ErrNotIncreasing is returned when the axis is not strictly increasing.
	ErrNotIncreasing = errors.New("spectrum: axis must be strictly increasing")

	// ErrNoBaselinePoints is returned when no points lie outside the
	// excluded peak region.
	ErrNoBaselinePoints = errors.New("spectrum: no points outside excluded range")

	// ErrInvalidThreshold is returned for a spike threshold that is not > 0.
	ErrInvalidThreshold = errors.New("spectrum: spike threshold must be > 0")

	// ErrInvalidSigma is returned for a negative or non-finite smoothing width.
	ErrInvalidSigma = errors.New("spectrum: smoothing sigma must be >= 0")
)

// DataLoadError describes a spectrum file that could not be loaded.
// Line is the 1-based line number of a malformed row, or 0.
type DataLoadError struct {
	Path string
	Line int
	Err  error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("spectrum: load %s: line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("spectrum: load %s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *DataLoadError) Unwrap() error { return e.Err }

// Is reports ErrDataLoad as a match.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// InvalidRangeError describes a range that is empty after clamping to the
// data, or whose bounds are out of order.
type InvalidRangeError struct {
	Low, High float64
	Reason    string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("spectrum: invalid range [%g, %g]: %s", e.Low, e.High, e.Reason)
}

// Is reports ErrInvalidRange as a match.
func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }
