package config

import "errors"

// Configuration errors. Validate wraps one of these with the offending
// value so callers can use errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidDegree is returned for a negative baseline degree.
	ErrInvalidDegree = errors.New("invalid baseline degree: must be >= 0")

	// ErrInvalidThreshold is returned for a non-positive spike threshold.
	ErrInvalidThreshold = errors.New("invalid spike threshold: must be positive")

	// ErrInvalidRange is returned when a range has low >= high.
	ErrInvalidRange = errors.New("invalid range: low must be below high")

	// ErrInvalidPeakCount is returned when the number of peaks is not positive.
	ErrInvalidPeakCount = errors.New("invalid peak count: must be positive")

	// ErrInvalidSmoothing is returned for a negative smoothing sigma.
	ErrInvalidSmoothing = errors.New("invalid smoothing: must be non-negative")

	// ErrInvalidSolver is returned for non-positive solver limits or
	// tolerances, or an unknown method.
	ErrInvalidSolver = errors.New("invalid solver settings")
)
