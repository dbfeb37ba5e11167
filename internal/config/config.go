package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/spectrum"
)

// Default values.
const (
	DefaultDegree     = 3
	DefaultThreshold  = 0.2
	DefaultFontSize   = 18
	DefaultParameters = "config/initialData.csv"

	// DefaultPeaks is the number of table rows fitted without the PAH band.
	DefaultPeaks = 5
	// PAHPeaks is the number of table rows fitted with the PAH band.
	PAHPeaks = 6
)

// Config is the run configuration.
type Config struct {
	// Degree is the baseline polynomial degree.
	Degree int `yaml:"degree" toml:"degree"`
	// Threshold is the relative-change spike threshold.
	Threshold float64 `yaml:"threshold" toml:"threshold"`
	// FontSize is used for chart titles only.
	FontSize int `yaml:"font_size" toml:"font_size"`

	// Limits is the axis range the spectrum is clipped to.
	Limits spectrum.Range `yaml:"limits" toml:"limits"`
	// Peak is the axis range excluded from the baseline fit.
	Peak spectrum.Range `yaml:"peak" toml:"peak"`

	// Parameters is the path of the initial-parameter table.
	Parameters string `yaml:"parameters" toml:"parameters"`
	// Peaks is the number of table rows used when the PAH band is not
	// fitted.
	Peaks int `yaml:"peaks" toml:"peaks"`
	// Smoothing is the Gaussian smoothing sigma in samples; 0 disables it.
	Smoothing float64 `yaml:"smoothing" toml:"smoothing"`

	Solver Solver `yaml:"solver" toml:"solver"`
}

// Solver fixes the optimizer limits and tolerances so that runs are
// reproducible.
type Solver struct {
	Method         string        `yaml:"method" toml:"method"`
	MaxIterations  int           `yaml:"max_iterations" toml:"max_iterations"`
	MaxEvaluations int           `yaml:"max_evaluations" toml:"max_evaluations"`
	Runtime        time.Duration `yaml:"runtime" toml:"runtime"`
	Tau            float64       `yaml:"tau" toml:"tau"`
	GradientTol    float64       `yaml:"gradient_tol" toml:"gradient_tol"`
	StepTol        float64       `yaml:"step_tol" toml:"step_tol"`
	FunctionTol    float64       `yaml:"function_tol" toml:"function_tol"`
}

// Default returns the built-in configuration.
func Default() *Config {
	s := deconv.DefaultSettings()
	return &Config{
		Degree:     DefaultDegree,
		Threshold:  DefaultThreshold,
		FontSize:   DefaultFontSize,
		Limits:     spectrum.Range{Low: 650, High: 2800},
		Peak:       spectrum.Range{Low: 900, High: 1800},
		Parameters: DefaultParameters,
		Peaks:      DefaultPeaks,
		Solver: Solver{
			Method:         s.Method.String(),
			MaxIterations:  s.MaxIterations,
			MaxEvaluations: s.MaxEvaluations,
			Runtime:        s.Runtime,
			Tau:            s.Tau,
			GradientTol:    s.GradientTol,
			StepTol:        s.StepTol,
			FunctionTol:    s.FunctionTol,
		},
	}
}

// PeakCount returns the number of table rows to fit.
func (c *Config) PeakCount(pah bool) int {
	if pah {
		return c.Peaks + 1
	}
	return c.Peaks
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Degree < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidDegree, c.Degree))
	}
	if !(c.Threshold > 0) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrInvalidThreshold, c.Threshold))
	}
	if !c.Limits.Valid() {
		errs = append(errs, fmt.Errorf("%w: limits %s", ErrInvalidRange, c.Limits))
	}
	if !c.Peak.Valid() {
		errs = append(errs, fmt.Errorf("%w: peak %s", ErrInvalidRange, c.Peak))
	}
	if c.Peaks <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPeakCount, c.Peaks))
	}
	if c.Smoothing < 0 {
		errs = append(errs, fmt.Errorf("%w: %g", ErrInvalidSmoothing, c.Smoothing))
	}
	if err := c.Solver.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s Solver) validate() error {
	if _, ok := deconv.ParseMethod(s.Method); !ok {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidSolver, s.Method)
	}
	if s.MaxIterations <= 0 || s.MaxEvaluations <= 0 {
		return fmt.Errorf("%w: iteration and evaluation caps must be positive", ErrInvalidSolver)
	}
	if s.Runtime < 0 {
		return fmt.Errorf("%w: negative runtime", ErrInvalidSolver)
	}
	if !(s.Tau > 0) || !(s.GradientTol > 0) || !(s.StepTol > 0) || !(s.FunctionTol > 0) {
		return fmt.Errorf("%w: tolerances must be positive", ErrInvalidSolver)
	}
	return nil
}

// Settings converts the solver section to optimizer settings.
func (s Solver) Settings() deconv.Settings {
	method, _ := deconv.ParseMethod(s.Method)
	return deconv.Settings{
		Method:         method,
		MaxIterations:  s.MaxIterations,
		MaxEvaluations: s.MaxEvaluations,
		Runtime:        s.Runtime,
		Tau:            s.Tau,
		GradientTol:    s.GradientTol,
		StepTol:        s.StepTol,
		FunctionTol:    s.FunctionTol,
	}
}

// Options returns the solver section as a deconv option list.
func (s Solver) Options() []deconv.Option {
	return []deconv.Option{deconv.WithSettings(s.Settings())}
}
