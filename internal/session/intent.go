package session

import "fmt"

// Intent is a user decision that drives the session.
type Intent interface {
	Name() string
}

// RefitBaseline refits the baseline with a new polynomial degree.
type RefitBaseline struct{ Degree int }

// AdjustSpikes reruns spike detection with a new threshold.
type AdjustSpikes struct{ Threshold float64 }

// Proceed leaves the review stage for peak fitting.
type Proceed struct{}

// Fit runs the peak fit. RemoveSpikes deletes flagged points first;
// PAHBand adds the PAH band row of the parameter table.
type Fit struct {
	RemoveSpikes bool
	PAHBand      bool
}

// Save exports the results into Dir.
type Save struct{ Dir string }

// Quit ends the session without further work.
type Quit struct{}

func (i RefitBaseline) Name() string { return fmt.Sprintf("refit-baseline(degree=%d)", i.Degree) }

func (i AdjustSpikes) Name() string { return fmt.Sprintf("adjust-spikes(threshold=%g)", i.Threshold) }

func (Proceed) Name() string { return "proceed" }

func (i Fit) Name() string {
	return fmt.Sprintf("fit(remove-spikes=%t, pah=%t)", i.RemoveSpikes, i.PAHBand)
}

func (i Save) Name() string { return fmt.Sprintf("save(%s)", i.Dir) }

func (Quit) Name() string { return "quit" }
