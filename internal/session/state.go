package session

// State is a stage of the interactive workflow.
type State int

const (
	// Review is the baseline and spike review stage. RefitBaseline and
	// AdjustSpikes stay here; Proceed moves on.
	Review State = iota
	// Deconvolution waits for a Fit intent.
	Deconvolution
	// Fitted holds a converged fit waiting to be saved.
	Fitted
	// Failed holds a fit that did not converge. Saving exports the
	// baseline-stage results only.
	Failed
	// Done is terminal after a save.
	Done
	// Quitted is terminal after Quit.
	Quitted
)

// Terminal reports whether no further intent is accepted.
func (s State) Terminal() bool { return s == Done || s == Quitted }

func (s State) String() string {
	switch s {
	case Review:
		return "review"
	case Deconvolution:
		return "deconvolution"
	case Fitted:
		return "fitted"
	case Failed:
		return "failed"
	case Done:
		return "done"
	case Quitted:
		return "quit"
	default:
		return "unknown"
	}
}
