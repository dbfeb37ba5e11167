package deconv

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Report returns the textual summary written by [Model.WriteReport].
func (m *Model) Report() string {
	var b strings.Builder
	// strings.Builder never fails.
	_ = m.WriteReport(&b)
	return b.String()
}

// WriteReport writes a summary of the model to w: the solver outcome and,
// for a fitted model, one row per peak with its parameters, area, height,
// FWHM and validity. A failed or unfit model is reported without peak
// results.
func (m *Model) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Peaks: %d (%s)\n", len(m.peaks), strings.Join(m.Names(), ", ")); err != nil {
		return err
	}

	switch m.state {
	case Unfit, Fitting:
		_, err := fmt.Fprintf(w, "Fit: not run\n")
		return err
	case Failed:
		_, err := fmt.Fprintf(w, "Fit: did not converge\nError: %v\nPeak results: absent\n", m.runErr)
		return err
	}

	stats, err := m.Stats()
	if err != nil {
		return err
	}
	results, err := m.Results()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Fit: converged (%s) after %d iterations, %d evaluations\nRSS: %.6g\nR2: %.6f\n\n",
		stats.Status, stats.Iterations, stats.Evaluations, stats.RSS, stats.R2); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tShape\tIntensity\tWidth\tCenter\tMix\tArea\tHeight\tFWHM\tStatus\n")
	fmt.Fprintf(tw, "----\t-----\t---------\t-----\t------\t---\t----\t------\t----\t------\n")
	for _, r := range results {
		mix := "-"
		if r.Shape.Arity() == 4 {
			mix = fmt.Sprintf("%.4f", r.Params.Mix)
		}
		status := "ok"
		if !r.Valid {
			status = "INVALID"
		}
		if len(r.Flags) > 0 {
			status += " (" + strings.Join(r.Flags, "; ") + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t%s\t%.4f\t%.4f\t%.4f\t%s\n",
			r.Name, r.Shape, r.Params.Intensity, r.Params.Width, r.Params.Center,
			mix, r.Area, r.Height, r.FWHM, status)
	}
	return tw.Flush()
}
