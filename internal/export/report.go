package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport writes the plain-text report: run metadata, spectrum and
// baseline summary, then the model report.
func WriteReport(w io.Writer, run Run) error {
	if _, err := run.fitted(); err != nil {
		return err
	}
	s := run.Spectrum
	o := run.Options

	var b strings.Builder
	b.WriteString("Raman deconvolution report\n")
	if o.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", o.RunID)
	}
	if o.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", o.Source)
	}
	fmt.Fprintf(&b, "Points: %d over %s\n", s.Len(), s.Bounds())
	if s.HasBaseline() {
		fmt.Fprintf(&b, "Baseline: degree %d, excluded %s, coefficients %s\n",
			s.BaselineDegree(), s.ExcludedRange(), formatCoefficients(s.BaselineCoefficients()))
	} else {
		b.WriteString("Baseline: none\n")
	}
	fmt.Fprintf(&b, "Spikes: %d flagged, %d removed\n\n", len(s.Spikes()), o.SpikesRemoved)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if run.Model == nil {
		_, err := io.WriteString(w, "Fit: not run\nPeak results: absent\n")
		return err
	}
	return run.Model.WriteReport(w)
}

func formatCoefficients(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
