package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/cwbudde/algo-raman/deconv"
)

// WriteMarkdown writes the report as Markdown: a run table, a peak table and
// a pie chart of the peak area shares.
func WriteMarkdown(w io.Writer, run Run) error {
	fitted, err := run.fitted()
	if err != nil {
		return err
	}
	s := run.Spectrum
	o := run.Options

	md := markdown.NewMarkdown(w)
	md.H1("Raman deconvolution report")
	md.PlainText("")

	rows := [][]string{}
	if o.RunID != "" {
		rows = append(rows, []string{"Run", "`" + o.RunID + "`"})
	}
	if o.Source != "" {
		rows = append(rows, []string{"Source", "`" + o.Source + "`"})
	}
	rows = append(rows,
		[]string{"Points", strconv.Itoa(s.Len())},
		[]string{"Range", s.Bounds().String()},
		[]string{"Spikes removed", strconv.Itoa(o.SpikesRemoved)},
	)
	if s.HasBaseline() {
		rows = append(rows,
			[]string{"Baseline degree", strconv.Itoa(s.BaselineDegree())},
			[]string{"Excluded range", s.ExcludedRange().String()},
			[]string{"Baseline coefficients", formatCoefficients(s.BaselineCoefficients())},
		)
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	if !fitted {
		writeAbsent(md, run.Model)
		return md.Build()
	}

	stats, err := run.Model.Stats()
	if err != nil {
		return err
	}
	results, err := run.Model.Results()
	if err != nil {
		return err
	}

	md.H2("Fit")
	md.PlainText("")
	md.PlainTextf("Converged (%s) after %d iterations, RSS %.6g, R² %.6f.",
		stats.Status, stats.Iterations, stats.RSS, stats.R2)
	md.PlainText("")

	md.H2("Peaks")
	md.PlainText("")
	peakRows := make([][]string, len(results))
	invalid := 0
	for i, r := range results {
		status := "ok"
		if !r.Valid {
			status = "invalid"
			invalid++
		}
		for _, f := range r.Flags {
			status += ", " + f
		}
		mix := "-"
		if r.Shape.Arity() == 4 {
			mix = fmt.Sprintf("%.4f", r.Params.Mix)
		}
		peakRows[i] = []string{
			r.Name, r.Shape.String(),
			fmt.Sprintf("%.4f", r.Params.Intensity),
			fmt.Sprintf("%.4f", r.Params.Width),
			fmt.Sprintf("%.2f", r.Params.Center),
			mix,
			fmt.Sprintf("%.4f", r.Area),
			fmt.Sprintf("%.4f", r.Height),
			fmt.Sprintf("%.4f", r.FWHM),
			status,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Peak", "Shape", "Intensity", "Width", "Center", "Mix", "Area", "Height", "FWHM", "Status"},
		Rows:   peakRows,
	})
	md.PlainText("")

	if invalid > 0 {
		md.Warningf("%d peak(s) are degenerate and must not be interpreted.", invalid)
		md.PlainText("")
	}

	writeAreaChart(md, results)
	return md.Build()
}

func writeAbsent(md *markdown.Markdown, m *deconv.Model) {
	md.H2("Fit")
	md.PlainText("")
	switch {
	case m == nil || m.State() == deconv.Unfit:
		md.Note("The peak fit was not run. Peak results are absent.")
	default:
		md.Cautionf("The peak fit did not converge: %v. Peak results are absent.", m.Err())
	}
	md.PlainText("")
}

func writeAreaChart(md *markdown.Markdown, results []deconv.PeakResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Peak area share"),
		piechart.WithShowData(true),
	)
	n := 0
	for _, r := range results {
		if r.Valid && r.Area > 0 {
			chart.LabelAndFloatValue(r.Name, r.Area)
			n++
		}
	}
	if n == 0 {
		return
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
