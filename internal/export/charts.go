package export

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type chartFile struct {
	name   string
	render func(io.Writer) error
}

// WriteCharts renders the baseline chart and, for a fitted model, the
// result charts with and without baseline into dir. It returns the written
// paths.
func WriteCharts(dir string, run Run) ([]string, error) {
	fitted, err := run.fitted()
	if err != nil {
		return nil, err
	}

	renders := []chartFile{
		{BaselineChart, func(w io.Writer) error { return NewBaselineChart(run).Render(w) }},
	}
	if fitted {
		renders = append(renders,
			chartFile{ResultChart, func(w io.Writer) error { return renderResult(w, run, false) }},
			chartFile{ResultBaselineChart, func(w io.Writer) error { return renderResult(w, run, true) }},
		)
	}

	var paths []string
	for _, r := range renders {
		path := filepath.Join(dir, r.name)
		if err := writeFile(path, func(f *os.File) error { return r.render(f) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderResult(w io.Writer, run Run, withBaseline bool) error {
	line, err := NewResultChart(run, withBaseline)
	if err != nil {
		return err
	}
	return line.Render(w)
}

func newLine(title string, o Options, axis []float64) *charts.Line {
	t := opts.Title{Title: title, Subtitle: o.Source}
	if o.FontSize > 0 {
		t.TitleStyle = &opts.TextStyle{FontSize: o.FontSize}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(t),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Raman shift (1/cm)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity (a.u.)"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	labels := make([]string, len(axis))
	for i, x := range axis {
		labels[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	line.SetXAxis(labels)
	return line
}

// nearestLabel returns the category label of the axis point closest to x.
func nearestLabel(axis []float64, x float64) string {
	best := 0
	for i, v := range axis {
		if math.Abs(v-x) < math.Abs(axis[best]-x) {
			best = i
		}
	}
	return strconv.FormatFloat(axis[best], 'f', -1, 64)
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

// Names of the vertical lines bounding the region excluded from the
// baseline fit.
const (
	MarkExcludedLow  = "Excluded from"
	MarkExcludedHigh = "Excluded to"
)

// NewBaselineChart plots the raw signal with its baseline and marks the
// detected spikes. After a baseline fit the excluded peak region is marked
// by two vertical lines.
func NewBaselineChart(run Run) *charts.Line {
	s := run.Spectrum
	axis := s.Axis()
	line := newLine("Baseline", run.Options, axis)
	if s.HasBaseline() && len(axis) > 0 {
		r := s.ExcludedRange()
		line.AddSeries("Raw data", lineData(s.Signal()),
			charts.WithMarkLineNameXAxisItemOpts(
				opts.MarkLineNameXAxisItem{Name: MarkExcludedLow, XAxis: nearestLabel(axis, r.Low)},
				opts.MarkLineNameXAxisItem{Name: MarkExcludedHigh, XAxis: nearestLabel(axis, r.High)},
			),
		)
		line.AddSeries("Baseline", lineData(s.Baseline()))
	} else {
		line.AddSeries("Raw data", lineData(s.Signal()))
	}

	if spikes := s.Spikes(); len(spikes) > 0 {
		axis, signal := s.Axis(), s.Signal()
		data := make([]opts.ScatterData, len(spikes))
		for i, k := range spikes {
			data[i] = opts.ScatterData{
				Value:      []interface{}{strconv.FormatFloat(axis[k], 'f', -1, 64), signal[k]},
				SymbolSize: 8,
			}
		}
		scatter := charts.NewScatter()
		scatter.AddSeries("Spikes", data)
		line.Overlap(scatter)
	}
	return line
}

// NewResultChart plots the corrected signal with every fitted peak and the
// cumulative curve. With withBaseline the baseline is added to every curve
// and plotted against the raw signal.
func NewResultChart(run Run, withBaseline bool) (*charts.Line, error) {
	s := run.Spectrum
	curves, err := run.Model.Curves()
	if err != nil {
		return nil, err
	}
	cum, err := run.Model.Cumulative()
	if err != nil {
		return nil, err
	}

	title, data := "Result", s.Corrected()
	shift := func(v []float64) []float64 { return v }
	if withBaseline {
		title, data = "Result with baseline", s.Signal()
		base := s.Baseline()
		shift = func(v []float64) []float64 {
			out := make([]float64, len(v))
			for i := range v {
				out[i] = v[i] + base[i]
			}
			return out
		}
	}

	line := newLine(title, run.Options, s.Axis())
	line.AddSeries("Data", lineData(data))
	for i, name := range run.Model.Names() {
		line.AddSeries(name, lineData(shift(curves[i])))
	}
	line.AddSeries(ColumnCumulative, lineData(shift(cum)))
	if withBaseline {
		line.AddSeries("Baseline", lineData(s.Baseline()))
	}
	return line, nil
}
