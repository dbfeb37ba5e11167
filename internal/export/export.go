package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/spectrum"
)

// File names inside a save directory.
const (
	DataFile            = "data.csv"
	ReportFile          = "report.txt"
	MarkdownFile        = "report.md"
	BaselineChart       = "baseline.html"
	ResultChart         = "result.html"
	ResultBaselineChart = "result+baseline.html"
)

// ErrMismatch is returned when the model was fitted on a different axis
// than the spectrum being exported.
var ErrMismatch = errors.New("export: model and spectrum axes differ")

// Options carries run metadata shown in reports and charts.
type Options struct {
	// RunID identifies the run in report headers.
	RunID string
	// Source is the input file name.
	Source string
	// FontSize is the chart title font size; 0 keeps the chart default.
	FontSize int
	// SpikesRemoved is the number of points deleted as spikes.
	SpikesRemoved int
}

// Run bundles what is exported. Model may be nil or unfitted.
type Run struct {
	Spectrum *spectrum.Spectrum
	Model    *deconv.Model
	Options  Options
}

// fitted reports whether the run has peak results aligned with the
// spectrum.
func (r Run) fitted() (bool, error) {
	if r.Model == nil || r.Model.State() != deconv.Fitted {
		return false, nil
	}
	axis, err := r.Model.Axis()
	if err != nil {
		return false, err
	}
	if len(axis) != r.Spectrum.Len() {
		return false, fmt.Errorf("%w: %d vs %d points", ErrMismatch, len(axis), r.Spectrum.Len())
	}
	return true, nil
}

// SaveDir returns the directory results for input are saved in: the input
// path without its extension. An input without extension gets ".out"
// appended instead.
func SaveDir(input string) string {
	ext := filepath.Ext(input)
	dir := strings.TrimSuffix(input, ext)
	if ext == "" || dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return input + ".out"
	}
	return dir
}

// Save writes every export into dir, creating it if needed, and returns
// the written paths.
func Save(dir string, run Run) ([]string, error) {
	if run.Spectrum == nil {
		return nil, errors.New("export: no spectrum")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	writers := []struct {
		name  string
		write func(f *os.File) error
	}{
		{DataFile, func(f *os.File) error { return WriteCSV(f, run) }},
		{ReportFile, func(f *os.File) error { return WriteReport(f, run) }},
		{MarkdownFile, func(f *os.File) error { return WriteMarkdown(f, run) }},
	}

	var paths []string
	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		if err := writeFile(path, w.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	charts, err := WriteCharts(dir, run)
	paths = append(paths, charts...)
	if err != nil {
		return paths, err
	}
	return paths, nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // path derived from the input file
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("export: %s: %w", filepath.Base(path), err)
	}
	return nil
}
