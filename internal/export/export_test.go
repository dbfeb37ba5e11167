package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/dsp/peak"
	"github.com/cwbudde/algo-raman/internal/testutil"
	"github.com/cwbudde/algo-raman/spectrum"
)

func newSpectrum(t *testing.T) *spectrum.Spectrum {
	t.Helper()
	axis := testutil.Axis(1000, 2000, 2)
	signal := testutil.Sum(testutil.Line(axis, 0.01, 2), testutil.Gaussian(axis, 10, 8, 1500))
	s, err := spectrum.New(axis, signal)
	require.NoError(t, err)
	require.NoError(t, s.FitBaseline(1, spectrum.Range{Low: 1400, High: 1600}))
	return s
}

func newModel(t *testing.T, opts ...deconv.Option) *deconv.Model {
	t.Helper()
	m, err := deconv.Assemble([]deconv.PeakSpec{{
		Name:  "G",
		Shape: peak.Gaussian,
		Init:  peak.Params{Intensity: 9, Width: 9, Center: 1497},
		Lower: peak.Params{Intensity: 0, Width: 1, Center: 1450},
		Upper: peak.Params{Intensity: 50, Width: 40, Center: 1550},
	}}, opts...)
	require.NoError(t, err)
	return m
}

func fittedRun(t *testing.T) Run {
	t.Helper()
	s := newSpectrum(t)
	m := newModel(t)
	require.NoError(t, m.Fit(s.Corrected(), s.Axis()))
	return Run{Spectrum: s, Model: m, Options: Options{RunID: "run-1", Source: "sample.txt", FontSize: 18}}
}

func failedRun(t *testing.T) Run {
	t.Helper()
	s := newSpectrum(t)
	m := newModel(t, deconv.WithMaxIterations(1))
	require.ErrorIs(t, m.Fit(s.Corrected(), s.Axis()), deconv.ErrFitConvergence)
	return Run{Spectrum: s, Model: m, Options: Options{Source: "sample.txt"}}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVFitted(t *testing.T) {
	t.Parallel()

	run := fittedRun(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, []string{"Raman shift", "Raw data", "Baseline", "Intensity", "G", "cumulative"}, records[0])
	assert.Len(t, records, run.Spectrum.Len()+1)
	assert.Equal(t, "1000", records[1][0])
}

func TestWriteCSVFailedOmitsPeaks(t *testing.T) {
	t.Parallel()

	run := failedRun(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, []string{"Raman shift", "Raw data", "Baseline", "Intensity"}, records[0])
	assert.Len(t, records, run.Spectrum.Len()+1)
}

func TestWriteCSVMismatch(t *testing.T) {
	t.Parallel()

	run := fittedRun(t)
	_, err := run.Spectrum.ClipToRange(1200, 1800)
	require.NoError(t, err)
	require.ErrorIs(t, WriteCSV(&bytes.Buffer{}, run), ErrMismatch)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, fittedRun(t)))
	out := buf.String()
	for _, want := range []string{"Run: run-1", "Source: sample.txt", "Baseline: degree 1", "converged", "Gaussian"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, WriteReport(&buf, failedRun(t)))
	assert.Contains(t, buf.String(), "did not converge")
	assert.Contains(t, buf.String(), "Peak results: absent")

	buf.Reset()
	require.NoError(t, WriteReport(&buf, Run{Spectrum: newSpectrum(t)}))
	assert.Contains(t, buf.String(), "Fit: not run")
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, fittedRun(t)))
	out := buf.String()
	assert.Contains(t, out, "# Raman deconvolution report")
	assert.Contains(t, out, "## Peaks")
	assert.Contains(t, out, "mermaid")

	buf.Reset()
	require.NoError(t, WriteMarkdown(&buf, failedRun(t)))
	assert.Contains(t, buf.String(), "did not converge")
	assert.NotContains(t, buf.String(), "## Peaks")
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "sample")
	paths, err := Save(dir, fittedRun(t))
	require.NoError(t, err)

	for _, name := range []string{DataFile, ReportFile, MarkdownFile, BaselineChart, ResultChart, ResultBaselineChart} {
		path := filepath.Join(dir, name)
		assert.Contains(t, paths, path)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	html, err := os.ReadFile(filepath.Join(dir, ResultChart))
	require.NoError(t, err)
	assert.Contains(t, string(html), "cumulative")
}

func TestSaveFailedRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := Save(dir, failedRun(t))
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	_, err = os.Stat(filepath.Join(dir, ResultChart))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDir(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"sample.txt":           "sample",
		"data/run1/sample.txt": "data/run1/sample",
		"spectrum":             "spectrum.out",
		"archive.tar.gz":       "archive.tar",
	}
	for in, want := range tests {
		assert.Equal(t, filepath.FromSlash(want), SaveDir(filepath.FromSlash(in)), in)
	}
}

func TestBaselineChartMarksSpikes(t *testing.T) {
	t.Parallel()

	axis := testutil.Axis(0, 99, 1)
	signal := testutil.DC(100, len(axis))
	signal[50] = 200
	s, err := spectrum.New(axis, signal)
	require.NoError(t, err)
	_, err = s.DetectSpikes(0.3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewBaselineChart(Run{Spectrum: s}).Render(&buf))
	assert.True(t, strings.Contains(buf.String(), "Spikes"))
}

func TestBaselineChartMarksExcludedRegion(t *testing.T) {
	t.Parallel()

	s := newSpectrum(t)
	var buf bytes.Buffer
	require.NoError(t, NewBaselineChart(Run{Spectrum: s}).Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "markLine")
	assert.Contains(t, html, MarkExcludedLow)
	assert.Contains(t, html, MarkExcludedHigh)
}

func TestBaselineChartWithoutBaselineHasNoMarks(t *testing.T) {
	t.Parallel()

	s, err := spectrum.New(testutil.Axis(0, 9, 1), testutil.DC(1, 10))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, NewBaselineChart(Run{Spectrum: s}).Render(&buf))
	assert.NotContains(t, buf.String(), MarkExcludedLow)
}

func TestNearestLabel(t *testing.T) {
	t.Parallel()

	axis := []float64{1000, 1002.5, 1005}
	assert.Equal(t, "1002.5", nearestLabel(axis, 1003))
	assert.Equal(t, "1000", nearestLabel(axis, 900))
	assert.Equal(t, "1005", nearestLabel(axis, 2000))
}
