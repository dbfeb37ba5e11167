// Package paramtable reads the initial-parameter table: one row per
// candidate peak with its label, shape code, initial values and bounds.
package paramtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/dsp/peak"
)

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("paramtable: missing column")

	// ErrMalformed is returned for unparsable cells or ragged rows.
	ErrMalformed = errors.New("paramtable: malformed table")

	// ErrTooFewRows is returned when more rows are requested than exist.
	ErrTooFewRows = errors.New("paramtable: not enough rows")
)

// Columns lists the required columns.
var Columns = []string{
	"labels", "shape",
	"intens", "intens_min", "intens_max",
	"width", "width_min", "width_max",
	"freq", "freq_min", "freq_max",
	"voigt", "voigt_min", "voigt_max",
}

// Row is one candidate peak.
type Row struct {
	Label string
	Shape peak.Shape
	Init  peak.Params
	Lower peak.Params
	Upper peak.Params
}

// Table is an ordered list of rows.
type Table struct {
	Rows []Row
}

// Load reads a table from a CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided table path is intentional
	if err != nil {
		return nil, fmt.Errorf("paramtable: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read reads a CSV table with a header row. Column order is free and extra
// columns are ignored.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	t := &Table{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		row, err := parseRow(rec, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseRow(rec []string, index map[string]int) (Row, error) {
	cell := func(name string) string { return strings.TrimSpace(rec[index[name]]) }
	num := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(cell(name), 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return v, nil
	}
	triple := func(prefix string) (init, lo, hi float64, err error) {
		if init, err = num(prefix); err != nil {
			return
		}
		if lo, err = num(prefix + "_min"); err != nil {
			return
		}
		hi, err = num(prefix + "_max")
		return
	}

	row := Row{Label: cell("labels"), Shape: peak.ParseShape(cell("shape"))}
	var err error
	if row.Init.Intensity, row.Lower.Intensity, row.Upper.Intensity, err = triple("intens"); err != nil {
		return Row{}, err
	}
	if row.Init.Width, row.Lower.Width, row.Upper.Width, err = triple("width"); err != nil {
		return Row{}, err
	}
	if row.Init.Center, row.Lower.Center, row.Upper.Center, err = triple("freq"); err != nil {
		return Row{}, err
	}
	// Voigt columns may be empty for other shapes.
	if row.Shape == peak.Voigt {
		if row.Init.Mix, row.Lower.Mix, row.Upper.Mix, err = triple("voigt"); err != nil {
			return Row{}, err
		}
	}
	return row, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Specs returns peak specs for the first n rows, in table order.
func (t *Table) Specs(n int) ([]deconv.PeakSpec, error) {
	if n <= 0 || n > len(t.Rows) {
		return nil, fmt.Errorf("%w: want %d, table has %d", ErrTooFewRows, n, len(t.Rows))
	}
	specs := make([]deconv.PeakSpec, n)
	for i, r := range t.Rows[:n] {
		specs[i] = deconv.PeakSpec{
			Name:  r.Label,
			Shape: r.Shape,
			Init:  r.Init,
			Lower: r.Lower,
			Upper: r.Upper,
		}
	}
	return specs, nil
}
