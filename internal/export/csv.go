package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Column names of the data table.
const (
	ColumnAxis       = "Raman shift"
	ColumnRaw        = "Raw data"
	ColumnBaseline   = "Baseline"
	ColumnCorrected  = "Intensity"
	ColumnCumulative = "cumulative"
)

// WriteCSV writes one row per axis point with the raw signal, baseline and
// corrected signal, followed by one column per fitted peak and the
// cumulative curve when the model is fitted.
func WriteCSV(w io.Writer, run Run) error {
	s := run.Spectrum
	fitted, err := run.fitted()
	if err != nil {
		return err
	}

	header := []string{ColumnAxis, ColumnRaw, ColumnBaseline, ColumnCorrected}
	columns := [][]float64{s.Axis(), s.Signal(), s.Baseline(), s.Corrected()}
	if fitted {
		curves, err := run.Model.Curves()
		if err != nil {
			return err
		}
		cum, err := run.Model.Cumulative()
		if err != nil {
			return err
		}
		header = append(header, run.Model.Names()...)
		header = append(header, ColumnCumulative)
		columns = append(columns, curves...)
		columns = append(columns, cum)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for i := range s.Len() {
		for j, col := range columns {
			record[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
