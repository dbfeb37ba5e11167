package spectrum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// HeaderLines is the number of metadata lines preceding the data table.
const HeaderLines = 10

// Load reads a spectrum from a two-column text file. The first HeaderLines
// lines are skipped unconditionally; the remaining non-blank lines must hold
// exactly two numeric columns separated by whitespace: axis and signal.
//
// All failures are reported as *DataLoadError (errors.Is ErrDataLoad).
func Load(path string) (*Spectrum, error) {
	f, err := os.Open(path) //nolint:gosec // user-selected input file
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	return read(f, path)
}

// Read parses a spectrum from r using the same format as [Load].
func Read(r io.Reader) (*Spectrum, error) {
	return read(r, "<reader>")
}

func read(r io.Reader, name string) (*Spectrum, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var axis, signal []float64
	line := 0
	for sc.Scan() {
		line++
		if line <= HeaderLines {
			continue
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &DataLoadError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("expected 2 columns, got %d", len(fields)),
			}
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Err: err}
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Err: err}
		}

		axis = append(axis, x)
		signal = append(signal, y)
	}
	if err := sc.Err(); err != nil {
		return nil, &DataLoadError{Path: name, Err: err}
	}

	s, err := New(axis, signal)
	if err != nil {
		return nil, &DataLoadError{Path: name, Err: err}
	}
	return s, nil
}
