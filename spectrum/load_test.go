package spectrum

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func header() string {
	var b strings.Builder
	for i := range HeaderLines {
		fmt.Fprintf(&b, "#meta%d\tvalue with several fields %d\n", i, i)
	}
	return b.String()
}

func TestReadSkipsHeader(t *testing.T) {
	in := header() + "650\t10.5\n651 11\n\n652\t  12.25\n"

	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if s.Axis()[2] != 652 || s.Signal()[2] != 12.25 {
		t.Fatalf("last point = (%v, %v), want (652, 12.25)", s.Axis()[2], s.Signal()[2])
	}
	if len(s.Baseline()) != 3 || len(s.Corrected()) != 3 {
		t.Fatal("baseline and corrected must match axis length")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{name: "three columns", in: header() + "1 2\n3 4 5\n", line: 12},
		{name: "one column", in: header() + "1\n", line: 11},
		{name: "not a number", in: header() + "1 x\n", line: 11},
		{name: "header only", in: header(), line: 0},
		{name: "shorter than header", in: "a\nb\n", line: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, ErrDataLoad) {
				t.Fatalf("err = %v, want ErrDataLoad", err)
			}
			var dle *DataLoadError
			if !errors.As(err, &dle) {
				t.Fatalf("err = %T, want *DataLoadError", err)
			}
			if dle.Line != tt.line {
				t.Fatalf("line = %d, want %d", dle.Line, tt.line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := Load(path)
	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("err = %v, want ErrDataLoad", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want to wrap os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "missing.txt") {
		t.Fatalf("error %q should name the file", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	var b strings.Builder
	b.WriteString(header())
	for x := 650; x <= 660; x++ {
		fmt.Fprintf(&b, "%d\t%d\n", x, 2*x)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 11 || s.Signal()[0] != 1300 {
		t.Fatalf("unexpected spectrum: len=%d first=%v", s.Len(), s.Signal()[0])
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := New(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if _, err := New([]float64{1, 3, 2}, []float64{0, 0, 0}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
}

func TestNewReversesDescendingAxis(t *testing.T) {
	s, err := New([]float64{3, 2, 1}, []float64{30, 20, 10})
	if err != nil {
		t.Fatal(err)
	}
	if s.Axis()[0] != 1 || s.Signal()[0] != 10 || s.Signal()[2] != 30 {
		t.Fatalf("axis=%v signal=%v, want ascending pairs", s.Axis(), s.Signal())
	}
}
