package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-raman/internal/testutil"
)

func TestSmoothPreservesConstant(t *testing.T) {
	axis := testutil.Axis(0, 299, 1)
	s := newTest(t, axis, testutil.DC(42, len(axis)))

	if err := s.Smooth(3); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Signal(), testutil.DC(42, len(axis)), 1e-9)
	requireAligned(t, s)
}

func TestSmoothPreservesLine(t *testing.T) {
	axis := testutil.Axis(0, 199, 1)
	line := testutil.Line(axis, 0.5, 10)
	s := newTest(t, axis, line)

	if err := s.Smooth(2); err != nil {
		t.Fatal(err)
	}

	// A symmetric kernel leaves a line unchanged away from the mirrored edges.
	for i := 20; i < 180; i++ {
		if math.Abs(s.Signal()[i]-line[i]) > 1e-9 {
			t.Fatalf("signal[%d] = %v, want %v", i, s.Signal()[i], line[i])
		}
	}
}

func TestSmoothAttenuatesSpike(t *testing.T) {
	axis := testutil.Axis(0, 99, 1)
	signal := testutil.DC(1, len(axis))
	signal[50] = 101
	s := newTest(t, axis, signal)

	if err := s.Smooth(2); err != nil {
		t.Fatal(err)
	}
	if s.Signal()[50] >= 50 {
		t.Fatalf("spike = %v, want attenuated", s.Signal()[50])
	}

	sum := 0.0
	for _, v := range s.Signal() {
		sum += v
	}
	if math.Abs(sum-(99+101)) > 1e-6 {
		t.Fatalf("sum = %v, smoothing away from edges must preserve area", sum)
	}
}

func TestSmoothRefitsBaseline(t *testing.T) {
	axis := testutil.Axis(1000, 2000, 1)
	noise := testutil.DeterministicNoise(3, 0.2, len(axis))
	signal := testutil.Sum(testutil.Line(axis, 0.01, 2), testutil.Gaussian(axis, 10, 5, 1500), noise)
	s := newTest(t, axis, signal)

	if err := s.FitBaseline(1, Range{Low: 1400, High: 1600}); err != nil {
		t.Fatal(err)
	}
	if err := s.Smooth(1.5); err != nil {
		t.Fatal(err)
	}
	requireCorrected(t, s)
	if s.BaselineDegree() != 1 || s.ExcludedRange() != (Range{Low: 1400, High: 1600}) {
		t.Fatal("smoothing must keep baseline settings")
	}
}

func TestSmoothValidation(t *testing.T) {
	s := newTest(t, []float64{1, 2, 3}, []float64{1, 5, 1})
	for _, sigma := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := s.Smooth(sigma); !errors.Is(err, ErrInvalidSigma) {
			t.Fatalf("sigma %v: err = %v, want ErrInvalidSigma", sigma, err)
		}
	}
	if err := s.Smooth(0); err != nil {
		t.Fatal(err)
	}
	if s.Signal()[1] != 5 {
		t.Fatal("sigma 0 must not change the signal")
	}
}

func TestMirror(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 5, 0}, {4, 5, 4}, {-1, 5, 1}, {-2, 5, 2}, {5, 5, 3}, {6, 5, 2}, {3, 1, 0},
	}
	for _, tt := range tests {
		if got := mirror(tt.i, tt.n); got != tt.want {
			t.Errorf("mirror(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
