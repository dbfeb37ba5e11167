package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireRelClose fails t if got deviates from want by more than rel
// relative to |want|.
func RequireRelClose(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if err := RelErr(got, want, rel); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

// RelErr returns an error when got deviates from want by more than rel
// relative to |want|. For want == 0 the tolerance is absolute.
func RelErr(got, want, rel float64) error {
	diff := math.Abs(got - want)
	scale := math.Abs(want)
	if scale == 0 {
		scale = 1
	}
	if math.IsNaN(got) || diff > rel*scale {
		return fmt.Errorf("got %v, want %v (relative error %.3g > %.3g)", got, want, diff/scale, rel)
	}
	return nil
}
