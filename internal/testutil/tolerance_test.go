package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqual(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-12, 2}, 1e-9)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1, 1e300})
}

func TestRelErr(t *testing.T) {
	if err := RelErr(10.05, 10, 0.01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RelErr(10.2, 10, 0.01); err == nil {
		t.Fatal("expected error for 2% deviation")
	}
	if err := RelErr(0.001, 0, 0.01); err != nil {
		t.Fatalf("zero target should use absolute tolerance: %v", err)
	}
	if err := RelErr(math.NaN(), 1, 0.5); err == nil {
		t.Fatal("NaN must never pass")
	}
}
