package deconv

import (
	"math"

	"github.com/cwbudde/algo-raman/dsp/core"
)

type boundKind int

const (
	boundNone boundKind = iota
	boundLower
	boundUpper
	boundBoth
	boundFixed
)

// transform maps an unconstrained internal variable u to a parameter p that
// always satisfies lo <= p <= hi:
//
//	both bounds:  p = lo + (hi-lo) (sin u + 1) / 2
//	lower only:   p = lo - 1 + sqrt(u^2 + 1)
//	upper only:   p = hi + 1 - sqrt(u^2 + 1)
//	lo == hi:     p = lo
type transform struct {
	kind   boundKind
	lo, hi float64
}

func newTransform(lo, hi float64) transform {
	loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
	switch {
	case lo == hi:
		return transform{kind: boundFixed, lo: lo, hi: hi}
	case loInf && hiInf:
		return transform{kind: boundNone, lo: lo, hi: hi}
	case hiInf:
		return transform{kind: boundLower, lo: lo, hi: hi}
	case loInf:
		return transform{kind: boundUpper, lo: lo, hi: hi}
	default:
		return transform{kind: boundBoth, lo: lo, hi: hi}
	}
}

// edgeNudge moves a start value sitting on a bound inside, where every map
// has zero slope. For two-sided bounds it is a fraction of the range, for
// one-sided bounds a fraction of max(1, |bound|).
const edgeNudge = 1e-3

func oneSidedNudge(bound float64) float64 {
	return edgeNudge * math.Max(1, math.Abs(bound))
}

// internal returns u for a feasible parameter p.
func (t transform) internal(p float64) float64 {
	switch t.kind {
	case boundBoth:
		span := t.hi - t.lo
		p = core.Clamp(p, t.lo+edgeNudge*span, t.hi-edgeNudge*span)
		return math.Asin(2*(p-t.lo)/span - 1)
	case boundLower:
		d := math.Max(p-t.lo, oneSidedNudge(t.lo)) + 1
		return math.Sqrt(d*d - 1)
	case boundUpper:
		d := math.Max(t.hi-p, oneSidedNudge(t.hi)) + 1
		return math.Sqrt(d*d - 1)
	case boundFixed:
		return 0
	default:
		return p
	}
}

// external returns p(u).
func (t transform) external(u float64) float64 {
	switch t.kind {
	case boundBoth:
		p := t.lo + (t.hi-t.lo)*(math.Sin(u)+1)/2
		return core.Clamp(p, t.lo, t.hi)
	case boundLower:
		return t.lo - 1 + math.Sqrt(u*u+1)
	case boundUpper:
		return t.hi + 1 - math.Sqrt(u*u+1)
	case boundFixed:
		return t.lo
	default:
		return u
	}
}

// slope returns dp/du.
func (t transform) slope(u float64) float64 {
	switch t.kind {
	case boundBoth:
		return (t.hi - t.lo) * math.Cos(u) / 2
	case boundLower:
		return u / math.Sqrt(u*u+1)
	case boundUpper:
		return -u / math.Sqrt(u*u+1)
	case boundFixed:
		return 0
	default:
		return 1
	}
}
