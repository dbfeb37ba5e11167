package peak

import "math"

var (
	sqrt2Ln2 = math.Sqrt(2 * math.Ln2)
	sqrt2Pi  = math.Sqrt(2 * math.Pi)
)

// FWHM returns the full width at half maximum of the peak.
//
// Gaussian: 2 w sqrt(2 ln 2). Lorentzian: 2 w. Voigt: the exact half-maximum
// width of the pseudo-Voigt mixture, which lies between the two.
func FWHM(s Shape, p Params) float64 {
	switch s {
	case Gaussian:
		return 2 * p.Width * sqrt2Ln2
	case Voigt:
		return 2 * p.Width * voigtHalfWidth(p.Mix)
	default:
		return 2 * p.Width
	}
}

// voigtHalfWidth solves m exp(-k^2/2) + (1-m)/(1+k^2) = 1/2 for k, the
// half width at half maximum in units of w. The left side is decreasing in k
// and k is bracketed by the Lorentzian (1) and Gaussian (sqrt(2 ln 2)) values.
func voigtHalfWidth(m float64) float64 {
	m = math.Max(0, math.Min(1, m))
	lo, hi := 1.0, sqrt2Ln2
	if m == 0 {
		return lo
	}
	if m == 1 {
		return hi
	}

	f := func(k float64) float64 {
		return m*math.Exp(-k*k/2) + (1-m)/(1+k*k) - 0.5
	}
	for range 100 {
		mid := 0.5 * (lo + hi)
		if f(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-15 {
			break
		}
	}
	return 0.5 * (lo + hi)
}

// Area returns the closed-form integral of the peak over the real line.
//
// Gaussian: A w sqrt(2 pi). Lorentzian: pi A w. Voigt: the mixture of both.
func Area(s Shape, p Params) float64 {
	g := p.Intensity * p.Width * sqrt2Pi
	l := math.Pi * p.Intensity * p.Width
	switch s {
	case Gaussian:
		return g
	case Voigt:
		return p.Mix*g + (1-p.Mix)*l
	default:
		return l
	}
}

// Height returns the value of the peak at its center.
func Height(s Shape, p Params) float64 {
	return At(s, p.Center, p)
}
