package peak

import "math"

// GaussianAt evaluates A * exp(-(x-c)^2 / (2 w^2)).
func GaussianAt(x, a, w, c float64) float64 {
	d := x - c
	return a * math.Exp(-d*d/(2*w*w))
}

// LorentzianAt evaluates A * w^2 / ((x-c)^2 + w^2).
func LorentzianAt(x, a, w, c float64) float64 {
	d := x - c
	w2 := w * w
	return a * w2 / (d*d + w2)
}

// VoigtAt evaluates the pseudo-Voigt m*Gaussian + (1-m)*Lorentzian, with both
// components sharing A, w and c.
func VoigtAt(x, a, w, c, m float64) float64 {
	return m*GaussianAt(x, a, w, c) + (1-m)*LorentzianAt(x, a, w, c)
}

// At evaluates a single peak of the given shape at x.
func At(s Shape, x float64, p Params) float64 {
	switch s {
	case Gaussian:
		return GaussianAt(x, p.Intensity, p.Width, p.Center)
	case Voigt:
		return VoigtAt(x, p.Intensity, p.Width, p.Center, p.Mix)
	default:
		return LorentzianAt(x, p.Intensity, p.Width, p.Center)
	}
}

// Eval evaluates the peak at every axis point and returns a new slice.
func Eval(s Shape, axis []float64, p Params) []float64 {
	out := make([]float64, len(axis))
	EvalInto(out, s, axis, p)
	return out
}

// EvalInto writes the peak evaluated at axis into dst.
// dst must be at least as long as axis.
func EvalInto(dst []float64, s Shape, axis []float64, p Params) {
	dst = dst[:len(axis)]
	switch s {
	case Gaussian:
		for i, x := range axis {
			dst[i] = GaussianAt(x, p.Intensity, p.Width, p.Center)
		}
	case Voigt:
		for i, x := range axis {
			dst[i] = VoigtAt(x, p.Intensity, p.Width, p.Center, p.Mix)
		}
	default:
		for i, x := range axis {
			dst[i] = LorentzianAt(x, p.Intensity, p.Width, p.Center)
		}
	}
}
