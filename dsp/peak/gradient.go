package peak

import "math"

// Gradient writes the partial derivatives of the peak at x with respect to
// its parameters into dst, in packing order. dst must hold s.Arity() values.
func Gradient(dst []float64, s Shape, x float64, p Params) {
	a, w, c := p.Intensity, p.Width, p.Center
	d := x - c

	var ga, gw, gc float64
	if s != Lorentzian {
		e := math.Exp(-d * d / (2 * w * w))
		w2 := w * w
		ga = e
		gw = a * e * d * d / (w2 * w)
		gc = a * e * d / w2
	}

	var la, lw, lc float64
	if s != Gaussian {
		w2 := w * w
		den := d*d + w2
		den2 := den * den
		la = w2 / den
		lw = 2 * a * w * d * d / den2
		lc = 2 * a * w2 * d / den2
	}

	switch s {
	case Gaussian:
		dst[0], dst[1], dst[2] = ga, gw, gc
	case Lorentzian:
		dst[0], dst[1], dst[2] = la, lw, lc
	case Voigt:
		m := p.Mix
		dst[0] = m*ga + (1-m)*la
		dst[1] = m*gw + (1-m)*lw
		dst[2] = m*gc + (1-m)*lc
		dst[3] = a*ga - a*la
	}
}
