// Package testutil provides deterministic synthetic spectra and tolerance
// helpers shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Axis returns start, start+step, ... up to and including stop.
func Axis(start, stop, step float64) []float64 {
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Line returns intercept + slope*x for every x in axis.
func Line(axis []float64, slope, intercept float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		out[i] = intercept + slope*x
	}
	return out
}

// Gaussian returns a * exp(-(x-c)^2/(2 w^2)) sampled on axis.
func Gaussian(axis []float64, a, w, c float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		d := x - c
		out[i] = a * math.Exp(-d*d/(2*w*w))
	}
	return out
}

// Lorentzian returns a * w^2 / ((x-c)^2 + w^2) sampled on axis.
func Lorentzian(axis []float64, a, w, c float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		d := x - c
		out[i] = a * w * w / (d*d + w*w)
	}
	return out
}

// Sum returns the elementwise sum of equally long signals.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
