package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Smooth convolves the raw signal with a normalised Gaussian kernel whose
// standard deviation is sigma samples. Edges are handled by mirroring the
// signal. sigma == 0 is a no-op.
//
// When a baseline has been fitted it is refitted on the smoothed signal with
// the same degree and excluded range. Spike flags are left untouched.
func (s *Spectrum) Smooth(sigma float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	if sigma == 0 || len(s.signal) < 2 {
		return nil
	}

	smoothed, err := gaussianSmooth(s.signal, sigma)
	if err != nil {
		return err
	}
	copy(s.signal, smoothed)

	if s.poly != nil {
		return s.FitBaseline(s.degree, s.excluded)
	}
	for i, v := range s.signal {
		s.corrected[i] = math.Abs(v - s.baseline[i])
	}
	return nil
}

// gaussianSmooth returns the "same"-length convolution of x with a Gaussian
// kernel, computed in a single FFT block over the mirrored signal.
func gaussianSmooth(x []float64, sigma float64) ([]float64, error) {
	n := len(x)
	radius := int(math.Ceil(4 * sigma))
	if radius > n-1 {
		radius = n - 1
	}

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	padded := make([]float64, n+2*radius)
	for i := range padded {
		padded[i] = x[mirror(i-radius, n)]
	}

	fftSize := nextPowerOf2(len(padded) + len(kernel) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	sigFreq := make([]complex128, fftSize)
	kerFreq := make([]complex128, fftSize)
	for i, v := range padded {
		sigFreq[i] = complex(v, 0)
	}
	for i, v := range kernel {
		kerFreq[i] = complex(v, 0)
	}

	if err := plan.Forward(sigFreq, sigFreq); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	if err := plan.Forward(kerFreq, kerFreq); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	for i := range sigFreq {
		sigFreq[i] *= kerFreq[i]
	}
	if err := plan.Inverse(sigFreq, sigFreq); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	// Full convolution index radius+k aligns the kernel center with padded[k],
	// and padded[k+radius] is x[k].
	out := make([]float64, n)
	for k := range out {
		out[k] = real(sigFreq[k+2*radius])
	}
	return out, nil
}

// mirror reflects i into [0, n) without repeating the edge sample.
func mirror(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
