// Package peak evaluates the line shapes used to model Raman bands.
//
// Three profiles are provided, all parameterised by an intensity A (peak
// height), a width w and a center c:
//
//	Gaussian:   A * exp(-(x-c)^2 / (2 w^2))
//	Lorentzian: A * w^2 / ((x-c)^2 + w^2)
//	Voigt:      m * Gaussian + (1-m) * Lorentzian   (pseudo-Voigt, 0 <= m <= 1)
//
// For the Gaussian w is the standard deviation, for the Lorentzian it is the
// half width at half maximum. Positivity of w and the range of m are the
// caller's responsibility; the functions here never fail.
package peak
