// Package deconv decomposes a baseline-corrected spectrum into a sum of
// parameterised peaks by bounded nonlinear least squares.
//
// A [Model] is assembled from an ordered list of [PeakSpec] values. Each peak
// has a [peak.Shape] whose arity fixes how many entries it contributes to the
// flat parameter vector: three (intensity, width, center) for Gaussian and
// Lorentzian peaks, four (plus mix) for Voigt peaks. [Model.Pack] and
// [Model.Unpack] convert between the per-peak records and that vector in
// assembly order.
//
// [Model.Deconvolute] minimises sum_i (Evaluate(p, x_i) - y_i)^2 subject to
// per-parameter box bounds. Bounds are enforced by a smooth change of
// variables, so the optimizer works unconstrained and every iterate is
// feasible. A model moves through the states
//
//	Unfit -> Fitting -> Fitted
//	Unfit -> Fitting -> Failed
//
// and both final states are terminal. Failures to converge are reported as
// *FitConvergenceError; peak results are only available once Fitted.
//
// Peaks converging to the same center are kept as independent components.
package deconv
