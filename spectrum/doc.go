// Package spectrum holds a measured Raman spectrum and the preprocessing
// applied before peak deconvolution.
//
// A [Spectrum] keeps four equally long sequences: the axis (Raman shift), the
// raw signal, the fitted baseline and the baseline-corrected signal
// |signal - baseline|. Every operation mutates the spectrum in place and
// keeps the four sequences aligned:
//
//   - [Spectrum.ClipToRange] truncates to a data window,
//   - [Spectrum.FitBaseline] fits a polynomial to the flanks outside a peak
//     region and evaluates it over the whole axis,
//   - [Spectrum.DetectSpikes] flags detector spikes with a sliding
//     three-point relative-change test,
//   - [Spectrum.RemoveSpikes] deletes the flagged points,
//   - [Spectrum.Smooth] applies an optional Gaussian smoothing.
//
// Spectra are read from two-column text files with [Load] or [Read].
package spectrum
