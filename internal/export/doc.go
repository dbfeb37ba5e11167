// Package export writes the results of a deconvolution run: a CSV table of
// the spectrum stages and fitted curves, a plain-text and a Markdown report,
// and HTML charts.
//
// A model that is absent or did not converge contributes no peak columns;
// the reports state that peak results are absent.
package export
