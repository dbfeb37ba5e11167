// Package config holds the run configuration of the deconvolution tool:
// baseline and spike settings, axis ranges, the initial-parameter table and
// explicit optimizer limits. Configuration is read from YAML; missing keys
// keep their defaults.
package config
