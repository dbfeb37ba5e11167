package main

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/paramtable"
)

// loadConfig resolves the configuration file and falls back to defaults
// when none exists. An explicitly given file must exist.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	explicit := cCtx.String("config")
	path := config.FindConfigFile(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
		}
		log.Warn("could not find a configuration file, loading defaults")
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			log.Warn("could not find a configuration file, loading defaults")
			return config.Default(), nil
		}
		return nil, err
	}
	log.WithField("path", path).Debug("configuration loaded")
	return cfg, nil
}

// setup loads configuration and parameter table, then applies the
// per-command overrides.
func setup(cCtx *cli.Context) (*config.Config, *paramtable.Table, error) {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return nil, nil, err
	}
	if p := cCtx.String("params"); p != "" {
		cfg.Parameters = p
	}
	if cCtx.IsSet("degree") {
		cfg.Degree = cCtx.Int("degree")
	}
	if cCtx.IsSet("threshold") {
		cfg.Threshold = cCtx.Float64("threshold")
	}
	if cCtx.IsSet("smoothing") {
		cfg.Smoothing = cCtx.Float64("smoothing")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	table, err := paramtable.Load(cfg.Parameters)
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}

// prepFlags are shared by every command that prepares a spectrum.
func prepFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "degree",
			Aliases: []string{"d"},
			Usage:   "baseline polynomial degree",
		},
		&cli.Float64Flag{
			Name:    "threshold",
			Aliases: []string{"t"},
			Usage:   "spike detection threshold",
		},
		&cli.Float64Flag{
			Name:  "smoothing",
			Usage: "Gaussian smoothing sigma in samples (0 disables)",
		},
	}
}
