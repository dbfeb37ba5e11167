// Command ramandeconv deconvolutes Raman spectra into Gaussian, Lorentzian
// and Voigt peaks.
//
// Usage:
//
//	ramandeconv [global flags] <command> [flags] <spectrum ...>
//
// Commands:
//
//	run       interactive baseline review, peak fit and save
//	batch     fit and save several spectra without prompts
//	inspect   print the prepared spectrum without fitting
//	defaults  print the default configuration as YAML
//
// Examples:
//
//	ramandeconv run sample.txt
//	ramandeconv --config lab.yaml batch --pah --jobs 4 data/*.txt
//	ramandeconv inspect --threshold 0.3 sample.txt
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "ramandeconv",
		Usage:                "Baseline correction and peak deconvolution of Raman spectra",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file (YAML or TOML); defaults are used when none is found",
				EnvVars: []string{"RAMANDECONV_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "initial-parameter table; overrides the configured path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "auto",
				Usage: "log format (auto, text, json)",
			},
		},
		Before: func(cCtx *cli.Context) error {
			return setupLogging(cCtx.App.ErrWriter, cCtx.String("log-level"), cCtx.String("log-format"))
		},
		Commands: []*cli.Command{
			runCommand(),
			batchCommand(),
			inspectCommand(),
			defaultsCommand(),
		},
	}
}
