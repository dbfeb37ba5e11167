package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/session"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Aliases:   []string{"i"},
		Usage:     "Print the prepared spectrum: range, baseline and spikes",
		ArgsUsage: "<spectrum ...>",
		Flags:     prepFlags(),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return cli.Exit("inspect expects at least one spectrum file", 2)
			}
			cfg, table, err := setup(cCtx)
			if err != nil {
				return err
			}
			var sessions []*session.Session
			for _, file := range cCtx.Args().Slice() {
				s, err := session.Open(file, cfg, table)
				if err != nil {
					return err
				}
				sessions = append(sessions, s)
			}
			return writeInspect(cCtx.App.Writer, sessions)
		},
	}
}

func writeInspect(w io.Writer, sessions []*session.Session) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "File\tPoints\tRange\tDegree\tExcluded\tCoefficients\tSpikes\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t------\t-----\t------\t--------\t------------\t------\n"); err != nil {
		return err
	}
	for _, s := range sessions {
		spec := s.Spectrum()
		coeffs := ""
		for i, c := range spec.BaselineCoefficients() {
			if i > 0 {
				coeffs += " "
			}
			coeffs += fmt.Sprintf("%.4g", c)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%s\t%d\n",
			s.Run().Options.Source, spec.Len(), spec.Bounds(), spec.BaselineDegree(),
			spec.ExcludedRange(), coeffs, len(spec.Spikes())); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func defaultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "defaults",
		Usage: "Print the default configuration as YAML",
		Action: func(cCtx *cli.Context) error {
			return config.Write(cCtx.App.Writer, config.Default())
		},
	}
}
