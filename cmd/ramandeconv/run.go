package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-raman/internal/export"
	"github.com/cwbudde/algo-raman/internal/session"
)

// Prompter turns the session state into the next intent.
type Prompter interface {
	Review(s *session.Session) (session.Intent, error)
	Fit(s *session.Session) (session.Intent, error)
	Save(s *session.Session) (session.Intent, error)
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Aliases:   []string{"r"},
		Usage:     "Interactively review the baseline, fit the peaks and save the results",
		ArgsUsage: "<spectrum>",
		Flags:     prepFlags(),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("run expects exactly one spectrum file", 2)
			}
			if !isTerminal(os.Stdin) {
				return cli.Exit("run needs an interactive terminal; use batch instead", 2)
			}
			cfg, table, err := setup(cCtx)
			if err != nil {
				return err
			}
			s, err := session.Open(cCtx.Args().First(), cfg, table)
			if err != nil {
				return err
			}
			return drive(s, huhPrompter{}, cCtx.App.Writer)
		},
	}
}

// drive feeds intents from p into s until the session terminates. Errors
// from rejected intents are shown and the prompt repeats; a fit that does
// not converge is shown and the save prompt follows.
func drive(s *session.Session, p Prompter, out io.Writer) error {
	for !s.State().Terminal() {
		var (
			intent session.Intent
			err    error
		)
		switch s.State() {
		case session.Review:
			writeSummary(out, s)
			intent, err = p.Review(s)
		case session.Deconvolution:
			intent, err = p.Fit(s)
		case session.Fitted, session.Failed:
			if report, rerr := s.Report(); rerr == nil {
				fmt.Fprintln(out, report)
			}
			intent, err = p.Save(s)
		}
		if errors.Is(err, huh.ErrUserAborted) {
			intent, err = session.Quit{}, nil
		}
		if err != nil {
			return err
		}

		if err := s.Apply(intent); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	if s.State() == session.Done {
		fmt.Fprintf(out, "saved %d files\n", len(s.Saved()))
	}
	return nil
}

// writeSummary prints the review state and renders a baseline preview.
func writeSummary(out io.Writer, s *session.Session) {
	spec := s.Spectrum()
	fmt.Fprintf(out, "\nSpectrum: %d points over %s\n", spec.Len(), spec.Bounds())
	fmt.Fprintf(out, "Baseline: degree %d, excluded %s\n", spec.BaselineDegree(), spec.ExcludedRange())
	fmt.Fprintf(out, "Spikes:   %d points flagged (threshold %g)\n", len(spec.Spikes()), s.Config().Threshold)

	path := filepath.Join(os.TempDir(), "ramandeconv-"+s.ID()+"-"+export.BaselineChart)
	f, err := os.Create(path) //nolint:gosec // path under the temp dir
	if err != nil {
		log.WithError(err).Debug("baseline preview not written")
		return
	}
	defer f.Close()
	if err := export.NewBaselineChart(s.Run()).Render(f); err != nil {
		log.WithError(err).Debug("baseline preview not written")
		return
	}
	fmt.Fprintf(out, "Preview:  %s\n\n", path)
}

type huhPrompter struct{}

func (huhPrompter) Review(s *session.Session) (session.Intent, error) {
	var choice string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Baseline and spikes").
			Options(
				huh.NewOption("Change the baseline degree", "baseline"),
				huh.NewOption("Change the spike threshold", "spikes"),
				huh.NewOption("Continue to deconvolution", "proceed"),
				huh.NewOption("Quit", "quit"),
			).
			Value(&choice),
	)).Run()
	if err != nil {
		return nil, err
	}

	switch choice {
	case "baseline":
		v, err := askNumber("Baseline degree", strconv.Itoa(s.Config().Degree), parseDegree)
		if err != nil {
			return nil, err
		}
		return session.RefitBaseline{Degree: int(v)}, nil
	case "spikes":
		v, err := askNumber("Spike threshold", strconv.FormatFloat(s.Config().Threshold, 'g', -1, 64), parseThreshold)
		if err != nil {
			return nil, err
		}
		return session.AdjustSpikes{Threshold: v}, nil
	case "proceed":
		return session.Proceed{}, nil
	default:
		return session.Quit{}, nil
	}
}

func (huhPrompter) Fit(s *session.Session) (session.Intent, error) {
	intent := session.Fit{RemoveSpikes: true}
	var fields []huh.Field
	if n := len(s.Spectrum().Spikes()); n > 0 {
		fields = append(fields, huh.NewConfirm().
			Title(fmt.Sprintf("Remove the %d flagged spike points?", n)).
			Value(&intent.RemoveSpikes))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Fit with the PAH band?").
		Value(&intent.PAHBand))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, err
	}
	return intent, nil
}

func (huhPrompter) Save(*session.Session) (session.Intent, error) {
	var save bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save all the results?").
			Value(&save),
	)).Run(); err != nil {
		return nil, err
	}
	if save {
		return session.Save{}, nil
	}
	return session.Quit{}, nil
}

func askNumber(title, initial string, parse func(string) (float64, error)) (float64, error) {
	value := initial
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value).
			Validate(func(s string) error {
				_, err := parse(s)
				return err
			}),
	)).Run()
	if err != nil {
		return 0, err
	}
	return parse(value)
}

func parseDegree(s string) (float64, error) {
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 {
		return 0, errors.New("enter a whole number >= 0")
	}
	return float64(d), nil
}

func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) {
		return 0, errors.New("enter a number > 0")
	}
	return v, nil
}
