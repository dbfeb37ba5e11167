package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/export"
	"github.com/cwbudde/algo-raman/internal/paramtable"
	"github.com/cwbudde/algo-raman/internal/session"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Fit and save spectra without prompts",
		ArgsUsage: "<spectrum ...>",
		Flags: append(prepFlags(),
			&cli.BoolFlag{
				Name:  "remove-spikes",
				Value: true,
				Usage: "delete flagged spike points before fitting",
			},
			&cli.BoolFlag{
				Name:  "pah",
				Usage: "fit with the PAH band",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "parent directory for results; default is next to each input",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   1,
				Usage:   "number of spectra processed concurrently",
			},
		),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return cli.Exit("batch expects at least one spectrum file", 2)
			}
			cfg, table, err := setup(cCtx)
			if err != nil {
				return err
			}
			opts := batchOptions{
				removeSpikes: cCtx.Bool("remove-spikes"),
				pah:          cCtx.Bool("pah"),
				out:          cCtx.String("out"),
				jobs:         cCtx.Int("jobs"),
			}
			results, err := runBatch(cCtx.Args().Slice(), cfg, table, opts)
			writeBatchSummary(cCtx.App.Writer, results)
			return err
		},
	}
}

type batchOptions struct {
	removeSpikes bool
	pah          bool
	out          string
	jobs         int
}

type batchResult struct {
	file   string
	loaded bool
	state  session.State
	dir    string
	r2     float64
	err    error
}

// stateLabel is the State column of the summary.
func (r batchResult) stateLabel() string {
	if !r.loaded {
		return "not loaded"
	}
	return r.state.String()
}

// runBatch processes files with at most opts.jobs sessions at a time. Each
// session is independent; one failing file does not stop the others. The
// returned error joins all per-file errors.
func runBatch(files []string, cfg *config.Config, table *paramtable.Table, opts batchOptions) ([]batchResult, error) {
	results := make([]batchResult, len(files))

	var g errgroup.Group
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			results[i] = processFile(file, cfg, table, opts)
			return nil
		})
	}
	// Workers never return errors; failures are kept per file.
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.file, r.err))
		}
	}
	return results, errors.Join(errs...)
}

func processFile(file string, cfg *config.Config, table *paramtable.Table, opts batchOptions) batchResult {
	res := batchResult{file: file}
	logger := log.WithField("file", file)

	s, err := session.Open(file, cfg, table, session.WithLogger(logger))
	if err != nil {
		res.err = err
		return res
	}
	res.loaded = true

	dir := export.SaveDir(file)
	if opts.out != "" {
		dir = filepath.Join(opts.out, filepath.Base(dir))
	}
	res.dir = dir
	res.err = s.Batch(opts.removeSpikes, opts.pah, dir)
	res.state = s.State()
	if m := s.Model(); m != nil {
		if stats, err := m.Stats(); err == nil {
			res.r2 = stats.R2
		}
	}
	if res.err != nil {
		logger.WithError(res.err).Error("spectrum failed")
	} else {
		logger.WithField("dir", dir).Info("spectrum saved")
	}
	return res
}

func writeBatchSummary(w io.Writer, results []batchResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tState\tR2\tOutput\tError\n")
	fmt.Fprintf(tw, "----\t-----\t--\t------\t-----\n")
	for _, r := range results {
		r2 := "-"
		if r.r2 != 0 {
			r2 = fmt.Sprintf("%.5f", r.r2)
		}
		errText := ""
		if r.err != nil {
			errText = r.err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.file, r.stateLabel(), r2, r.dir, errText)
	}
	_ = tw.Flush()
}
