// Package session drives one deconvolution run as a state machine. The
// caller feeds user intents into Apply; the session calls the spectrum and
// deconv packages and never performs terminal I/O itself.
package session

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/export"
	"github.com/cwbudde/algo-raman/internal/paramtable"
	"github.com/cwbudde/algo-raman/spectrum"
)

// ErrInvalidIntent is returned when an intent is not accepted in the
// current state.
var ErrInvalidIntent = errors.New("session: intent not valid in current state")

// Session owns the spectrum and model of one run. It is not safe for
// concurrent use.
type Session struct {
	id     string
	source string
	cfg    *config.Config
	table  *paramtable.Table
	log    logrus.FieldLogger

	spec    *spectrum.Spectrum
	model   *deconv.Model
	state   State
	removed int
	saved   []string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSource records the input file name for reports.
func WithSource(path string) Option {
	return func(s *Session) { s.source = path }
}

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Open loads the spectrum at path and starts a session on it.
func Open(path string, cfg *config.Config, table *paramtable.Table, opts ...Option) (*Session, error) {
	spec, err := spectrum.Load(path)
	if err != nil {
		return nil, err
	}
	return New(spec, cfg, table, append([]Option{WithSource(path)}, opts...)...)
}

// New prepares spec for review: it clips the spectrum to the configured
// limits, optionally smooths it, fits the baseline and detects spikes.
func New(spec *spectrum.Spectrum, cfg *config.Config, table *paramtable.Table, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.New("session: no parameter table")
	}

	own := *cfg
	s := &Session{
		id:    uuid.NewString(),
		cfg:   &own,
		table: table,
		log:   logrus.StandardLogger(),
		spec:  spec,
		state: Review,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("run", s.id)

	clipped, err := spec.ClipToRange(cfg.Limits.Low, cfg.Limits.High)
	if err != nil {
		return nil, err
	}
	if cfg.Smoothing > 0 {
		if err := spec.Smooth(cfg.Smoothing); err != nil {
			return nil, err
		}
	}
	if err := spec.FitBaseline(cfg.Degree, cfg.Peak); err != nil {
		return nil, err
	}
	spikes, err := spec.DetectSpikes(cfg.Threshold)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"source": s.source,
		"points": spec.Len(),
		"range":  clipped.String(),
		"degree": cfg.Degree,
		"spikes": len(spikes),
	}).Info("spectrum prepared")
	return s, nil
}

// ID returns the run ID.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Spectrum returns the spectrum owned by the session.
func (s *Session) Spectrum() *spectrum.Spectrum { return s.spec }

// Model returns the last assembled model, or nil before the first fit.
func (s *Session) Model() *deconv.Model { return s.model }

// Config returns the session's copy of the configuration. Review intents
// update its degree and threshold.
func (s *Session) Config() *config.Config { return s.cfg }

// SpikesRemoved returns the number of points deleted as spikes.
func (s *Session) SpikesRemoved() int { return s.removed }

// Saved returns the paths written by the last Save.
func (s *Session) Saved() []string { return append([]string(nil), s.saved...) }

// Run returns the export view of the session.
func (s *Session) Run() export.Run {
	return export.Run{
		Spectrum: s.spec,
		Model:    s.model,
		Options: export.Options{
			RunID:         s.id,
			Source:        s.source,
			FontSize:      s.cfg.FontSize,
			SpikesRemoved: s.removed,
		},
	}
}

// Report returns the plain-text report of the current results.
func (s *Session) Report() (string, error) {
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, s.Run()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Apply executes intent. Errors from the numeric packages are returned
// unchanged; a fit that does not converge moves the session to Failed and
// returns the *deconv.FitConvergenceError.
func (s *Session) Apply(intent Intent) error {
	from := s.state
	err := s.apply(intent)

	entry := s.log.WithFields(logrus.Fields{
		"intent": intent.Name(),
		"from":   from.String(),
		"state":  s.state.String(),
	})
	if err != nil {
		entry.WithError(err).Warn("intent failed")
	} else {
		entry.Info("intent applied")
	}
	return err
}

func (s *Session) invalid(intent Intent) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidIntent, intent.Name(), s.state)
}

func (s *Session) apply(intent Intent) error {
	if s.state.Terminal() {
		return s.invalid(intent)
	}
	if _, ok := intent.(Quit); ok {
		s.state = Quitted
		return nil
	}

	switch s.state {
	case Review:
		return s.review(intent)
	case Deconvolution:
		if fit, ok := intent.(Fit); ok {
			return s.fit(fit)
		}
	case Fitted, Failed:
		if save, ok := intent.(Save); ok {
			return s.save(save)
		}
	}
	return s.invalid(intent)
}

func (s *Session) review(intent Intent) error {
	switch in := intent.(type) {
	case RefitBaseline:
		if in.Degree < 0 {
			return fmt.Errorf("%w: %d", config.ErrInvalidDegree, in.Degree)
		}
		if err := s.spec.FitBaseline(in.Degree, s.cfg.Peak); err != nil {
			return err
		}
		s.cfg.Degree = in.Degree
		return nil
	case AdjustSpikes:
		if _, err := s.spec.DetectSpikes(in.Threshold); err != nil {
			return err
		}
		s.cfg.Threshold = in.Threshold
		return nil
	case Proceed:
		s.state = Deconvolution
		return nil
	default:
		return s.invalid(intent)
	}
}

func (s *Session) fit(in Fit) error {
	if in.RemoveSpikes && len(s.spec.Spikes()) > 0 {
		s.removed += s.spec.RemoveSpikes()
	}

	specs, err := s.table.Specs(s.cfg.PeakCount(in.PAHBand))
	if err != nil {
		return err
	}
	model, err := deconv.Assemble(specs, s.cfg.Solver.Options()...)
	if err != nil {
		return err
	}

	err = model.Fit(s.spec.Corrected(), s.spec.Axis())
	switch {
	case err == nil:
		s.model = model
		s.state = Fitted
		return nil
	case model.State() == deconv.Failed:
		s.model = model
		s.state = Failed
		return err
	default:
		return err
	}
}

func (s *Session) save(in Save) error {
	dir := in.Dir
	if dir == "" {
		if s.source == "" {
			return fmt.Errorf("%w: save needs a directory", ErrInvalidIntent)
		}
		dir = export.SaveDir(s.source)
	}
	paths, err := export.Save(dir, s.Run())
	s.saved = paths
	if err != nil {
		return err
	}
	s.state = Done
	return nil
}

// Batch runs the remaining workflow without prompts: proceed, fit, and save
// into dir (or next to the source when dir is empty). A fit that does not
// converge is still saved and its error returned.
func (s *Session) Batch(removeSpikes, pah bool, dir string) error {
	if s.state == Review {
		if err := s.Apply(Proceed{}); err != nil {
			return err
		}
	}
	fitErr := s.Apply(Fit{RemoveSpikes: removeSpikes, PAHBand: pah})
	if fitErr != nil && s.state != Failed {
		return fitErr
	}
	if err := s.Apply(Save{Dir: dir}); err != nil {
		return errors.Join(fitErr, err)
	}
	return fitErr
}
