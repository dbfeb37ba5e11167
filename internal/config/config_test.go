package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/spectrum"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 3, cfg.Degree)
	assert.InDelta(t, 0.2, cfg.Threshold, 0)
	assert.Equal(t, 18, cfg.FontSize)
	assert.Equal(t, spectrum.Range{Low: 650, High: 2800}, cfg.Limits)
	assert.Equal(t, spectrum.Range{Low: 900, High: 1800}, cfg.Peak)
	assert.Equal(t, "config/initialData.csv", cfg.Parameters)
	assert.Equal(t, 5, cfg.PeakCount(false))
	assert.Equal(t, 6, cfg.PeakCount(true))
	assert.Equal(t, deconv.DefaultSettings(), cfg.Solver.Settings())
	require.NoError(t, cfg.Validate())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Decode(strings.NewReader(`
degree: 2
threshold: 0.35
limits:
  low: 700
  high: 2000
solver:
  method: newton
  max_iterations: 50
  runtime: 2s
`))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Degree)
	assert.InDelta(t, 0.35, cfg.Threshold, 1e-12)
	assert.Equal(t, spectrum.Range{Low: 700, High: 2000}, cfg.Limits)
	assert.Equal(t, spectrum.Range{Low: 900, High: 1800}, cfg.Peak, "unset keys keep defaults")
	assert.Equal(t, 18, cfg.FontSize)

	s := cfg.Solver.Settings()
	assert.Equal(t, deconv.MethodNewton, s.Method)
	assert.Equal(t, 50, s.MaxIterations)
	assert.Equal(t, 2*time.Second, s.Runtime)
	assert.Equal(t, deconv.DefaultSettings().MaxEvaluations, s.MaxEvaluations)
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("degre: 2\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative degree", func(c *Config) { c.Degree = -1 }, ErrInvalidDegree},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, ErrInvalidThreshold},
		{"inverted limits", func(c *Config) { c.Limits = spectrum.Range{Low: 2000, High: 700} }, ErrInvalidRange},
		{"empty peak range", func(c *Config) { c.Peak = spectrum.Range{Low: 900, High: 900} }, ErrInvalidRange},
		{"no peaks", func(c *Config) { c.Peaks = 0 }, ErrInvalidPeakCount},
		{"negative smoothing", func(c *Config) { c.Smoothing = -1 }, ErrInvalidSmoothing},
		{"unknown method", func(c *Config) { c.Solver.Method = "simplex" }, ErrInvalidSolver},
		{"zero iterations", func(c *Config) { c.Solver.MaxIterations = 0 }, ErrInvalidSolver},
		{"zero tolerance", func(c *Config) { c.Solver.StepTol = 0 }, ErrInvalidSolver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Degree = -2
	cfg.Threshold = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidDegree)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		want := Default()
		want.Degree = 4
		want.Smoothing = 1.5
		want.Solver.Runtime = 30 * time.Second

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, want))

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("degree: -1\n"), 0o600))
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidDegree)
	})
}

func TestDecodeTOML(t *testing.T) {
	t.Parallel()

	cfg, err := DecodeTOML(strings.NewReader(`
degree = 1
threshold = 0.5

[peak]
low = 1000
high = 1700

[solver]
max_iterations = 25
`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Degree)
	assert.InDelta(t, 0.5, cfg.Threshold, 1e-12)
	assert.Equal(t, spectrum.Range{Low: 1000, High: 1700}, cfg.Peak)
	assert.Equal(t, 25, cfg.Solver.MaxIterations)
	assert.Equal(t, DefaultFontSize, cfg.FontSize)

	_, err = DecodeTOML(strings.NewReader("colour = 3\n"))
	require.Error(t, err)
}

func TestLoadTOMLByExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("font_size = 12\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.FontSize)
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("degree: 1\n"), 0o600))
	assert.Equal(t, path, FindConfigFile(path))
	assert.Empty(t, FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Contains(t, Dir(), AppName)
}

func TestShippedConfigMatchesDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
