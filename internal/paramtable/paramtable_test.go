package paramtable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-raman/deconv"
	"github.com/cwbudde/algo-raman/dsp/peak"
)

const table = `labels,shape,intens,intens_min,intens_max,width,width_min,width_max,freq,freq_min,freq_max,voigt,voigt_min,voigt_max
D4,L,0.1,0,5,100,50,200,1200,1150,1250,,,
D1,V,1,0,5,60,20,150,1350,1320,1380,0.5,0,1
D3,G,0.2,0,5,80,30,200,1500,1450,1550,,,
G,V,1,0,5,30,10,80,1590,1570,1610,0.7,0,1
D2,L,0.3,0,5,30,10,80,1620,1600,1640,,,
PAH,G,0.1,0,2,20,5,60,1250,1230,1270,,,
`

func TestRead(t *testing.T) {
	t.Parallel()

	tab, err := Read(strings.NewReader(table))
	require.NoError(t, err)
	require.Equal(t, 6, tab.Len())

	d1 := tab.Rows[1]
	assert.Equal(t, "D1", d1.Label)
	assert.Equal(t, peak.Voigt, d1.Shape)
	assert.Equal(t, peak.Params{Intensity: 1, Width: 60, Center: 1350, Mix: 0.5}, d1.Init)
	assert.Equal(t, peak.Params{Intensity: 0, Width: 20, Center: 1320, Mix: 0}, d1.Lower)
	assert.Equal(t, peak.Params{Intensity: 5, Width: 150, Center: 1380, Mix: 1}, d1.Upper)

	assert.Equal(t, peak.Lorentzian, tab.Rows[0].Shape)
	assert.Equal(t, peak.Gaussian, tab.Rows[2].Shape)
}

func TestSpecsAssemble(t *testing.T) {
	t.Parallel()

	tab, err := Read(strings.NewReader(table))
	require.NoError(t, err)

	for _, n := range []int{5, 6} {
		specs, err := tab.Specs(n)
		require.NoError(t, err)
		require.Len(t, specs, n)

		m, err := deconv.Assemble(specs)
		require.NoError(t, err)
		assert.Equal(t, specs[0].Name, m.Names()[0])
	}

	specs, err := tab.Specs(5)
	require.NoError(t, err)
	m, err := deconv.Assemble(specs)
	require.NoError(t, err)
	// L(3) + V(4) + G(3) + V(4) + L(3)
	assert.Equal(t, 17, m.NumParams())

	_, err = tab.Specs(7)
	require.ErrorIs(t, err, ErrTooFewRows)
}

func TestReadColumnOrderIsFree(t *testing.T) {
	t.Parallel()

	in := "freq,labels,shape,intens,intens_min,intens_max,width,width_min,width_max,freq_min,freq_max,voigt,voigt_min,voigt_max,comment\n" +
		"1600,G,L,1,0,2,10,5,20,1550,1650,,,,note\n"
	tab, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.InDelta(t, 1600, tab.Rows[0].Init.Center, 0)
	assert.Equal(t, "G", tab.Rows[0].Label)
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"missing column", "labels,shape\nD,L\n", ErrMissingColumn},
		{"bad number", strings.Replace(table, "1200,1150", "abc,1150", 1), ErrMalformed},
		{"ragged row", strings.Split(table, "\n")[0] + "\nD,L,1\n", ErrMalformed},
		{"voigt without mix", strings.Replace(table, "0.5,0,1", ",0,1", 1), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Read(strings.NewReader(tt.in))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "initialData.csv")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	tab, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, tab.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestShippedTable(t *testing.T) {
	t.Parallel()

	tab, err := Load(filepath.Join("..", "..", "config", "initialData.csv"))
	require.NoError(t, err)
	require.Equal(t, 6, tab.Len())

	for _, n := range []int{5, 6} {
		specs, err := tab.Specs(n)
		require.NoError(t, err)
		_, err = deconv.Assemble(specs)
		require.NoError(t, err, "%d rows", n)
	}
}
