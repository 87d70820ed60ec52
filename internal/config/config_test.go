package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aieuren/coordfinder/internal/finder"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, finder.DefaultRating, cfg.Rating)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, finder.DefaultFormat(), cfg.FormatOptions())
	assert.Equal(t, finder.ContextOptions{MaxChars: 50, Ellipsis: true}, cfg.ContextOptions())
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
rating: 0.8
grouping: true
format:
  style: degreesandminutes
  symbols: true
refsys:
  - SWEREF99 TM
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, cfg.Rating, 1e-9)
	assert.True(t, cfg.Grouping)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 50, cfg.Context.MaxChars)
	assert.Equal(t, "before", cfg.Format.Direction)
	assert.Equal(t, finder.DecimalsAuto, cfg.Format.Decimals)

	opts := cfg.FormatOptions()
	assert.Equal(t, finder.StyleDegreesMinutes, opts.Style)
	assert.True(t, opts.Symbols)

	f, err := cfg.Finder()
	require.NoError(t, err)
	require.Len(t, f.Catalogue, 1)
	assert.Equal(t, "SWEREF99 TM", f.Catalogue[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "broken yaml",
			body: "rating: [",
			want: []string{"parse config"},
		},
		{
			name: "every problem is reported",
			body: "rating: 2\noutput: csv\nformat:\n  style: radians\n  direction: middle\n",
			want: []string{"rating must be within", `unknown output "csv"`, `unknown format style "radians"`, `placement "middle"`},
		},
		{
			name: "unknown reference system",
			body: "refsys: [\"Gauss-Boaga\"]",
			want: []string{`unknown reference system "Gauss-Boaga"`},
		},
		{
			name: "unknown pattern",
			body: "patterns: [\"morse\"]",
			want: []string{`unknown pattern "morse"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.Output = "geojson"
	cfg.Rating = 0.8
	cfg.Minify = true
	cfg.Context.MaxChars = 20

	opts := cfg.ExportOptions()
	assert.Equal(t, "geojson", opts.Format)
	assert.InDelta(t, 0.8, opts.Rating, 1e-9)
	assert.True(t, opts.Minify)
	assert.False(t, opts.Grouping)
	assert.False(t, opts.ParseLog)
	assert.Equal(t, 20, opts.Context.MaxChars)
	assert.Equal(t, finder.DefaultFormat(), opts.Text)
}

func TestFinder_Patterns(t *testing.T) {
	cfg := Default()
	cfg.Patterns = []string{"plain"}

	f, err := cfg.Finder()
	require.NoError(t, err)

	points := f.Parse("58.8 10.9 och 6533947 270746").Points(0)
	require.Len(t, points, 1)
	assert.Equal(t, "SWEREF99 TM", points[0].RefSys.Name)
}
