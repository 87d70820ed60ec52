package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aieuren/coordfinder/internal/export"
)

func defaultOptions() Options {
	log.Logger = zerolog.Nop()
	return Options{Rating: -1, Jobs: 2}
}

func TestRun_Stdin(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), defaultOptions(), strings.NewReader("Möts vid N 58.8 E 10.9 kl 12"), &out)
	require.NoError(t, err)

	var rep export.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.Len(t, rep.Points, 1)
	assert.Equal(t, "N 58.8, E 10.9", rep.Points[0].Text)
}

func TestRun_Overrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: yaml\nrating: 0.9\n"), 0644))

	tests := []struct {
		name   string
		modify func(o *Options)
		want   []string
		reject []string
	}{
		{
			name:   "config file",
			modify: func(o *Options) { o.ConfigFile = cfgPath },
			want:   []string{"points:", "N 58.8, E 10.9"},
			reject: []string{"59.1"},
		},
		{
			name: "flags win over the file",
			modify: func(o *Options) {
				o.ConfigFile = cfgPath
				o.Format = "text"
				o.Rating = 0
				o.Style = "degreesandminutes"
			},
			want: []string{"N 58 48.000, E 10 54.000", "N 59 6.000, E 11 12.000"},
		},
		{
			name: "parse log",
			modify: func(o *Options) {
				o.Format = "text"
				o.ParseLog = true
			},
			want: []string{"Parse log:", "Found 2 potential points"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.modify(&opts)

			var out bytes.Buffer
			require.NoError(t, run(context.Background(), opts, strings.NewReader("N 58.8 E 10.9\n59.1\n11.2"), &out))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, r := range tt.reject {
				assert.NotContains(t, out.String(), r)
			}
		})
	}
}

func TestRun_InvalidOverride(t *testing.T) {
	opts := defaultOptions()
	opts.Format = "kml"

	err := run(context.Background(), opts, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output "kml"`)
}

func TestRun_FileInputAndOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(in, []byte("6533947, 270746"), 0644))

	opts := defaultOptions()
	opts.Input = []string{in}
	opts.Output = filepath.Join(dir, "out", "note.geojson")
	opts.Format = "geojson"
	opts.Minify = true

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, nil, &out))
	assert.Zero(t, out.Len())

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"refsys":"SWEREF99 TM"`)
	assert.NotContains(t, string(data), "\n")

	opts.Input = []string{filepath.Join(dir, "missing.txt")}
	assert.ErrorIs(t, run(context.Background(), opts, nil, &out), os.ErrNotExist)
}

func TestRun_Batch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("N 58.8 E 10.9"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("N 59.1 E 11.2"), 0644))

	opts := defaultOptions()
	opts.Input = []string{a, b}
	opts.Format = "text"

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, nil, &out))
	text := out.String()
	assert.Less(t, strings.Index(text, "==> "+a), strings.Index(text, "==> "+b))
	assert.Contains(t, text, "N 59.1, E 11.2")

	opts.OutputDir = filepath.Join(dir, "exports")
	opts.Format = "json"
	require.NoError(t, run(context.Background(), opts, nil, &out))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "a.json"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "b.json"))

	opts.Input = append(opts.Input, filepath.Join(dir, "missing.txt"))
	assert.Error(t, run(context.Background(), opts, nil, &out))

	opts.Input = nil
	assert.Error(t, run(context.Background(), opts, nil, &out))
}
