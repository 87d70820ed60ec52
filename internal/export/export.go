// Package export renders parse results as JSON, YAML, GeoJSON or text.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/aieuren/coordfinder/internal/finder"
	"github.com/aieuren/coordfinder/internal/geo"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatGeoJSON = "geojson"
	FormatText    = "text"
)

// Options selects what is exported and how.
type Options struct {
	Format   string
	Rating   float64
	Grouping bool
	Minify   bool
	ParseLog bool

	Text    finder.FormatOptions
	Context finder.ContextOptions
}

// DefaultOptions returns JSON output of points at the default rating.
func DefaultOptions() Options {
	return Options{
		Format:  FormatJSON,
		Rating:  finder.DefaultRating,
		Text:    finder.DefaultFormat(),
		Context: finder.ContextOptions{MaxChars: 50, Ellipsis: true},
	}
}

// MIME returns the content type of the format.
func MIME(format string) string {
	switch format {
	case FormatGeoJSON:
		return "application/geo+json"
	case FormatYAML:
		return "application/yaml"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Marshal renders the result in the requested format.
func Marshal(res *finder.Result, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON, "":
		return marshalJSON(NewReport(res, opts), opts.Minify)
	case FormatGeoJSON:
		return marshalJSON(FeatureCollection(res.Points(opts.Rating), opts), opts.Minify)
	case FormatYAML:
		data, err := yaml.Marshal(NewReport(res, opts))
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return data, nil
	case FormatText:
		return []byte(Text(res, opts)), nil
	}
	return nil, fmt.Errorf("unknown output format %q", opts.Format)
}

// Write renders the result to w.
func Write(w io.Writer, res *finder.Result, opts Options) error {
	data, err := Marshal(res, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// WriteFile renders the result into path, creating missing directories.
func WriteFile(path string, res *finder.Result, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// close errors are logged, the write result is returned
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return Write(f, res, opts)
}

var minifier = func() *minify.M {
	m := minify.New()
	m.Add("application/json", &minjson.Minifier{KeepNumbers: true})
	return m
}()

func marshalJSON(v any, minified bool) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	if !minified {
		return append(data, '\n'), nil
	}

	out, err := minifier.Bytes("application/json", data)
	if err != nil {
		return nil, fmt.Errorf("minify json: %w", err)
	}
	return out, nil
}

// FeatureCollection turns points into GeoJSON features in WGS84.
func FeatureCollection(points []*finder.Point, opts Options) geo.GeoJSONFeatureCollection {
	fc := geo.NewFeatureCollection(len(points))
	for _, p := range points {
		rec := NewPointRecord(p, opts)
		fc.Features = append(fc.Features, geo.PointFeature(rec.Latitude, rec.Longitude, map[string]any{
			"text":     rec.Text,
			"original": rec.Original,
			"refsys":   rec.RefSys,
			"rating":   rec.Rating,
			"line":     rec.Line,
		}))
	}
	return fc
}

// Text renders one line per point. Groups are separated by a header line.
func Text(res *finder.Result, opts Options) string {
	var b strings.Builder

	line := func(indent string, p *finder.Point) {
		fmt.Fprintf(&b, "%s%s\t(%s, rating %g)\t%s\n",
			indent, p.AsText(opts.Text), p.RefSys.Name, p.Rating(), p.Context(opts.Context))
	}

	if opts.Grouping {
		for i, g := range res.Groups(opts.Rating) {
			fmt.Fprintf(&b, "Group %d (%d points):\n", i+1, len(g))
			for _, p := range g {
				line("  ", p)
			}
		}
	} else {
		for _, p := range res.Points(opts.Rating) {
			line("", p)
		}
	}

	if opts.ParseLog {
		b.WriteString("\nParse log:\n")
		b.WriteString(res.Log())
		b.WriteString("\n")
	}

	return b.String()
}

// Bytes is a convenience for tests and handlers.
func Bytes(res *finder.Result, opts Options) []byte {
	var buf bytes.Buffer
	if err := Write(&buf, res, opts); err != nil {
		log.Error().Err(err).Msg("Export failed")
		return nil
	}
	return buf.Bytes()
}
