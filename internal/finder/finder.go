// Package finder turns coordinate snippets found in free text into rated
// points. Parse scans the text, builds one coordinate per single-axis
// snippet, pairs coordinates into points in the first reference system
// whose bounds hold them, rates every point and keeps what could not be
// paired for diagnostics.
package finder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/pattern"
	"github.com/aieuren/coordfinder/internal/proj"
	"github.com/aieuren/coordfinder/internal/textpos"
)

// Finder holds the read-only collaborators of a parse. A Finder may be
// used by several goroutines at once; every Parse builds its own state.
type Finder struct {
	Catalogue   geo.Catalogue
	Library     *pattern.Library
	Reprojector proj.Reprojector
	Logger      zerolog.Logger
}

// New returns a Finder with the built-in catalogue and patterns, logging
// to the global logger.
func New() *Finder {
	return &Finder{
		Catalogue:   geo.DefaultCatalogue(),
		Library:     pattern.Default(),
		Reprojector: defaultReprojector,
		Logger:      log.Logger,
	}
}

// Result is the outcome of one parse.
type Result struct {
	text  string
	index *textpos.Index

	snippets []*pattern.Snippet
	coords   []*Coord
	points   []*Point
	unused   []*Coord
	log      []string

	catalogue   geo.Catalogue
	reprojector proj.Reprojector
	logger      zerolog.Logger
}

// Parse finds the points in text. It never fails: an internal fault stops
// the parse, is logged, and the points built until then are returned.
func (f *Finder) Parse(text string) (res *Result) {
	res = &Result{
		text:        text,
		catalogue:   f.Catalogue,
		reprojector: f.Reprojector,
		logger:      f.Logger,
	}
	if res.catalogue == nil {
		res.catalogue = geo.DefaultCatalogue()
	}
	if res.reprojector == nil {
		res.reprojector = defaultReprojector
	}
	lib := f.Library
	if lib == nil {
		lib = pattern.Default()
	}

	defer func() {
		if r := recover(); r != nil {
			res.logf("Error during parsing: %v", r)
			res.logger.Error().
				Interface("panic", r).
				Int("points", len(res.points)).
				Msg("Parse aborted, returning partial result")
			res.sortPoints()
		}
	}()

	res.index = textpos.New(text)
	if res.index.Empty() {
		res.logf("No text to parse")
		return res
	}

	res.logf("Parsing text for coordinates...")
	res.scan(lib)
	res.buildCoords()
	res.pairSingles()
	res.sortPoints()

	for _, p := range res.points {
		p.rate()
	}

	res.logf("Found %d potential points", len(res.points))
	res.logger.Debug().
		Int("snippets", len(res.snippets)).
		Int("points", len(res.points)).
		Int("unused", len(res.unused)).
		Msg("Parsed text")

	return res
}

func (r *Result) scan(lib *pattern.Library) {
	rejected, err := lib.ScanFunc(r.index, r.addSnippet)
	for _, rej := range rejected {
		r.logf("Rejected %s match '%s' at position %d: %v", rej.Pattern, rej.Text, rej.Offset, rej.Reason)
	}
	if err != nil {
		r.logf("Scan stopped: %v", err)
		r.logger.Warn().Err(err).Msg("Scan stopped early")
	}
}

// addSnippet records a snippet as the scanner finds it. Snippets carrying
// both axes become points right away.
func (r *Result) addSnippet(s *pattern.Snippet) {
	r.logf("Found snippet: %s at position %d (%s)", s.Text, s.Offset, s.Pattern)
	r.logger.Debug().
		Str("snippet", s.Text).
		Int("offset", s.Offset).
		Str("pattern", s.Pattern).
		Msg("Found snippet")

	r.snippets = append(r.snippets, s)
	if s.Dual {
		r.pairDual(s)
	}
}

// buildCoords converts single-axis snippets to coordinates, dropping the
// ones that are known not to be coordinates.
func (r *Result) buildCoords() {
	for _, s := range r.snippets {
		if s.Dual {
			continue
		}
		if reason := skipReason(s); reason != "" {
			r.logf("Skipping %s: %s", reason, s.Text)
			continue
		}
		r.coords = append(r.coords, coordFromSnippet(s))
	}
	r.logf("Converted %d snippets to coordinates", len(r.coords))
}

func (r *Result) logf(format string, args ...any) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

// Text returns the parsed text.
func (r *Result) Text() string { return r.text }

// Snippets returns every recognized snippet in text order.
func (r *Result) Snippets() []*pattern.Snippet { return r.snippets }

// Coords returns the single-axis coordinates built from the snippets.
func (r *Result) Coords() []*Coord { return r.coords }

// Points returns the points rated at least minRating, in text order.
func (r *Result) Points(minRating float64) []*Point {
	out := make([]*Point, 0, len(r.points))
	for _, p := range r.points {
		if p.Rating() >= minRating {
			out = append(out, p)
		}
	}
	return out
}

// AllPoints returns every point regardless of rating.
func (r *Result) AllPoints() []*Point { return r.points }

// Groups splits all points into runs on adjacent lines and keeps those
// rated at least minRating. Groups left empty are dropped.
func (r *Result) Groups(minRating float64) [][]*Point {
	var out [][]*Point
	for _, g := range group(r.points) {
		kept := make([]*Point, 0, len(g))
		for _, p := range g {
			if p.Rating() >= minRating {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}

// UnusedCoords returns the coordinates no point could be formed with.
func (r *Result) UnusedCoords() []*Coord { return r.unused }

// Log returns the parse log, one entry per line.
func (r *Result) Log() string { return strings.Join(r.log, "\n") }

// FoundRatings returns the distinct ratings of all points, highest first.
func (r *Result) FoundRatings() []float64 {
	ratings := make([]float64, 0, len(r.points))
	for _, p := range r.points {
		if !slices.Contains(ratings, p.Rating()) {
			ratings = append(ratings, p.Rating())
		}
	}
	slices.SortFunc(ratings, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	return ratings
}

// RatingIndex returns the position in FoundRatings of the highest rating
// not above rating, or the last position when all are above it.
func (r *Result) RatingIndex(rating float64) int {
	ratings := r.FoundRatings()
	for i, v := range ratings {
		if v <= rating {
			return i
		}
	}
	return len(ratings) - 1
}

// PointIn returns the first point in text at the default rating, or nil.
func PointIn(text string) *Point {
	points := PointsIn(text)
	if len(points) == 0 {
		return nil
	}
	return points[0]
}

// PointsIn returns the points in text at the default rating.
func PointsIn(text string) []*Point {
	return New().Parse(text).Points(DefaultRating)
}

// GroupsIn returns the point groups in text at the default rating.
func GroupsIn(text string) [][]*Point {
	return New().Parse(text).Groups(DefaultRating)
}
