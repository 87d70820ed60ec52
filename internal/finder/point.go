package finder

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/proj"
)

// DefaultRating is the score of a plausible pairing without further
// evidence, and the default threshold of Result.Points.
const DefaultRating = 0.5

const defaultContextChars = 50

var defaultReprojector = proj.New()

// Point is a northing and an easting in one reference system.
type Point struct {
	N      *Coord
	E      *Coord
	RefSys geo.RefSys

	// ReprojectedFrom is the point this one was computed from, if any.
	ReprojectedFrom *Point

	rated     bool
	rating    float64
	ratingLog []string

	diagnostics []string

	reprojector proj.Reprojector
	logger      zerolog.Logger
}

func newPoint(n, e *Coord, rs geo.RefSys, r proj.Reprojector, logger zerolog.Logger) *Point {
	p := &Point{N: n, E: e, RefSys: rs, reprojector: r, logger: logger}
	if n != nil {
		n.Axis = geo.AxisNorthing
		n.Point = p
	}
	if e != nil {
		e.Axis = geo.AxisEasting
		e.Point = p
	}
	return p
}

// Latitude returns the WGS84 latitude in degrees. Points in a projected
// system are reprojected on every call; on failure the native northing is
// returned and a diagnostic is recorded.
func (p *Point) Latitude() float64 {
	if p.N == nil {
		return 0
	}
	if p.RefSys.Unit == geo.UnitDegrees {
		return p.N.Value
	}
	return p.ReprojectTo(geo.WGS84).N.Value
}

// Longitude returns the WGS84 longitude in degrees, see Latitude.
func (p *Point) Longitude() float64 {
	if p.E == nil {
		return 0
	}
	if p.RefSys.Unit == geo.UnitDegrees {
		return p.E.Value
	}
	return p.ReprojectTo(geo.WGS84).E.Value
}

// ReprojectTo returns the point expressed in rs. The result is a new point
// remembering p as its source. When the reprojection fails p itself is
// returned.
func (p *Point) ReprojectTo(rs geo.RefSys) *Point {
	if p.RefSys == rs || p.N == nil || p.E == nil {
		return p
	}

	r := p.reprojector
	if r == nil {
		r = defaultReprojector
	}

	e, n, err := r.Reproject(p.RefSys.ProjDef, rs.ProjDef, p.E.Value, p.N.Value)
	if err != nil {
		msg := fmt.Sprintf("Reprojection from %s to %s failed: %v", p.RefSys.Name, rs.Name, err)
		p.diagnostics = append(p.diagnostics, msg)
		p.logger.Warn().
			Err(err).
			Str("from", p.RefSys.Name).
			Str("to", rs.Name).
			Msg("Reprojection failed, keeping native values")
		return p
	}

	out := &Point{
		N:               &Coord{Value: n, Axis: geo.AxisNorthing, Format: rs.Unit.Format()},
		E:               &Coord{Value: e, Axis: geo.AxisEasting, Format: rs.Unit.Format()},
		RefSys:          rs,
		ReprojectedFrom: p,
		rated:           p.rated,
		rating:          p.rating,
		ratingLog:       p.ratingLog,
		reprojector:     r,
		logger:          p.logger,
	}
	out.N.Point, out.E.Point = out, out

	return out
}

// Original returns the point as found in the text.
func (p *Point) Original() *Point {
	for p.ReprojectedFrom != nil {
		p = p.ReprojectedFrom
	}
	return p
}

// Within reports whether the native values lie inside box.
func (p *Point) Within(box geo.BoundingBox) bool {
	if p.N == nil || p.E == nil {
		return false
	}
	return box.Covers(p.N.Value, p.E.Value)
}

// First returns the coordinate written first in the text.
func (p *Point) First() *Coord {
	if p.N == nil || p.E == nil || p.N.Snippet == nil || p.E.Snippet == nil {
		return p.N
	}
	if p.N.Snippet.Offset <= p.E.Snippet.Offset {
		return p.N
	}
	return p.E
}

// Last returns the coordinate written last in the text.
func (p *Point) Last() *Coord {
	if p.N == nil || p.E == nil || p.N.Snippet == nil || p.E.Snippet == nil {
		return p.E
	}
	if p.N.Snippet.Offset > p.E.Snippet.Offset {
		return p.N
	}
	return p.E
}

// Line returns the line of the first coordinate, or -1.
func (p *Point) Line() int {
	if first := p.Original().First(); first != nil {
		return first.Line()
	}
	return -1
}

// Offset returns the original text offset of the point, or -1.
func (p *Point) Offset() int {
	if first := p.Original().First(); first != nil && first.Snippet != nil {
		return first.Snippet.Offset
	}
	return -1
}

// OriginalText returns the text from the first coordinate to the end of
// the last, as written.
func (p *Point) OriginalText() string {
	o := p.Original()
	first, last := o.First(), o.Last()
	if first == nil || last == nil || first.Snippet == nil || last.Snippet == nil {
		return ""
	}
	return first.Snippet.Source(first.Snippet.Offset, last.Snippet.End)
}

// TextBefore returns the line text in front of the point.
func (p *Point) TextBefore(maxChars int, ellipsis bool) string {
	if first := p.Original().First(); first != nil {
		return first.TextBefore(maxChars, ellipsis)
	}
	return ""
}

// TextAfter returns the line text after the point.
func (p *Point) TextAfter(maxChars int, ellipsis bool) string {
	if last := p.Original().Last(); last != nil {
		return last.TextAfter(maxChars, ellipsis)
	}
	return ""
}

// ContextOptions limits the text around a point.
type ContextOptions struct {
	MaxChars int // per side; 0 means 50
	Ellipsis bool
}

// Context returns the point's text in brackets between the text before
// and after it on its lines.
func (p *Point) Context(opts ContextOptions) string {
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = defaultContextChars
	}
	return p.TextBefore(maxChars, opts.Ellipsis) + " [" + p.OriginalText() + "] " + p.TextAfter(maxChars, opts.Ellipsis)
}

// Rating returns the point's score in [0, 1].
func (p *Point) Rating() float64 {
	if !p.rated {
		return DefaultRating
	}
	return p.rating
}

// RatingLog explains the rating, one adjustment per line.
func (p *Point) RatingLog() string { return strings.Join(p.ratingLog, "\n") }

// MaxErrors returns the rounding error of each axis in native units.
func (p *Point) MaxErrors() (n, e float64) {
	if p.N != nil {
		n = p.N.MaxError()
	}
	if p.E != nil {
		e = p.E.MaxError()
	}
	return n, e
}

// MaxErrorBounds returns the box in WGS84 degrees the true position lies
// in, given the rounding error of the written values.
func (p *Point) MaxErrorBounds() geo.BoundingBox {
	errN, errE := p.MaxErrors()
	lat, lon := p.Latitude(), p.Longitude()

	if p.RefSys.Unit != geo.UnitDegrees {
		errN, errE = geo.MetersToDegrees(lat, errN, errE)
	}

	return geo.NewBoundingBox(lat-errN, lon-errE, lat+errN, lon+errE)
}

// Diagnostics returns problems met while serving the point, such as
// failed reprojections.
func (p *Point) Diagnostics() []string { return p.diagnostics }

// DebugText renders the point for parse logs.
func (p *Point) DebugText() string {
	var b strings.Builder

	b.WriteString("Point:")
	if p.N != nil {
		b.WriteString("\n  N: " + strings.TrimLeft(p.N.DebugText("  "), " "))
	}
	if p.E != nil {
		b.WriteString("\n  E: " + strings.TrimLeft(p.E.DebugText("  "), " "))
	}
	fmt.Fprintf(&b, "\n  RefSys: %s", p.RefSys.Name)
	fmt.Fprintf(&b, "\n  Rating: %g", p.Rating())

	return b.String()
}
