package finder

import (
	"math"
	"slices"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/pattern"
)

const (
	reasonNoRefSys  = "no reference system holds the pair"
	reasonNoPartner = "no partner in any reference system"
)

func axisValue(c *Coord) geo.AxisValue {
	return geo.AxisValue{Value: c.Value, Axis: c.Axis}
}

// pairDual turns a snippet carrying both axes into a point. Values that
// only fit the other way round are swapped first; after that the order is
// trusted.
func (r *Result) pairDual(s *pattern.Snippet) {
	north, east := s.North, s.East

	lat, lon := math.Abs(north.Value), math.Abs(east.Value)
	if (lat > 90 || lon > 180) && lon <= 90 && lat <= 180 {
		north, east = east, north
		r.logf("Auto-corrected swapped lat/lon values in '%s'", s.Text)
	}

	n := coordFromComponent(s, north, geo.AxisNorthing)
	e := coordFromComponent(s, east, geo.AxisEasting)

	rs, _, ok := r.catalogue.Match(axisValue(n), axisValue(e), true)
	if !ok {
		n.FailReason, e.FailReason = reasonNoRefSys, reasonNoRefSys
		r.unused = append(r.unused, n, e)
		r.logf("No reference system for combined format '%s'", s.Text)
		return
	}

	p := r.newPoint(n, e, rs)
	r.logf("Created point from combined format: %s (%s)", p, rs.Name)
}

// pairSingles pairs the single-axis coordinates first-fit in text order.
// Each coordinate is claimed by the first later partner that forms a
// point in some reference system.
func (r *Result) pairSingles() {
	claimed := make([]bool, len(r.coords))

	for i := range r.coords {
		if claimed[i] {
			continue
		}
		for j := i + 1; j < len(r.coords); j++ {
			if claimed[j] {
				continue
			}

			n, e := byAxis(r.coords[i], r.coords[j])
			rs, _, ok := r.catalogue.Match(axisValue(n), axisValue(e), true)
			if !ok {
				continue
			}

			p := r.newPoint(n, e, rs)
			r.logf("Created point: %s (%s)", p, rs.Name)
			claimed[i], claimed[j] = true, true
			break
		}
	}

	for i, c := range r.coords {
		if !claimed[i] {
			c.FailReason = reasonNoPartner
			r.unused = append(r.unused, c)
		}
	}
}

// byAxis puts an explicitly labelled northing first. Unlabelled values
// keep their text order.
func byAxis(c1, c2 *Coord) (*Coord, *Coord) {
	if c1.Axis == geo.AxisEasting || c2.Axis == geo.AxisNorthing {
		return c2, c1
	}
	return c1, c2
}

func (r *Result) newPoint(n, e *Coord, rs geo.RefSys) *Point {
	p := newPoint(n, e, rs, r.reprojector, r.logger)
	r.points = append(r.points, p)

	r.logger.Debug().
		Str("snippet", p.OriginalText()).
		Int("offset", p.Offset()).
		Str("refsys", rs.Name).
		Msg("Paired coordinates")

	return p
}

// sortPoints orders points by where they start in the text.
func (r *Result) sortPoints() {
	slices.SortStableFunc(r.points, func(a, b *Point) int {
		return a.Offset() - b.Offset()
	})
}
