package geo

import (
	"fmt"
	"strings"
)

// RefSys is a coordinate reference system: unit, area of validity and a
// projection definition. The definition is opaque here; it is forwarded to
// the reprojector.
type RefSys struct {
	Name        string      `json:"name" yaml:"name"`
	Code        int         `json:"code" yaml:"code"` // EPSG
	Unit        CoordUnit   `json:"unit" yaml:"unit"`
	Bounds      BoundingBox `json:"bounds" yaml:"bounds"`
	ProjDef     string      `json:"proj_def" yaml:"proj_def"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
}

const (
	projWGS84     = "+title=WGS 84 (long/lat) +proj=longlat +ellps=WGS84 +datum=WGS84 +units=degrees"
	projSWEREF99  = "+proj=utm +zone=33 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs"
	projRT90      = "+proj=tmerc +lat_0=0 +lon_0=15.80827777777778 +k=1 +x_0=1500000 +y_0=0 +ellps=bessel +units=m +no_defs"
	projETRS89    = "+proj=longlat +ellps=GRS80 +no_defs"
	projETRSLAEA  = "+proj=laea +lat_0=52 +lon_0=10 +x_0=4321000 +y_0=3210000 +ellps=GRS80 +units=m +no_defs"
	projETRSLCC   = "+proj=lcc +lat_1=35 +lat_2=65 +lat_0=52 +lon_0=10 +x_0=4000000 +y_0=2800000 +ellps=GRS80 +units=m +no_defs"
	extendNFactor = 1.1
	extendEFactor = 1.25
)

// Reference systems known to the finder.
var (
	Unknown = RefSys{
		Name:        "Unknown reference system",
		Unit:        UnitUnknown,
		Description: "(unknown coordinate reference system)",
	}

	WGS84 = RefSys{
		Name:        "WGS84",
		Code:        4326,
		Unit:        UnitDegrees,
		Bounds:      NewBoundingBox(-90, -180, 90, 180),
		ProjDef:     projWGS84,
		Description: "WGS84 is a global coordinate system",
	}

	WGS84NorthernEurope = RefSys{
		Name:    "WGS84 in northern Europe",
		Code:    4326,
		Unit:    UnitDegrees,
		Bounds:  NewBoundingBox(49, 0, 75, 32),
		ProjDef: projWGS84,
	}

	SWEREF99TM = RefSys{
		Name:    "SWEREF99 TM",
		Code:    3006,
		Unit:    UnitMeters,
		Bounds:  NewBoundingBox(6100000, 200000, 7700000, 1000000),
		ProjDef: projSWEREF99,
	}

	SWEREF99TMExtended = RefSys{
		Name:        "almost SWEREF99 TM",
		Code:        3006,
		Unit:        UnitMeters,
		Bounds:      SWEREF99TM.Bounds.Scale(extendNFactor, extendEFactor),
		ProjDef:     projSWEREF99,
		Description: "SWEREF99 TM with a tolerant area of validity",
	}

	RT90 = RefSys{
		Name:    "RT90 2.5 gon V",
		Code:    3021,
		Unit:    UnitMeters,
		Bounds:  NewBoundingBox(6100000, 1200000, 7700000, 1900000),
		ProjDef: projRT90,
	}

	RT90Extended = RefSys{
		Name:        "almost RT90 2.5 gon V",
		Code:        3021,
		Unit:        UnitMeters,
		Bounds:      RT90.Bounds.Scale(extendNFactor, extendEFactor),
		ProjDef:     projRT90,
		Description: "RT90 2.5 gon V with a tolerant area of validity",
	}

	ETRS89 = RefSys{
		Name:    "ETRS89",
		Code:    4258,
		Unit:    UnitDegrees,
		Bounds:  NewBoundingBox(34.5, -10.67, 71.05, 31.55),
		ProjDef: projETRS89,
	}

	ETRSLAEA = RefSys{
		Name:    "ETRS-LAEA",
		Code:    3035,
		Unit:    UnitMeters,
		Bounds:  NewBoundingBox(2426378.0132, 1528101.2618, 6293974.6215, 5446513.5222),
		ProjDef: projETRSLAEA,
	}

	ETRSLCC = RefSys{
		Name:    "ETRS-LCC",
		Code:    3034,
		Unit:    UnitMeters,
		Bounds:  NewBoundingBox(2122254.2378, 1164627.9290, 5955457.4541, 5021872.0731),
		ProjDef: projETRSLCC,
	}
)

// Catalogue is an ordered list of reference systems. Order is priority:
// the first system whose box holds a pair wins.
type Catalogue []RefSys

// DefaultCatalogue returns the built-in priority order: the regional WGS84
// box first, national grids next, their tolerant variants after, and the
// global WGS84 box last.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		WGS84NorthernEurope,
		SWEREF99TM,
		RT90,
		ETRS89,
		ETRSLAEA,
		ETRSLCC,
		SWEREF99TMExtended,
		RT90Extended,
		WGS84,
	}
}

// Lookup finds a reference system by name, case-insensitively.
func (c Catalogue) Lookup(name string) (RefSys, bool) {
	for _, rs := range c {
		if strings.EqualFold(rs.Name, name) {
			return rs, true
		}
	}
	return Unknown, false
}

// Only keeps the named systems, preserving catalogue order.
func (c Catalogue) Only(names ...string) (Catalogue, error) {
	if len(names) == 0 {
		return c, nil
	}

	out := make(Catalogue, 0, len(names))
	for _, name := range names {
		if _, ok := c.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown reference system %q", name)
		}
	}
	for _, rs := range c {
		for _, name := range names {
			if strings.EqualFold(rs.Name, name) {
				out = append(out, rs)
				break
			}
		}
	}

	return out, nil
}

// AxisValue is one coordinate as seen by the catalogue.
type AxisValue struct {
	Value float64
	Axis  CoordAxis
}

// Accepts reports whether n and e can be this system's northing and easting.
// Two known axes must be exactly one Northing and one Easting, in that order.
func (r RefSys) Accepts(n, e AxisValue) bool {
	if n.Axis != AxisUnknown && e.Axis != AxisUnknown {
		if n.Axis != AxisNorthing || e.Axis != AxisEasting {
			return false
		}
	}
	return r.Bounds.Covers(n.Value, e.Value)
}

// Match walks the catalogue in priority order and returns the first system
// holding (c1, c2) as (northing, easting). Unless ordered, the swapped pair
// is tried before moving on to the next system. swapped reports that c2 is
// the northing.
func (c Catalogue) Match(c1, c2 AxisValue, ordered bool) (rs RefSys, swapped bool, ok bool) {
	for _, sys := range c {
		if sys.Accepts(c1, c2) {
			return sys, false, true
		}
		if !ordered && sys.Accepts(c2, c1) {
			return sys, true, true
		}
	}
	return Unknown, false, false
}
