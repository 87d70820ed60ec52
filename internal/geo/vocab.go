// Package geo holds the closed vocabularies, bounding boxes and reference
// systems that coordinates are interpreted in, plus GeoJSON output types.
package geo

import "strings"

// CoordUnit is the unit of a coordinate value.
type CoordUnit int

const (
	UnitUnknown CoordUnit = iota
	UnitMeters
	UnitDegrees
)

func (u CoordUnit) String() string {
	switch u {
	case UnitMeters:
		return "meters"
	case UnitDegrees:
		return "degrees"
	default:
		return "unknown"
	}
}

// MarshalText renders the unit by name in JSON and YAML output.
func (u CoordUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// Format returns the format values computed in this unit are given.
func (u CoordUnit) Format() CoordFormat {
	switch u {
	case UnitMeters:
		return FormatMeters
	case UnitDegrees:
		return FormatDecimalDegrees
	default:
		return FormatUnknown
	}
}

// CoordFormat is the textual notation a coordinate was written in.
type CoordFormat int

const (
	FormatUnknown CoordFormat = iota
	FormatPlain
	FormatDecimalDegrees
	FormatDegreesMinutes
	FormatDegreesMinutesCombined
	FormatDegreesMinutesSeconds
	FormatMeters
)

var formatNames = map[CoordFormat]string{
	FormatUnknown:                "unknown",
	FormatPlain:                  "plain",
	FormatDecimalDegrees:         "decimal degrees",
	FormatDegreesMinutes:         "degrees and minutes",
	FormatDegreesMinutesCombined: "degrees and minutes combined",
	FormatDegreesMinutesSeconds:  "degrees, minutes and seconds",
	FormatMeters:                 "meters",
}

func (f CoordFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

func (f CoordFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Unit returns the unit a value in this format is expressed in.
func (f CoordFormat) Unit() CoordUnit {
	switch f {
	case FormatMeters:
		return UnitMeters
	case FormatDecimalDegrees, FormatDegreesMinutes, FormatDegreesMinutesCombined, FormatDegreesMinutesSeconds:
		return UnitDegrees
	default:
		return UnitUnknown
	}
}

// CoordAxis is the role of a coordinate in a pair.
type CoordAxis int

const (
	AxisUnknown CoordAxis = iota
	AxisNorthing
	AxisEasting
)

func (a CoordAxis) String() string {
	switch a {
	case AxisNorthing:
		return "Northing"
	case AxisEasting:
		return "Easting"
	default:
		return "Unknown"
	}
}

func (a CoordAxis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// CoordDirection is a compass direction attached to a coordinate.
type CoordDirection int

const (
	DirectionUnknown CoordDirection = iota
	DirectionNorth
	DirectionSouth
	DirectionEast
	DirectionWest
)

func (d CoordDirection) String() string {
	switch d {
	case DirectionNorth:
		return "N"
	case DirectionSouth:
		return "S"
	case DirectionEast:
		return "E"
	case DirectionWest:
		return "W"
	default:
		return "-"
	}
}

// Axis returns the axis the direction points along.
func (d CoordDirection) Axis() CoordAxis {
	switch d {
	case DirectionNorth, DirectionSouth:
		return AxisNorthing
	case DirectionEast, DirectionWest:
		return AxisEasting
	default:
		return AxisUnknown
	}
}

// Sign returns -1 for South and West, 1 otherwise.
func (d CoordDirection) Sign() float64 {
	if d == DirectionSouth || d == DirectionWest {
		return -1
	}
	return 1
}

// ParseDirection recognizes a direction letter or word. Besides N/S/E/W it
// accepts Swedish and Norwegian letters (Ö/Ø/O for east, V for west) and the
// direction words used in spelled-out positions.
func ParseDirection(s string) CoordDirection {
	w := strings.ToUpper(strings.TrimSpace(s))
	if w == "" {
		return DirectionUnknown
	}

	switch w {
	case "N", "NOR", "NORR", "NORD", "NORTH", "NORDLIG":
		return DirectionNorth
	case "S", "SYD", "SÖDER", "SØR", "SOUTH", "SYDLIG":
		return DirectionSouth
	case "E", "Ö", "Ø", "O", "ÖST", "ØST", "OST", "EAST", "ÖSTLIG":
		return DirectionEast
	case "W", "V", "VÄST", "VEST", "WEST", "VÄSTLIG":
		return DirectionWest
	}

	return DirectionUnknown
}
