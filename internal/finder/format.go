package finder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aieuren/coordfinder/internal/geo"
)

// Style selects how values are written by Point.AsText.
type Style int

const (
	// StylePlain writes the native values of the point's reference system.
	StylePlain Style = iota
	StyleDegrees
	StyleDegreesMinutes
	StyleDegreesMinutesSeconds
)

var styleNames = []string{"plain", "degrees", "degreesandminutes", "degreesminutesandseconds"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// Format returns the coordinate format the style writes.
func (s Style) Format() geo.CoordFormat {
	switch s {
	case StyleDegrees:
		return geo.FormatDecimalDegrees
	case StyleDegreesMinutes:
		return geo.FormatDegreesMinutes
	case StyleDegreesMinutesSeconds:
		return geo.FormatDegreesMinutesSeconds
	default:
		return geo.FormatPlain
	}
}

// ParseStyle parses a style name as used in configuration files.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if strings.EqualFold(n, name) {
			return Style(i), nil
		}
	}
	return StylePlain, fmt.Errorf("unknown format style %q", name)
}

// Placement is where the direction letter goes relative to the value.
type Placement int

const (
	LetterBefore Placement = iota
	LetterAfter
	LetterNone
)

var placementNames = []string{"before", "after", "none"}

func (p Placement) String() string {
	if int(p) < len(placementNames) {
		return placementNames[p]
	}
	return "unknown"
}

// ParsePlacement parses a letter placement name.
func ParsePlacement(name string) (Placement, error) {
	for i, n := range placementNames {
		if strings.EqualFold(n, name) {
			return Placement(i), nil
		}
	}
	return LetterBefore, fmt.Errorf("unknown direction letter placement %q", name)
}

const (
	// DecimalsAuto writes plain values as short as possible and
	// angles at about one meter of precision.
	DecimalsAuto = -1
	// DecimalsMeter forces about one meter of precision in every style.
	DecimalsMeter = -2
)

// FormatOptions configures Point.AsText.
type FormatOptions struct {
	Style     Style
	Letter    Placement
	Symbols   bool // degree, minute and second marks
	Compact   bool // no spaces inside a value, one space between values
	Decimals  int  // DecimalsAuto, DecimalsMeter or a fixed count
	Localized bool // decimal comma
}

// DefaultFormat returns the options used when none are given.
func DefaultFormat() FormatOptions {
	return FormatOptions{
		Style:    StylePlain,
		Letter:   LetterBefore,
		Decimals: DecimalsAuto,
	}
}

// meterDecimals is the number of decimals giving roughly one meter.
func meterDecimals(s Style, unit geo.CoordUnit) int {
	switch s {
	case StyleDegrees:
		return 5
	case StyleDegreesMinutes:
		return 3
	case StyleDegreesMinutesSeconds:
		return 1
	}
	if unit == geo.UnitDegrees {
		return 5
	}
	return 0
}

func (o FormatOptions) decimals(unit geo.CoordUnit) int {
	switch {
	case o.Decimals >= 0:
		return o.Decimals
	case o.Decimals == DecimalsAuto && o.Style == StylePlain:
		return -1
	default:
		return meterDecimals(o.Style, unit)
	}
}

// formatValue writes the magnitude of v in the configured style.
func (o FormatOptions) formatValue(v float64, unit geo.CoordUnit) string {
	decimals := o.decimals(unit)
	num := func(x float64, d int) string {
		return strconv.FormatFloat(x, 'f', d, 64)
	}

	sep := " "
	if o.Compact && o.Symbols {
		sep = ""
	}

	switch o.Style {
	case StyleDegrees:
		s := num(v, decimals)
		if o.Symbols {
			s += "°"
		}
		return s

	case StyleDegreesMinutes:
		deg, minutes := geo.SplitMinutes(v, decimals)
		if o.Symbols {
			return fmt.Sprintf("%d°%s%s'", deg, sep, num(minutes, decimals))
		}
		return fmt.Sprintf("%d %s", deg, num(minutes, decimals))

	case StyleDegreesMinutesSeconds:
		deg, minutes, seconds := geo.SplitSeconds(v, decimals)
		if o.Symbols {
			return fmt.Sprintf(`%d°%s%d'%s%s"`, deg, sep, minutes, sep, num(seconds, decimals))
		}
		return fmt.Sprintf("%d %d %s", deg, minutes, num(seconds, decimals))
	}

	return num(v, decimals)
}

// formatAxis writes one axis with its direction letter.
func (o FormatOptions) formatAxis(v float64, unit geo.CoordUnit, positive, negative string) string {
	letter := positive
	if v < 0 {
		letter = negative
	}

	abs := v
	if abs < 0 {
		abs = -abs
	}
	text := o.formatValue(abs, unit)

	space := " "
	if o.Compact {
		space = ""
	}

	switch o.Letter {
	case LetterBefore:
		return letter + space + text
	case LetterAfter:
		return text + space + letter
	default:
		if v < 0 {
			return "-" + text
		}
		return text
	}
}

// AsText renders the point. Plain style writes the native values of the
// point's reference system; the angular styles write WGS84 latitude and
// longitude.
func (p *Point) AsText(opts FormatOptions) string {
	if p.N == nil || p.E == nil {
		return ""
	}

	n, e, unit := p.N.Value, p.E.Value, p.RefSys.Unit
	if opts.Style != StylePlain {
		n, e, unit = p.Latitude(), p.Longitude(), geo.UnitDegrees
	}

	parts := []string{
		opts.formatAxis(n, unit, "N", "S"),
		opts.formatAxis(e, unit, "E", "W"),
	}

	join := ", "
	if opts.Compact {
		join = " "
	}
	text := strings.Join(parts, join)

	if opts.Localized {
		text = strings.ReplaceAll(text, ".", ",")
	}
	return text
}

// String renders the point with the default options.
func (p *Point) String() string { return p.AsText(DefaultFormat()) }
