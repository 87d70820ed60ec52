package pattern

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aieuren/coordfinder/internal/geo"
)

var (
	errMinutes  = errors.New("minutes out of range")
	errSeconds  = errors.New("seconds out of range")
	errShape    = errors.New("not a degrees-minutes shape")
	errSameAxis = errors.New("both values name the same axis")
)

// decoded is what a decoder extracts from one match.
type decoded struct {
	single Component

	dual  bool
	north Component
	east  Component

	// format overrides the pattern's format when non-zero
	format geo.CoordFormat
	// cut ends the snippet early at this normalized offset, handing the
	// rest of the match back to the scanner
	cut int
}

type decoder func(m submatch) (decoded, error)

// parseNumber parses a decimal number written with a period or a comma and
// reports the number of digits after the separator.
func parseNumber(s string) (float64, int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse number %q: %w", s, err)
	}

	decimals := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		decimals = len(s) - i - 1
	}
	return v, decimals, nil
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// degMin combines whole degrees and decimal minutes.
func degMin(deg int, minutes float64) (float64, error) {
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: %g", errMinutes, minutes)
	}
	return float64(deg) + minutes/60, nil
}

// degMinSec combines whole degrees, whole minutes and decimal seconds.
func degMinSec(deg, minutes int, seconds float64) (float64, error) {
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: %d", errMinutes, minutes)
	}
	if seconds >= 60 {
		return 0, fmt.Errorf("%w: %g", errSeconds, seconds)
	}
	return float64(deg) + float64(minutes)/60 + seconds/3600, nil
}

// packedDegMin decodes DDMM or DDDMM digits.
func packedDegMin(digits string) (float64, error) {
	n := len(digits)
	return degMin(parseInt(digits[:n-2]), float64(parseInt(digits[n-2:])))
}

// packedDegMinSec decodes DDMMSS or DDDMMSS digits.
func packedDegMinSec(digits string) (float64, error) {
	n := len(digits)
	return degMinSec(parseInt(digits[:n-4]), parseInt(digits[n-4:n-2]), float64(parseInt(digits[n-2:])))
}

// signed applies a direction letter to a magnitude along the given axis.
// Letters naming the other axis leave the value alone.
func signed(v float64, letter string, axis geo.CoordAxis) float64 {
	d := geo.ParseDirection(letter)
	if d.Axis() != axis {
		return v
	}
	return math.Abs(v) * d.Sign()
}

// plainOrMeters picks the format of an unlabeled structured pair.
func plainOrMeters(a, b float64) geo.CoordFormat {
	if math.Abs(a) > 180 || math.Abs(b) > 180 {
		return geo.FormatMeters
	}
	return geo.FormatDecimalDegrees
}

// pair decodes a two-number structured notation. latFirst tells whether
// the first group holds the latitude.
func pair(first, second int, latFirst bool) decoder {
	return func(m submatch) (decoded, error) {
		a, aDec, err := parseNumber(m.str(first))
		if err != nil {
			return decoded{}, err
		}
		b, bDec, err := parseNumber(m.str(second))
		if err != nil {
			return decoded{}, err
		}

		d := decoded{dual: true, format: plainOrMeters(a, b)}
		if latFirst {
			d.north = Component{Value: a, Decimals: aDec}
			d.east = Component{Value: b, Decimals: bDec}
		} else {
			d.north = Component{Value: b, Decimals: bDec}
			d.east = Component{Value: a, Decimals: aDec}
		}
		return d, nil
	}
}

// single decodes a one-axis notation with optional direction letters
// before (lead) and after (trail) the number. When both letters are
// present the trailing one belongs to the next coordinate and is handed
// back to the scanner.
func single(lead, trail int, value func(m submatch) (float64, int, error)) decoder {
	return func(m submatch) (decoded, error) {
		v, decimals, err := value(m)
		if err != nil {
			return decoded{}, err
		}

		d := decoded{single: Component{Value: v, Decimals: decimals}}
		switch {
		case m.has(lead) && m.has(trail):
			d.single.Letter = m.str(lead)
			d.cut = m.start(trail)
		case m.has(lead):
			d.single.Letter = m.str(lead)
		case m.has(trail):
			d.single.Letter = m.str(trail)
		}
		return d, nil
	}
}

func numberAt(group int) func(m submatch) (float64, int, error) {
	return func(m submatch) (float64, int, error) {
		return parseNumber(m.str(group))
	}
}

func degMinAt(degGroup, minGroup int) func(m submatch) (float64, int, error) {
	return func(m submatch) (float64, int, error) {
		minutes, decimals, err := parseNumber(m.str(minGroup))
		if err != nil {
			return 0, 0, err
		}
		v, err := degMin(parseInt(m.str(degGroup)), minutes)
		return v, decimals, err
	}
}

func degMinSecAt(degGroup, minGroup, secGroup int) func(m submatch) (float64, int, error) {
	return func(m submatch) (float64, int, error) {
		seconds, decimals, err := parseNumber(m.str(secGroup))
		if err != nil {
			return 0, 0, err
		}
		v, err := degMinSec(parseInt(m.str(degGroup)), parseInt(m.str(minGroup)), seconds)
		return v, decimals, err
	}
}

// prefixAxis maps a grid prefix to its axis. X is the northing in the
// Swedish grids, Y the easting.
func prefixAxis(prefix string) geo.CoordAxis {
	switch strings.ToUpper(prefix) {
	case "N", "X", "NORDLIG":
		return geo.AxisNorthing
	case "E", "Y", "ÖSTLIG":
		return geo.AxisEasting
	}
	return geo.AxisUnknown
}

// prefixLetter is the direction letter implied by a grid prefix.
func prefixLetter(prefix string) string {
	switch prefixAxis(prefix) {
	case geo.AxisNorthing:
		return "N"
	case geo.AxisEasting:
		return "E"
	}
	return ""
}
