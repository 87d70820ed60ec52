package pattern

import (
	"github.com/aieuren/coordfinder/internal/geo"
)

// Building blocks shared by the expressions below.
const (
	dirClass = `[NSEWÖØV]`
	// optional direction letter before a number, not part of a word
	lead = `(?:(?<!\p{L})(` + dirClass + `)(?!\p{L})\s*)?`
	// optional direction letter after a number
	trail = `(?:\s*(` + dirClass + `)(?!\p{L}))?`

	degMark = `[°º]`
	minMark = "['′´`’]"
	secMark = `(?:["″”]|'')`

	// unsigned-or-signed number used by structured formats
	anyNumber = `-?\d+(?:\.\d+)?`
	// decimal degrees; a minus sign only right after a separator
	decimalDegrees = `(?<!\d)((?:(?<![^\s(\[,;:])-)?\d{1,3}[,.]\d+)(?!\d)`

	gridPrefix = `(Nordlig|Östlig|N|E|X|Y)`
	gridNumber = `(-?\d{5,}(?:\.\d+)?)`

	directionWord = `(Nordlig|Nord|Norr|Nor|North|Sydlig|Syd|Söder|Sør|South|Östlig|Öst|Øst|East|Västlig|Väst|Vest|West|N|S|E|W|V|Ö|Ø)`
	verbalAxis    = `(?<!\p{L})` + directionWord + `\s+(\d{1,3})\s+(?:grader?|grad|degrees?)\s+(\d{1,2}(?:[,.]\d+)?)\s+(?:minutt?er|minutes?|min)(?!\p{L})\.?`
)

// builtins lists the recognizers in priority order: structured and
// labelled notations first, generic numbers last.
func builtins() []definition {
	return []definition{
		{
			name:   "url",
			format: geo.FormatDecimalDegrees,
			expr:   `[@/](-?\d{1,3}\.\d+)[,/](-?\d{1,3}\.\d+)`,
			decode: pair(1, 2, true),
		},
		{
			name:   "geojson",
			format: geo.FormatDecimalDegrees,
			expr:   `["']coordinates["']\s*:\s*\[\s*(` + anyNumber + `)\s*,\s*(` + anyNumber + `)(?:\s*,\s*` + anyNumber + `)?\s*\]`,
			decode: pair(1, 2, false),
		},
		{
			name:   "gml-pos",
			format: geo.FormatDecimalDegrees,
			expr:   `<gml:pos>\s*(` + anyNumber + `)\s+(` + anyNumber + `)(?:\s+` + anyNumber + `)?\s*</gml:pos>`,
			decode: pair(1, 2, true),
		},
		{
			name:   "gml-coordinates",
			format: geo.FormatDecimalDegrees,
			expr:   `<gml:coordinates>\s*(` + anyNumber + `)\s*,\s*(` + anyNumber + `)\s*</gml:coordinates>`,
			decode: pair(1, 2, false),
		},
		{
			name:   "wkt",
			format: geo.FormatDecimalDegrees,
			expr:   `(?<!\p{L})POINT\s*(?:Z\s*)?\(\s*(` + anyNumber + `)\s+(` + anyNumber + `)(?:\s+` + anyNumber + `)?\s*\)`,
			decode: pair(1, 2, false),
		},
		{
			name:   "verbal",
			format: geo.FormatDegreesMinutes,
			expr:   verbalAxis + `,?\s+(?:(?:och|og|and)\s+)?` + verbalAxis,
			decode: decodeVerbal,
		},
		{
			name:   "url-params",
			format: geo.FormatMeters,
			expr:   `(?<!\p{L})([xy])\s*=\s*(` + anyNumber + `)\s*&(?:amp;)?\s*([xy])\s*=\s*(` + anyNumber + `)`,
			decode: decodeURLParams,
		},
		{
			name:   "grid-pair",
			format: geo.FormatMeters,
			expr:   `(?<!\p{L})` + gridPrefix + `\s*:\s*` + gridNumber + `[\s,;]+` + gridPrefix + `\s*:\s*` + gridNumber,
			decode: decodeGridPair,
		},
		{
			name:   "grid-single",
			format: geo.FormatMeters,
			expr:   `(?<!\p{L})` + gridPrefix + `\s*:\s*` + gridNumber,
			decode: decodeGridSingle,
		},
		{
			name:   "lat-long",
			format: geo.FormatDecimalDegrees,
			expr:   `(?<!\p{L})(?:Lat(?:itude?)?|N)\s*[:=]\s*(-?\d{1,3}(?:[,.]\d+)?)[\s,;]+(?:Lng|Lon(?:g(?:itude?)?)?|E)\s*[:=]\s*(-?\d{1,3}(?:[,.]\d+)?)`,
			decode: decodeLatLong,
		},
		{
			name:   "compact-dms",
			format: geo.FormatDegreesMinutesSeconds,
			expr:   `(?<!\d)(\d{6})(` + dirClass + `)(\d{7})(` + dirClass + `)(?!\p{L})`,
			decode: packed(packedDegMinSec),
		},
		{
			name:   "compact-dm",
			format: geo.FormatDegreesMinutesCombined,
			expr:   `(?<!\d)(\d{4})(` + dirClass + `)(\d{5})(` + dirClass + `)(?!\p{L})`,
			decode: packed(packedDegMin),
		},
		{
			name:   "compact-ddmm",
			format: geo.FormatDegreesMinutesCombined,
			expr:   `(?<!\d)(\d{2})\s*(\d{2}(?:[,.]\d+)?)\s*(` + dirClass + `)\s*-?\s*(\d{2,3})\s*(\d{2}(?:[,.]\d+)?)\s*(` + dirClass + `)(?!\p{L})`,
			decode: decodeCompactDDMM,
		},
		{
			name:   "plain-ddmm",
			format: geo.FormatDegreesMinutesCombined,
			expr:   `(?<![\d.,])\b(\d{4})\s+(\d{4})\b(?![.,]\d)`,
			decode: decodePlainDDMM,
		},
		{
			name:   "dms",
			format: geo.FormatDegreesMinutesSeconds,
			expr:   lead + `(?<!\d)(\d{1,3})\s*` + degMark + `\s*(\d{1,2})\s*` + minMark + `\s*(\d{1,2}(?:[,.]\d+)?)\s*` + secMark + trail,
			decode: single(1, 5, degMinSecAt(2, 3, 4)),
		},
		{
			name:   "dm-dash",
			format: geo.FormatDegreesMinutesCombined,
			expr:   `(?:(?<!\p{L})(` + dirClass + `))?(?<![\d.,-])(\d{2,4})(` + dirClass + `)?-(\d{2,4})(?![\d-])(?![.,]\d)(?:(` + dirClass + `)(?!\p{L}))?`,
			decode: decodeDegMinDash,
		},
		{
			name:   "dm",
			format: geo.FormatDegreesMinutes,
			expr:   lead + `(?<!\d)(\d{1,3})\s*` + degMark + `\s*(\d{1,2}(?:[,.]\d+)?)(?!\d)(?:\s*` + minMark + `)?` + trail,
			decode: single(1, 4, degMinAt(2, 3)),
		},
		{
			name:   "degrees-symbol",
			format: geo.FormatDecimalDegrees,
			expr:   lead + `(?<!\d)(\d{1,3}(?:[,.]\d+)?)\s*` + degMark + `(?!\s*[CF](?!\p{L}))` + trail,
			decode: single(1, 3, numberAt(2)),
		},
		{
			name:   "degrees-semicolon",
			format: geo.FormatDecimalDegrees,
			expr:   lead + decimalDegrees + `\s*;` + trail,
			decode: single(1, 3, numberAt(2)),
		},
		{
			name:   "degrees",
			format: geo.FormatDecimalDegrees,
			expr:   lead + decimalDegrees + `(?!\s*\))` + trail,
			decode: single(1, 3, numberAt(2)),
		},
		{
			name:   "plain",
			format: geo.FormatMeters,
			expr:   lead + `(?<!\d)(\d{5,}(?:\.\d+)?)(?!\d)` + trail,
			decode: single(1, 3, numberAt(2)),
		},
	}
}

func decodeVerbal(m submatch) (decoded, error) {
	first, second := verbalComponent(m, 1), verbalComponent(m, 4)
	if first.err != nil {
		return decoded{}, first.err
	}
	if second.err != nil {
		return decoded{}, second.err
	}

	if first.axis == geo.AxisEasting && second.axis == geo.AxisNorthing {
		first, second = second, first
	} else if first.axis != geo.AxisUnknown && first.axis == second.axis {
		return decoded{}, errSameAxis
	}

	return decoded{
		dual:  true,
		north: Component{Value: signed(first.value, first.letter, geo.AxisNorthing), Letter: first.letter, Decimals: first.decimals},
		east:  Component{Value: signed(second.value, second.letter, geo.AxisEasting), Letter: second.letter, Decimals: second.decimals},
	}, nil
}

type verbalPart struct {
	letter   string
	axis     geo.CoordAxis
	value    float64
	decimals int
	err      error
}

func verbalComponent(m submatch, group int) verbalPart {
	p := verbalPart{letter: m.str(group)}
	p.axis = geo.ParseDirection(p.letter).Axis()

	minutes, decimals, err := parseNumber(m.str(group + 2))
	if err != nil {
		p.err = err
		return p
	}
	p.decimals = decimals
	p.value, p.err = degMin(parseInt(m.str(group+1)), minutes)
	return p
}

func decodeURLParams(m submatch) (decoded, error) {
	k1, k2 := m.str(1), m.str(3)
	if equalFoldASCII(k1, k2) {
		return decoded{}, errSameAxis
	}

	v1, d1, err := parseNumber(m.str(2))
	if err != nil {
		return decoded{}, err
	}
	v2, d2, err := parseNumber(m.str(4))
	if err != nil {
		return decoded{}, err
	}

	// x is the easting and y the northing, as in web map links
	x, y := Component{Value: v1, Decimals: d1}, Component{Value: v2, Decimals: d2}
	if k1 == "y" || k1 == "Y" {
		x, y = y, x
	}

	return decoded{dual: true, north: y, east: x, format: plainOrMeters(x.Value, y.Value)}, nil
}

func decodeGridPair(m submatch) (decoded, error) {
	v1, d1, err := parseNumber(m.str(2))
	if err != nil {
		return decoded{}, err
	}
	v2, d2, err := parseNumber(m.str(4))
	if err != nil {
		return decoded{}, err
	}

	a := Component{Value: v1, Letter: prefixLetter(m.str(1)), Decimals: d1}
	b := Component{Value: v2, Letter: prefixLetter(m.str(3)), Decimals: d2}

	switch {
	case prefixAxis(m.str(1)) == geo.AxisEasting && prefixAxis(m.str(3)) == geo.AxisNorthing:
		a, b = b, a
	case prefixAxis(m.str(1)) == prefixAxis(m.str(3)):
		// labels contradict each other; keep text order and drop them
		a.Letter, b.Letter = "", ""
	}

	return decoded{dual: true, north: a, east: b}, nil
}

func decodeGridSingle(m submatch) (decoded, error) {
	v, decimals, err := parseNumber(m.str(2))
	if err != nil {
		return decoded{}, err
	}
	return decoded{single: Component{Value: v, Letter: prefixLetter(m.str(1)), Decimals: decimals}}, nil
}

func decodeLatLong(m submatch) (decoded, error) {
	lat, latDec, err := parseNumber(m.str(1))
	if err != nil {
		return decoded{}, err
	}
	lon, lonDec, err := parseNumber(m.str(2))
	if err != nil {
		return decoded{}, err
	}

	return decoded{
		dual:  true,
		north: Component{Value: lat, Letter: "N", Decimals: latDec},
		east:  Component{Value: lon, Letter: "E", Decimals: lonDec},
	}, nil
}

// packed decodes digit runs with attached letters, latitude first.
func packed(unpack func(string) (float64, error)) decoder {
	return func(m submatch) (decoded, error) {
		lat, err := unpack(m.str(1))
		if err != nil {
			return decoded{}, err
		}
		lon, err := unpack(m.str(3))
		if err != nil {
			return decoded{}, err
		}

		latLetter, lonLetter := m.str(2), m.str(4)
		return decoded{
			dual:  true,
			north: Component{Value: signed(lat, latLetter, geo.AxisNorthing), Letter: latLetter},
			east:  Component{Value: signed(lon, lonLetter, geo.AxisEasting), Letter: lonLetter},
		}, nil
	}
}

func decodeCompactDDMM(m submatch) (decoded, error) {
	latMin, latDec, err := parseNumber(m.str(2))
	if err != nil {
		return decoded{}, err
	}
	lonMin, lonDec, err := parseNumber(m.str(5))
	if err != nil {
		return decoded{}, err
	}
	lat, err := degMin(parseInt(m.str(1)), latMin)
	if err != nil {
		return decoded{}, err
	}
	lon, err := degMin(parseInt(m.str(4)), lonMin)
	if err != nil {
		return decoded{}, err
	}

	latLetter, lonLetter := m.str(3), m.str(6)
	return decoded{
		dual:  true,
		north: Component{Value: signed(lat, latLetter, geo.AxisNorthing), Letter: latLetter, Decimals: latDec},
		east:  Component{Value: signed(lon, lonLetter, geo.AxisEasting), Letter: lonLetter, Decimals: lonDec},
	}, nil
}

func decodePlainDDMM(m submatch) (decoded, error) {
	lat, err := packedDegMin(m.str(1))
	if err != nil {
		return decoded{}, err
	}
	lon, err := packedDegMin(m.str(2))
	if err != nil {
		return decoded{}, err
	}
	return decoded{dual: true, north: Component{Value: lat}, east: Component{Value: lon}}, nil
}

// decodeDegMinDash handles DD-MM and DDD-MM for one axis, and DDMM-DDMM
// for both axes at once.
func decodeDegMinDash(m submatch) (decoded, error) {
	part1, part2 := m.str(2), m.str(4)

	switch {
	case (len(part1) == 2 || len(part1) == 3) && len(part2) == 2:
		d, err := single(1, 5, degMinAt(2, 4))(m)
		if err == nil && d.single.Letter == "" {
			d.single.Letter = m.str(3)
		}
		return d, err

	case len(part1) == 4 && len(part2) == 4:
		lat, err := packedDegMin(part1)
		if err != nil {
			return decoded{}, err
		}
		lon, err := packedDegMin(part2)
		if err != nil {
			return decoded{}, err
		}

		latLetter := m.str(3)
		if latLetter == "" {
			latLetter = m.str(1)
		}
		lonLetter := m.str(5)
		return decoded{
			dual:  true,
			north: Component{Value: signed(lat, latLetter, geo.AxisNorthing), Letter: latLetter},
			east:  Component{Value: signed(lon, lonLetter, geo.AxisEasting), Letter: lonLetter},
		}, nil
	}

	return decoded{}, errShape
}

func equalFoldASCII(a, b string) bool {
	return len(a) == 1 && len(b) == 1 && a[0]|0x20 == b[0]|0x20
}
