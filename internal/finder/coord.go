package finder

import (
	"fmt"
	"math"
	"strings"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/pattern"
)

// Coord is one axis value found in the text.
type Coord struct {
	Value float64
	Axis  geo.CoordAxis

	// Letter is the direction letter or word written next to the value.
	Letter   string
	Decimals int
	Format   geo.CoordFormat

	// Snippet is the text the value was read from; nil for reprojected values.
	Snippet *pattern.Snippet
	// Point is the point the coordinate ended up in, nil while unpaired.
	Point *Point

	FailReason string
}

// coordFromSnippet builds the coordinate of a single-axis snippet. A
// direction letter fixes the axis, and South or West forces the sign
// negative whatever sign the number was written with.
func coordFromSnippet(s *pattern.Snippet) *Coord {
	return coordFromComponent(s, s.Value, s.Direction().Axis())
}

func coordFromComponent(s *pattern.Snippet, comp pattern.Component, axis geo.CoordAxis) *Coord {
	c := &Coord{
		Value:    comp.Value,
		Axis:     axis,
		Letter:   comp.Letter,
		Decimals: comp.Decimals,
		Format:   s.Format,
		Snippet:  s,
	}

	dir := comp.Direction()
	if dir.Axis() == axis && dir != geo.DirectionUnknown {
		c.Value = math.Abs(c.Value) * dir.Sign()
	}

	return c
}

// HasDirection reports whether a direction letter was written with the value.
func (c *Coord) HasDirection() bool { return c.Letter != "" }

// Line returns the zero-based line of the coordinate, or -1 without a snippet.
func (c *Coord) Line() int {
	if c.Snippet == nil {
		return -1
	}
	return c.Snippet.Line
}

// OriginalText returns the snippet text the coordinate was read from.
func (c *Coord) OriginalText() string {
	if c.Snippet == nil {
		return ""
	}
	return c.Snippet.Text
}

// TextBefore returns up to maxChars of line text in front of the coordinate.
func (c *Coord) TextBefore(maxChars int, ellipsis bool) string {
	if c.Snippet == nil {
		return ""
	}
	return c.Snippet.TextBefore(maxChars, ellipsis)
}

// TextAfter returns up to maxChars of line text after the coordinate.
func (c *Coord) TextAfter(maxChars int, ellipsis bool) string {
	if c.Snippet == nil {
		return ""
	}
	return c.Snippet.TextAfter(maxChars, ellipsis)
}

// MaxError is the rounding error implied by the last written digit, in the
// unit of the coordinate's format.
func (c *Coord) MaxError() float64 {
	if c.Snippet == nil {
		return 0
	}

	step := func(fallback float64) float64 {
		if c.Decimals > 0 {
			return math.Pow(10, -float64(c.Decimals))
		}
		return fallback
	}

	switch c.Format {
	case geo.FormatMeters:
		return step(1)
	case geo.FormatDecimalDegrees:
		return step(0.1)
	case geo.FormatDegreesMinutes, geo.FormatDegreesMinutesCombined:
		return step(1) / 60
	case geo.FormatDegreesMinutesSeconds:
		return step(1) / 3600
	}
	return 0
}

// DebugText renders the coordinate for parse logs.
func (c *Coord) DebugText(padding string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sCoord value: %g\n", padding, c.Value)
	fmt.Fprintf(&b, "%s  axis: %s", padding, c.Axis)
	if c.Snippet != nil {
		fmt.Fprintf(&b, "\n%s  parsed from: '%s'", padding, c.Snippet.Text)
		fmt.Fprintf(&b, "\n%s  format: %s", padding, c.Format)
	}
	if c.FailReason != "" {
		fmt.Fprintf(&b, "\n%s  unused: %s", padding, c.FailReason)
	}

	return b.String()
}

// skipReason tells why a single-axis snippet is not a coordinate, or "".
func skipReason(s *pattern.Snippet) string {
	before := strings.ToLower(s.TextBefore(10, false))
	if strings.HasSuffix(before, "!3d") || strings.HasSuffix(before, "!4d") {
		return "map link data parameter"
	}
	if isColumnFragment(s.Text) {
		return "CSV column"
	}
	return ""
}

// isColumnFragment matches a single digit, a comma and more digits, as
// left behind by comma separated tables.
func isColumnFragment(text string) bool {
	if len(text) < 3 || !isDigit(text[0]) || text[1] != ',' {
		return false
	}
	for i := 2; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
