package pattern

import (
	"fmt"
	"strings"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/textpos"
)

// Component is one decoded axis value of a snippet.
type Component struct {
	Value    float64
	Letter   string // direction letter or word as written, "" when absent
	Decimals int
}

// Direction interprets the component's letter.
func (c Component) Direction() geo.CoordDirection {
	return geo.ParseDirection(c.Letter)
}

// Snippet is one recognized piece of text. Offsets are rune offsets into
// the original text; End is exclusive.
type Snippet struct {
	Text    string
	Offset  int
	End     int
	Line    int
	Pattern string
	Format  geo.CoordFormat

	// Value is the payload of a single-axis snippet.
	Value Component

	// Dual snippets carry both axes directly.
	Dual  bool
	North Component
	East  Component

	index *textpos.Index
}

// Direction returns the direction of a single-axis snippet.
func (s *Snippet) Direction() geo.CoordDirection {
	return s.Value.Direction()
}

// TextBefore returns the text preceding the snippet on its line.
func (s *Snippet) TextBefore(maxChars int, ellipsis bool) string {
	if s.index == nil {
		return ""
	}
	return s.index.Before(s.Offset, maxChars, ellipsis)
}

// TextAfter returns the text following the snippet on its line.
func (s *Snippet) TextAfter(maxChars int, ellipsis bool) string {
	if s.index == nil {
		return ""
	}
	return s.index.After(s.End, maxChars, ellipsis)
}

// Source returns the original text between two offsets of the same parse.
func (s *Snippet) Source(start, end int) string {
	if s.index == nil {
		return ""
	}
	return s.index.Slice(start, end)
}

// DebugText renders the snippet for parse logs, one field per line.
func (s *Snippet) DebugText(padding string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sSnippet (%s):\n", padding, s.Pattern)
	fmt.Fprintf(&b, "%s  text: '%s'\n", padding, s.Text)
	if s.Dual {
		fmt.Fprintf(&b, "%s  north: %g %s (%d decimals)\n", padding, s.North.Value, s.North.Letter, s.North.Decimals)
		fmt.Fprintf(&b, "%s  east: %g %s (%d decimals)\n", padding, s.East.Value, s.East.Letter, s.East.Decimals)
	} else {
		fmt.Fprintf(&b, "%s  number: %g\n", padding, s.Value.Value)
		fmt.Fprintf(&b, "%s  direction: %s\n", padding, s.Value.Letter)
		fmt.Fprintf(&b, "%s  decimals: %d\n", padding, s.Value.Decimals)
	}
	fmt.Fprintf(&b, "%s  format: %s\n", padding, s.Format)
	fmt.Fprintf(&b, "%s  offset: %d\n", padding, s.Offset)
	fmt.Fprintf(&b, "%s  line: %d", padding, s.Line)

	return b.String()
}
