// Package pattern recognizes coordinate notations in text. A Library is an
// ordered list of recognizers; Scan walks the text and emits one Snippet per
// recognized notation, preferring the earliest match and, on equal start,
// the recognizer listed first.
package pattern

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/aieuren/coordfinder/internal/geo"
)

const (
	reOptions = regexp2.IgnoreCase | regexp2.ECMAScript
	// guards against pathological backtracking on hostile input
	matchTimeout = 2 * time.Second
)

// Pattern is one recognizer: a regular expression, the format it yields
// and the decoder turning a match into values.
type Pattern struct {
	Name   string
	Format geo.CoordFormat

	expr   string
	re     *regexp2.Regexp
	decode decoder
}

// Expr returns the source of the pattern's regular expression.
func (p *Pattern) Expr() string { return p.expr }

// Library is an ordered, read-only list of patterns. It is safe for
// concurrent use.
type Library struct {
	patterns []*Pattern
}

type definition struct {
	name   string
	format geo.CoordFormat
	expr   string
	decode decoder
}

func compile(defs []definition) (*Library, error) {
	lib := &Library{patterns: make([]*Pattern, 0, len(defs))}

	for _, d := range defs {
		re, err := regexp2.Compile(d.expr, reOptions)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %s: %w", d.name, err)
		}
		re.MatchTimeout = matchTimeout

		lib.patterns = append(lib.patterns, &Pattern{
			Name:   d.name,
			Format: d.format,
			expr:   d.expr,
			re:     re,
			decode: d.decode,
		})
	}

	return lib, nil
}

var defaultLibrary = sync.OnceValue(func() *Library {
	lib, err := compile(builtins())
	if err != nil {
		panic(err)
	}
	return lib
})

// Default returns the built-in library, compiled once per process.
func Default() *Library { return defaultLibrary() }

// Patterns returns the patterns in priority order.
func (l *Library) Patterns() []*Pattern {
	out := make([]*Pattern, len(l.patterns))
	copy(out, l.patterns)
	return out
}

// Lookup returns the pattern with the given name.
func (l *Library) Lookup(name string) (*Pattern, bool) {
	for _, p := range l.patterns {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Only returns a library restricted to the named patterns, keeping the
// library's order.
func (l *Library) Only(names ...string) (*Library, error) {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := l.Lookup(n); !ok {
			return nil, fmt.Errorf("unknown pattern %q", n)
		}
		keep[n] = true
	}

	out := &Library{}
	for _, p := range l.patterns {
		if keep[p.Name] {
			out.patterns = append(out.patterns, p)
		}
	}
	return out, nil
}

// Custom is a caller supplied recognizer for a notation that carries both
// axes. Decode receives the match groups, the whole match at index 0.
type Custom struct {
	Name   string
	Format geo.CoordFormat
	Expr   string
	Decode func(groups []string) (north, east Component, err error)
}

// With returns a library with the custom patterns appended after the
// library's own, so built-in notations keep priority on equal starts.
func (l *Library) With(custom ...Custom) (*Library, error) {
	defs := make([]definition, 0, len(custom))
	for _, c := range custom {
		if _, ok := l.Lookup(c.Name); ok {
			return nil, fmt.Errorf("duplicate pattern %q", c.Name)
		}
		if c.Decode == nil {
			return nil, fmt.Errorf("pattern %s has no decoder", c.Name)
		}

		decode := c.Decode
		defs = append(defs, definition{
			name:   c.Name,
			format: c.Format,
			expr:   c.Expr,
			decode: func(m submatch) (decoded, error) {
				north, east, err := decode(m.groups())
				if err != nil {
					return decoded{}, err
				}
				return decoded{dual: true, north: north, east: east}, nil
			},
		})
	}

	extra, err := compile(defs)
	if err != nil {
		return nil, err
	}

	return &Library{patterns: append(l.Patterns(), extra.patterns...)}, nil
}
