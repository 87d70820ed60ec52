package pattern

import (
	"fmt"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/aieuren/coordfinder/internal/textpos"
)

// Rejection describes a match the decoder refused, for parse logs.
type Rejection struct {
	Pattern string
	Text    string
	Offset  int
	Reason  error
}

// Scan finds all snippets in the indexed text, in document order.
func (l *Library) Scan(idx *textpos.Index) ([]*Snippet, []Rejection, error) {
	var snippets []*Snippet
	rejected, err := l.ScanFunc(idx, func(s *Snippet) {
		snippets = append(snippets, s)
	})
	return snippets, rejected, err
}

// ScanFunc is Scan handing every snippet to found as soon as it is decoded.
//
// At every cursor position the earliest match over all patterns wins; on
// equal start the pattern listed first wins. The cursor then moves past the
// snippet. A match whose decoder rejects it is skipped by one rune so later
// patterns get a chance at the same text.
func (l *Library) ScanFunc(idx *textpos.Index, found func(*Snippet)) ([]Rejection, error) {
	text := idx.Normalized()

	var rejected []Rejection

	// next[i] is the leftmost match of pattern i at or after the cursor it
	// was searched from; it stays valid while it starts at or after pos.
	next := make([]*regexp2.Match, len(l.patterns))
	done := make([]bool, len(l.patterns))

	pos := 0
	for pos < len(text) {
		best := -1
		var bestMatch *regexp2.Match

		for i, p := range l.patterns {
			if done[i] {
				continue
			}
			m := next[i]
			if m == nil || m.Index < pos {
				var err error
				m, err = p.re.FindRunesMatchStartingAt(text, pos)
				if err != nil {
					return rejected, fmt.Errorf("pattern %s at %d: %w", p.Name, pos, err)
				}
				if m == nil {
					done[i] = true
					next[i] = nil
					continue
				}
				next[i] = m
			}
			if best < 0 || m.Index < bestMatch.Index {
				best, bestMatch = i, m
			}
		}

		if best < 0 {
			break
		}

		p := l.patterns[best]
		s, end, err := p.snippet(idx, bestMatch)
		if err != nil {
			rejected = append(rejected, Rejection{
				Pattern: p.Name,
				Text:    bestMatch.String(),
				Offset:  idx.Original(bestMatch.Index),
				Reason:  err,
			})
			pos = bestMatch.Index + 1
			continue
		}

		found(s)
		pos = max(end, bestMatch.Index+1)
	}

	return rejected, nil
}

// snippet decodes a match and places it in the original text. It returns
// the normalized offset the cursor continues from.
func (p *Pattern) snippet(idx *textpos.Index, m *regexp2.Match) (*Snippet, int, error) {
	d, err := p.decode(submatch{m})
	if err != nil {
		return nil, 0, err
	}

	text := idx.Normalized()
	start, end := m.Index, m.Index+m.Length
	if d.cut > start && d.cut < end {
		end = d.cut
	}
	for start < end && unicode.IsSpace(text[start]) {
		start++
	}
	for end > start && unicode.IsSpace(text[end-1]) {
		end--
	}

	origStart, origEnd := idx.Span(start, end)
	format := p.Format
	if d.format != 0 {
		format = d.format
	}

	s := &Snippet{
		Text:    idx.Slice(origStart, origEnd),
		Offset:  origStart,
		End:     origEnd,
		Line:    idx.LineNo(origStart),
		Pattern: p.Name,
		Format:  format,
		Value:   d.single,
		Dual:    d.dual,
		North:   d.north,
		East:    d.east,
		index:   idx,
	}

	return s, end, nil
}

// submatch wraps a match with group accessors that tolerate groups which
// did not participate.
type submatch struct {
	m *regexp2.Match
}

func (s submatch) has(i int) bool {
	g := s.m.GroupByNumber(i)
	return g != nil && len(g.Captures) > 0
}

func (s submatch) str(i int) string {
	if !s.has(i) {
		return ""
	}
	return s.m.GroupByNumber(i).String()
}

// groups returns every group as a string, the whole match first.
func (s submatch) groups() []string {
	out := make([]string, s.m.GroupCount())
	for i := range out {
		out[i] = s.str(i)
	}
	return out
}

func (s submatch) start(i int) int {
	if !s.has(i) {
		return -1
	}
	return s.m.GroupByNumber(i).Index
}
