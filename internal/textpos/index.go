// Package textpos maps positions in scanned text back to the original input.
//
// The scanner works on a normalized copy of the input (NFC, every whitespace
// run collapsed to a single space). Index keeps the offset map from normalized
// runes to the runes of the text the caller passed in, so snippets report
// offsets, lines and context against that text.
package textpos

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Index is an immutable lookup structure built once per parse.
type Index struct {
	original   []rune
	normalized []rune
	// normalized rune i comes from original runes [origin[i], originEnd[i]);
	// origin[len] is len(original).
	origin    []int
	originEnd []int
	// lineStarts holds the original offset of the first rune of every line.
	lineStarts []int
}

// New normalizes text and builds the offset and line tables.
func New(text string) *Index {
	orig := []rune(text)

	idx := &Index{
		original:   orig,
		normalized: make([]rune, 0, len(orig)),
		origin:     make([]int, 0, len(orig)+1),
		originEnd:  make([]int, 0, len(orig)),
		lineStarts: []int{0},
	}

	for i, r := range orig {
		if r == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}

	var it norm.Iter
	it.InitString(norm.NFC, text)

	bytePos, runePos := 0, 0
	inSpace := false
	for !it.Done() {
		seg := []rune(string(it.Next()))
		next := it.Pos()
		n := utf8.RuneCountInString(text[bytePos:next])

		for k, r := range seg {
			// unchanged segments map rune by rune, composed ones as a whole
			start, end := runePos, runePos+n
			if len(seg) == n {
				start, end = runePos+k, runePos+k+1
			}

			if unicode.IsSpace(r) {
				if inSpace {
					idx.originEnd[len(idx.originEnd)-1] = end
					continue
				}
				inSpace = true
				r = ' '
			} else {
				inSpace = false
			}
			idx.normalized = append(idx.normalized, r)
			idx.origin = append(idx.origin, start)
			idx.originEnd = append(idx.originEnd, end)
		}

		bytePos, runePos = next, runePos+n
	}
	idx.origin = append(idx.origin, len(orig))

	return idx
}

// Normalized returns the runes the scanner works on. Callers must not modify it.
func (x *Index) Normalized() []rune { return x.normalized }

// Len returns the length of the original text in runes.
func (x *Index) Len() int { return len(x.original) }

// Empty reports whether the text holds anything but whitespace.
func (x *Index) Empty() bool { return strings.TrimSpace(string(x.normalized)) == "" }

// Original maps a normalized offset to the original offset.
func (x *Index) Original(normOffset int) int {
	if normOffset < 0 {
		return 0
	}
	if normOffset >= len(x.origin) {
		return len(x.original)
	}
	return x.origin[normOffset]
}

// Span maps a normalized [start, end) range to the original range.
// The end is taken just after the last rune so collapsed whitespace
// following the span is not included.
func (x *Index) Span(start, end int) (int, int) {
	if end <= start {
		o := x.Original(start)
		return o, o
	}
	if end > len(x.originEnd) {
		return x.Original(start), len(x.original)
	}
	return x.Original(start), x.originEnd[end-1]
}

// Slice returns original text between two original offsets.
func (x *Index) Slice(start, end int) string {
	start = clamp(start, 0, len(x.original))
	end = clamp(end, start, len(x.original))
	return string(x.original[start:end])
}

// LineNo returns the zero-based line holding the original offset.
func (x *Index) LineNo(offset int) int {
	lo, hi := 0, len(x.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineCount returns the number of lines in the original text.
func (x *Index) LineCount() int { return len(x.lineStarts) }

// lineBounds returns the original [start, end) of a line without its terminator.
func (x *Index) lineBounds(lineNo int) (int, int) {
	if lineNo < 0 || lineNo >= len(x.lineStarts) {
		return 0, 0
	}
	start := x.lineStarts[lineNo]
	end := len(x.original)
	if lineNo+1 < len(x.lineStarts) {
		end = x.lineStarts[lineNo+1] - 1
	}
	if end > start && x.original[end-1] == '\r' {
		end--
	}
	return start, end
}

// LineText returns the text of a line, or "" when out of range.
func (x *Index) LineText(lineNo int) string {
	start, end := x.lineBounds(lineNo)
	return string(x.original[start:end])
}

// Before returns the trimmed text on the same line preceding offset,
// keeping at most maxChars runes (0 means no limit) from its end.
func (x *Index) Before(offset, maxChars int, ellipsis bool) string {
	start, _ := x.lineBounds(x.LineNo(offset))
	before := []rune(strings.TrimSpace(x.Slice(start, offset)))
	if maxChars > 0 && len(before) > maxChars {
		s := string(before[len(before)-maxChars:])
		if ellipsis {
			s = "..." + s
		}
		return s
	}
	return string(before)
}

// After returns the trimmed text on the same line following end,
// keeping at most maxChars runes (0 means no limit) from its start.
func (x *Index) After(end, maxChars int, ellipsis bool) string {
	line := x.LineNo(end)
	if end > 0 {
		// end is exclusive; the line is the one holding the last rune
		line = x.LineNo(end - 1)
	}
	_, lineEnd := x.lineBounds(line)
	after := []rune(strings.TrimSpace(x.Slice(end, lineEnd)))
	if maxChars > 0 && len(after) > maxChars {
		s := string(after[:maxChars])
		if ellipsis {
			s += "..."
		}
		return s
	}
	return string(after)
}

// Preceding returns up to n original runes immediately before offset.
func (x *Index) Preceding(offset, n int) string {
	return x.Slice(offset-n, offset)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
