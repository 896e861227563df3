// Package sourcemap owns spirit-filter source text and maps byte ranges
// within it to line/column positions and underlined code snippets, the
// way the diagnostics engine needs to print `error: ...` with a pointer
// at the offending text.
package sourcemap

import (
	"strings"
)

// Range is a half-open byte range [Start, Start+Len) into a Map's text.
// Every AST node and every compiled condition/action carries one of
// these as its origin.
type Range struct {
	Start int
	Len   int
}

// End returns the exclusive end offset of the range.
func (r Range) End() int { return r.Start + r.Len }

// Join returns the smallest range covering both r and other. Used when
// a sequence's origin must cover every element's origin.
func (r Range) Join(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End()
	if other.End() > end {
		end = other.End()
	}
	return Range{Start: start, Len: end - start}
}

// Map owns the full source text and a precomputed index of line-start
// byte offsets, so that locating the line containing an arbitrary byte
// offset is a binary search rather than a linear scan.
type Map struct {
	text        string
	lineStarts  []int // lineStarts[i] = byte offset where line i+1 begins
}

// New builds a Map over the given source text.
func New(text string) *Map {
	m := &Map{text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
	return m
}

// Text returns the full source text.
func (m *Map) Text() string { return m.text }

// Len returns the length of the source text in bytes.
func (m *Map) Len() int { return len(m.text) }

// Slice returns the raw bytes covered by r, clamped to the text bounds.
func (m *Map) Slice(r Range) string {
	start := clamp(r.Start, 0, len(m.text))
	end := clamp(r.End(), 0, len(m.text))
	if end < start {
		end = start
	}
	return m.text[start:end]
}

// LineOf returns the 1-based line number containing byte offset.
func (m *Map) LineOf(offset int) int {
	// binary search for the last lineStarts[i] <= offset
	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// lineBounds returns the half-open byte range of 1-based line number.
func (m *Map) lineBounds(line int) (int, int) {
	idx := line - 1
	if idx < 0 || idx >= len(m.lineStarts) {
		return len(m.text), len(m.text)
	}
	start := m.lineStarts[idx]
	end := len(m.text)
	if idx+1 < len(m.lineStarts) {
		end = m.lineStarts[idx+1]
	}
	// strip the trailing newline from the line's content bounds
	for end > start && (m.text[end-1] == '\n' || m.text[end-1] == '\r') {
		end--
	}
	return start, end
}

// LineText returns the text of a 1-based line number, without its
// trailing newline.
func (m *Map) LineText(line int) string {
	start, end := m.lineBounds(line)
	return m.text[start:end]
}

// Underline describes how to render one intersected line of a range:
// the line's raw text, how many leading bytes are indent (kept as-is in
// the gutter-aligned rendering), and where the `~~~` underline begins
// and how long it runs.
type Underline struct {
	Line          int
	LineText      string
	UnderlineFrom int // byte offset into LineText where '~' begins
	UnderlineLen  int
}

// CodeUnderliner yields one Underline per source line intersected by a
// Range, in order, enough for the diagnostics printer to render:
//
//	12 | const foo = BAD
//	   |             ~~~
func (m *Map) CodeUnderliner(r Range) []Underline {
	if r.Len <= 0 {
		r.Len = 1
	}
	firstLine := m.LineOf(r.Start)
	lastLine := m.LineOf(maxInt(r.Start, r.End()-1))

	var out []Underline
	for line := firstLine; line <= lastLine; line++ {
		lineStart, lineEnd := m.lineBounds(line)
		from := maxInt(r.Start, lineStart) - lineStart
		to := minInt(r.End(), lineEnd) - lineStart
		if to < from {
			to = from
		}
		out = append(out, Underline{
			Line:          line,
			LineText:      m.text[lineStart:lineEnd],
			UnderlineFrom: from,
			UnderlineLen:  to - from,
		})
	}
	return out
}

// TrimmedSnippet returns the source text covering r's lines, useful for
// diagnostics that want to show surrounding context without computing
// underline offsets themselves.
func (m *Map) TrimmedSnippet(r Range) string {
	under := m.CodeUnderliner(r)
	lines := make([]string, 0, len(under))
	for _, u := range under {
		lines = append(lines, u.LineText)
	}
	return strings.Join(lines, "\n")
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
