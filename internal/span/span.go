// Package span provides the byte-range and line/column position types
// used throughout the CST, HIR, and diagnostics. The line-index structure
// is grounded on cue/token.File's AddLine/Position machinery: lines are
// recorded as a sorted slice of line-start byte offsets and positions are
// found with a binary search, rather than scanning the source on every
// query.
package span

import "sort"

// Range is a half-open byte range [Start, End) within a file's text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes spanned by r.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether s lies entirely within r's bytes (r.Start <=
// s.Start and s.End <= r.End), so a range contains itself. Package ide
// uses it to test whether a cursor position falls inside a symbol or a
// reference.
func (r Range) Contains(s Range) bool {
	return r.Start <= s.Start && s.End <= r.End
}

// Union returns the smallest range containing both r and s.
func (r Range) Union(s Range) Range {
	if s.Start < r.Start {
		r.Start = s.Start
	}
	if s.End > r.End {
		r.End = s.End
	}
	return r
}

// LineCol is a zero-indexed line and a zero-indexed column (byte count
// within the line), as spec.md §3 requires: "a line-index structure that
// maps byte offsets to zero-indexed (line, column) pairs."
type LineCol struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets within one file's text to LineCol pairs,
// computed once by NewLineIndex from the raw text and kept for the life
// of the index.
type LineIndex struct {
	// lineStarts[i] is the byte offset of the first byte of line i (0-based).
	lineStarts []int
	size       int
}

// NewLineIndex scans text once to record the offset of the start of every
// line.
func NewLineIndex(text string) *LineIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStarts: starts, size: len(text)}
}

// LineCol converts a byte offset into a zero-indexed (line, column) pair.
// Offsets beyond the end of the text clamp to the last known position.
func (li *LineIndex) LineCol(offset int) LineCol {
	if offset < 0 {
		offset = 0
	}
	if offset > li.size {
		offset = li.size
	}
	// Find the last line start <= offset.
	i := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	})
	line := i - 1
	if line < 0 {
		line = 0
	}
	return LineCol{Line: line, Column: offset - li.lineStarts[line]}
}

// Offset converts a (line, column) pair back to a byte offset. Out-of-range
// lines clamp to the nearest valid line.
func (li *LineIndex) Offset(lc LineCol) int {
	line := lc.Line
	if line < 0 {
		line = 0
	}
	if line >= len(li.lineStarts) {
		line = len(li.lineStarts) - 1
	}
	off := li.lineStarts[line] + lc.Column
	if off > li.size {
		off = li.size
	}
	return off
}

// LineCount reports the number of lines recorded.
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }
