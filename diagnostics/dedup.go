package diagnostics

import (
	"github.com/mpvl/unique"

	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/span"
)

// dedupKey is the (file, line, column, message) tuple spec.md §4.5
// requires the diagnostics pass to deduplicate on.
type dedupKey struct {
	file         ids.FileId
	line, column int
	message      string
}

// byDedupKey sorts Diagnostics by their dedup key so that identical
// tuples become adjacent, which is what unique.Sort requires to find
// them.
type byDedupKey struct {
	diags []Diagnostic
	keys  []dedupKey
}

func (b byDedupKey) Len() int { return len(b.diags) }

func (b byDedupKey) Less(i, j int) bool {
	a, c := b.keys[i], b.keys[j]
	if a.file != c.file {
		return a.file < c.file
	}
	if a.line != c.line {
		return a.line < c.line
	}
	if a.column != c.column {
		return a.column < c.column
	}
	return a.message < c.message
}

func (b byDedupKey) Swap(i, j int) {
	b.diags[i], b.diags[j] = b.diags[j], b.diags[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// Dedup collapses Diagnostics that share the same (file, line, column,
// message) tuple (spec.md §4.5's "deduplicates identical ... tuples"),
// using mpvl/unique.Sort to sort-and-compact in place the way the
// teacher's corpus uses it for the same small-set dedup shape.
func Dedup(diags []Diagnostic, lines map[ids.FileId]*span.LineIndex) []Diagnostic {
	if len(diags) == 0 {
		return diags
	}
	keys := make([]dedupKey, len(diags))
	for i, d := range diags {
		lc := span.LineCol{}
		if li := lines[d.File]; li != nil {
			lc = li.LineCol(d.Range.Start)
		}
		keys[i] = dedupKey{file: d.File, line: lc.Line, column: lc.Column, message: d.Message}
	}
	n := unique.Sort(byDedupKey{diags: diags, keys: keys})
	return diags[:n]
}
