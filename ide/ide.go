// Package ide implements the IDE-facing derived queries spec.md §6 lists
// — hover, goto_definition, find_references, document_symbols,
// workspace_symbols, completions, semantic_tokens, folding_ranges — each
// a pure function of a resolved index.SymbolIndex plus a file/offset, in
// the same "typed wrapper over already-computed state" shape as the
// teacher's cue/ast query helpers rather than anything stateful of its
// own.
package ide

import (
	"sort"
	"strings"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/index"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
)

// Location is a position within a specific file (spec.md §6's [Location]
// return types).
type Location struct {
	File  ids.FileId
	Range span.Range
}

// ResolvedRelationship pairs a Relationship with the Location its target
// resolved to, for Hover's relationship listing.
type ResolvedRelationship struct {
	Kind     hir.RelationshipKind
	Target   *hir.HirSymbol
	Location Location
}

// Hover is spec.md §6's "optional Hover { symbol, range, relationships }".
type Hover struct {
	Symbol        *hir.HirSymbol
	Range         span.Range
	Relationships []ResolvedRelationship
}

// Completion is one entry of spec.md §6's completions(file, offset)
// result shape.
type Completion struct {
	Name   string
	Kind   hir.SymbolKind
	Detail string
}

// SemanticToken is one entry of spec.md §6's semantic_tokens result.
type SemanticToken struct {
	Range     span.Range
	TokenType string
	Modifiers []string
}

// EnclosingSymbol returns the innermost symbol in file whose Range
// contains offset, or nil at the workspace root. "Innermost" is the
// symbol with the smallest range among all containing ranges.
func EnclosingSymbol(idx *index.SymbolIndex, file ids.FileId, offset int) *hir.HirSymbol {
	point := span.Range{Start: offset, End: offset}
	var best *hir.HirSymbol
	for _, s := range idx.ByFile(file) {
		if !s.Range.Contains(point) {
			continue
		}
		if best == nil || s.Range.Len() < best.Range.Len() {
			best = s
		}
	}
	return best
}

// typeRefAt returns the owning symbol and TypeRef whose Range (or, for a
// dotted chain, whose per-segment ChainRange) contains offset, if any.
func typeRefAt(idx *index.SymbolIndex, file ids.FileId, offset int) (*hir.HirSymbol, *hir.TypeRef) {
	point := span.Range{Start: offset, End: offset}
	for _, s := range idx.ByFile(file) {
		for i := range s.TypeRefs {
			tr := &s.TypeRefs[i]
			if tr.Range.Contains(point) {
				return s, tr
			}
			for _, cr := range tr.ChainRanges {
				if cr.Contains(point) {
					return s, tr
				}
			}
		}
		for i := range s.Relationships {
			tr := &s.Relationships[i].Target
			if tr.Range.Contains(point) {
				return s, tr
			}
		}
	}
	return nil, nil
}

// Hover answers spec.md §6's hover(file, offset): if offset lands on a
// reference, the hovered symbol is its resolved target; otherwise, if it
// lands on a declaration, the hovered symbol is the declaration itself.
// A reference that failed to resolve returns the unresolved TypeRef's
// owner and no target, consistent with spec.md §7's "goto/hover on an
// unresolved reference returns the unresolved symbol plus the
// diagnostic rather than failing."
func HoverAt(idx *index.SymbolIndex, file ids.FileId, offset int) *Hover {
	if owner, tr := typeRefAt(idx, file, offset); tr != nil {
		if !tr.ResolvedTarget.IsZero() {
			if targets := idx.ByQualified(tr.ResolvedTarget); len(targets) > 0 {
				return &Hover{Symbol: targets[0], Range: tr.Range, Relationships: relationshipsOf(idx, targets[0])}
			}
		}
		return &Hover{Symbol: owner, Range: tr.Range}
	}
	if sym := EnclosingSymbol(idx, file, offset); sym != nil {
		return &Hover{Symbol: sym, Range: sym.NameRange, Relationships: relationshipsOf(idx, sym)}
	}
	return nil
}

func relationshipsOf(idx *index.SymbolIndex, sym *hir.HirSymbol) []ResolvedRelationship {
	var out []ResolvedRelationship
	for _, rel := range sym.Relationships {
		if rel.ResolvedTarget.IsZero() {
			continue
		}
		targets := idx.ByQualified(rel.ResolvedTarget)
		if len(targets) == 0 {
			continue
		}
		out = append(out, ResolvedRelationship{
			Kind: rel.Kind, Target: targets[0],
			Location: Location{File: targets[0].File, Range: targets[0].NameRange},
		})
	}
	return out
}

// GotoDefinition answers spec.md §6's goto_definition(file, offset): the
// location(s) of the reference's resolved target(s) under the cursor —
// more than one only when resolution is Ambiguous (spec.md §4.4's
// example 2's cross-file goto-definition, generalized to the ambiguous
// case by returning every candidate instead of failing outright).
func GotoDefinition(idx *index.SymbolIndex, file ids.FileId, offset int) []Location {
	owner, tr := typeRefAt(idx, file, offset)
	if tr == nil {
		return nil
	}
	if !tr.ResolvedTarget.IsZero() {
		var out []Location
		for _, s := range idx.ByQualified(tr.ResolvedTarget) {
			out = append(out, Location{File: s.File, Range: s.NameRange})
		}
		return out
	}
	res := index.ResolveBase(idx, owner.Parent, index.ExprOf(idx, *tr))
	var out []Location
	for _, c := range res.Candidates {
		out = append(out, Location{File: c.File, Range: c.NameRange})
	}
	return out
}

// FindReferences answers spec.md §6's find_references(file, offset):
// every TypeRef/Relationship target across the whole workspace whose
// resolved_target names the symbol under the cursor, plus the
// declaration's own location.
func FindReferences(idx *index.SymbolIndex, file ids.FileId, offset int) []Location {
	sym := EnclosingSymbol(idx, file, offset)
	if sym == nil {
		return nil
	}
	var out []Location
	out = append(out, Location{File: sym.File, Range: sym.NameRange})
	for _, s := range idx.AllSymbols() {
		for _, tr := range s.TypeRefs {
			if tr.ResolvedTarget == sym.QualifiedName {
				out = append(out, Location{File: s.File, Range: tr.Range})
			}
		}
		for _, rel := range s.Relationships {
			if rel.ResolvedTarget == sym.QualifiedName {
				out = append(out, Location{File: s.File, Range: rel.Target.Range})
			}
		}
	}
	return out
}

// DocumentSymbols answers spec.md §6's document_symbols(file): file's
// own symbols, tree-shaped via each HirSymbol's own Parent link.
func DocumentSymbols(idx *index.SymbolIndex, file ids.FileId) []*hir.HirSymbol {
	return idx.ByFile(file)
}

// WorkspaceSymbols answers spec.md §6's workspace_symbols(query): every
// symbol across the workspace whose simple name contains query
// (case-insensitive substring match), sorted by name then file.
func WorkspaceSymbols(idx *index.SymbolIndex, query string) []*hir.HirSymbol {
	q := strings.ToLower(query)
	var out []*hir.HirSymbol
	for _, s := range idx.AllSymbols() {
		if s.IsAnonymous {
			continue
		}
		if strings.Contains(strings.ToLower(idx.Interner().String(s.Name)), q) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := idx.Interner().String(out[i].Name), idx.Interner().String(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].File < out[j].File
	})
	return out
}

// Completions answers spec.md §6's completions(file, offset): every name
// visible from the enclosing scope at offset.
func Completions(idx *index.SymbolIndex, file ids.FileId, offset int) []Completion {
	vm := idx.VisibilityMap(enclosingScopeName(idx, file, offset))
	seen := map[string]bool{}
	var out []Completion
	// VisibilityMap doesn't expose iteration directly, only Lookup by
	// name; probe it with every distinct name known to the workspace
	// rather than walking its private candidate map.
	for _, sym := range idx.AllSymbols() {
		if sym.IsAnonymous {
			continue
		}
		name := idx.Interner().String(sym.Name)
		if seen[name] {
			continue
		}
		winners, _ := vm.Lookup(sym.Name)
		if len(winners) == 0 {
			continue
		}
		seen[name] = true
		out = append(out, Completion{Name: name, Kind: winners[0].Kind, Detail: idx.Interner().String(winners[0].QualifiedName)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func enclosingScopeName(idx *index.SymbolIndex, file ids.FileId, offset int) intern.Name {
	if sym := EnclosingSymbol(idx, file, offset); sym != nil {
		return sym.QualifiedName
	}
	return 0
}

// SemanticTokens answers spec.md §6's semantic_tokens(file): one token
// per declared symbol's name range, typed by its SymbolKind and
// modifiers reflecting its declared flags.
func SemanticTokens(idx *index.SymbolIndex, file ids.FileId) []SemanticToken {
	var out []SemanticToken
	for _, s := range idx.ByFile(file) {
		if s.IsAnonymous {
			continue
		}
		var mods []string
		if !s.IsPublic {
			mods = append(mods, "private")
		}
		if s.IsAbstract {
			mods = append(mods, "abstract")
		}
		if s.IsVariation {
			mods = append(mods, "variation")
		}
		if s.IsDerived {
			mods = append(mods, "derived")
		}
		if s.IsReadonly {
			mods = append(mods, "readonly")
		}
		out = append(out, SemanticToken{Range: s.NameRange, TokenType: s.Kind.String(), Modifiers: mods})
	}
	return out
}

// FoldingRanges answers spec.md §6's folding_ranges(file): every
// symbol's own Range that spans more than one line, per lines.
func FoldingRanges(idx *index.SymbolIndex, file ids.FileId, lines *span.LineIndex) []span.Range {
	var out []span.Range
	for _, s := range idx.ByFile(file) {
		if lines.LineCol(s.Range.Start).Line != lines.LineCol(s.Range.End).Line {
			out = append(out, s.Range)
		}
	}
	return out
}
