// Package index builds the workspace-level SymbolIndex (spec.md §3's
// SymbolIndex, §4.4's resolver) out of the per-file HirSymbol lists
// hir.Extract produces. The visibility-map algorithm is grounded on
// cue/parser/resolve.go's scope.lookup/scope.insert outward-walking
// chain (_examples/cue-lang-cue/cue/parser/resolve.go), generalized from
// CUE's single flat per-file scope chain to a workspace-wide,
// import/filter-aware map.
package index

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
)

// SymbolIndex is the workspace-level aggregate described by spec.md §3.
// It is immutable once built except for its lazily-filled visibility
// cache, which is protected by mu and computed at most once per scope.
type SymbolIndex struct {
	in *intern.Interner

	byQualified map[intern.Name][]*hir.HirSymbol
	bySimple    map[intern.Name][]*hir.HirSymbol
	byFile      map[ids.FileId][]*hir.HirSymbol
	byParent    map[intern.Name][]*hir.HirSymbol
	scopeFilters map[intern.Name][]hir.ScopeFilter

	owned []hir.HirSymbol // backing storage; byXxx maps hold pointers into this

	mu         sync.RWMutex
	visibility map[intern.Name]*VisibilityMap
	// group ensures at-most-once computation per scope (spec.md §5):
	// concurrent readers racing VisibilityMap(scope) for the same scope
	// share one computation instead of duplicating work.
	group singleflight.Group
}

// Build assembles a SymbolIndex from every workspace file's extracted
// symbols, in FileId order for determinism. It does not resolve any
// TypeRef or Relationship target; call ResolveTypeRefs for that.
func Build(in *intern.Interner, files map[ids.FileId][]hir.HirSymbol, filters []hir.ScopeFilter) *SymbolIndex {
	total := 0
	for _, syms := range files {
		total += len(syms)
	}

	idx := &SymbolIndex{
		in:           in,
		byQualified:  make(map[intern.Name][]*hir.HirSymbol),
		bySimple:     make(map[intern.Name][]*hir.HirSymbol),
		byFile:       make(map[ids.FileId][]*hir.HirSymbol),
		byParent:     make(map[intern.Name][]*hir.HirSymbol),
		scopeFilters: make(map[intern.Name][]hir.ScopeFilter),
		owned:        make([]hir.HirSymbol, 0, total),
		visibility:   make(map[intern.Name]*VisibilityMap),
	}

	fileIDs := make([]ids.FileId, 0, len(files))
	for f := range files {
		fileIDs = append(fileIDs, f)
	}
	sortFileIDs(fileIDs)

	for _, f := range fileIDs {
		for _, s := range files[f] {
			idx.owned = append(idx.owned, s)
		}
	}

	// Re-walk owned to take stable pointers now that the backing array's
	// final size is known (appending above could have reallocated it).
	pos := 0
	for _, f := range fileIDs {
		n := len(files[f])
		for i := 0; i < n; i++ {
			sym := &idx.owned[pos]
			pos++
			idx.byFile[f] = append(idx.byFile[f], sym)
			idx.byQualified[sym.QualifiedName] = append(idx.byQualified[sym.QualifiedName], sym)
			idx.bySimple[sym.Name] = append(idx.bySimple[sym.Name], sym)
			idx.byParent[sym.Parent] = append(idx.byParent[sym.Parent], sym)
		}
	}

	for _, flt := range filters {
		idx.scopeFilters[flt.Scope] = append(idx.scopeFilters[flt.Scope], flt)
	}

	return idx
}

func sortFileIDs(f []ids.FileId) {
	for i := 1; i < len(f); i++ {
		for j := i; j > 0 && f[j] < f[j-1]; j-- {
			f[j], f[j-1] = f[j-1], f[j]
		}
	}
}

// ByQualified returns every symbol sharing qualified name q — ordinarily
// one, more than one only for a duplicate-definition diagnostic (E0004).
func (idx *SymbolIndex) ByQualified(q intern.Name) []*hir.HirSymbol { return idx.byQualified[q] }

// BySimple returns every symbol whose declared (or synthesized) simple
// name is n, across the whole workspace.
func (idx *SymbolIndex) BySimple(n intern.Name) []*hir.HirSymbol { return idx.bySimple[n] }

// ByFile returns file f's symbols in source order.
func (idx *SymbolIndex) ByFile(f ids.FileId) []*hir.HirSymbol { return idx.byFile[f] }

// ByParent returns the direct children of the scope qualified parent.
func (idx *SymbolIndex) ByParent(parent intern.Name) []*hir.HirSymbol { return idx.byParent[parent] }

// ScopeFilters returns the "filter @M;" statements declared directly in
// scope.
func (idx *SymbolIndex) ScopeFilters(scope intern.Name) []hir.ScopeFilter { return idx.scopeFilters[scope] }

// Interner returns the interner the index's Names were allocated from.
func (idx *SymbolIndex) Interner() *intern.Interner { return idx.in }

// AllSymbols returns every symbol in the index across all files, useful
// for workspace-wide scans (workspace_symbols, diagnostics).
func (idx *SymbolIndex) AllSymbols() []*hir.HirSymbol {
	out := make([]*hir.HirSymbol, len(idx.owned))
	for i := range idx.owned {
		out[i] = &idx.owned[i]
	}
	return out
}
