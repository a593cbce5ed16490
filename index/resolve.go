package index

import (
	"strings"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/internal/intern"
)

// ResolveStatus is the outcome of a name resolution (spec.md §4.4's
// "Found(symbol), NotFound, or Ambiguous(candidates)").
type ResolveStatus uint8

const (
	Found ResolveStatus = iota
	NotFound
	Ambiguous
)

func (s ResolveStatus) String() string {
	switch s {
	case Found:
		return "Found"
	case Ambiguous:
		return "Ambiguous"
	default:
		return "NotFound"
	}
}

// ResolveResult is the answer to one resolve(scope, expr) call.
type ResolveResult struct {
	Status     ResolveStatus
	Symbol     *hir.HirSymbol   // set iff Status == Found
	Candidates []*hir.HirSymbol // set iff Status == Ambiguous
}

// Resolve implements spec.md §4.4's resolution algorithm: split e on "::",
// restarting at the workspace root on a leading "$::"; resolve the first
// segment in scope's visibility map, then walk each subsequent segment as
// a direct child of the previous result.
func Resolve(idx *SymbolIndex, scope intern.Name, e string) ResolveResult {
	segs, root := splitQualified(e)
	if len(segs) == 0 {
		return ResolveResult{Status: NotFound}
	}
	if root {
		scope = 0
	}

	vm := idx.VisibilityMap(scope)
	winners, ambiguous := vm.Lookup(idx.in.Intern(segs[0]))
	if ambiguous {
		return ResolveResult{Status: Ambiguous, Candidates: winners}
	}
	if len(winners) == 0 {
		return ResolveResult{Status: NotFound}
	}
	cur := winners[0]

	for _, seg := range segs[1:] {
		name := idx.in.Intern(seg)
		var next *hir.HirSymbol
		var ambig []*hir.HirSymbol
		for _, s := range idx.byParent[cur.QualifiedName] {
			if s.Name == name {
				ambig = append(ambig, s)
			}
		}
		switch len(ambig) {
		case 0:
			return ResolveResult{Status: NotFound}
		case 1:
			next = ambig[0]
		default:
			return ResolveResult{Status: Ambiguous, Candidates: ambig}
		}
		cur = next
	}
	return ResolveResult{Status: Found, Symbol: cur}
}

// splitQualified splits a "::"-joined path into its segments, reporting
// whether it began with "$::" (workspace-root restart, spec.md §4.4).
func splitQualified(e string) (segs []string, root bool) {
	if strings.HasPrefix(e, "$::") {
		root = true
		e = strings.TrimPrefix(e, "$::")
	}
	for _, s := range strings.Split(e, "::") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs, root
}

// ResolveChain resolves a dotted feature chain a.b.c from scope: a is
// resolved as a name, then each subsequent segment as a member of the
// previous segment's own children (spec.md §4.4: "resolve a, then resolve
// b as a member of a's resolved type ... recursively following
// typing/specialization"). Type inference beyond the declared typing
// relationship is out of scope (spec.md non-goals), so a segment is
// looked up directly among its predecessor's children rather than through
// a fully inferred structural type.
func ResolveChain(idx *SymbolIndex, scope intern.Name, chain []intern.Name) ResolveResult {
	if len(chain) == 0 {
		return ResolveResult{Status: NotFound}
	}
	vm := idx.VisibilityMap(scope)
	winners, ambiguous := vm.Lookup(chain[0])
	if ambiguous {
		return ResolveResult{Status: Ambiguous, Candidates: winners}
	}
	if len(winners) == 0 {
		return ResolveResult{Status: NotFound}
	}
	cur := winners[0]

	for _, seg := range chain[1:] {
		owner := cur.QualifiedName
		if len(cur.TypeRefs) > 0 && !cur.TypeRefs[0].ResolvedTarget.IsZero() {
			owner = cur.TypeRefs[0].ResolvedTarget
		}
		var ambig []*hir.HirSymbol
		for _, s := range idx.byParent[owner] {
			if s.Name == seg {
				ambig = append(ambig, s)
			}
		}
		switch len(ambig) {
		case 0:
			return ResolveResult{Status: NotFound}
		case 1:
			cur = ambig[0]
		default:
			return ResolveResult{Status: Ambiguous, Candidates: ambig}
		}
	}
	return ResolveResult{Status: Found, Symbol: cur}
}

// ResolveTypeRefs runs after index assembly (spec.md §4.4's "type-ref
// resolution pass"): every TypeRef and Relationship target in every
// HirSymbol is resolved from its owning symbol's scope and, on success,
// resolved_target is filled in. Import declarations resolve from the
// workspace root regardless of their own scope, since an import path is
// always absolute. baseVisibility (not the inheritance-aware
// VisibilityMap) is used so this pass never recurses into the inherited
// tier it is itself computing the inputs for.
func ResolveTypeRefs(idx *SymbolIndex) {
	for i := range idx.owned {
		sym := &idx.owned[i]
		scope := sym.Parent
		if sym.Kind == hir.KindImport {
			scope = 0
		}

		for j := range sym.TypeRefs {
			resolveOneTypeRef(idx, scope, &sym.TypeRefs[j])
		}
		for j := range sym.Relationships {
			resolveOneTypeRef(idx, sym.Parent, &sym.Relationships[j].Target)
			sym.Relationships[j].ResolvedTarget = sym.Relationships[j].Target.ResolvedTarget
		}
	}
}

func resolveOneTypeRef(idx *SymbolIndex, scope intern.Name, tr *hir.TypeRef) {
	res := resolveFromBase(idx, scope, ExprOf(idx, *tr))
	if res.Status == Found {
		tr.ResolvedTarget = res.Symbol.QualifiedName
	}
}

// ExprOf recovers the "::"-joined expression text a TypeRef was parsed
// from, for re-resolving it outside this package (the diagnostics pass)
// or for diagnostic messages.
func ExprOf(idx *SymbolIndex, tr hir.TypeRef) string {
	switch {
	case !tr.Qualified.IsZero():
		return idx.in.String(tr.Qualified)
	case len(tr.Chain) > 1:
		parts := make([]string, len(tr.Chain))
		for i, n := range tr.Chain {
			parts[i] = idx.in.String(n)
		}
		return strings.Join(parts, "::")
	default:
		return idx.in.String(tr.Target)
	}
}

// ResolveBase runs Resolve's algorithm against baseVisibility instead of
// the cached, inheritance-aware VisibilityMap — the same resolution
// ResolveTypeRefs performs per TypeRef, exposed so the diagnostics pass
// can re-derive the exact Found/NotFound/Ambiguous status (not just
// whether resolved_target ended up set) without duplicating the
// algorithm.
func ResolveBase(idx *SymbolIndex, scope intern.Name, e string) ResolveResult {
	return resolveFromBase(idx, scope, e)
}

// resolveFromBase is Resolve's algorithm run against baseVisibility
// instead of the cached, inheritance-aware VisibilityMap.
func resolveFromBase(idx *SymbolIndex, scope intern.Name, e string) ResolveResult {
	segs, root := splitQualified(e)
	if len(segs) == 0 {
		return ResolveResult{Status: NotFound}
	}
	if root {
		scope = 0
	}

	vm := idx.baseVisibility(scope)
	winners, ambiguous := vm.Lookup(idx.in.Intern(segs[0]))
	if ambiguous {
		return ResolveResult{Status: Ambiguous, Candidates: winners}
	}
	if len(winners) == 0 {
		return ResolveResult{Status: NotFound}
	}
	cur := winners[0]

	for _, seg := range segs[1:] {
		name := idx.in.Intern(seg)
		var ambig []*hir.HirSymbol
		for _, s := range idx.byParent[cur.QualifiedName] {
			if s.Name == name {
				ambig = append(ambig, s)
			}
		}
		switch len(ambig) {
		case 0:
			return ResolveResult{Status: NotFound}
		case 1:
			cur = ambig[0]
		default:
			return ResolveResult{Status: Ambiguous, Candidates: ambig}
		}
	}
	return ResolveResult{Status: Found, Symbol: cur}
}
