package index

import (
	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/intset"
)

// priority tiers for visibility-map candidates, lowest wins. Two
// candidates at the same tier for the same name make the lookup
// Ambiguous. spec.md §4.4 fixes "own beats ancestor" and "exact import
// beats wildcard import" but leaves the relative order of inherited
// members, aliases, and explicit imports unspecified; this ordering is
// this implementation's Open Question decision (see DESIGN.md).
const (
	tierOwn = iota
	tierInherited
	tierAlias
	tierImportExact
	tierImportWildcard
	tierAncestor
)

// candidate is one symbol a name can denote from some scope, tagged with
// the priority tier it was found at.
type candidate struct {
	symbol *hir.HirSymbol
	tier   int
}

// VisibilityMap is, for one scope, the set of names reachable from it
// (spec.md §3 "visibility_maps", §4.4).
type VisibilityMap struct {
	byName map[intern.Name][]candidate
}

// relationshipKindsInherited are the relationship kinds through which a
// scope inherits its supertype's members (spec.md §4.4 item 2).
var relationshipKindsInherited = map[hir.RelationshipKind]bool{
	hir.RelSpecializes: true,
	hir.RelSubsets:     true,
	hir.RelRedefines:   true,
	hir.RelConjugates:  true,
	hir.RelPerforms:    true,
	hir.RelExhibits:    true,
	hir.RelIncludes:    true,
	hir.RelSatisfies:   true,
	hir.RelAsserts:     true,
	hir.RelVerifies:    true,
}

// VisibilityMap returns (building and caching if necessary) the full
// visibility map for scope, including the inherited tier. At most one
// goroutine computes a given scope's map even under concurrent callers.
func (idx *SymbolIndex) VisibilityMap(scope intern.Name) *VisibilityMap {
	idx.mu.RLock()
	if vm, ok := idx.visibility[scope]; ok {
		idx.mu.RUnlock()
		return vm
	}
	idx.mu.RUnlock()

	key := idx.in.String(scope)
	v, _, _ := idx.group.Do(key, func() (interface{}, error) {
		idx.mu.RLock()
		if vm, ok := idx.visibility[scope]; ok {
			idx.mu.RUnlock()
			return vm, nil
		}
		idx.mu.RUnlock()

		vm := idx.buildVisibility(scope, intset.New[intern.Name](8))

		idx.mu.Lock()
		idx.visibility[scope] = vm
		idx.mu.Unlock()
		return vm, nil
	})
	return v.(*VisibilityMap)
}

// baseVisibility returns scope's visibility map without the inherited
// tier: own members, aliases, imports, and ancestor members. Used by
// ResolveTypeRefs to resolve specialization targets before inheritance
// can be computed (inheritance depends on those targets being resolved
// first), breaking the otherwise circular dependency.
func (idx *SymbolIndex) baseVisibility(scope intern.Name) *VisibilityMap {
	vm := &VisibilityMap{byName: make(map[intern.Name][]candidate)}
	idx.addOwnMembers(vm, scope)
	idx.addAliasesAndImports(vm, scope)
	idx.addAncestors(vm, scope)
	return vm
}

func (idx *SymbolIndex) buildVisibility(scope intern.Name, visited *intset.Set[intern.Name]) *VisibilityMap {
	vm := idx.baseVisibility(scope)
	idx.addInherited(vm, scope, visited)
	return vm
}

func (idx *SymbolIndex) addOwnMembers(vm *VisibilityMap, scope intern.Name) {
	for _, s := range idx.byParent[scope] {
		if isAnonymous(s) {
			continue
		}
		vm.add(s.Name, candidate{symbol: s, tier: tierOwn})
	}
}

func isAnonymous(s *hir.HirSymbol) bool { return s.IsAnonymous }

// addInherited walks scope's own Specializes/Subsets/Redefines/
// Conjugates/Performs/... relationships (already resolved by
// ResolveTypeRefs) and pulls in each supertype's own full visibility
// (own + inherited), recursively, guarding against cyclic specialization
// (spec.md §4.4 "Cycles", §9) with visited.
func (idx *SymbolIndex) addInherited(vm *VisibilityMap, scope intern.Name, visited *intset.Set[intern.Name]) {
	if !visited.Add(scope) {
		return
	}
	defer func() {
		// leave the generation alone; Set has no Remove, so a shared
		// visited set is scoped per top-level VisibilityMap(scope) call.
	}()

	owners := idx.byQualified[scope]
	for _, owner := range owners {
		for _, rel := range owner.Relationships {
			if !relationshipKindsInherited[rel.Kind] {
				continue
			}
			target := rel.ResolvedTarget
			if target.IsZero() {
				continue
			}
			superVM := idx.buildVisibility(target, visited)
			for name, cands := range superVM.byName {
				for _, c := range cands {
					vm.add(name, candidate{symbol: c.symbol, tier: tierInherited})
				}
			}
		}
	}
}

func (idx *SymbolIndex) addAliasesAndImports(vm *VisibilityMap, scope intern.Name) {
	for _, s := range idx.byParent[scope] {
		switch {
		case isAlias(s):
			for _, tr := range s.TypeRefs {
				if tr.ResolvedTarget.IsZero() {
					continue
				}
				if target := idx.lookupOneByQualified(tr.ResolvedTarget); target != nil {
					vm.add(s.Name, candidate{symbol: target, tier: tierAlias})
				}
			}
		case isImport(s):
			idx.addImport(vm, s)
		}
	}
}

func isAlias(s *hir.HirSymbol) bool  { return s.Kind == hir.KindAlias }
func isImport(s *hir.HirSymbol) bool { return s.Kind == hir.KindImport }

// addImport expands one import declaration into vm. A wildcard import's
// captured path names the package P to expand from (the "*"/"**" token
// itself is never a chain segment, see hir.HirSymbol.IsWildcardImport's
// doc); a plain "import P::Name;" instead resolves its own chain to the
// single imported target directly.
func (idx *SymbolIndex) addImport(vm *VisibilityMap, imp *hir.HirSymbol) {
	if len(imp.TypeRefs) == 0 {
		return
	}
	tr := imp.TypeRefs[0]
	if tr.ResolvedTarget.IsZero() {
		return
	}
	if imp.IsWildcardImport {
		idx.addWildcardChildren(vm, tr.ResolvedTarget, imp.IsRecursiveImport, idx.scopeFilters[imp.Parent], map[intern.Name]bool{})
		return
	}
	if target := idx.lookupOneByQualified(tr.ResolvedTarget); target != nil {
		vm.add(target.Name, candidate{symbol: target, tier: tierImportExact})
	}
}

// addWildcardChildren adds pkg's public, named children (and, for a
// recursive import, their descendants) to vm. Declared visibility is
// checked first: a private child is skipped whatever the filters say.
// The filters declared in the importing scope (looked up by the import's
// Parent, so a filter at the workspace root is not applied) then compose
// by AND: a child is added
// only if its MetadataAnnotations contain the metadata name of every
// filter, compared as written (a specialization of the filter's metadata
// type does not match).
func (idx *SymbolIndex) addWildcardChildren(vm *VisibilityMap, pkg intern.Name, recursive bool, filters []hir.ScopeFilter, seen map[intern.Name]bool) {
	if seen[pkg] {
		return
	}
	seen[pkg] = true
	for _, s := range idx.byParent[pkg] {
		if isAnonymous(s) || !s.IsPublic {
			continue
		}
		passes := true
		for _, f := range filters {
			has := false
			for _, m := range s.MetadataAnnotations {
				has = has || m == f.Metadata
			}
			passes = passes && has
		}
		if passes {
			vm.add(s.Name, candidate{symbol: s, tier: tierImportWildcard})
		}
		if recursive {
			idx.addWildcardChildren(vm, s.QualifiedName, recursive, filters, seen)
		}
	}
}

func (idx *SymbolIndex) addAncestors(vm *VisibilityMap, scope intern.Name) {
	parent, ok := idx.parentScopeOf(scope)
	for ok {
		for _, s := range idx.byParent[parent] {
			if isAnonymous(s) {
				continue
			}
			vm.add(s.Name, candidate{symbol: s, tier: tierAncestor})
		}
		parent, ok = idx.parentScopeOf(parent)
	}
}

// parentScopeOf returns the qualified name of scope's own enclosing
// scope, found via the HirSymbol the scope's qualified name names.
func (idx *SymbolIndex) parentScopeOf(scope intern.Name) (intern.Name, bool) {
	if scope.IsZero() {
		return 0, false
	}
	owner := idx.lookupOneByQualified(scope)
	if owner == nil {
		return 0, false
	}
	if owner.Parent.IsZero() {
		return 0, owner.Parent != scope
	}
	return owner.Parent, true
}

func (idx *SymbolIndex) lookupOneByQualified(q intern.Name) *hir.HirSymbol {
	cands := idx.byQualified[q]
	if len(cands) == 0 {
		return nil
	}
	return cands[0]
}

func (vm *VisibilityMap) add(name intern.Name, c candidate) {
	if vm.byName == nil {
		vm.byName = make(map[intern.Name][]candidate)
	}
	vm.byName[name] = append(vm.byName[name], c)
}

// Lookup returns the candidates for name at the lowest (winning) tier
// present, and whether more than one candidate ties at that tier.
func (vm *VisibilityMap) Lookup(name intern.Name) (winners []*hir.HirSymbol, ambiguous bool) {
	cands := vm.byName[name]
	if len(cands) == 0 {
		return nil, false
	}
	best := cands[0].tier
	for _, c := range cands[1:] {
		if c.tier < best {
			best = c.tier
		}
	}
	for _, c := range cands {
		if c.tier == best {
			winners = append(winners, c.symbol)
		}
	}
	return winners, len(winners) > 1
}
