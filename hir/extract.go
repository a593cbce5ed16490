package hir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/ast"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// relationshipKeywordKind maps a relationship-usage leading keyword
// (spec.md §4.3 "perform/exhibit/include/satisfy/assert/verify T →
// corresponding relationship") to the RelationshipKind it contributes.
var relationshipKeywordKind = map[token.Kind]RelationshipKind{
	token.KW_PERFORM: RelPerforms,
	token.KW_EXHIBIT: RelExhibits,
	token.KW_INCLUDE: RelIncludes,
	token.KW_SATISFY: RelSatisfies,
	token.KW_ASSERT:  RelAsserts,
	token.KW_VERIFY:  RelVerifies,
}

// Extract walks file's typed AST depth-first and produces its HirSymbols
// in source order, plus the scope filters declared in it, per spec.md
// §4.3's Contract. Extraction never fails: every declaration, named or
// not, produces exactly one symbol.
func Extract(file ids.FileId, f ast.File, in *intern.Interner, text string) ([]HirSymbol, []ScopeFilter) {
	ex := &extractor{file: file, in: in, lines: span.NewLineIndex(text)}
	ex.walkMembers(f.Members(), "")
	return ex.symbols, ex.filters
}

type extractor struct {
	file        ids.FileId
	in          *intern.Interner
	lines       *span.LineIndex
	anonCounter int
	symbols     []HirSymbol
	filters     []ScopeFilter
}

// join builds a qualified name "S::n", or bare "n" at the workspace
// root, per spec.md §4.3's "Qualified name construction". Unrestricted
// names keep their quotes since simple is Name.Text()'s raw lexed form.
func join(scope, simple string) string {
	if scope == "" {
		return simple
	}
	return scope + "::" + simple
}

func (ex *extractor) parentName(scope string) intern.Name {
	if scope == "" {
		return 0
	}
	return ex.in.Intern(scope)
}

// synthesizeName builds the "<prefix#counter@Lline>" anonymous-name form
// (spec.md §4.3 "Anonymous naming") anchored at r's start, and advances
// the per-file counter.
func (ex *extractor) synthesizeName(prefix string, r span.Range) string {
	line := ex.lines.LineCol(r.Start).Line + 1
	name := fmt.Sprintf("<%s#%d@L%d>", prefix, ex.anonCounter, line)
	ex.anonCounter++
	return name
}

// anonymousPrefix picks the prefix encoding a nameless definition/usage's
// relationship kind, per spec.md §4.3's table. Relationship-usage
// keywords take priority since they are the spec's own worked example
// ("perform action :> TakePicture;"); among the remaining clause kinds,
// References/Conjugates/Disjoining have no dedicated prefix in spec.md's
// table, so they fall back to the generic ":" typing prefix (see
// DESIGN.md's Open Question decision).
func (ex *extractor) anonymousPrefix(d ast.DefinitionOrUsage) string {
	if kw, ok := d.RelationshipKeyword(); ok {
		switch kw {
		case token.KW_PERFORM:
			return "perform:"
		case token.KW_EXHIBIT:
			return "exhibit:"
		case token.KW_INCLUDE:
			return "include:"
		case token.KW_SATISFY:
			return "satisfy:"
		case token.KW_ASSERT:
			return "assert:"
		case token.KW_VERIFY:
			return "verify:"
		}
	}
	if d.HasModifier(token.KW_REF) {
		return "ref:"
	}
	switch {
	case len(d.Crosses()) > 0:
		return "crosses:"
	case len(d.Redefines()) > 0:
		return ":>>"
	case len(d.Subsets()) > 0:
		return ":>:"
	case len(d.Specializes()) > 0:
		return ":>"
	}
	if _, ok := d.TypeAnnotation(); ok {
		return ":"
	}
	if len(d.Metadata()) > 0 {
		return "meta:"
	}
	return ":"
}

// typeRefFrom converts a reference path read off the tree into a
// TypeRef, preserving per-segment ranges for feature chains (spec.md §3
// "Chains preserve each segment's byte range so hover can pinpoint any
// link.").
func (ex *extractor) typeRefFrom(p ast.ReferencePath) TypeRef {
	segs := p.Segments()
	tr := TypeRef{Range: p.Range()}
	if len(segs) == 0 {
		return tr
	}
	if p.IsFeatureChain() {
		tr.Chain = make([]intern.Name, len(segs))
		tr.ChainRanges = make([]span.Range, len(segs))
		for i, s := range segs {
			tr.Chain[i] = ex.in.Intern(s.Text())
			tr.ChainRanges[i] = s.Range()
		}
		tr.Target = tr.Chain[len(tr.Chain)-1]
		tr.Qualified = ex.in.Intern(p.Text())
		return tr
	}
	if len(segs) > 1 {
		tr.Qualified = ex.in.Intern(p.Text())
	}
	tr.Target = ex.in.Intern(segs[len(segs)-1].Text())
	return tr
}

// qualifiedTypeRef builds the TypeRef for a "Package::Type"-shaped
// implicit supertype target, splitting off its last segment as Target.
func qualifiedTypeRef(in *intern.Interner, qualified string, r span.Range) TypeRef {
	target := qualified
	if i := strings.LastIndex(qualified, "::"); i >= 0 {
		target = qualified[i+2:]
	}
	return TypeRef{Target: in.Intern(target), Qualified: in.Intern(qualified), Range: r}
}

// firstRelationshipTarget picks the clause a relationship-usage keyword
// (perform/exhibit/...) attaches its relationship to: the declaration's
// primary typing clause, in the priority spec.md §4.3 implies by listing
// typing/specializing before the weaker relationship clauses.
func firstRelationshipTarget(d ast.DefinitionOrUsage) (ast.ReferencePath, bool) {
	if p := d.Specializes(); len(p) > 0 {
		return p[0], true
	}
	if t, ok := d.TypeAnnotation(); ok {
		return t, true
	}
	if p := d.Subsets(); len(p) > 0 {
		return p[0], true
	}
	if p := d.Redefines(); len(p) > 0 {
		return p[0], true
	}
	if p := d.References(); len(p) > 0 {
		return p[0], true
	}
	if p := d.Conjugates(); len(p) > 0 {
		return p[0], true
	}
	if p := d.Crosses(); len(p) > 0 {
		return p[0], true
	}
	return ast.ReferencePath{}, false
}

func (ex *extractor) addClauseRelationships(sym *HirSymbol, d ast.DefinitionOrUsage) {
	add := func(kind RelationshipKind, paths []ast.ReferencePath) {
		for _, p := range paths {
			sym.Relationships = append(sym.Relationships, Relationship{
				Kind: kind, Target: ex.typeRefFrom(p), Range: p.Range(),
			})
		}
	}
	add(RelSpecializes, d.Specializes())
	add(RelSubsets, d.Subsets())
	add(RelRedefines, d.Redefines())
	add(RelReferences, d.References())
	add(RelConjugates, d.Conjugates())
	add(RelCrosses, d.Crosses())
	add(RelDisjoining, d.Disjoins())

	if t, ok := d.TypeAnnotation(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(t))
	}

	if kw, ok := d.RelationshipKeyword(); ok {
		if relKind, ok2 := relationshipKeywordKind[kw]; ok2 {
			if target, ok3 := firstRelationshipTarget(d); ok3 {
				sym.Relationships = append(sym.Relationships, Relationship{
					Kind: relKind, Target: ex.typeRefFrom(target), Range: target.Range(),
				})
			}
		}
	}
}

func parseBound(text string) Bound {
	if text == "*" {
		return Bound{Unbounded: true, Raw: text}
	}
	n, _ := strconv.Atoi(text)
	return Bound{Value: n, Raw: text}
}

func (ex *extractor) multiplicityFrom(m ast.Multiplicity) *Multiplicity {
	out := &Multiplicity{Ordered: m.IsOrdered(), Nonunique: m.IsNonunique()}
	if lower, upper, ok := m.Bounds(); ok {
		out.Lower = parseBound(lower)
		out.Upper = parseBound(upper)
	}
	return out
}

func anchorRange(r span.Range) span.Range {
	return span.Range{Start: r.Start, End: r.Start}
}

func (ex *extractor) walkMembers(members []ast.Member, scope string) {
	for _, m := range members {
		switch m := m.(type) {
		case ast.Package:
			ex.walkPackage(m, scope)
		case ast.Import:
			ex.walkImport(m, scope)
		case ast.Alias:
			ex.walkAlias(m, scope)
		case ast.Filter:
			ex.walkFilter(m, scope)
		case ast.Comment:
			ex.walkComment(m, scope)
		case ast.Connector:
			ex.walkConnector(m, scope)
		case ast.Flow:
			ex.walkFlow(m, scope)
		case ast.Transition:
			ex.walkTransition(m, scope)
		case ast.Definition:
			ex.walkDefinitionOrUsage(m.DefinitionOrUsage, scope)
		case ast.Usage:
			ex.walkDefinitionOrUsage(m.DefinitionOrUsage, scope)
		default:
			// ast.Expr and ast.Unrecognized carry no declaration; a bare
			// expression statement or recovered error span never
			// produces a symbol.
		}
	}
}

func (ex *extractor) walkPackage(m ast.Package, scope string) {
	var simple string
	var nameRange span.Range
	anon := false
	if name, ok := m.Name(); ok {
		simple, nameRange = name.Text(), name.Range()
	} else {
		anon = true
		simple = ex.synthesizeName(":", m.Range())
		nameRange = anchorRange(m.Range())
	}
	qualified := join(scope, simple)
	kind := KindPackage
	if m.IsLibrary() {
		kind = KindLibraryPackage
	}
	ex.symbols = append(ex.symbols, HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: kind, Range: m.Range(), NameRange: nameRange,
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: anon,
	})
	ex.walkMembers(m.Members(), qualified)
}

func (ex *extractor) walkImport(m ast.Import, scope string) {
	simple := ex.synthesizeName(":", m.Range())
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: KindImport, Range: m.Range(), NameRange: anchorRange(m.Range()),
		IsPublic: !m.IsPrivate(), Parent: ex.parentName(scope), IsAnonymous: true,
		IsWildcardImport: m.IsWildcard(), IsRecursiveImport: m.IsRecursive(),
	}
	if segs := m.NameSegments(); len(segs) > 0 {
		chain := make([]intern.Name, len(segs))
		ranges := make([]span.Range, len(segs))
		var full strings.Builder
		for i, s := range segs {
			chain[i] = ex.in.Intern(s.Text())
			ranges[i] = s.Range()
			if i > 0 {
				full.WriteString("::")
			}
			full.WriteString(s.Text())
		}
		sym.TypeRefs = append(sym.TypeRefs, TypeRef{
			Target: chain[len(chain)-1], Qualified: ex.in.Intern(full.String()),
			Range: m.Range(), Chain: chain, ChainRanges: ranges,
		})
	}
	ex.symbols = append(ex.symbols, sym)
}

func (ex *extractor) walkAlias(m ast.Alias, scope string) {
	var simple string
	var nameRange span.Range
	anon := false
	if name, ok := m.Name(); ok {
		simple, nameRange = name.Text(), name.Range()
	} else {
		anon = true
		simple = ex.synthesizeName(":", m.Range())
		nameRange = anchorRange(m.Range())
	}
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: KindAlias, Range: m.Range(), NameRange: nameRange,
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: anon,
	}
	if target, ok := m.Target(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(target))
	}
	ex.symbols = append(ex.symbols, sym)
}

func (ex *extractor) walkFilter(m ast.Filter, scope string) {
	meta, ok := m.Metadata()
	if !ok {
		return
	}
	target, ok := meta.Target()
	if !ok {
		return
	}
	ex.filters = append(ex.filters, ScopeFilter{
		Scope: ex.in.Intern(scope), Metadata: ex.in.Intern(target.Text()), Range: m.Range(),
	})
}

func (ex *extractor) walkComment(m ast.Comment, scope string) {
	var simple string
	var nameRange span.Range
	anon := false
	if name, ok := m.Name(); ok {
		simple, nameRange = name.Text(), name.Range()
	} else {
		anon = true
		prefix := ":"
		if len(m.About()) > 0 {
			prefix = "about:"
		}
		simple = ex.synthesizeName(prefix, m.Range())
		nameRange = anchorRange(m.Range())
	}
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: KindComment, Range: m.Range(), NameRange: nameRange,
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: anon,
	}
	for _, about := range m.About() {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(about))
	}
	ex.symbols = append(ex.symbols, sym)
}

func (ex *extractor) walkConnector(m ast.Connector, scope string) {
	simple := ex.synthesizeName(":", m.Range())
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: KindConnector, Range: m.Range(), NameRange: anchorRange(m.Range()),
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: true,
	}
	for _, end := range m.Ends() {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(end))
	}
	ex.symbols = append(ex.symbols, sym)
	ex.walkMembers(m.Body(), qualified)
}

func (ex *extractor) walkFlow(m ast.Flow, scope string) {
	simple := ex.synthesizeName(":", m.Range())
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: KindFlowUsage, Range: m.Range(), NameRange: anchorRange(m.Range()),
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: true,
	}
	if src, ok := m.Source(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(src))
	}
	if via, ok := m.Via(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(via))
	}
	if tgt, ok := m.Target(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(tgt))
	}
	ex.symbols = append(ex.symbols, sym)
	ex.walkMembers(m.Body(), qualified)
}

func (ex *extractor) walkTransition(m ast.Transition, scope string) {
	kind := KindSuccession
	if m.IsTransition() {
		kind = KindTransition
	}
	simple := ex.synthesizeName(":", m.Range())
	qualified := join(scope, simple)
	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: kind, Range: m.Range(), NameRange: anchorRange(m.Range()),
		IsPublic: true, Parent: ex.parentName(scope), IsAnonymous: true,
	}
	if from, ok := m.From(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(from))
	}
	if to, ok := m.To(); ok {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(to))
	}
	for _, e := range m.Effects() {
		sym.TypeRefs = append(sym.TypeRefs, ex.typeRefFrom(e))
	}
	ex.symbols = append(ex.symbols, sym)
}

func (ex *extractor) walkDefinitionOrUsage(d ast.DefinitionOrUsage, scope string) {
	var simple string
	var nameRange span.Range
	anon := false
	if name, ok := d.Name(); ok {
		simple, nameRange = name.Text(), name.Range()
	} else {
		anon = true
		simple = ex.synthesizeName(ex.anonymousPrefix(d), d.Range())
		nameRange = anchorRange(d.Range())
	}
	qualified := join(scope, simple)

	kind := KindOther
	kw, hasKw := d.KindKeyword()
	if hasKw {
		if d.IsDef() {
			if k, ok := defKindOf[kw]; ok {
				kind = k
			}
		} else if k, ok := usageKindOf[kw]; ok {
			kind = k
		}
	} else if d.HasModifier(token.KW_REF) {
		kind = KindRef
	} else if !d.IsDef() {
		kind = KindFeature
	}

	vis, hasVis := d.Visibility()
	isPublic := !hasVis || vis == token.KW_PUBLIC

	var mult *Multiplicity
	if ms := d.Multiplicities(); len(ms) > 0 {
		mult = ex.multiplicityFrom(ms[0])
	}

	sym := HirSymbol{
		File: ex.file, Name: ex.in.Intern(simple), QualifiedName: ex.in.Intern(qualified),
		Kind: kind, Range: d.Range(), NameRange: nameRange,
		IsPublic:     isPublic,
		IsAbstract:   d.HasModifier(token.KW_ABSTRACT),
		IsVariation:  d.HasModifier(token.KW_VARIATION),
		IsDerived:    d.HasModifier(token.KW_DERIVED),
		IsReadonly:   d.HasModifier(token.KW_READONLY),
		Multiplicity: mult,
		Parent:       ex.parentName(scope),
		IsAnonymous:  anon,
	}
	for _, meta := range d.Metadata() {
		if t, ok := meta.Target(); ok {
			sym.MetadataAnnotations = append(sym.MetadataAnnotations, ex.in.Intern(t.Text()))
		}
	}
	ex.addClauseRelationships(&sym, d)
	if hasKw {
		if target, ok := implicitSupertype[kw]; ok && target != qualified {
			// The bundled stdlib's own canonical definitions (Parts::Part,
			// Actions::Action, ...) are declared with the same keyword
			// whose implicit supertype they themselves are; skipping the
			// self-target avoids manufacturing a trivial Specializes cycle
			// on every stdlib root type.
			r := d.Range()
			if kr, ok := d.KindKeywordRange(); ok {
				r = kr
			}
			sym.Relationships = append(sym.Relationships, Relationship{
				Kind: RelSpecializes, Target: qualifiedTypeRef(ex.in, target, r), Range: r,
			})
		}
	}
	ex.symbols = append(ex.symbols, sym)

	if members, ok := d.Body(); ok {
		ex.walkMembers(members, qualified)
	}
}
