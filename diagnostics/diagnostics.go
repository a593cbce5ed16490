// Package diagnostics runs the derived pass spec.md §4.5 describes:
// given a file's parse errors and the workspace's resolved SymbolIndex,
// produce a unified, deduplicated Diagnostic list. The shape of a
// Diagnostic — file, range, severity, a stable code, a message, and
// related secondary locations — mirrors the teacher's
// cue/errors.Error/Message pair (_examples/cue-lang-cue/cue/errors/errors.go),
// generalized to carry a closed code enum instead of free-form wrapping.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/index"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
)

// Severity is a Diagnostic's reported level.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code is one of the closed set of semantic diagnostic codes spec.md
// §4.5 defines, plus the S1xxx codes this implementation assigns to
// parser.SyntaxErrors by their parser.Code category (parser errors carry
// no semantic code of their own).
type Code string

const (
	E0001UndefinedReference    Code = "E0001"
	E0002AmbiguousReference    Code = "E0002"
	E0003TypeMismatch          Code = "E0003" // reserved; never raised here
	E0004DuplicateDefinition   Code = "E0004"
	E0005MissingRequired       Code = "E0005"
	E0006InvalidSpecialization Code = "E0006"
	E0007CircularSpecializ     Code = "E0007"
	W0001UnusedSymbol          Code = "W0001"
	W0002DeprecatedUsage       Code = "W0002"
	W0003NamingConvention      Code = "W0003"

	S1001Lexical     Code = "S1001"
	S1002Structural  Code = "S1002"
	S1003Declaration Code = "S1003"
	S1004Expression  Code = "S1004"
	S1005Import      Code = "S1005"
	S1006Generic     Code = "S1006"
)

var syntaxCodes = map[parser.Code]Code{
	parser.CodeLexical:     S1001Lexical,
	parser.CodeStructural:  S1002Structural,
	parser.CodeDeclaration: S1003Declaration,
	parser.CodeExpression:  S1004Expression,
	parser.CodeImport:      S1005Import,
	parser.CodeGeneric:     S1006Generic,
}

func syntaxCode(c parser.Code) Code {
	if code, ok := syntaxCodes[c]; ok {
		return code
	}
	return S1006Generic
}

// Related is a secondary location attached to a Diagnostic, e.g. the
// other candidate in an Ambiguous resolution.
type Related struct {
	Range   span.Range
	Message string
}

// Diagnostic is spec.md §4.5's unified diagnostic record.
type Diagnostic struct {
	File     ids.FileId
	Range    span.Range
	Severity Severity
	Code     Code
	Message  string
	Related  []Related
}

// FileSet bundles the per-file inputs a Check pass needs: the parse
// errors (for the syntax-error pass-through) and a line index (for the
// dedup key, which is line/column rather than byte offset).
type FileSet struct {
	SyntaxErrors []parser.SyntaxError
	Lines        *span.LineIndex
}

// Check runs every diagnostic pass over idx (already through
// index.ResolveTypeRefs) and the given per-file inputs, returning a
// deduplicated, deterministically ordered Diagnostic list.
func Check(idx *index.SymbolIndex, files map[ids.FileId]FileSet) []Diagnostic {
	var out []Diagnostic

	for f, fs := range files {
		for _, se := range fs.SyntaxErrors {
			out = append(out, Diagnostic{
				File: f, Range: se.Range, Severity: SeverityError,
				Code: syntaxCode(se.Code), Message: se.Message,
			})
		}
	}

	out = append(out, checkUndefinedAndAmbiguous(idx)...)
	out = append(out, checkDuplicateDefinitions(idx)...)
	out = append(out, checkInvalidSpecialization(idx)...)
	out = append(out, checkCircularSpecialization(idx)...)
	out = append(out, checkUnusedSymbols(idx)...)

	lines := make(map[ids.FileId]*span.LineIndex, len(files))
	for f, fs := range files {
		lines[f] = fs.Lines
	}
	out = Dedup(out, lines)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// checkUndefinedAndAmbiguous re-derives each TypeRef's/Relationship's
// resolution status to tell E0001 (NotFound) apart from E0002
// (Ambiguous); index.ResolveTypeRefs itself only records success or
// failure on resolved_target, not which kind of failure.
func checkUndefinedAndAmbiguous(idx *index.SymbolIndex) []Diagnostic {
	var out []Diagnostic
	for _, sym := range idx.AllSymbols() {
		for _, tr := range sym.TypeRefs {
			out = append(out, diagForTypeRef(idx, sym, tr)...)
		}
		for _, rel := range sym.Relationships {
			out = append(out, diagForTypeRef(idx, sym, rel.Target)...)
		}
	}
	return out
}

func diagForTypeRef(idx *index.SymbolIndex, owner *hir.HirSymbol, tr hir.TypeRef) []Diagnostic {
	expr := index.ExprOf(idx, tr)
	res := index.ResolveBase(idx, owner.Parent, expr)
	switch res.Status {
	case index.NotFound:
		return []Diagnostic{{
			File: owner.File, Range: tr.Range, Severity: SeverityError,
			Code: E0001UndefinedReference,
			Message: fmt.Sprintf("undefined reference %q", expr),
		}}
	case index.Ambiguous:
		d := Diagnostic{
			File: owner.File, Range: tr.Range, Severity: SeverityError,
			Code: E0002AmbiguousReference,
			Message: fmt.Sprintf("ambiguous reference %q", expr),
		}
		for _, c := range res.Candidates {
			d.Related = append(d.Related, Related{
				Range:   c.NameRange,
				Message: fmt.Sprintf("candidate: %s", idx.Interner().String(c.QualifiedName)),
			})
		}
		return []Diagnostic{d}
	default:
		return nil
	}
}

// checkDuplicateDefinitions raises E0004 whenever two non-anonymous
// symbols share a qualified name (spec.md §4.5, §8's "Duplicate
// definitions keep both symbols in the index").
func checkDuplicateDefinitions(idx *index.SymbolIndex) []Diagnostic {
	var out []Diagnostic
	seen := map[intern.Name]bool{}
	for _, sym := range idx.AllSymbols() {
		if sym.IsAnonymous || seen[sym.QualifiedName] {
			continue
		}
		seen[sym.QualifiedName] = true
		group := idx.ByQualified(sym.QualifiedName)
		var nonAnon []*hir.HirSymbol
		for _, s := range group {
			if !s.IsAnonymous {
				nonAnon = append(nonAnon, s)
			}
		}
		if len(nonAnon) < 2 {
			continue
		}
		for _, dup := range nonAnon {
			d := Diagnostic{
				File: dup.File, Range: dup.NameRange, Severity: SeverityError,
				Code: E0004DuplicateDefinition,
				Message: fmt.Sprintf("duplicate definition of %q",
					idx.Interner().String(dup.QualifiedName)),
			}
			for _, other := range nonAnon {
				if other == dup {
					continue
				}
				d.Related = append(d.Related, Related{
					Range: other.NameRange, Message: "also defined here",
				})
			}
			out = append(out, d)
		}
	}
	return out
}

// checkInvalidSpecialization raises E0006 when a Specializes
// relationship's resolved target is a usage rather than a definition
// (spec.md §4.5's example).
func checkInvalidSpecialization(idx *index.SymbolIndex) []Diagnostic {
	var out []Diagnostic
	for _, sym := range idx.AllSymbols() {
		for _, rel := range sym.Relationships {
			if rel.Kind != hir.RelSpecializes || rel.ResolvedTarget.IsZero() {
				continue
			}
			targets := idx.ByQualified(rel.ResolvedTarget)
			if len(targets) == 0 {
				continue
			}
			if isUsageKind(targets[0].Kind) {
				out = append(out, Diagnostic{
					File: sym.File, Range: rel.Target.Range, Severity: SeverityError,
					Code: E0006InvalidSpecialization,
					Message: fmt.Sprintf("cannot specialize usage %q",
						idx.Interner().String(targets[0].QualifiedName)),
				})
			}
		}
	}
	return out
}

func isUsageKind(k hir.SymbolKind) bool {
	name := k.String()
	return len(name) > 5 && name[len(name)-5:] == "Usage"
}

// checkCircularSpecialization raises E0007 for every symbol reachable
// from itself through a Specializes chain (spec.md §4.5, §4.4's
// "Cycles"); the resolver already tolerates these cycles rather than
// looping, so this is purely a diagnostic pass over the resolved graph.
func checkCircularSpecialization(idx *index.SymbolIndex) []Diagnostic {
	var out []Diagnostic
	reported := map[intern.Name]bool{}
	for _, sym := range idx.AllSymbols() {
		if sym.QualifiedName.IsZero() || reported[sym.QualifiedName] {
			continue
		}
		if onCycle(idx, sym.QualifiedName, sym.QualifiedName, map[intern.Name]bool{}) {
			reported[sym.QualifiedName] = true
			out = append(out, Diagnostic{
				File: sym.File, Range: sym.NameRange, Severity: SeverityError,
				Code: E0007CircularSpecializ,
				Message: fmt.Sprintf("circular specialization involving %q",
					idx.Interner().String(sym.QualifiedName)),
			})
		}
	}
	return out
}

func onCycle(idx *index.SymbolIndex, origin, at intern.Name, visited map[intern.Name]bool) bool {
	if visited[at] {
		return false
	}
	visited[at] = true
	for _, owner := range idx.ByQualified(at) {
		for _, rel := range owner.Relationships {
			if rel.Kind != hir.RelSpecializes || rel.ResolvedTarget.IsZero() {
				continue
			}
			if rel.ResolvedTarget == origin {
				return true
			}
			if onCycle(idx, origin, rel.ResolvedTarget, visited) {
				return true
			}
		}
	}
	return false
}

// checkUnusedSymbols raises W0001 for a non-anonymous, non-public symbol
// that nothing in the workspace references by name (best-effort: a
// reference counts whether or not it resolved, since an unresolved
// reference already carries its own E0001).
func checkUnusedSymbols(idx *index.SymbolIndex) []Diagnostic {
	referenced := map[intern.Name]bool{}
	for _, sym := range idx.AllSymbols() {
		for _, tr := range sym.TypeRefs {
			markReferenced(referenced, tr)
		}
		for _, rel := range sym.Relationships {
			markReferenced(referenced, rel.Target)
		}
	}

	var out []Diagnostic
	for _, sym := range idx.AllSymbols() {
		if sym.IsAnonymous || sym.IsPublic || sym.Kind == hir.KindPackage {
			continue
		}
		if referenced[sym.Name] || referenced[sym.QualifiedName] {
			continue
		}
		out = append(out, Diagnostic{
			File: sym.File, Range: sym.NameRange, Severity: SeverityWarning,
			Code: W0001UnusedSymbol,
			Message: fmt.Sprintf("%q is never referenced",
				idx.Interner().String(sym.Name)),
		})
	}
	return out
}

func markReferenced(referenced map[intern.Name]bool, tr hir.TypeRef) {
	if !tr.Target.IsZero() {
		referenced[tr.Target] = true
	}
	for _, n := range tr.Chain {
		referenced[n] = true
	}
}
