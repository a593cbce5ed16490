// Package engine is the public façade spec.md §6 names: insert_file,
// remove_file, set_text, and snapshot() → Analysis. It owns nothing of
// its own beyond a query.Database and a Config — every operation is a
// thin, injectable wrapper, the same shape as the teacher's cue/cue.Context
// façade over cue/runtime.Runtime.
package engine

import (
	"github.com/sysml-tools/sysml-engine/diagnostics"
	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/ide"
	"github.com/sysml-tools/sysml-engine/index"
	internalerrors "github.com/sysml-tools/sysml-engine/internal/errors"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/internal/xlog"
	"github.com/sysml-tools/sysml-engine/query"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
)

// Config configures one Engine instance (SPEC_FULL.md §2's "the engine
// takes a Config struct"). There is no environment-driven configuration
// in the core; the CLI is the only place flags/env vars get parsed.
type Config struct {
	// WorkspaceRoot is advisory metadata only (e.g. for a future
	// multi-root workspace); file identity is entirely by FileId.
	WorkspaceRoot string
	// StdlibActive mirrors query.Database.SetStdlibActive (spec.md
	// §4.6's stdlib_active()).
	StdlibActive bool
	Logger       xlog.Logger
}

// Engine is the top-level entry point embedding applications use (spec.md
// §6's Engine API).
type Engine struct {
	cfg Config
	db  *query.Database
}

// New constructs an Engine from cfg. A zero Config is valid: no stdlib,
// default logger.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = xlog.Default()
	}
	db := query.New(log)
	db.SetStdlibActive(cfg.StdlibActive)
	return &Engine{cfg: cfg, db: db}
}

// InsertFile is spec.md §6's insert_file(path, text) → FileId.
func (e *Engine) InsertFile(path, text string) ids.FileId { return e.db.InsertFile(path, text) }

// RemoveFile is spec.md §6's remove_file(id).
func (e *Engine) RemoveFile(id ids.FileId) { e.db.RemoveFile(id) }

// SetText is spec.md §6's set_text(id, text).
func (e *Engine) SetText(id ids.FileId, text string) { e.db.SetText(id, text) }

// Snapshot is spec.md §6's snapshot() → Analysis: a view that captures
// the database's SymbolIndex as of its current revision (see Analysis
// for which queries use it).
func (e *Engine) Snapshot() *Analysis {
	return &Analysis{db: e.db, idx: e.db.SymbolIndex()}
}

// Analysis is spec.md §6's snapshot view. Interner, Resolve, Hover,
// GotoDefinition, FindReferences, DocumentSymbols, WorkspaceSymbols,
// Completions, and SemanticTokens read the SymbolIndex captured when
// Snapshot was called, so a later SetText does not change their answers.
// ParseErrors, Symbols, Diagnostics, and Err, and the line index that
// FoldingRanges uses, are read from the database at call time and so
// reflect its current revision, not the one Snapshot captured.
type Analysis struct {
	db  *query.Database
	idx *index.SymbolIndex
}

// Interner exposes the snapshot's name interner so callers (chiefly
// cmd/sysml) can render a HirSymbol's Name/QualifiedName as text.
func (a *Analysis) Interner() *intern.Interner { return a.idx.Interner() }

func (a *Analysis) ParseErrors(file ids.FileId) []parser.SyntaxError { return a.db.ParseErrors(file) }

func (a *Analysis) Symbols(file ids.FileId) []hir.HirSymbol { return a.db.Symbols(file) }

// Resolve is spec.md §6's resolve(file, scope, name) → ResolveResult.
// scope is the originating qualified name expression; pass "" for the
// workspace root.
func (a *Analysis) Resolve(scope, name string) index.ResolveResult {
	s := intern.Name(0)
	if scope != "" {
		if n, ok := a.idx.Interner().Lookup(scope); ok {
			s = n
		}
	}
	return index.Resolve(a.idx, s, name)
}

func (a *Analysis) Diagnostics(file ids.FileId) []diagnostics.Diagnostic { return a.db.Diagnostics(file) }

// Err converts file's error-severity diagnostics into a combined
// internal/errors.List (nil if there are none), the condensed
// cue/errors-style positioned error shape, for callers that want a plain
// Go error instead of formatting a Diagnostic slice themselves.
func (a *Analysis) Err(file ids.FileId) error {
	var list internalerrors.List
	for _, d := range a.db.Diagnostics(file) {
		if d.Severity != diagnostics.SeverityError {
			continue
		}
		list.Add(internalerrors.Newf(d.Range, "%s: %s", d.Code, d.Message))
	}
	return list.Err()
}

func (a *Analysis) Hover(file ids.FileId, offset int) *ide.Hover {
	return ide.HoverAt(a.idx, file, offset)
}

func (a *Analysis) GotoDefinition(file ids.FileId, offset int) []ide.Location {
	return ide.GotoDefinition(a.idx, file, offset)
}

func (a *Analysis) FindReferences(file ids.FileId, offset int) []ide.Location {
	return ide.FindReferences(a.idx, file, offset)
}

func (a *Analysis) DocumentSymbols(file ids.FileId) []*hir.HirSymbol {
	return ide.DocumentSymbols(a.idx, file)
}

func (a *Analysis) WorkspaceSymbols(query string) []*hir.HirSymbol {
	return ide.WorkspaceSymbols(a.idx, query)
}

func (a *Analysis) Completions(file ids.FileId, offset int) []ide.Completion {
	return ide.Completions(a.idx, file, offset)
}

func (a *Analysis) SemanticTokens(file ids.FileId) []ide.SemanticToken {
	return ide.SemanticTokens(a.idx, file)
}

func (a *Analysis) FoldingRanges(file ids.FileId) []span.Range {
	return ide.FoldingRanges(a.idx, file, a.db.Lines(file))
}
