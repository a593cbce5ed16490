package query_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sysml-tools/sysml-engine/internal/xlog"
	"github.com/sysml-tools/sysml-engine/query"
)

func TestInsertAndSymbols(t *testing.T) {
	db := query.New(xlog.Nop())
	id := db.InsertFile("vehicle.sysml", "package Vehicle {\n  part def Car;\n}")

	syms := db.Symbols(id)
	qt.Assert(t, qt.IsTrue(len(syms) > 0))

	idx := db.SymbolIndex()
	qt.Assert(t, qt.Equals(len(idx.ByQualified(db.Interner().Intern("Vehicle::Car"))), 1))
}

func TestSetTextInvalidatesAndRecomputes(t *testing.T) {
	db := query.New(xlog.Nop())
	id := db.InsertFile("a.sysml", "part def A;")
	before := db.SnapshotID()

	db.SetText(id, "part def A;\npart def B;")
	after := db.SnapshotID()

	qt.Assert(t, qt.Not(qt.Equals(before, after)))
	idx := db.SymbolIndex()
	qt.Assert(t, qt.Equals(len(idx.ByQualified(db.Interner().Intern("B"))), 1))
}

func TestSetTextSameTextIsNoOp(t *testing.T) {
	db := query.New(xlog.Nop())
	id := db.InsertFile("a.sysml", "part def A;")
	_ = db.SymbolIndex()
	before := db.SnapshotID()

	db.SetText(id, "part def A;")
	after := db.SnapshotID()

	qt.Assert(t, qt.Equals(before, after))
}

func TestRemoveFileDropsItsSymbols(t *testing.T) {
	db := query.New(xlog.Nop())
	id := db.InsertFile("a.sysml", "part def A;")
	_ = db.InsertFile("b.sysml", "part def B;")
	_ = db.SymbolIndex()

	db.RemoveFile(id)
	idx := db.SymbolIndex()
	qt.Assert(t, qt.Equals(len(idx.ByQualified(db.Interner().Intern("A"))), 0))
	qt.Assert(t, qt.Equals(len(idx.ByQualified(db.Interner().Intern("B"))), 1))
}

func TestStdlibActiveAddsImplicitSupertypeTarget(t *testing.T) {
	db := query.New(xlog.Nop())
	db.InsertFile("a.sysml", "part def Car;")
	db.SetStdlibActive(true)

	idx := db.SymbolIndex()
	qt.Assert(t, qt.Equals(len(idx.ByQualified(db.Interner().Intern("Parts::Part"))), 1))
}
