package engine_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sysml-tools/sysml-engine/engine"
)

func TestEndToEndInsertResolveDiagnose(t *testing.T) {
	// The stdlib supplies Parts::Part, the implicit supertype of Car.
	e := engine.New(engine.Config{StdlibActive: true})
	base := e.InsertFile("base.sysml", "part def Vehicle;")
	derived := e.InsertFile("derived.sysml", "part def Car :> Vehicle;")

	snap := e.Snapshot()
	res := snap.Resolve("", "Vehicle")
	qt.Assert(t, qt.Equals(res.Status.String(), "Found"))

	diags := snap.Diagnostics(derived)
	qt.Assert(t, qt.HasLen(diags, 0))

	_ = base
}

func TestRemovingBaseFileProducesUndefinedReference(t *testing.T) {
	e := engine.New(engine.Config{})
	base := e.InsertFile("base.sysml", "part def Vehicle;")
	derived := e.InsertFile("derived.sysml", "part def Car :> Vehicle;")
	_ = e.Snapshot()

	e.RemoveFile(base)
	snap := e.Snapshot()
	diags := snap.Diagnostics(derived)
	qt.Assert(t, qt.IsTrue(len(diags) > 0))
	qt.Assert(t, qt.Equals(string(diags[0].Code), "E0001"))
}

func TestErrCombinesErrorSeverityDiagnostics(t *testing.T) {
	e := engine.New(engine.Config{StdlibActive: true})
	ok := e.InsertFile("ok.sysml", "part def Vehicle;")
	bad := e.InsertFile("bad.sysml", "part def Car :> Missing;")

	snap := e.Snapshot()
	qt.Assert(t, qt.IsNil(snap.Err(ok)))

	err := snap.Err(bad)
	qt.Assert(t, qt.ErrorMatches(err, ".*E0001.*"))
}

func TestStdlibActiveResolvesImplicitSupertype(t *testing.T) {
	e := engine.New(engine.Config{StdlibActive: true})
	e.InsertFile("a.sysml", "part def Car;")

	snap := e.Snapshot()
	res := snap.Resolve("", "Parts::Part")
	qt.Assert(t, qt.Equals(res.Status.String(), "Found"))
}
