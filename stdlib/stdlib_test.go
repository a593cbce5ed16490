package stdlib_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sysml-tools/sysml-engine/stdlib"
)

func TestManifestListsAllBundledPackages(t *testing.T) {
	m, err := stdlib.LoadManifest()
	qt.Assert(t, qt.IsNil(err))

	names := map[string]bool{}
	for _, p := range m.Packages {
		names[p.Name] = true
	}
	for _, want := range []string{"Parts", "Actions", "States", "Items", "Connections", "Requirements"} {
		qt.Assert(t, qt.IsTrue(names[want]), qt.Commentf("missing bundled package %q", want))
	}
}

func TestActiveVersionPicksHighestSemver(t *testing.T) {
	e := stdlib.PackageEntry{Name: "Parts", Versions: []string{"v1.0.0", "v0.9.0", "v1.2.0"}}
	qt.Assert(t, qt.Equals(e.ActiveVersion(), "v1.2.0"))
}

func TestSourcesReadEmbeddedFiles(t *testing.T) {
	srcs, err := stdlib.Sources()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(srcs), 6))
	for _, s := range srcs {
		qt.Assert(t, qt.IsTrue(len(s.Text) > 0), qt.Commentf("empty source for %q", s.Name))
	}
}
