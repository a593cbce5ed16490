// Package txtartest adapts the teacher's internal/cuetxtar harness
// (_examples/cue-lang-cue/internal/cuetxtar/txtar.go) from single-CUE-file
// build.Instance loading to multi-file SysML workspaces: a .txtar archive's
// root-level files become an engine.Engine's inserted files, and output
// written through a Test is checked against "out/<name>" golden entries
// in the same archive.
package txtartest

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/sysml-tools/sysml-engine/engine"
	"github.com/sysml-tools/sysml-engine/internal/ids"
)

// envUpdate is the SysML analogue of the teacher's CUE_UPDATE: set it to
// any non-empty value to have failing golden comparisons rewrite the
// .txtar file in place instead of failing the test.
const envUpdate = "SYSML_UPDATE"

// UpdateGoldenFiles reports whether golden output should be rewritten on
// mismatch rather than failing the test.
var UpdateGoldenFiles = os.Getenv(envUpdate) != ""

// TxTarTest runs every .txtar archive found under Root (or its
// subdirectories) as a subtest.
type TxTarTest struct {
	// Root is the directory to walk for *.txtar files.
	Root string

	// Name picks out the "out/<Name>" golden entry this run compares
	// against, mirroring the teacher's one-harness-per-subcommand split
	// (one archive can hold golden output for several different checks).
	Name string

	// Skip/ToDo map a test's base name (archive path relative to Root,
	// without the .txtar suffix) to a reason to skip it.
	Skip map[string]string
	ToDo map[string]string

	// StdlibActive is passed through to engine.Config for every archive.
	StdlibActive bool
}

// Test is the per-archive handle passed to the callback given to Run.
type Test struct {
	*testing.T

	prefix   string
	buf      *bytes.Buffer
	outFiles []outFile

	Archive *txtar.Archive
	Dir     string
	hasGold bool

	Engine  *engine.Engine
	FileIDs map[string]ids.FileId
}

type outFile struct {
	name string
	buf  *bytes.Buffer
}

// Write implements io.Writer, appending to the main golden output
// ("out/<Name>").
func (t *Test) Write(b []byte) (int, error) {
	if t.buf == nil {
		t.buf = &bytes.Buffer{}
		t.outFiles = append(t.outFiles, outFile{t.prefix, t.buf})
	}
	return t.buf.Write(b)
}

// Writer returns a Writer for a named sub-output, checked against
// "out/<Name>/<name>"; an empty name returns the main output Writer.
func (t *Test) Writer(name string) io.Writer {
	full := t.prefix
	if name != "" {
		full = path.Join(t.prefix, name)
	}
	for _, f := range t.outFiles {
		if f.name == full {
			return f.buf
		}
	}
	w := &bytes.Buffer{}
	t.outFiles = append(t.outFiles, outFile{full, w})
	if full == t.prefix {
		t.buf = w
	}
	return w
}

// HasTag reports whether the archive's comment section declares "#key"
// on its own line.
func (t *Test) HasTag(key string) bool {
	prefix := []byte("#" + key)
	for _, line := range bytes.Split(t.Archive.Comment, []byte("\n")) {
		if bytes.Equal(bytes.TrimSpace(line), prefix) {
			return true
		}
	}
	return false
}

// Rel normalizes filename for stable output across OSes, the same way
// the teacher's Test.Rel does.
func (t *Test) Rel(filename string) string {
	rel, err := filepath.Rel(t.Dir, filename)
	if err != nil {
		return filepath.Base(filename)
	}
	return filepath.ToSlash(rel)
}

// Run walks x.Root for *.txtar files, and for each one builds an
// engine.Engine from its non-"out/" entries (inserted in archive order),
// then calls f with the resulting Test. Output written through the Test
// is diffed against "out/<x.Name>" (and any "out/<x.Name>/<sub>" entries)
// once f returns; a mismatch fails the test unless UpdateGoldenFiles is
// set, in which case the archive is rewritten to disk with the new
// output.
func (x *TxTarTest) Run(t *testing.T, f func(tc *Test)) {
	t.Helper()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	err = filepath.WalkDir(x.Root, func(fullpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(fullpath) != ".txtar" {
			return nil
		}

		rel, err := filepath.Rel(x.Root, fullpath)
		if err != nil {
			return err
		}
		testName := strings.TrimSuffix(filepath.ToSlash(rel), ".txtar")

		t.Run(testName, func(t *testing.T) {
			a, err := txtar.ParseFile(fullpath)
			if err != nil {
				t.Fatalf("parsing txtar: %v", err)
			}

			tc := &Test{
				T:       t,
				Archive: a,
				Dir:     filepath.Dir(filepath.Join(cwd, fullpath)),
				prefix:  path.Join("out", x.Name),
				FileIDs: map[string]ids.FileId{},
			}

			if tc.HasTag("skip") {
				t.Skip()
			}
			if msg, ok := x.Skip[testName]; ok {
				t.Skip(msg)
			}
			if msg, ok := x.ToDo[testName]; ok {
				t.Skip(msg)
			}

			e := engine.New(engine.Config{WorkspaceRoot: tc.Dir, StdlibActive: x.StdlibActive})
			tc.Engine = e

			goldPrefix := tc.prefix
			for _, af := range a.Files {
				if af.Name == goldPrefix || strings.HasPrefix(af.Name, goldPrefix+"/") {
					tc.hasGold = true
					continue
				}
				if strings.HasPrefix(af.Name, "out/") {
					continue
				}
				tc.FileIDs[af.Name] = e.InsertFile(af.Name, string(af.Data))
			}

			f(tc)

			index := make(map[string]int, len(a.Files))
			for i, af := range a.Files {
				index[af.Name] = i
			}

			k := len(a.Files)
			for _, of := range tc.outFiles {
				if i, ok := index[of.name]; ok {
					k = i
					break
				}
			}
			files := a.Files[:k:k]

			update := false
			for _, of := range tc.outFiles {
				result := of.buf.Bytes()
				files = append(files, txtar.File{Name: of.name})
				gold := &files[len(files)-1]

				if i, ok := index[of.name]; ok {
					gold.Data = a.Files[i].Data
					delete(index, of.name)
					if bytes.Equal(gold.Data, result) {
						continue
					}
				}

				if UpdateGoldenFiles {
					update = true
					gold.Data = result
					continue
				}
				t.Errorf("result for %s differs: (-want +got)\n%s",
					of.name, cmp.Diff(string(gold.Data), string(result)))
			}

			for _, af := range a.Files[k:] {
				if _, ok := index[af.Name]; ok {
					files = append(files, af)
				}
			}
			a.Files = files

			if update {
				if err := os.WriteFile(fullpath, txtar.Format(a), 0o644); err != nil {
					t.Fatal(err)
				}
			}
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
