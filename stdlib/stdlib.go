// Package stdlib bundles the minimal KerML/SysML library packages
// (Parts, Actions, States, Items, Connections, Requirements) that every
// definition/usage kind's implicit supertype (spec.md §4.3, hir's
// implicitSupertype table) resolves against. The bundle is embedded into
// the binary with go:embed, mirroring the teacher's own embedded-module
// idiom (_examples/cue-lang-cue/cue/load's use of go:embed for builtin
// packages), and is loaded into the workspace only while the query
// database's stdlib input is on (query.Database.SetStdlibActive)
// (spec.md §4.6).
package stdlib

import (
	"embed"
	"fmt"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

//go:embed sources
var sourcesFS embed.FS

// PackageEntry is one bundled package's manifest record.
type PackageEntry struct {
	Name     string   `yaml:"name"`
	File     string   `yaml:"file"`
	Versions []string `yaml:"versions"`
}

// Manifest is the parsed manifest.yaml: the set of bundled packages and,
// for each, the versions available to pick an active one from.
type Manifest struct {
	Packages []PackageEntry `yaml:"packages"`
}

// LoadManifest parses the embedded manifest.yaml.
func LoadManifest() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, fmt.Errorf("stdlib: parsing manifest.yaml: %w", err)
	}
	return &m, nil
}

// ActiveVersion picks the highest semver-ordered version declared for
// entry, the way the teacher's internal/mod ecosystem versions CUE
// modules. Bundled packages presently carry a single version, but the
// manifest shape and this selection rule accommodate adding more without
// changing any caller.
func (e PackageEntry) ActiveVersion() string {
	versions := append([]string(nil), e.Versions...)
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) < 0
	})
	if len(versions) == 0 {
		return ""
	}
	return versions[len(versions)-1]
}

// Source is one bundled package's name and source text, ready to feed
// through parser.Parse/hir.Extract exactly like a workspace file.
type Source struct {
	Name string
	Text string
}

// Sources reads every bundled package's source file, in manifest order.
func Sources() ([]Source, error) {
	m, err := LoadManifest()
	if err != nil {
		return nil, err
	}
	out := make([]Source, 0, len(m.Packages))
	for _, pkg := range m.Packages {
		b, err := sourcesFS.ReadFile("sources/" + baseName(pkg.File))
		if err != nil {
			return nil, fmt.Errorf("stdlib: reading %s: %w", pkg.File, err)
		}
		out = append(out, Source{Name: pkg.Name, Text: string(b)})
	}
	return out, nil
}

// baseName strips a manifest file path down to its final path component;
// manifest.yaml stores paths relative to the stdlib package ("sources/x.sysml")
// while the embed.FS above is rooted one level under that already.
func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
